package formengine

// ValueKind is the base value shape a field type stores in the answer record.
type ValueKind int

const (
	KindAny ValueKind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindFile
)

// TypeInfo describes a field type's behavior for the validator and renderer.
type TypeInfo struct {
	BaseKind        ValueKind
	SupportsOptions bool
	SupportsNesting bool
}

// Registry maps a field-type tag to its TypeInfo. Unknown tags resolve to an
// accept-anything optional descriptor so schema drift degrades gracefully
// instead of erroring.
type Registry struct {
	types map[string]TypeInfo
}

var fallbackType = TypeInfo{BaseKind: KindAny}

// NewRegistry returns a registry pre-loaded with the built-in field types.
func NewRegistry() *Registry {
	r := &Registry{types: map[string]TypeInfo{}}

	r.Register("text", TypeInfo{BaseKind: KindString})
	r.Register("textarea", TypeInfo{BaseKind: KindString})
	r.Register("email", TypeInfo{BaseKind: KindString})
	r.Register("number", TypeInfo{BaseKind: KindNumber})
	r.Register("date", TypeInfo{BaseKind: KindString})
	r.Register("select", TypeInfo{BaseKind: KindString, SupportsOptions: true})
	r.Register("radio", TypeInfo{BaseKind: KindString, SupportsOptions: true})
	// checkbox is a bool switch without options and a multi-select with them
	r.Register("checkbox", TypeInfo{BaseKind: KindBool, SupportsOptions: true})
	r.Register("switch", TypeInfo{BaseKind: KindBool})
	r.Register("file", TypeInfo{BaseKind: KindFile})
	r.Register("signature", TypeInfo{BaseKind: KindObject})
	r.Register("rating", TypeInfo{BaseKind: KindNumber})
	r.Register("group", TypeInfo{BaseKind: KindObject, SupportsNesting: true})

	return r
}

// Register adds or replaces a field type. New types are added here rather
// than by editing validator internals.
func (r *Registry) Register(tag string, info TypeInfo) {
	r.types[tag] = info
}

// Describe never fails: unknown tags get the fallback descriptor.
func (r *Registry) Describe(tag string) TypeInfo {
	if info, ok := r.types[tag]; ok {
		return info
	}
	return fallbackType
}

// Known reports whether the tag is registered.
func (r *Registry) Known(tag string) bool {
	_, ok := r.types[tag]
	return ok
}

// DefaultRegistry serves callers that do not need custom field types.
var DefaultRegistry = NewRegistry()
