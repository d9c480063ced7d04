package formengine

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// SchemaError marks a malformed form schema: missing title, duplicate sibling
// field names, choice fields without options, or broken step references.
// Unknown field types are NOT a SchemaError; they fall back per the registry.
type SchemaError struct {
	Message string
}

func (e *SchemaError) Error() string {
	return "schema error: " + e.Message
}

// ValidationError carries the complete set of per-path violations. It is never
// short-circuited after the first failing field.
type ValidationError struct {
	Errors map[string]string // field path -> message
}

func (e *ValidationError) Error() string {
	paths := make([]string, 0, len(e.Errors))
	for p := range e.Errors {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return fmt.Sprintf("validation failed for %d field(s): %v", len(e.Errors), paths)
}

// UploadError is a single field's failed file upload. It is isolated to that
// field and never aborts the rest of a submission.
type UploadError struct {
	Field string
	Err   error
}

func (e *UploadError) Error() string {
	return "upload failed for field " + e.Field + ": " + e.Err.Error()
}

func (e *UploadError) Unwrap() error { return e.Err }

// ConflictError: a oneTimeFillOnly form already has a submission from this
// submitter. Terminal for the attempt; no retry path.
type ConflictError struct {
	FormID   string
	Username string
}

func (e *ConflictError) Error() string {
	return "form " + e.FormID + " already filled by " + e.Username
}

// TimeoutError: a schema or submission fetch exceeded its client-side
// deadline. The operation is abandoned, not retried.
type TimeoutError struct {
	Op string
}

func (e *TimeoutError) Error() string {
	return "timeout during " + e.Op
}

// wrapTimeout converts a context deadline failure into a TimeoutError and
// passes every other error through.
func wrapTimeout(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Op: op}
	}
	return err
}
