package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Form schema ---

type FormSchema struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Fields      []FormField        `bson:"fields" json:"fields"`
	Steps       []FormStep         `bson:"steps,omitempty" json:"steps,omitempty"`
	IsMultiStep bool               `bson:"isMultiStep,omitempty" json:"isMultiStep,omitempty"`

	// Submission policy
	IsEditable      bool `bson:"isEditable,omitempty" json:"isEditable,omitempty"`
	OneTimeFillOnly bool `bson:"oneTimeFillOnly,omitempty" json:"oneTimeFillOnly,omitempty"`

	// Entry window: outside [start, end] the form refuses submissions.
	FormStartEntryDatetime *time.Time `bson:"formStartEntryDatetime,omitempty" json:"formStartEntryDatetime,omitempty"`
	FormEndEntryDateTime   *time.Time `bson:"formEndEntryDateTime,omitempty" json:"formEndEntryDateTime,omitempty"`

	AssignedClassCodes   []string `bson:"assignedClassCodes,omitempty" json:"assignedClassCodes,omitempty"`
	AssignedTeacherCodes []string `bson:"assignedTeacherCodes,omitempty" json:"assignedTeacherCodes,omitempty"`

	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// --- Step ---

type FormStep struct {
	ID          string   `bson:"id" json:"id"`
	Title       string   `bson:"title" json:"title"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	FieldIds    []string `bson:"fieldIds" json:"fieldIds"`
}

// --- Field ---

type FormField struct {
	Type        string           `bson:"type" json:"type"`
	Name        string           `bson:"name" json:"name"`
	Label       string           `bson:"label" json:"label"`
	Description string           `bson:"description,omitempty" json:"description,omitempty"`
	Required    bool             `bson:"required,omitempty" json:"required,omitempty"`
	Placeholder string           `bson:"placeholder,omitempty" json:"placeholder,omitempty"`
	Options     []FieldOption    `bson:"options,omitempty" json:"options,omitempty"`
	Validation  *FieldValidation `bson:"validation,omitempty" json:"validation,omitempty"`
	Condition   *FieldCondition  `bson:"condition,omitempty" json:"condition,omitempty"`

	// Nested fields for the "group" type
	Fields     []FormField `bson:"fields,omitempty" json:"fields,omitempty"`
	Repeatable bool        `bson:"repeatable,omitempty" json:"repeatable,omitempty"`
	Layout     string      `bson:"layout,omitempty" json:"layout,omitempty"`
	StepID     string      `bson:"stepId,omitempty" json:"stepId,omitempty"`

	SignatureOptions *SignatureOptions `bson:"signatureOptions,omitempty" json:"signatureOptions,omitempty"`
	RatingOptions    *RatingOptions    `bson:"ratingOptions,omitempty" json:"ratingOptions,omitempty"`
}

type FieldOption struct {
	Label string `bson:"label" json:"label"`
	Value string `bson:"value" json:"value"`
}

type FieldValidation struct {
	Regex             string `bson:"regex,omitempty" json:"regex,omitempty"`
	ValidationMessage string `bson:"validationMessage,omitempty" json:"validationMessage,omitempty"`
}

// FieldCondition makes a field active only while the value at Field
// strictly equals Equals.
type FieldCondition struct {
	Field  string      `bson:"field" json:"field"`
	Equals interface{} `bson:"equals" json:"equals"`
}

type SignatureOptions struct {
	Width           int    `bson:"width,omitempty" json:"width,omitempty"`
	Height          int    `bson:"height,omitempty" json:"height,omitempty"`
	BackgroundColor string `bson:"backgroundColor,omitempty" json:"backgroundColor,omitempty"`
	PenColor        string `bson:"penColor,omitempty" json:"penColor,omitempty"`
}

type RatingOptions struct {
	MaxRating     int    `bson:"maxRating,omitempty" json:"maxRating,omitempty"`
	DefaultRating int    `bson:"defaultRating,omitempty" json:"defaultRating,omitempty"`
	Size          string `bson:"size,omitempty" json:"size,omitempty"`
	AllowHalf     bool   `bson:"allowHalf,omitempty" json:"allowHalf,omitempty"`
	ShowCount     bool   `bson:"showCount,omitempty" json:"showCount,omitempty"`
	Color         string `bson:"color,omitempty" json:"color,omitempty"`
}

// IsActiveNow reports whether the form currently accepts submissions.
func (f *FormSchema) IsActiveNow(now time.Time) bool {
	if f.FormStartEntryDatetime != nil && now.Before(*f.FormStartEntryDatetime) {
		return false
	}
	if f.FormEndEntryDateTime != nil && now.After(*f.FormEndEntryDateTime) {
		return false
	}
	return true
}
