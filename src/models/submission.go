package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission is one submitter's answer record for a form. Answers are keyed
// by field path: "field" for top-level fields, "parent.child" for nested
// fields, "group.<index>.child" inside repeatable group instances.
type Submission struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	FormID    primitive.ObjectID     `bson:"formId" json:"formId"`
	FormTitle string                 `bson:"formTitle,omitempty" json:"formTitle,omitempty"`
	Answers   map[string]interface{} `bson:"answers" json:"answers"`

	Username   string `bson:"username" json:"username"`
	UserType   string `bson:"userType,omitempty" json:"userType,omitempty"`
	UserName   string `bson:"userName,omitempty" json:"userName,omitempty"`
	UserFamily string `bson:"userFamily,omitempty" json:"userFamily,omitempty"`

	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// StoredFileReference is the shape a resolved file upload takes inside an
// answer record.
type StoredFileReference struct {
	Filename     string `bson:"filename" json:"filename"`
	OriginalName string `bson:"originalName" json:"originalName"`
	Path         string `bson:"path" json:"path"`
	Size         int64  `bson:"size" json:"size"`
	Type         string `bson:"type" json:"type"`
	UploadedAt   string `bson:"uploadedAt" json:"uploadedAt"`
}
