package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Kind      string             `bson:"kind" json:"kind"` // e.g. "birthday"
	Title     string             `bson:"title" json:"title"`
	Body      string             `bson:"body,omitempty" json:"body,omitempty"`
	Recipient string             `bson:"recipient" json:"recipient"` // studentCode / username
	Read      bool               `bson:"read,omitempty" json:"read,omitempty"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
}
