package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username   string             `bson:"username" json:"username"`
	Password   string             `bson:"password" json:"-"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	UserType   string             `bson:"userType" json:"userType"` // student | teacher | admin
	SchoolCode string             `bson:"schoolCode,omitempty" json:"schoolCode,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
