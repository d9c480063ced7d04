package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Student struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	StudentCode   string             `bson:"studentCode" json:"studentCode"`
	StudentName   string             `bson:"studentName" json:"studentName"`
	StudentFamily string             `bson:"studentFamily" json:"studentFamily"`
	SchoolCode    string             `bson:"schoolCode,omitempty" json:"schoolCode,omitempty"`
	ClassCodes    []string           `bson:"classCodes,omitempty" json:"classCodes,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`

	// Jalali date, canonical YYYY/MM/DD
	BirthDate string `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
}
