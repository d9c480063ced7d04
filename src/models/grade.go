package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GradeEntry is a single recorded score inside a classsheet cell.
type GradeEntry struct {
	Value       float64 `bson:"value" json:"value"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Date        string  `bson:"date,omitempty" json:"date,omitempty"`
	TotalPoints float64 `bson:"totalPoints,omitempty" json:"totalPoints,omitempty"`
}

// AssessmentEntry is a qualitative assessment; Value is one of the Persian
// scale labels (عالی .. بسیار ضعیف) mapped to a weight by the report service.
type AssessmentEntry struct {
	Title  string  `bson:"title,omitempty" json:"title,omitempty"`
	Value  string  `bson:"value" json:"value"`
	Date   string  `bson:"date,omitempty" json:"date,omitempty"`
	Weight float64 `bson:"weight,omitempty" json:"weight,omitempty"`
}

// GradeCell is one student's record for a course on a given Jalali date.
type GradeCell struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ClassCode   string             `bson:"classCode" json:"classCode"`
	StudentCode string             `bson:"studentCode" json:"studentCode"`
	TeacherCode string             `bson:"teacherCode,omitempty" json:"teacherCode,omitempty"`
	CourseCode  string             `bson:"courseCode" json:"courseCode"`
	SchoolCode  string             `bson:"schoolCode,omitempty" json:"schoolCode,omitempty"`
	Date        string             `bson:"date" json:"date"` // Jalali YYYY/MM/DD
	Note        string             `bson:"note,omitempty" json:"note,omitempty"`
	Grades      []GradeEntry       `bson:"grades,omitempty" json:"grades,omitempty"`
	Assessments []AssessmentEntry  `bson:"assessments,omitempty" json:"assessments,omitempty"`
}

// MonthlyGrade aggregates one student's cells for a Jalali month.
type MonthlyGrade struct {
	Month        int     `json:"month"`
	GradeCount   int     `json:"gradeCount"`
	AverageGrade float64 `json:"averageGrade"`
	FinalScore   float64 `json:"finalScore"`
	HasScore     bool    `json:"hasScore"`
	Rank         int     `json:"rank,omitempty"`
}

// StudentGradeReport is one row of the monthly grade report.
type StudentGradeReport struct {
	StudentCode   string               `json:"studentCode"`
	StudentName   string               `json:"studentName"`
	MonthlyGrades map[int]MonthlyGrade `json:"monthlyGrades"`
	YearAverage   float64              `json:"yearAverage"`
	HasYearScore  bool                 `json:"hasYearScore"`
	YearRank      int                  `json:"yearRank,omitempty"`
}
