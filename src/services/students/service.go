package students

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	DB "Backend-Parsamooz/src/database"
	"Backend-Parsamooz/src/models"
	"Backend-Parsamooz/src/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrStudentNotFound = errors.New("student not found")

// GetStudentByCode fetches one student record.
func GetStudentByCode(ctx context.Context, studentCode string) (*models.Student, error) {
	var s models.Student
	err := DB.StudentCollection.FindOne(ctx, bson.M{"studentCode": studentCode}).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetStudents lists students with pagination and an optional name search.
func GetStudents(ctx context.Context, page, limit int, search string) ([]models.Student, int64, int, error) {
	filter := bson.M{}
	if search != "" {
		filter["$or"] = []bson.M{
			{"studentName": bson.M{"$regex": search, "$options": "i"}},
			{"studentFamily": bson.M{"$regex": search, "$options": "i"}},
			{"studentCode": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	total, err := DB.StudentCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, 0, err
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "studentFamily", Value: 1}})

	cursor, err := DB.StudentCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, 0, err
	}
	defer cursor.Close(ctx)

	var list []models.Student
	if err = cursor.All(ctx, &list); err != nil {
		return nil, 0, 0, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return list, total, totalPages, nil
}

// TodayBirthdays returns the students whose Jalali birth date matches today's
// month and day.
func TodayBirthdays(ctx context.Context, schoolCode string) ([]models.Student, error) {
	_, jm, jd := utils.TodayJalali()
	suffix := fmt.Sprintf("%02d/%02d", jm, jd)

	filter := bson.M{"birthDate": bson.M{"$ne": ""}}
	if schoolCode != "" {
		filter["schoolCode"] = schoolCode
	}

	cursor, err := DB.StudentCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var all []models.Student
	if err = cursor.All(ctx, &all); err != nil {
		return nil, err
	}

	var matched []models.Student
	for _, s := range all {
		if strings.HasSuffix(utils.ToLatinDigits(strings.TrimSpace(s.BirthDate)), suffix) {
			matched = append(matched, s)
		}
	}
	return matched, nil
}
