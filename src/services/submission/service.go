package submission

import (
	"context"
	"errors"
	"log"
	"math"

	DB "Backend-Parsamooz/src/database"
	"Backend-Parsamooz/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrSubmissionNotFound = errors.New("submission not found")

// Store is the Mongo-backed submission persistence used by the assembler.
type Store struct{}

// FindSubmission returns the submitter's submission for a form, or (nil, nil)
// when there is none.
func (Store) FindSubmission(ctx context.Context, formID primitive.ObjectID, username string) (*models.Submission, error) {
	var sub models.Submission
	err := DB.SubmissionCollection.FindOne(ctx, bson.M{"formId": formID, "username": username}).Decode(&sub)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (Store) CreateSubmission(ctx context.Context, sub *models.Submission) (*models.Submission, error) {
	sub.ID = primitive.NewObjectID()
	if _, err := DB.SubmissionCollection.InsertOne(ctx, sub); err != nil {
		return nil, err
	}
	log.Printf("✅ submission %s stored for form %s (user %s)", sub.ID.Hex(), sub.FormID.Hex(), sub.Username)
	return sub, nil
}

func (Store) UpdateSubmission(ctx context.Context, id primitive.ObjectID, sub *models.Submission) (*models.Submission, error) {
	update := bson.M{"$set": bson.M{
		"answers":    sub.Answers,
		"formTitle":  sub.FormTitle,
		"userName":   sub.UserName,
		"userFamily": sub.UserFamily,
		"updatedAt":  sub.UpdatedAt,
	}}
	res, err := DB.SubmissionCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrSubmissionNotFound
	}
	sub.ID = id
	log.Printf("✅ submission %s updated for form %s (user %s)", id.Hex(), sub.FormID.Hex(), sub.Username)
	return sub, nil
}

// GetSubmissionsByFormID lists a form's submissions with pagination, newest
// first.
func GetSubmissionsByFormID(ctx context.Context, formID primitive.ObjectID, page, limit int) (*models.PaginatedSubmissionsResponse, error) {
	filter := bson.M{"formId": formID}
	skip := (page - 1) * limit

	total, err := DB.SubmissionCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := DB.SubmissionCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []models.Submission
	if err = cursor.All(ctx, &subs); err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return &models.PaginatedSubmissionsResponse{
		Submissions: subs,
		Total:       total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
	}, nil
}

// GetSubmissionByID fetches a single submission.
func GetSubmissionByID(ctx context.Context, id primitive.ObjectID) (*models.Submission, error) {
	var sub models.Submission
	err := DB.SubmissionCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// GetSubmissionsByUsername lists every submission a user has made, newest
// first.
func GetSubmissionsByUsername(ctx context.Context, username string) ([]models.Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := DB.SubmissionCollection.Find(ctx, bson.M{"username": username}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []models.Submission
	if err = cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// DeleteSubmission removes a submission.
func DeleteSubmission(ctx context.Context, id primitive.ObjectID) error {
	res, err := DB.SubmissionCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}
