package notifications

import (
	"context"
	"time"

	DB "Backend-Parsamooz/src/database"
	"Backend-Parsamooz/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create stores an in-app notification.
func Create(ctx context.Context, n *models.Notification) error {
	n.ID = primitive.NewObjectID()
	n.CreatedAt = time.Now()
	_, err := DB.NotificationCollection.InsertOne(ctx, n)
	return err
}

// ListForRecipient returns a recipient's notifications, newest first.
func ListForRecipient(ctx context.Context, recipient string) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := DB.NotificationCollection.Find(ctx, bson.M{"recipient": recipient}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var list []models.Notification
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// MarkRead flags a notification as read.
func MarkRead(ctx context.Context, id primitive.ObjectID) error {
	_, err := DB.NotificationCollection.UpdateOne(ctx,
		bson.M{"_id": id}, bson.M{"$set": bson.M{"read": true}})
	return err
}

// ExistsToday reports whether a notification of the given kind was already
// created for the recipient today, so daily jobs stay idempotent. "Today" is
// the Tehran-local calendar day, matching the scheduler's timezone.
func ExistsToday(ctx context.Context, kind, recipient string) (bool, error) {
	start := tehranDayStart(time.Now())
	count, err := DB.NotificationCollection.CountDocuments(ctx, bson.M{
		"kind":      kind,
		"recipient": recipient,
		"createdAt": bson.M{"$gte": start},
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// tehranDayStart returns midnight of now's calendar day in Asia/Tehran.
func tehranDayStart(now time.Time) time.Time {
	loc, err := time.LoadLocation("Asia/Tehran")
	if err != nil {
		loc = time.UTC
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
