package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"Backend-Parsamooz/src/database"
	"Backend-Parsamooz/src/models"
	"Backend-Parsamooz/src/services/notifications"
	"Backend-Parsamooz/src/utils"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
)

// HandleBirthdayScanTask finds every student whose Jalali birth date matches
// today's month and day and creates a birthday notification (plus an SMS when
// the gateway is configured). Re-runs on the same day are skipped per student.
func HandleBirthdayScanTask(ctx context.Context, t *asynq.Task) error {
	log.Println("🎯 Start birthday scan")

	var payload BirthdayScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Println("❌ Payload decode error:", err)
		return err
	}

	_, jm, jd := utils.TodayJalali()
	todaySuffix := fmt.Sprintf("%02d/%02d", jm, jd)

	filter := bson.M{"birthDate": bson.M{"$ne": ""}}
	if payload.SchoolCode != "" {
		filter["schoolCode"] = payload.SchoolCode
	}

	cursor, err := database.StudentCollection.Find(ctx, filter)
	if err != nil {
		log.Println("❌ Failed to load students:", err)
		return err
	}
	defer cursor.Close(ctx)

	var students []models.Student
	if err = cursor.All(ctx, &students); err != nil {
		return err
	}

	sms, smsErr := notifications.NewSMSClientFromEnv()
	if smsErr != nil {
		log.Println("⚠️ SMS gateway not configured — in-app notifications only")
	}

	matched := 0
	for _, s := range students {
		if !strings.HasSuffix(utils.ToLatinDigits(strings.TrimSpace(s.BirthDate)), todaySuffix) {
			continue
		}
		matched++

		already, err := notifications.ExistsToday(ctx, "birthday", s.StudentCode)
		if err != nil {
			log.Println("❌ Notification lookup failed:", err)
			continue
		}
		if already {
			continue
		}

		fullName := s.StudentName + " " + s.StudentFamily
		n := &models.Notification{
			Kind:      "birthday",
			Title:     "تولدت مبارک 🎂",
			Body:      fullName + " عزیز، تولدت مبارک!",
			Recipient: s.StudentCode,
		}
		if err := notifications.Create(ctx, n); err != nil {
			log.Println("❌ Failed to store birthday notification:", err)
			continue
		}

		if sms != nil && s.Phone != "" {
			if err := sms.Send(ctx, s.Phone, n.Body); err != nil {
				log.Println("⚠️ Birthday SMS failed for", s.StudentCode, ":", err)
			}
		}
	}

	log.Printf("✅ Birthday scan done: %d student(s) matched", matched)
	return nil
}
