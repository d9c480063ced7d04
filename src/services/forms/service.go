package forms

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"time"

	DB "Backend-Parsamooz/src/database"
	"Backend-Parsamooz/src/models"
	"Backend-Parsamooz/src/services/formengine"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrFormNotFound = errors.New("form not found")

const formCacheTTL = 5 * time.Minute

// CreateForm validates and stores a new form schema.
func CreateForm(ctx context.Context, form *models.FormSchema) (*models.FormSchema, error) {
	if err := formengine.ValidateSchema(form, formengine.DefaultRegistry); err != nil {
		return nil, err
	}
	logUnknownTypes(form.Fields)

	now := time.Now()
	form.ID = primitive.NewObjectID()
	form.CreatedAt = now
	form.UpdatedAt = now

	if _, err := DB.FormCollection.InsertOne(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

// GetForms retrieves forms with pagination, newest first.
func GetForms(ctx context.Context, page, limit int) (*models.PaginatedFormsResponse, error) {
	skip := (page - 1) * limit

	total, err := DB.FormCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := DB.FormCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var forms []models.FormSchema
	if err = cursor.All(ctx, &forms); err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return &models.PaginatedFormsResponse{
		Forms:      forms,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// GetFormByID fetches a form, trying the Redis cache first.
func GetFormByID(ctx context.Context, formID primitive.ObjectID) (*models.FormSchema, error) {
	if cached := cacheGet(ctx, formID); cached != nil {
		return cached, nil
	}

	var form models.FormSchema
	err := DB.FormCollection.FindOne(ctx, bson.M{"_id": formID}).Decode(&form)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrFormNotFound
		}
		return nil, err
	}

	cacheSet(ctx, &form)
	return &form, nil
}

// UpdateForm validates and replaces a form schema, invalidating its cache.
func UpdateForm(ctx context.Context, formID primitive.ObjectID, form *models.FormSchema) (*models.FormSchema, error) {
	if err := formengine.ValidateSchema(form, formengine.DefaultRegistry); err != nil {
		return nil, err
	}
	logUnknownTypes(form.Fields)

	var existing models.FormSchema
	if err := DB.FormCollection.FindOne(ctx, bson.M{"_id": formID}).Decode(&existing); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrFormNotFound
		}
		return nil, err
	}

	form.ID = formID
	form.CreatedAt = existing.CreatedAt
	form.UpdatedAt = time.Now()

	if _, err := DB.FormCollection.ReplaceOne(ctx, bson.M{"_id": formID}, form); err != nil {
		return nil, err
	}

	cacheInvalidate(ctx, formID)
	return form, nil
}

// DeleteForm removes a form. Its submissions are kept for the record.
func DeleteForm(ctx context.Context, formID primitive.ObjectID) error {
	res, err := DB.FormCollection.DeleteOne(ctx, bson.M{"_id": formID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrFormNotFound
	}
	cacheInvalidate(ctx, formID)
	return nil
}

// --- Step lifecycle ---

// EnableMultiStep turns a single-step form into a multi-step one with a
// first step holding every existing field.
func EnableMultiStep(ctx context.Context, formID primitive.ObjectID) (*models.FormSchema, error) {
	form, err := GetFormByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form.IsMultiStep {
		return form, nil
	}

	applyEnableMultiStep(form)
	return UpdateForm(ctx, formID, form)
}

// AddStep appends an empty step to a multi-step form.
func AddStep(ctx context.Context, formID primitive.ObjectID, title, description string) (*models.FormSchema, error) {
	form, err := GetFormByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if !form.IsMultiStep {
		applyEnableMultiStep(form)
	}

	form.Steps = append(form.Steps, models.FormStep{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		FieldIds:    []string{},
	})
	return UpdateForm(ctx, formID, form)
}

// RemoveStep deletes a step and reassigns its fields to the first remaining
// step. The last remaining step can never be deleted.
func RemoveStep(ctx context.Context, formID primitive.ObjectID, stepID string) (*models.FormSchema, error) {
	form, err := GetFormByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if err := applyRemoveStep(form, stepID); err != nil {
		return nil, err
	}
	return UpdateForm(ctx, formID, form)
}

func applyEnableMultiStep(form *models.FormSchema) {
	stepID := uuid.NewString()
	fieldIds := make([]string, len(form.Fields))
	for i := range form.Fields {
		fieldIds[i] = form.Fields[i].Name
		form.Fields[i].StepID = stepID
	}
	form.IsMultiStep = true
	form.Steps = []models.FormStep{{ID: stepID, Title: "مرحله ۱", FieldIds: fieldIds}}
}

func applyRemoveStep(form *models.FormSchema, stepID string) error {
	if !form.IsMultiStep {
		return &formengine.SchemaError{Message: "form is not multi-step"}
	}
	if len(form.Steps) <= 1 {
		return &formengine.SchemaError{Message: "cannot delete the last remaining step"}
	}

	idx := -1
	for i := range form.Steps {
		if form.Steps[i].ID == stepID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &formengine.SchemaError{Message: "step not found: " + stepID}
	}

	orphaned := form.Steps[idx].FieldIds
	form.Steps = append(form.Steps[:idx], form.Steps[idx+1:]...)

	first := &form.Steps[0]
	first.FieldIds = append(first.FieldIds, orphaned...)
	for i := range form.Fields {
		if form.Fields[i].StepID == stepID {
			form.Fields[i].StepID = first.ID
		}
	}
	return nil
}

// --- Submission gating ---

var (
	ErrFormClosed  = errors.New("مهلت ارسال این فرم به پایان رسیده است")
	ErrNotAssigned = errors.New("دسترسی به این فرم برای شما مجاز نیست")
)

// CheckSubmitAccess enforces the entry window and class/teacher assignment
// before a submission is accepted.
func CheckSubmitAccess(form *models.FormSchema, userType string, classCodes []string, teacherCode string) error {
	if !form.IsActiveNow(time.Now()) {
		return ErrFormClosed
	}

	switch userType {
	case "student":
		if len(form.AssignedClassCodes) == 0 {
			return nil
		}
		for _, code := range form.AssignedClassCodes {
			for _, mine := range classCodes {
				if code == mine {
					return nil
				}
			}
		}
		return ErrNotAssigned
	case "teacher":
		if len(form.AssignedTeacherCodes) == 0 {
			return nil
		}
		for _, code := range form.AssignedTeacherCodes {
			if code == teacherCode {
				return nil
			}
		}
		return ErrNotAssigned
	}
	return nil
}

// Source adapts this service to the engine's SchemaSource interface.
type Source struct{}

func (Source) LoadSchema(ctx context.Context, formID primitive.ObjectID) (*models.FormSchema, error) {
	return GetFormByID(ctx, formID)
}

// --- Cache helpers ---

func cacheKey(id primitive.ObjectID) string { return "form:" + id.Hex() }

func cacheGet(ctx context.Context, id primitive.ObjectID) *models.FormSchema {
	if DB.RedisClient == nil {
		return nil
	}
	raw, err := DB.RedisClient.Get(ctx, cacheKey(id)).Result()
	if err != nil {
		return nil
	}
	var form models.FormSchema
	if err := json.Unmarshal([]byte(raw), &form); err != nil {
		return nil
	}
	return &form
}

func cacheSet(ctx context.Context, form *models.FormSchema) {
	if DB.RedisClient == nil {
		return
	}
	raw, err := json.Marshal(form)
	if err != nil {
		return
	}
	if err := DB.RedisClient.Set(ctx, cacheKey(form.ID), raw, formCacheTTL).Err(); err != nil {
		log.Println("⚠️ form cache set failed:", err)
	}
}

func cacheInvalidate(ctx context.Context, id primitive.ObjectID) {
	if DB.RedisClient == nil {
		return
	}
	if err := DB.RedisClient.Del(ctx, cacheKey(id)).Err(); err != nil {
		log.Println("⚠️ form cache invalidate failed:", err)
	}
}

func logUnknownTypes(fields []models.FormField) {
	for i := range fields {
		if !formengine.DefaultRegistry.Known(fields[i].Type) {
			log.Printf("⚠️ unknown field type %q on field %q — treated as optional free-form", fields[i].Type, fields[i].Name)
		}
		if len(fields[i].Fields) > 0 {
			logUnknownTypes(fields[i].Fields)
		}
	}
}
