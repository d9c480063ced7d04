package formengine

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"Backend-Parsamooz/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PendingUpload is a file the user picked but that has not been stored yet.
// The assembler swaps it for a StoredFileReference during assembly.
type PendingUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Identity is the resolved submitter. The engine treats it as opaque input.
type Identity struct {
	Username string
	UserType string
	Name     string
}

// SchemaSource loads form schemas (backed by the forms service).
type SchemaSource interface {
	LoadSchema(ctx context.Context, formID primitive.ObjectID) (*models.FormSchema, error)
}

// FileStorage stores a pending upload and returns its reference. Progress is
// reported as a percentage when the callback is non-nil.
type FileStorage interface {
	Upload(ctx context.Context, formID primitive.ObjectID, fieldPath string, up *PendingUpload, progress func(percent int)) (*models.StoredFileReference, error)
}

// SubmissionStore persists submissions. FindSubmission returns (nil, nil)
// when the submitter has none. Create and Update are single-record writes,
// which keeps the final persistence step all-or-nothing.
type SubmissionStore interface {
	FindSubmission(ctx context.Context, formID primitive.ObjectID, username string) (*models.Submission, error)
	CreateSubmission(ctx context.Context, sub *models.Submission) (*models.Submission, error)
	UpdateSubmission(ctx context.Context, id primitive.ObjectID, sub *models.Submission) (*models.Submission, error)
}

// Assembler turns a completed session's answer record into a persisted
// submission.
type Assembler struct {
	files FileStorage
	store SubmissionStore
}

func NewAssembler(files FileStorage, store SubmissionStore) *Assembler {
	return &Assembler{files: files, store: store}
}

// Assemble resolves pending uploads, applies the form's fill policy, and
// creates or updates the submitter's submission.
//
// Policy, checked before any upload work so a refused attempt wastes nothing:
// a oneTimeFillOnly form with an existing submission from this submitter is a
// ConflictError unless the form is editable. An editable form updates the
// existing submission in place; otherwise a new one is created.
//
// A failed upload drops only that field from the record; an explicit nil at a
// file path (the user cleared a stored file) is preserved as nil.
func (a *Assembler) Assemble(ctx context.Context, form *models.FormSchema, answers AnswerRecord, who Identity) (*models.Submission, error) {
	existing, err := a.store.FindSubmission(ctx, form.ID, who.Username)
	if err != nil {
		return nil, wrapTimeout("submission lookup", err)
	}

	if existing != nil && form.OneTimeFillOnly && !form.IsEditable {
		return nil, &ConflictError{FormID: form.ID.Hex(), Username: who.Username}
	}

	record := cloneAnswers(answers)
	a.resolveUploads(ctx, form.ID, "", record)

	firstName, family := splitName(who.Name)
	sub := &models.Submission{
		FormID:     form.ID,
		FormTitle:  form.Title,
		Answers:    record,
		Username:   who.Username,
		UserType:   who.UserType,
		UserName:   firstName,
		UserFamily: family,
	}

	now := time.Now()
	if existing != nil && form.IsEditable {
		sub.CreatedAt = existing.CreatedAt
		sub.UpdatedAt = now
		saved, err := a.store.UpdateSubmission(ctx, existing.ID, sub)
		return saved, wrapTimeout("submission update", err)
	}

	sub.CreatedAt = now
	sub.UpdatedAt = now
	saved, err := a.store.CreateSubmission(ctx, sub)
	return saved, wrapTimeout("submission create", err)
}

// resolveUploads walks the record (including repeatable instances) and swaps
// every PendingUpload for its stored reference. Fields whose upload fails are
// removed; independent fields resolve independently, in no guaranteed order.
func (a *Assembler) resolveUploads(ctx context.Context, formID primitive.ObjectID, prefix string, m map[string]interface{}) {
	for key, value := range m {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		switch v := value.(type) {
		case *PendingUpload:
			a.resolveOne(ctx, formID, path, key, v, m)
		case PendingUpload:
			a.resolveOne(ctx, formID, path, key, &v, m)
		case []interface{}:
			for i, item := range v {
				if inst, ok := item.(map[string]interface{}); ok {
					a.resolveUploads(ctx, formID, path+"."+strconv.Itoa(i), inst)
				}
			}
		case map[string]interface{}:
			a.resolveUploads(ctx, formID, path, v)
		}
	}
}

func (a *Assembler) resolveOne(ctx context.Context, formID primitive.ObjectID, path, key string, up *PendingUpload, m map[string]interface{}) {
	ref, err := a.files.Upload(ctx, formID, path, up, nil)
	if err != nil {
		uploadErr := &UploadError{Field: path, Err: err}
		log.Printf("⚠️ %v — dropping field from submission", uploadErr)
		delete(m, key)
		return
	}
	m[key] = ref
}

func splitName(full string) (first, family string) {
	parts := strings.Fields(strings.TrimSpace(full))
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
