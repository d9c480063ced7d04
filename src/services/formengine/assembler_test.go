package formengine

import (
	"context"
	"errors"
	"testing"
	"time"

	"Backend-Parsamooz/src/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeFileStorage records calls and can fail specific field paths.
type fakeFileStorage struct {
	calls    []string
	failPath string
}

func (f *fakeFileStorage) Upload(ctx context.Context, formID primitive.ObjectID, fieldPath string, up *PendingUpload, progress func(int)) (*models.StoredFileReference, error) {
	f.calls = append(f.calls, fieldPath)
	if fieldPath == f.failPath {
		return nil, errors.New("disk full")
	}
	return &models.StoredFileReference{
		Filename:     "stored-" + up.Filename,
		OriginalName: up.Filename,
		Path:         "formfiles/forms/" + formID.Hex() + "/stored-" + up.Filename,
		Size:         int64(len(up.Data)),
		Type:         up.ContentType,
	}, nil
}

// fakeSubmissionStore is an in-memory SubmissionStore.
type fakeSubmissionStore struct {
	existing *models.Submission
	created  *models.Submission
	updated  *models.Submission
	findErr  error
}

func (s *fakeSubmissionStore) FindSubmission(ctx context.Context, formID primitive.ObjectID, username string) (*models.Submission, error) {
	return s.existing, s.findErr
}

func (s *fakeSubmissionStore) CreateSubmission(ctx context.Context, sub *models.Submission) (*models.Submission, error) {
	sub.ID = primitive.NewObjectID()
	s.created = sub
	return sub, nil
}

func (s *fakeSubmissionStore) UpdateSubmission(ctx context.Context, id primitive.ObjectID, sub *models.Submission) (*models.Submission, error) {
	sub.ID = id
	s.updated = sub
	return sub, nil
}

func testForm(oneTime, editable bool) *models.FormSchema {
	return &models.FormSchema{
		ID:              primitive.NewObjectID(),
		Title:           "فرم ثبت‌نام",
		OneTimeFillOnly: oneTime,
		IsEditable:      editable,
	}
}

func TestAssemble(t *testing.T) {
	who := Identity{Username: "u1001", UserType: "student", Name: "علی رضایی"}

	t.Run("CreatesSubmissionWithSplitName", func(t *testing.T) {
		files := &fakeFileStorage{}
		store := &fakeSubmissionStore{}
		a := NewAssembler(files, store)

		sub, err := a.Assemble(context.Background(), testForm(false, false),
			AnswerRecord{"fullName": "علی رضایی"}, who)
		assert.NoError(t, err)
		assert.NotNil(t, store.created)
		assert.Equal(t, "علی", sub.UserName)
		assert.Equal(t, "رضایی", sub.UserFamily)
		assert.Equal(t, "u1001", sub.Username)
		assert.Equal(t, "فرم ثبت‌نام", sub.FormTitle)
	})

	t.Run("ConflictCheckedBeforeAnyUpload", func(t *testing.T) {
		// Scenario: a second submit on a one-time form must refuse without
		// touching file storage.
		files := &fakeFileStorage{}
		store := &fakeSubmissionStore{existing: &models.Submission{ID: primitive.NewObjectID()}}
		a := NewAssembler(files, store)

		_, err := a.Assemble(context.Background(), testForm(true, false),
			AnswerRecord{"doc": &PendingUpload{Filename: "x.pdf"}}, who)

		var cErr *ConflictError
		assert.ErrorAs(t, err, &cErr)
		assert.Empty(t, files.calls, "no upload work on a refused attempt")
		assert.Nil(t, store.created)
	})

	t.Run("EditableFormUpdatesInPlace", func(t *testing.T) {
		created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
		existing := &models.Submission{ID: primitive.NewObjectID(), CreatedAt: created}
		store := &fakeSubmissionStore{existing: existing}
		a := NewAssembler(&fakeFileStorage{}, store)

		sub, err := a.Assemble(context.Background(), testForm(true, true),
			AnswerRecord{"fullName": "علی"}, who)
		assert.NoError(t, err)
		assert.NotNil(t, store.updated)
		assert.Nil(t, store.created)
		assert.Equal(t, existing.ID, sub.ID)
		assert.Equal(t, created, sub.CreatedAt, "original creation time preserved")
	})

	t.Run("PendingUploadsResolveToReferences", func(t *testing.T) {
		files := &fakeFileStorage{}
		store := &fakeSubmissionStore{}
		a := NewAssembler(files, store)

		sub, err := a.Assemble(context.Background(), testForm(false, false), AnswerRecord{
			"doc": &PendingUpload{Filename: "report.pdf", ContentType: "application/pdf", Data: []byte("pdf")},
		}, who)
		assert.NoError(t, err)

		ref, ok := sub.Answers["doc"].(*models.StoredFileReference)
		assert.True(t, ok)
		assert.Equal(t, "report.pdf", ref.OriginalName)
		assert.Equal(t, []string{"doc"}, files.calls)
	})

	t.Run("FailedUploadDropsOnlyThatField", func(t *testing.T) {
		// Scenario: one of two uploads fails; the submission succeeds without
		// the failed field and with the other resolved.
		files := &fakeFileStorage{failPath: "photo"}
		store := &fakeSubmissionStore{}
		a := NewAssembler(files, store)

		sub, err := a.Assemble(context.Background(), testForm(false, false), AnswerRecord{
			"photo": &PendingUpload{Filename: "me.jpg"},
			"doc":   &PendingUpload{Filename: "report.pdf"},
			"name":  "علی",
		}, who)
		assert.NoError(t, err)

		_, hasPhoto := sub.Answers["photo"]
		assert.False(t, hasPhoto, "failed upload's field omitted entirely")
		assert.IsType(t, &models.StoredFileReference{}, sub.Answers["doc"])
		assert.Equal(t, "علی", sub.Answers["name"])
	})

	t.Run("ExplicitNilFileValuePreserved", func(t *testing.T) {
		store := &fakeSubmissionStore{}
		a := NewAssembler(&fakeFileStorage{}, store)

		sub, err := a.Assemble(context.Background(), testForm(false, false),
			AnswerRecord{"photo": nil}, who)
		assert.NoError(t, err)

		v, present := sub.Answers["photo"]
		assert.True(t, present, "cleared file stays as an explicit nil")
		assert.Nil(t, v)
	})

	t.Run("UploadsInsideRepeatableInstancesResolve", func(t *testing.T) {
		files := &fakeFileStorage{}
		store := &fakeSubmissionStore{}
		a := NewAssembler(files, store)

		sub, err := a.Assemble(context.Background(), testForm(false, false), AnswerRecord{
			"docs": []interface{}{
				map[string]interface{}{"file": &PendingUpload{Filename: "a.pdf"}},
				map[string]interface{}{"file": &PendingUpload{Filename: "b.pdf"}},
			},
		}, who)
		assert.NoError(t, err)
		assert.ElementsMatch(t, []string{"docs.0.file", "docs.1.file"}, files.calls)

		instances := sub.Answers["docs"].([]interface{})
		first := instances[0].(map[string]interface{})
		assert.IsType(t, &models.StoredFileReference{}, first["file"])
	})

	t.Run("LookupTimeoutBecomesTimeoutError", func(t *testing.T) {
		store := &fakeSubmissionStore{findErr: context.DeadlineExceeded}
		a := NewAssembler(&fakeFileStorage{}, store)

		_, err := a.Assemble(context.Background(), testForm(false, false), AnswerRecord{}, who)
		var tErr *TimeoutError
		assert.ErrorAs(t, err, &tErr)
		assert.Equal(t, "submission lookup", tErr.Op)
	})

	t.Run("CallerRecordNeverMutated", func(t *testing.T) {
		files := &fakeFileStorage{failPath: "photo"}
		a := NewAssembler(files, &fakeSubmissionStore{})

		original := AnswerRecord{"photo": &PendingUpload{Filename: "me.jpg"}}
		_, err := a.Assemble(context.Background(), testForm(false, false), original, who)
		assert.NoError(t, err)

		_, still := original["photo"]
		assert.True(t, still, "assembly works on a copy")
	})

	t.Run("NestedInstanceMapsNeverMutated", func(t *testing.T) {
		// A failed upload inside a repeatable instance must drop the field
		// only from the assembled copy; a session retrying with its
		// accumulated answers still holds the pending upload.
		files := &fakeFileStorage{failPath: "docs.0.file"}
		a := NewAssembler(files, &fakeSubmissionStore{})

		instance := map[string]interface{}{"file": &PendingUpload{Filename: "a.pdf"}, "note": "x"}
		original := AnswerRecord{"docs": []interface{}{instance}}

		sub, err := a.Assemble(context.Background(), testForm(false, false), original, who)
		assert.NoError(t, err)

		_, still := instance["file"]
		assert.True(t, still, "caller's instance map keeps the pending upload")
		assert.IsType(t, &PendingUpload{}, instance["file"])

		assembled := sub.Answers["docs"].([]interface{})[0].(map[string]interface{})
		_, dropped := assembled["file"]
		assert.False(t, dropped, "assembled copy drops the failed field")
	})

	t.Run("SuccessfulNestedUploadLeavesCallerPending", func(t *testing.T) {
		files := &fakeFileStorage{}
		a := NewAssembler(files, &fakeSubmissionStore{})

		instance := map[string]interface{}{"file": &PendingUpload{Filename: "a.pdf"}}
		original := AnswerRecord{"docs": []interface{}{instance}}

		sub, err := a.Assemble(context.Background(), testForm(false, false), original, who)
		assert.NoError(t, err)

		assert.IsType(t, &PendingUpload{}, instance["file"], "caller keeps the pending value")
		assembled := sub.Answers["docs"].([]interface{})[0].(map[string]interface{})
		assert.IsType(t, &models.StoredFileReference{}, assembled["file"])
	})
}
