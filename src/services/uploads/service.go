package uploads

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"Backend-Parsamooz/src/models"
	"Backend-Parsamooz/src/services/formengine"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// writeChunkSize bounds how much is written between progress reports and
// cancellation checks.
const writeChunkSize = 256 * 1024

// LocalStorage stores form uploads on local disk under
// <baseDir>/formfiles/forms/<formID>/.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorageFromEnv reads UPLOAD_DIR, defaulting to ./uploads.
func NewLocalStorageFromEnv() *LocalStorage {
	base := os.Getenv("UPLOAD_DIR")
	if base == "" {
		base = "./uploads"
	}
	return &LocalStorage{BaseDir: base}
}

// Upload writes the pending file under a uuid name and returns its stored
// reference. Progress (0..100) is reported per chunk when the callback is
// non-nil; a cancelled context aborts between chunks and removes the partial
// file.
func (s *LocalStorage) Upload(ctx context.Context, formID primitive.ObjectID, fieldPath string, up *formengine.PendingUpload, progress func(percent int)) (*models.StoredFileReference, error) {
	dir := filepath.Join(s.BaseDir, "formfiles", "forms", formID.Hex())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	filename := uuid.NewString() + filepath.Ext(up.Filename)
	fullPath := filepath.Join(dir, filename)

	f, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}

	total := len(up.Data)
	written := 0
	for written < total {
		if err := ctx.Err(); err != nil {
			f.Close()
			os.Remove(fullPath)
			return nil, err
		}
		end := written + writeChunkSize
		if end > total {
			end = total
		}
		n, err := f.Write(up.Data[written:end])
		written += n
		if err != nil {
			f.Close()
			os.Remove(fullPath)
			return nil, fmt.Errorf("write upload file: %w", err)
		}
		if progress != nil && total > 0 {
			progress(written * 100 / total)
		}
	}
	if err := f.Close(); err != nil {
		os.Remove(fullPath)
		return nil, fmt.Errorf("close upload file: %w", err)
	}
	if progress != nil && total == 0 {
		progress(100)
	}

	return &models.StoredFileReference{
		Filename:     filename,
		OriginalName: up.Filename,
		Path:         filepath.ToSlash(filepath.Join("formfiles", "forms", formID.Hex(), filename)),
		Size:         int64(total),
		Type:         up.ContentType,
		UploadedAt:   time.Now().Format(time.RFC3339),
	}, nil
}

// Delete removes a stored file by its reference path. Missing files are not
// an error.
func (s *LocalStorage) Delete(ref *models.StoredFileReference) error {
	if ref == nil || ref.Path == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.BaseDir, filepath.FromSlash(ref.Path)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
