package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/docshare/docshare/backend/go-services/internal/document"
)

type uploader interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
}

// DocumentArchive stores a JSON snapshot of every deleted document.
type DocumentArchive struct {
	store uploader
	now   func() time.Time
}

func NewDocumentArchive(s *MinIOStorage) *DocumentArchive {
	return &DocumentArchive{store: s, now: time.Now}
}

// ArchiveKey is the object key of a deleted document's snapshot.
func ArchiveKey(id string, at time.Time) string {
	return fmt.Sprintf("deleted/%s/%s.json", at.UTC().Format("2006-01-02"), id)
}

func (a *DocumentArchive) Archive(ctx context.Context, d *document.Document) error {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", d.ID, err)
	}
	key := ArchiveKey(d.ID, a.now())
	if err := a.store.UploadFile(ctx, key, bytes.NewReader(b), int64(len(b)), "application/json"); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}
