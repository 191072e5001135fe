package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/docshare/docshare/backend/go-services/internal/document"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	key         string
	body        []byte
	contentType string
	err         error
}

func (f *fakeUploader) UploadFile(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if f.err != nil {
		return f.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.key, f.body, f.contentType = key, b, contentType
	return nil
}

func TestDocumentArchive_Archive(t *testing.T) {
	up := &fakeUploader{}
	at := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	a := &DocumentArchive{store: up, now: func() time.Time { return at }}

	d := &document.Document{ID: "d1", Title: "A", Author: "u1"}
	require.NoError(t, a.Archive(context.Background(), d))
	require.Equal(t, "deleted/2026-03-04/d1.json", up.key)
	require.Equal(t, "application/json", up.contentType)

	var got document.Document
	require.NoError(t, json.Unmarshal(up.body, &got))
	require.Equal(t, "A", got.Title)
	require.Equal(t, "u1", got.Author)
}

func TestDocumentArchive_UploadError(t *testing.T) {
	up := &fakeUploader{err: errors.New("bucket gone")}
	a := &DocumentArchive{store: up, now: time.Now}
	err := a.Archive(context.Background(), &document.Document{ID: "d2"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "bucket gone")
}

func TestMinIOConfigEnabled(t *testing.T) {
	var nilCfg *MinIOConfig
	require.False(t, nilCfg.Enabled())
	require.False(t, (&MinIOConfig{}).Enabled())
	require.True(t, (&MinIOConfig{Endpoint: "localhost:9000"}).Enabled())
}
