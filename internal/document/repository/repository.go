package repository

import (
	"context"
	"errors"

	"github.com/docshare/docshare/backend/go-services/internal/document"
)

var (
	ErrNotFound = errors.New("document not found")
)

// Changes lists the fields an update may set. Nil fields are left untouched.
type Changes struct {
	Title       *string
	Description *string
	Content     *string
	IsApproved  *bool
}

// Repository is the persistence contract of the document service.
// Lookups by id return ErrNotFound when no document matches.
type Repository interface {
	// Find returns documents matching f in storage order. limit <= 0 means no limit.
	Find(ctx context.Context, f document.Filter, skip, limit int64) ([]*document.Document, error)
	Get(ctx context.Context, id string) (*document.Document, error)
	Create(ctx context.Context, d *document.Document) error
	// Update applies c, always stamps updated_at, and returns the document as
	// it was before the update, or after it when returnUpdated is set.
	Update(ctx context.Context, id string, c Changes, returnUpdated bool) (*document.Document, error)
	// Delete removes the document and returns it.
	Delete(ctx context.Context, id string) (*document.Document, error)
}
