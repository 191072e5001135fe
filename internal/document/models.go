package document

import (
	"time"

	"github.com/docshare/docshare/backend/go-services/internal/models"
)

// Document is the persistent document model. Author and Subject hold the
// ids of the referenced user and subject records.
type Document struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Content     string    `json:"content,omitempty" bson:"content,omitempty"`
	IsApproved  bool      `json:"is_approved" bson:"is_approved"`
	Author      string    `json:"author" bson:"author"`
	Subject     string    `json:"subject,omitempty" bson:"subject,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// View is a Document with its author and subject references expanded.
// Either may be nil when the referenced record no longer exists.
type View struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Content     string                 `json:"content,omitempty"`
	IsApproved  bool                   `json:"is_approved"`
	Author      *models.Author         `json:"author"`
	Subject     *models.SubjectSummary `json:"subject"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// NewView copies d into a View with no references expanded.
func NewView(d *Document) *View {
	return &View{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Content:     d.Content,
		IsApproved:  d.IsApproved,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// BySubject is the result of listing the approved documents of one subject.
type BySubject struct {
	Documents []*View         `json:"documents"`
	Subject   *models.Subject `json:"subject"`
}

// CreateInput is the self-service create shape.
type CreateInput struct {
	Title       string `json:"title" validate:"required,max=300"`
	Description string `json:"description" validate:"max=2000"`
	Content     string `json:"content"`
	Subject     string `json:"subject"`
}

// AdminCreateInput is the administrative create shape; it may set the
// approval flag directly.
type AdminCreateInput struct {
	CreateInput
	IsApproved *bool `json:"is_approved"`
}

// UpdateInput carries the editable subset of a document. Nil fields are left
// untouched.
type UpdateInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
}

// ApproveInput toggles the approval flag.
type ApproveInput struct {
	IsApproved *bool `json:"is_approved" validate:"required"`
}
