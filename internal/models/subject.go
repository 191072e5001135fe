package models

import "time"

// Subject groups documents by topic. Subjects are managed elsewhere;
// the document service only reads them.
type Subject struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	IsDeleted   bool      `bson:"is_deleted" json:"is_deleted"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// SubjectSummary is the redacted view of a Subject attached to documents.
type SubjectSummary struct {
	ID          string `bson:"_id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// SubjectProjection excludes the fields SubjectSummary must not carry.
var SubjectProjection = map[string]int{"is_deleted": 0, "created_at": 0, "updated_at": 0}

func (s *Subject) ToSummary() *SubjectSummary {
	return &SubjectSummary{ID: s.ID, Name: s.Name, Description: s.Description}
}
