package models

import "time"

// User represents an application user (mapped from OIDC claims).
type User struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Sub       string    `bson:"sub" json:"sub"` // OIDC subject
	Email     string    `bson:"email" json:"email"`
	Name      string    `bson:"name" json:"name"`
	IsBlocked bool      `bson:"is_blocked" json:"is_blocked"`
	Roles     []string  `bson:"roles,omitempty" json:"roles,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Author is the redacted view of a User attached to documents.
// Blocked flag, roles and timestamps are never exposed.
type Author struct {
	ID    string `bson:"_id" json:"id"`
	Sub   string `bson:"sub" json:"sub"`
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name" json:"name"`
}

// AuthorProjection excludes the fields Author must not carry.
var AuthorProjection = map[string]int{"is_blocked": 0, "roles": 0, "created_at": 0, "updated_at": 0}

// ToAuthor returns the redacted view of u.
func (u *User) ToAuthor() *Author {
	return &Author{ID: u.ID, Sub: u.Sub, Email: u.Email, Name: u.Name}
}

// HasRole reports whether the user carries role r.
func (u *User) HasRole(r string) bool {
	for _, v := range u.Roles {
		if v == r {
			return true
		}
	}
	return false
}
