package users

import (
	"context"
	"sync"
	"time"

	"github.com/docshare/docshare/backend/go-services/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryUserRepository keeps users in process memory. Used by tests and when
// the service runs without MongoDB.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	bySub map[string]*models.User
	byID  map[string]*models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{bySub: map[string]*models.User{}, byID: map[string]*models.User{}}
}

// Put stores u as-is, assigning an id when missing.
func (r *MemoryUserRepository) Put(u *models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		u.ID = primitive.NewObjectID().Hex()
	}
	c := *u
	r.byID[c.ID] = &c
	if c.Sub != "" {
		r.bySub[c.Sub] = &c
	}
	return u
}

func (r *MemoryUserRepository) UpsertBySub(_ context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	cur, ok := r.bySub[u.Sub]
	if !ok {
		cur = &models.User{ID: primitive.NewObjectID().Hex(), Sub: u.Sub, CreatedAt: now}
		r.bySub[u.Sub] = cur
		r.byID[cur.ID] = cur
	}
	cur.Email = u.Email
	cur.Name = u.Name
	if len(u.Roles) > 0 {
		cur.Roles = u.Roles
	}
	cur.UpdatedAt = now
	c := *cur
	return &c, nil
}

func (r *MemoryUserRepository) GetBySub(_ context.Context, sub string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.bySub[sub]; ok {
		c := *u
		return &c, nil
	}
	return nil, nil
}

func (r *MemoryUserRepository) AuthorsByIDs(_ context.Context, ids []string) ([]*models.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.Author
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			out = append(out, u.ToAuthor())
		}
	}
	return out, nil
}
