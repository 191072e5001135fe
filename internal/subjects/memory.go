package subjects

import (
	"context"
	"sync"
	"time"

	"github.com/docshare/docshare/backend/go-services/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*models.Subject
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: map[string]*models.Subject{}}
}

// Put stores s, assigning an id and timestamps when missing.
func (r *MemoryRepository) Put(s *models.Subject) *models.Subject {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		s.ID = primitive.NewObjectID().Hex()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
		s.UpdatedAt = s.CreatedAt
	}
	c := *s
	r.store[s.ID] = &c
	return s
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*models.Subject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.store[id]; ok {
		c := *s
		return &c, nil
	}
	return nil, nil
}

func (r *MemoryRepository) SummariesByIDs(_ context.Context, ids []string) ([]*models.SubjectSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.SubjectSummary
	for _, id := range ids {
		if s, ok := r.store[id]; ok {
			out = append(out, s.ToSummary())
		}
	}
	return out, nil
}
