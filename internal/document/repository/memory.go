package repository

import (
	"context"
	"sync"
	"time"

	"github.com/docshare/docshare/backend/go-services/internal/document"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory Repository used by unit tests and when no
// MongoDB is configured. Documents are kept in insertion order.
type MemoryRepo struct {
	mu    sync.RWMutex
	order []string
	store map[string]*document.Document
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*document.Document)}
}

func clone(d *document.Document) *document.Document {
	c := *d
	return &c
}

func (m *MemoryRepo) Create(_ context.Context, d *document.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID == "" {
		d.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	if _, ok := m.store[d.ID]; !ok {
		m.order = append(m.order, d.ID)
	}
	m.store[d.ID] = clone(d)
	return nil
}

func (m *MemoryRepo) Get(_ context.Context, id string) (*document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.store[id]; ok {
		return clone(d), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) Find(_ context.Context, f document.Filter, skip, limit int64) ([]*document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*document.Document{}
	var seen int64
	for _, id := range m.order {
		d := m.store[id]
		if !f.Match(d) {
			continue
		}
		seen++
		if seen <= skip {
			continue
		}
		out = append(out, clone(d))
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryRepo) Update(_ context.Context, id string, c Changes, returnUpdated bool) (*document.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	before := clone(d)
	if c.Title != nil {
		d.Title = *c.Title
	}
	if c.Description != nil {
		d.Description = *c.Description
	}
	if c.Content != nil {
		d.Content = *c.Content
	}
	if c.IsApproved != nil {
		d.IsApproved = *c.IsApproved
	}
	d.UpdatedAt = time.Now().UTC()
	if returnUpdated {
		return clone(d), nil
	}
	return before, nil
}

func (m *MemoryRepo) Delete(_ context.Context, id string) (*document.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.store, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return d, nil
}
