package service

import (
	"context"
	"fmt"

	"github.com/docshare/docshare/backend/go-services/internal/document"
	"github.com/docshare/docshare/backend/go-services/internal/models"
)

// populate expands author and subject references with one batch lookup per
// collection. Missing references stay nil.
func (s *documentService) populate(ctx context.Context, docs []*document.Document) ([]*document.View, error) {
	out := make([]*document.View, 0, len(docs))
	if len(docs) == 0 {
		return out, nil
	}

	authorIDs := distinct(docs, func(d *document.Document) string { return d.Author })
	subjectIDs := distinct(docs, func(d *document.Document) string { return d.Subject })

	authors := map[string]*models.Author{}
	if len(authorIDs) > 0 {
		list, err := s.authors.AuthorsByIDs(ctx, authorIDs)
		if err != nil {
			return nil, fmt.Errorf("populate authors: %w", err)
		}
		for _, a := range list {
			authors[a.ID] = a
		}
	}

	subjectsByID := map[string]*models.SubjectSummary{}
	if len(subjectIDs) > 0 {
		list, err := s.subjects.SummariesByIDs(ctx, subjectIDs)
		if err != nil {
			return nil, fmt.Errorf("populate subjects: %w", err)
		}
		for _, sub := range list {
			subjectsByID[sub.ID] = sub
		}
	}

	for _, d := range docs {
		v := document.NewView(d)
		v.Author = authors[d.Author]
		v.Subject = subjectsByID[d.Subject]
		out = append(out, v)
	}
	return out, nil
}

func distinct(docs []*document.Document, key func(*document.Document) string) []string {
	seen := map[string]bool{}
	var ids []string
	for _, d := range docs {
		k := key(d)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		ids = append(ids, k)
	}
	return ids
}
