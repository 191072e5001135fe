package subjects

import (
	"context"
	"testing"

	"github.com/docshare/docshare/backend/go-services/internal/models"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	s := r.Put(&models.Subject{Name: "Physics", IsDeleted: true})
	require.NotEmpty(t, s.ID)

	got, err := r.Get(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, "Physics", got.Name)
	require.True(t, got.IsDeleted)

	missing, err := r.Get(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, missing)

	sums, err := r.SummariesByIDs(ctx, []string{s.ID, "nope"})
	require.NoError(t, err)
	require.Equal(t, []*models.SubjectSummary{{ID: s.ID, Name: "Physics"}}, sums)
}
