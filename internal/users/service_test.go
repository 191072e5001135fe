package users

import (
	"context"
	"testing"
	"time"

	"github.com/docshare/docshare/backend/go-services/internal/models"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	lastUpsert *models.User
	upsertErr  error
}

func (f *fakeRepo) UpsertBySub(ctx context.Context, u *models.User) (*models.User, error) {
	f.lastUpsert = u
	now := time.Now().UTC()
	if f.lastUpsert.CreatedAt.IsZero() {
		f.lastUpsert.CreatedAt = now
	}
	f.lastUpsert.UpdatedAt = now
	ret := *f.lastUpsert
	ret.ID = "abcd1234"
	return &ret, f.upsertErr
}

func (f *fakeRepo) GetBySub(ctx context.Context, sub string) (*models.User, error) {
	return nil, nil
}

func (f *fakeRepo) AuthorsByIDs(ctx context.Context, ids []string) ([]*models.Author, error) {
	return nil, nil
}

func TestUpsertFromClaims(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()
	claims := map[string]interface{}{
		"sub":   "sub-123",
		"email": "x@example.com",
		"name":  "X User",
		"realm_access": map[string]interface{}{
			"roles": []interface{}{"admin", "offline_access"},
		},
	}

	u, err := svc.UpsertFromClaims(ctx, claims)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u == nil {
		t.Fatal("expected user, got nil")
	}
	if u.Sub != "sub-123" || u.Email != "x@example.com" || u.Name != "X User" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if !u.HasRole("admin") {
		t.Fatalf("expected admin role from realm_access, got %v", u.Roles)
	}
	if repo.lastUpsert == nil {
		t.Fatal("expected repository UpsertBySub to be called")
	}
	if u.ID == "" {
		t.Fatalf("expected returned user to have an ID set by repo")
	}

	u2, err := svc.UpsertFromClaims(ctx, map[string]interface{}{"email": "y@e.com"})
	if err != nil {
		t.Fatalf("unexpected error on missing sub: %v", err)
	}
	if u2 != nil {
		t.Fatalf("expected nil when sub missing, got: %v", u2)
	}
}

func TestRolesFromFlatClaim(t *testing.T) {
	roles := RolesFromClaims(map[string]interface{}{"roles": []interface{}{"admin", 3, ""}})
	require.Equal(t, []string{"admin"}, roles)
	require.Empty(t, RolesFromClaims(map[string]interface{}{}))
}

func TestMemoryRepositoryUpsertAndAuthors(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	svc := NewService(repo)

	first, err := svc.UpsertFromClaims(ctx, map[string]interface{}{"sub": "s1", "name": "One"})
	require.NoError(t, err)
	second, err := svc.UpsertFromClaims(ctx, map[string]interface{}{"sub": "s1", "name": "Uno"})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "Uno", second.Name)

	blocked := repo.Put(&models.User{Sub: "s2", Name: "Two", IsBlocked: true, Roles: []string{"admin"}})

	authors, err := svc.AuthorsByIDs(ctx, []string{first.ID, blocked.ID, "missing"})
	require.NoError(t, err)
	require.Len(t, authors, 2)
	require.Equal(t, "Uno", authors[0].Name)

	got, err := svc.GetBySub(ctx, "nobody")
	require.NoError(t, err)
	require.Nil(t, got)
}
