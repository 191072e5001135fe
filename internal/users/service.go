package users

import (
	"context"

	"github.com/docshare/docshare/backend/go-services/internal/models"
)

// Service encapsulates user-related business logic
type Service struct {
	repo UserRepository
}

func NewService(r UserRepository) *Service {
	return &Service{repo: r}
}

// UpsertFromClaims creates or updates a user using an OIDC claims map.
// Returns nil when the claims carry no subject.
func (s *Service) UpsertFromClaims(ctx context.Context, claims map[string]interface{}) (*models.User, error) {
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	if name == "" {
		name, _ = claims["preferred_username"].(string)
	}
	if sub == "" {
		return nil, nil
	}
	u := &models.User{
		Sub:   sub,
		Email: email,
		Name:  name,
		Roles: RolesFromClaims(claims),
	}
	return s.repo.UpsertBySub(ctx, u)
}

func (s *Service) GetBySub(ctx context.Context, sub string) (*models.User, error) {
	return s.repo.GetBySub(ctx, sub)
}

// AuthorsByIDs resolves author references into their redacted projection.
func (s *Service) AuthorsByIDs(ctx context.Context, ids []string) ([]*models.Author, error) {
	return s.repo.AuthorsByIDs(ctx, ids)
}

// RolesFromClaims reads roles from a flat "roles" claim or from Keycloak's
// "realm_access.roles".
func RolesFromClaims(claims map[string]interface{}) []string {
	var raw []interface{}
	if v, ok := claims["roles"].([]interface{}); ok {
		raw = v
	} else if ra, ok := claims["realm_access"].(map[string]interface{}); ok {
		raw, _ = ra["roles"].([]interface{})
	}
	var out []string
	for _, r := range raw {
		if s, ok := r.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
