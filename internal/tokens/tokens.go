// Package tokens verifies HS256 access tokens for local and development
// deployments without a Keycloak realm.
package tokens

import (
	"context"
	"errors"
	"fmt"

	"github.com/docshare/docshare/backend/go-services/internal/config"
	"github.com/docshare/docshare/backend/go-services/pkg/middleware"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoSecret is returned when JWT_SECRET is not configured.
	ErrNoSecret = errors.New("jwt secret not configured")
	// ErrNoExpiry rejects tokens that carry no exp claim.
	ErrNoExpiry = errors.New("token has no expiry")
)

type claimsToken jwt.MapClaims

func (t claimsToken) Claims(v interface{}) error {
	m, ok := v.(*map[string]interface{})
	if !ok {
		return fmt.Errorf("unsupported claims target %T", v)
	}
	*m = map[string]interface{}(t)
	return nil
}

// Verifier checks HS256 tokens signed with the configured secret.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(cfg *config.Config) (*Verifier, error) {
	if cfg.JWT.Secret == "" {
		return nil, ErrNoSecret
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if cfg.JWT.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.JWT.Issuer))
	}
	return &Verifier{secret: []byte(cfg.JWT.Secret), parser: jwt.NewParser(opts...)}, nil
}

func (v *Verifier) Verify(_ context.Context, raw string) (middleware.Token, error) {
	claims := jwt.MapClaims{}
	_, err := v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}
	// the parser only checks exp when present
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, ErrNoExpiry
	}
	return claimsToken(claims), nil
}
