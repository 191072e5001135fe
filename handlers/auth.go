package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/docshare/docshare/backend/go-services/internal/models"
	"github.com/docshare/docshare/backend/go-services/internal/sessions"
	"github.com/docshare/docshare/backend/go-services/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Revoker records access tokens that must be rejected before they expire.
type Revoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

// Identity resolves verified claims into the stored user.
type Identity interface {
	UpsertFromClaims(ctx context.Context, claims map[string]interface{}) (*models.User, error)
}

// AuthHandler serves the caller-identity endpoints. Token issuance lives in
// Keycloak; this service only verifies and revokes.
type AuthHandler struct {
	identity Identity
	revoker  Revoker
}

func NewAuthHandler(identity Identity, revoker Revoker) *AuthHandler {
	return &AuthHandler{identity: identity, revoker: revoker}
}

// Register mounts GET /me and POST /auth/logout behind auth.
func (h *AuthHandler) Register(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("/me", auth, h.Me)
	rg.POST("/auth/logout", auth, h.Logout)
}

// Me returns the stored user for the bearer token, creating it on first use.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := claimsFrom(c)
	u, err := h.identity.UpsertFromClaims(c.Request.Context(), claims)
	if err != nil {
		logger.Errorf("me: upsert user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token has no subject"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// Logout revokes the presented access token for the rest of its lifetime.
// Without a revocation store it answers 503 rather than pretend the token
// stopped working.
func (h *AuthHandler) Logout(c *gin.Context) {
	var token string
	if n, _ := fmt.Sscanf(c.GetHeader("Authorization"), "Bearer %s", &token); n != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
		return
	}
	exp, err := expiryFromClaims(claimsFrom(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ttl := time.Until(exp)
	if ttl <= 0 {
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
		return
	}
	if h.revoker == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "token revocation unavailable"})
		return
	}
	if err := h.revoker.Revoke(c.Request.Context(), token, ttl); err != nil {
		if errors.Is(err, sessions.ErrRevocationUnavailable) {
			logger.Warnf("logout: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "token revocation unavailable"})
			return
		}
		logger.Errorf("logout: revoke token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke access token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func claimsFrom(c *gin.Context) map[string]interface{} {
	v, _ := c.Get("claims")
	claims, _ := v.(map[string]interface{})
	return claims
}

// expiryFromClaims reads the exp claim, which decoders hand back as either a
// float64 or a json.Number.
func expiryFromClaims(claims map[string]interface{}) (time.Time, error) {
	v, ok := claims["exp"]
	if !ok {
		return time.Time{}, fmt.Errorf("exp claim not present")
	}
	switch vv := v.(type) {
	case float64:
		return time.Unix(int64(vv), 0), nil
	case int64:
		return time.Unix(vv, 0), nil
	case json.Number:
		f, err := vv.Float64()
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(int64(f), 0), nil
	}
	return time.Time{}, fmt.Errorf("unsupported exp type %T", v)
}
