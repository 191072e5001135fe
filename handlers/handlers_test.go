package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docshare/docshare/backend/go-services/internal/sessions"
	"github.com/docshare/docshare/backend/go-services/internal/users"
	"github.com/docshare/docshare/backend/go-services/pkg/middleware"
)

func withClaims(claims map[string]interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("claims", claims)
		c.Next()
	}
}

func TestMe_UpsertsUser(t *testing.T) {
	repo := users.NewMemoryUserRepository()
	h := NewAuthHandler(users.NewService(repo), nil)
	g := gin.New()
	h.Register(g.Group("/api/v1"), withClaims(map[string]interface{}{"sub": "kc-1", "email": "a@b.c", "name": "Ann"}))

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		User struct {
			ID  string `json:"id"`
			Sub string `json:"sub"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "kc-1", body.User.Sub)
	assert.NotEmpty(t, body.User.ID)

	u, err := repo.GetBySub(context.Background(), "kc-1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)
}

func TestMe_NoSubject(t *testing.T) {
	h := NewAuthHandler(users.NewService(users.NewMemoryUserRepository()), nil)
	g := gin.New()
	h.Register(g.Group("/api/v1"), withClaims(map[string]interface{}{}))

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_RevokesToken(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	revoked := sessions.NewRevocationList(redis.NewClient(&redis.Options{Addr: m.Addr()}))

	h := NewAuthHandler(users.NewService(users.NewMemoryUserRepository()), revoked)
	g := gin.New()
	exp := float64(time.Now().Add(time.Minute).Unix())
	h.Register(g.Group("/api/v1"), withClaims(map[string]interface{}{"sub": "kc-1", "exp": exp}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	ok, err := revoked.IsRevoked(context.Background(), "tok-123")
	require.NoError(t, err)
	require.True(t, ok)
}

type stubToken map[string]interface{}

func (t stubToken) Claims(v interface{}) error {
	*(v.(*map[string]interface{})) = t
	return nil
}

// stubVerifier accepts any token and reports it valid for another minute.
type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, raw string) (middleware.Token, error) {
	return stubToken{"sub": "kc-" + raw, "exp": float64(time.Now().Add(time.Minute).Unix())}, nil
}

func TestLogout_WithoutRevocationStore(t *testing.T) {
	revoked := sessions.NewRevocationList(nil)
	h := NewAuthHandler(users.NewService(users.NewMemoryUserRepository()), revoked)
	g := gin.New()
	h.Register(g.Group("/api/v1"), middleware.AuthMiddleware(stubVerifier{}, revoked))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.NotContains(t, w.Body.String(), "logged out")
}

func TestLogout_RevokedTokenRejectedAfterwards(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	revoked := sessions.NewRevocationList(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	h := NewAuthHandler(users.NewService(users.NewMemoryUserRepository()), revoked)
	g := gin.New()
	h.Register(g.Group("/api/v1"), middleware.AuthMiddleware(stubVerifier{}, revoked))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	w = httptest.NewRecorder()
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_MissingExp(t *testing.T) {
	h := NewAuthHandler(users.NewService(users.NewMemoryUserRepository()), nil)
	g := gin.New()
	h.Register(g.Group("/api/v1"), withClaims(map[string]interface{}{"sub": "kc-1"}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExpiryFromClaims(t *testing.T) {
	got, err := expiryFromClaims(map[string]interface{}{"exp": json.Number("1700000000")})
	require.NoError(t, err)
	require.Equal(t, int64(1700000000), got.Unix())

	_, err = expiryFromClaims(map[string]interface{}{"exp": true})
	require.Error(t, err)
}

func TestReady(t *testing.T) {
	g := gin.New()
	healthy := true
	RegisterHealth(g, map[string]Check{
		"mongo": func(context.Context) error {
			if healthy {
				return nil
			}
			return errors.New("down")
		},
	})

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusOK, w.Code)

	healthy = false
	w = httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body struct {
		Status string          `json:"status"`
		Deps   map[string]bool `json:"deps"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "not_ready", body.Status)
	assert.False(t, body.Deps["mongo"])
}
