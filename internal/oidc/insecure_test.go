package oidc

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestInsecureVerifier_DecodesWithoutSignatureCheck(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "it-user", "roles": []interface{}{"admin"}})
	raw, err := tok.SignedString([]byte("any-secret"))
	require.NoError(t, err)

	got, err := NewInsecureVerifier().Verify(context.Background(), raw)
	require.NoError(t, err)
	var claims map[string]interface{}
	require.NoError(t, got.Claims(&claims))
	require.Equal(t, "it-user", claims["sub"])
}

func TestInsecureVerifier_Malformed(t *testing.T) {
	_, err := NewInsecureVerifier().Verify(context.Background(), "not-a-token")
	require.Error(t, err)
}
