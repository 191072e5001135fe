package sessions

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRevocationList_RevokeAndExpire(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	rl := NewRevocationList(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	ctx := context.Background()
	token := "access-token-1"

	require.NoError(t, rl.Revoke(ctx, token, 2*time.Second))

	ok, err := rl.IsRevoked(ctx, token)
	require.NoError(t, err)
	require.True(t, ok)

	// raw token is not used as the key
	require.False(t, m.Exists(revokedPrefix+token))

	m.FastForward(3 * time.Second)

	ok, err = rl.IsRevoked(ctx, token)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRevocationList_NoClient(t *testing.T) {
	ctx := context.Background()
	for _, rl := range []*RevocationList{nil, NewRevocationList(nil)} {
		require.ErrorIs(t, rl.Revoke(ctx, "t", time.Second), ErrRevocationUnavailable)
		ok, err := rl.IsRevoked(ctx, "t")
		require.NoError(t, err)
		require.False(t, ok)
	}
}

func TestRevocationList_RedisDown(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	rl := NewRevocationList(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	m.Close()

	_, err = rl.IsRevoked(context.Background(), "t")
	require.Error(t, err)
}
