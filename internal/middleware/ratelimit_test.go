package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRateLimit(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	const limit = 3

	for i := 1; i <= limit; i++ {
		allowed, err := CheckRateLimit(ctx, rdb, "register", "1.2.3.4", limit, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d within the limit", i)
	}

	allowed, err := CheckRateLimit(ctx, rdb, "register", "1.2.3.4", limit, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed, "request beyond the limit")

	// A different caller has its own budget.
	allowed, err = CheckRateLimit(ctx, rdb, "register", "5.6.7.8", limit, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)

	// The window resets after expiry.
	mr.FastForward(2 * time.Minute)
	allowed, err = CheckRateLimit(ctx, rdb, "register", "1.2.3.4", limit, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCheckRateLimit_DisabledOutsideProduction(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	allowed, err := CheckRateLimit(context.Background(), nil, "register", "1.2.3.4", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCheckRateLimit_NilClient(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := CheckRateLimit(context.Background(), nil, "register", "1.2.3.4", 1, time.Minute)
	assert.Error(t, err)
}
