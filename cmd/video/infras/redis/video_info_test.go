package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joydas46/VideoTube-Twitter/cmd/video/infras/redis"
)

func newCounter(t *testing.T) *redis.VisitCounter {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return redis.NewVisitCounter(client)
}

func TestVisitCounterSeedAndIncr(t *testing.T) {
	ctx := context.Background()
	c := newCounter(t)

	_, found, err := c.Get(ctx, 100)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Seed(ctx, 100, 5))
	views, found, err := c.Get(ctx, 100)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(5), views)

	// NX: a second seed must not clobber the live count.
	require.NoError(t, c.Seed(ctx, 100, 0))
	views, _, err = c.Get(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(5), views)

	views, err = c.Incr(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(6), views)
}

func TestVisitCounterRemove(t *testing.T) {
	ctx := context.Background()
	c := newCounter(t)

	require.NoError(t, c.Seed(ctx, 100, 3))
	require.NoError(t, c.Remove(ctx, 100))

	_, found, err := c.Get(ctx, 100)
	require.NoError(t, err)
	assert.False(t, found)
}
