package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statement struct {
	Name  string `json:"name"`
	Total string `json:"total"`
}

func newTestCache(t *testing.T) (*ReportCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewReportCache(client, time.Minute), mr
}

func TestFetchJSONCachesLoaderResult(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return statement{Name: "pl", Total: "1200.50"}, nil
	}

	key, err := c.Key(ctx, "pl", "2025-04-01", "2025-04-30")
	require.NoError(t, err)
	assert.Equal(t, "finance:reports:pl:2025-04-01:2025-04-30:v1", key)

	var first statement
	hit, err := c.FetchJSON(ctx, key, &first, loader)
	require.NoError(t, err)
	assert.False(t, hit)

	var second statement
	hit, err = c.FetchJSON(ctx, key, &second, loader)
	require.NoError(t, err)
	assert.True(t, hit)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.Equal(t, "1200.50", second.Total)
}

func TestBumpOrphansPreviousKeys(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	before, err := c.Key(ctx, "bs", "2025-03-31")
	require.NoError(t, err)
	require.NoError(t, c.Bump(ctx))
	after, err := c.Key(ctx, "bs", "2025-03-31")
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
	ver, err := c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), ver)
}

func TestVersionResetsNonPositiveValue(t *testing.T) {
	for _, stored := range []string{"0", "-3"} {
		t.Run(stored, func(t *testing.T) {
			c, mr := newTestCache(t)
			ctx := context.Background()
			require.NoError(t, mr.Set(versionKey, stored))

			ver, err := c.Version(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(1), ver)

			raw, err := mr.Get(versionKey)
			require.NoError(t, err)
			assert.Equal(t, "1", raw)

			require.NoError(t, c.Bump(ctx))
			ver, err = c.Version(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(2), ver)
		})
	}
}

func TestFetchJSONDoesNotCacheLoaderErrors(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	key, err := c.Key(ctx, "cf")
	require.NoError(t, err)

	boom := errors.New("snapshot failed")
	var dest statement
	_, err = c.FetchJSON(ctx, key, &dest, func(context.Context) (any, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists(key))
}

func TestNilCachePassesThrough(t *testing.T) {
	var c *ReportCache
	ctx := context.Background()

	key, err := c.Key(ctx, "tax", "GST")
	require.NoError(t, err)
	assert.Equal(t, "finance:reports:tax:GST", key)

	var dest statement
	hit, err := c.FetchJSON(ctx, key, &dest, func(context.Context) (any, error) {
		return statement{Name: "tax"}, nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "tax", dest.Name)
	assert.NoError(t, c.Bump(ctx))
}

func TestFetchJSONRequiresLoader(t *testing.T) {
	c, _ := newTestCache(t)
	_, err := c.FetchJSON(context.Background(), "k", &statement{}, nil)
	assert.Error(t, err)
}
