package discovery

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/campusmatch/college-discovery-api/model"
	"github.com/campusmatch/college-discovery-api/utils/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisBackedRefCache(t *testing.T, store *fakeCatalog, ttl time.Duration) *ReferenceCache {
	t.Helper()
	server := miniredis.RunT(t)

	redisCache, err := cache.NewRedisCache(fmt.Sprintf("redis://%s/0", server.Addr()))
	require.NoError(t, err)
	t.Cleanup(func() { redisCache.Close() })

	return NewReferenceCache(store, redisCache, ttl)
}

func TestReferenceCacheReadThrough(t *testing.T) {
	store := referenceCatalog()
	refs := newRedisBackedRefCache(t, store, time.Minute)
	ctx := context.Background()

	streams, err := refs.Streams(ctx)
	require.NoError(t, err)
	require.Len(t, streams, 2)

	// Second read is served from cache even if the store now fails
	store.failOp = "GetAllStreams"
	streams, err = refs.Streams(ctx)
	require.NoError(t, err)
	assert.Len(t, streams, 2)
}

func TestReferenceCacheBust(t *testing.T) {
	store := referenceCatalog()
	refs := newRedisBackedRefCache(t, store, time.Minute)
	ctx := context.Background()

	_, err := refs.Streams(ctx)
	require.NoError(t, err)
	_, err = refs.Interests(ctx)
	require.NoError(t, err)

	// After a bust the next read goes back to the store
	require.NoError(t, refs.Bust(ctx))

	store.streams = append(store.streams, model.Stream{ID: 3, Code: "LAW", Name: "Law"})
	streams, err := refs.Streams(ctx)
	require.NoError(t, err)
	assert.Len(t, streams, 3)
}

func TestReferenceCacheWorksWithoutRedis(t *testing.T) {
	store := referenceCatalog()
	refs := NewReferenceCache(store, nil, time.Minute)
	ctx := context.Background()

	require.NoError(t, refs.Warm(ctx))

	store.failOp = "GetAllInterests"
	interests, err := refs.Interests(ctx)
	require.NoError(t, err)
	assert.Len(t, interests, 2)

	require.NoError(t, refs.Bust(ctx))
	_, err = refs.Interests(ctx)
	require.Error(t, err)
	var retrievalErr *RetrievalError
	assert.ErrorAs(t, err, &retrievalErr)
}
