package discovery

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/campusmatch/college-discovery-api/database"
	"github.com/campusmatch/college-discovery-api/model"
	"github.com/campusmatch/college-discovery-api/utils/cache"
)

const (
	streamsCacheKey   = "ref:streams"
	interestsCacheKey = "ref:interests"
)

// ReferenceCache is a read-through, TTL-bounded cache of the near-static
// reference lists (streams, interests). Redis is the shared tier; a small
// in-process copy is kept as fallback so discovery degrades rather than
// fails when Redis is down. Invalidation is TTL or an explicit Bust, never
// per request.
type ReferenceCache struct {
	store database.CatalogReader
	redis *cache.RedisCache // nil when redis is unavailable
	ttl   time.Duration

	mu              sync.RWMutex
	streams         []model.Stream
	interests       []model.Interest
	streamsExpiry   time.Time
	interestsExpiry time.Time
}

// NewReferenceCache creates a reference cache. redisCache may be nil.
func NewReferenceCache(store database.CatalogReader, redisCache *cache.RedisCache, ttl time.Duration) *ReferenceCache {
	return &ReferenceCache{
		store: store,
		redis: redisCache,
		ttl:   ttl,
	}
}

// Streams returns the cached stream list, loading it on miss
func (rc *ReferenceCache) Streams(ctx context.Context) ([]model.Stream, error) {
	rc.mu.RLock()
	if rc.streams != nil && time.Now().Before(rc.streamsExpiry) {
		streams := rc.streams
		rc.mu.RUnlock()
		return streams, nil
	}
	rc.mu.RUnlock()

	if rc.redis != nil {
		var streams []model.Stream
		if err := rc.redis.GetJSON(ctx, streamsCacheKey, &streams); err == nil {
			rc.remember(streams, nil)
			return streams, nil
		}
	}

	streams, err := rc.store.GetAllStreams(ctx)
	if err != nil {
		return nil, &RetrievalError{Op: "load streams", Err: err}
	}

	if rc.redis != nil {
		if err := rc.redis.SetJSON(ctx, streamsCacheKey, streams, rc.ttl); err != nil {
			log.Println("Warning: failed to cache stream list:", err)
		}
	}
	rc.remember(streams, nil)
	return streams, nil
}

// Interests returns the cached interest list, loading it on miss
func (rc *ReferenceCache) Interests(ctx context.Context) ([]model.Interest, error) {
	rc.mu.RLock()
	if rc.interests != nil && time.Now().Before(rc.interestsExpiry) {
		interests := rc.interests
		rc.mu.RUnlock()
		return interests, nil
	}
	rc.mu.RUnlock()

	if rc.redis != nil {
		var interests []model.Interest
		if err := rc.redis.GetJSON(ctx, interestsCacheKey, &interests); err == nil {
			rc.remember(nil, interests)
			return interests, nil
		}
	}

	interests, err := rc.store.GetAllInterests(ctx)
	if err != nil {
		return nil, &RetrievalError{Op: "load interests", Err: err}
	}

	if rc.redis != nil {
		if err := rc.redis.SetJSON(ctx, interestsCacheKey, interests, rc.ttl); err != nil {
			log.Println("Warning: failed to cache interest list:", err)
		}
	}
	rc.remember(nil, interests)
	return interests, nil
}

// Warm primes both reference lists; used at startup and by the cron job
func (rc *ReferenceCache) Warm(ctx context.Context) error {
	if _, err := rc.Streams(ctx); err != nil {
		return err
	}
	if _, err := rc.Interests(ctx); err != nil {
		return err
	}
	return nil
}

// Bust drops both reference lists from every cache tier
func (rc *ReferenceCache) Bust(ctx context.Context) error {
	rc.mu.Lock()
	rc.streams = nil
	rc.interests = nil
	rc.mu.Unlock()

	if rc.redis == nil {
		return nil
	}
	return rc.redis.Delete(ctx, streamsCacheKey, interestsCacheKey)
}

func (rc *ReferenceCache) remember(streams []model.Stream, interests []model.Interest) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if streams != nil {
		rc.streams = streams
		rc.streamsExpiry = time.Now().Add(rc.ttl)
	}
	if interests != nil {
		rc.interests = interests
		rc.interestsExpiry = time.Now().Add(rc.ttl)
	}
}
