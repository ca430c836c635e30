package routing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for cached travel times
	travelTimeKeyPrefix = "traveltime:"

	defaultCacheTTL = 10 * time.Minute
)

// CachedOracle is a read-through cache in front of another oracle.
// Bisection re-queries the same pairs often enough that this pays for
// itself within a single pipeline run. Cache failures degrade to the
// inner oracle, never to a query failure.
type CachedOracle struct {
	inner  Oracle
	client *redis.Client
	ttl    time.Duration
}

// CacheConfig holds configuration for the cached oracle
type CacheConfig struct {
	// Inner is the oracle to cache
	Inner Oracle

	// RedisClient is the cache backend
	RedisClient *redis.Client

	// TTL for cached entries; defaults to 10 minutes
	TTL time.Duration
}

// NewCached creates a new caching oracle decorator
func NewCached(cfg *CacheConfig) (*CachedOracle, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Inner == nil {
		return nil, errors.New("inner oracle cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	return &CachedOracle{
		inner:  cfg.Inner,
		client: cfg.RedisClient,
		ttl:    ttl,
	}, nil
}

// Query returns a cached travel time when present, otherwise asks the
// inner oracle and stores the answer
func (o *CachedOracle) Query(ctx context.Context, input *QueryInput) (*QueryOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	key := o.cacheKey(input)

	cached, err := o.client.Get(ctx, key).Result()
	if err == nil {
		seconds, parseErr := strconv.Atoi(cached)
		if parseErr == nil {
			return &QueryOutput{DurationSeconds: seconds}, nil
		}
	} else if err != redis.Nil {
		log.Printf("travel time cache read failed: %v", err)
	}

	output, err := o.inner.Query(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := o.client.Set(ctx, key, strconv.Itoa(output.DurationSeconds), o.ttl).Err(); err != nil {
		log.Printf("travel time cache write failed: %v", err)
	}

	return output, nil
}

func (o *CachedOracle) cacheKey(input *QueryInput) string {
	// 5 decimal places is roughly 1m resolution, close enough to share
	// entries between bisection steps that land on the same point
	return fmt.Sprintf("%s%s:%.5f,%.5f:%.5f,%.5f",
		travelTimeKeyPrefix, input.Mode,
		input.Origin.Lat, input.Origin.Lng,
		input.Destination.Lat, input.Destination.Lng)
}
