package directory

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const locationsCacheKey = "accessdesk:directory:locations"

// CachedStore decorates a Store with a Redis read-through cache for the
// location list. The announcement role resolver hits this on every roles
// request, and sites change rarely, so a short TTL takes the directory
// database off that path. Employee lookups are not cached: they feed access
// mutations and must be current.
type CachedStore struct {
	Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedStore(inner Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedStore {
	return &CachedStore{Store: inner, client: client, ttl: ttl, logger: logger}
}

func (s *CachedStore) ListLocations(ctx context.Context) ([]Location, error) {
	if cached, err := s.client.Get(ctx, locationsCacheKey).Bytes(); err == nil {
		var locations []Location
		if err := json.Unmarshal(cached, &locations); err == nil {
			return locations, nil
		}
		// Corrupt entry: fall through and repopulate.
	} else if err != redis.Nil {
		s.logger.WarnContext(ctx, "locations cache read failed", "error", err)
	}

	locations, err := s.Store.ListLocations(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(locations); err == nil {
		if err := s.client.Set(ctx, locationsCacheKey, payload, s.ttl).Err(); err != nil {
			s.logger.WarnContext(ctx, "locations cache write failed", "error", err)
		}
	}
	return locations, nil
}
