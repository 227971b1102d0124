package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"bracket-service/internal/domain/teams"
	"bracket-service/internal/logging"
	"bracket-service/internal/providers"
)

const defaultStandingsTTL = 5 * time.Minute

// standingsStore is the subset of RedisCache the decorator needs.
type standingsStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CachedStandingsProvider serves standings from Redis while fresh, hitting
// the inner provider only on a miss. Standings move slowly compared to
// scoreboards, so every instance sharing the cache cuts upstream load.
//
// The cache fails open in both directions: a Redis read error falls through
// to the inner provider, and a write error only logs. A broken cache must
// never take standings down with it.
type CachedStandingsProvider struct {
	inner  providers.StandingsProvider
	store  standingsStore
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedStandingsProvider wraps the inner provider. A non-positive ttl
// uses the default.
func NewCachedStandingsProvider(inner providers.StandingsProvider, store standingsStore, ttl time.Duration, logger *slog.Logger) *CachedStandingsProvider {
	if ttl <= 0 {
		ttl = defaultStandingsTTL
	}
	return &CachedStandingsProvider{
		inner:  inner,
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedStandingsProvider) FetchStandings(ctx context.Context, standingsKey string) ([]teams.Ranking, error) {
	key := "standings:" + standingsKey

	if cached, ok := c.read(ctx, key); ok {
		return cached, nil
	}

	rankings, err := c.inner.FetchStandings(ctx, standingsKey)
	if err != nil {
		return nil, err
	}

	c.write(ctx, key, rankings)
	return rankings, nil
}

func (c *CachedStandingsProvider) read(ctx context.Context, key string) ([]teams.Ranking, bool) {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.Warn(c.logger, "standings cache read failed", "key", key, "err", err)
		}
		return nil, false
	}

	var rankings []teams.Ranking
	if err := json.Unmarshal([]byte(raw), &rankings); err != nil {
		logging.Warn(c.logger, "standings cache entry corrupt", "key", key, "err", err)
		return nil, false
	}
	return rankings, true
}

func (c *CachedStandingsProvider) write(ctx context.Context, key string, rankings []teams.Ranking) {
	payload, err := json.Marshal(rankings)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, key, payload, c.ttl); err != nil {
		logging.Warn(c.logger, "standings cache write failed", "key", key, "err", err)
	}
}
