package server

import (
	"log/slog"
	"strings"

	"bracket-service/internal/cache"
	"bracket-service/internal/config"
	"bracket-service/internal/logging"
	"bracket-service/internal/providers"
	"bracket-service/internal/providers/espn"
	"bracket-service/internal/providers/fixture"
)

// providerFactory assembles the provider stack: base client, retry wrapper,
// and the shared standings cache when Redis is configured.
type providerFactory struct {
	logger *slog.Logger
}

func newProviderFactory(logger *slog.Logger) providerFactory {
	return providerFactory{logger: logger}
}

func (f providerFactory) build(cfg config.Config) (providers.BracketProvider, func()) {
	base := selectProvider(cfg)
	wrapped := providers.NewRetryingProvider(base, f.logger, cfg.RetryAttempts, 0)

	closeFn := func() {}
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			logging.Warn(f.logger, "redis unavailable, standings cache disabled", "err", err)
		} else {
			cached := cache.NewCachedStandingsProvider(wrapped, redisCache, cfg.RankingsTTL, f.logger)
			wrapped = providers.WithStandings(wrapped, cached)
			closeFn = func() { _ = redisCache.Close() }
		}
	}
	return wrapped, closeFn
}

func selectProvider(cfg config.Config) providers.BracketProvider {
	switch strings.ToLower(cfg.Provider) {
	case "espn":
		return espn.NewClient(espn.Config{
			BaseURL: cfg.ESPN.BaseURL,
			CDNURL:  cfg.ESPN.CDNURL,
		})
	default:
		return fixture.New()
	}
}

// normalizeProviderName returns a lower-cased provider name for metrics and
// logs.
func normalizeProviderName(raw string) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	return "provider"
}
