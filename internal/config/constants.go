package config

import "time"

const (
	envPort          = "PORT"
	envProvider      = "PROVIDER"
	envViews         = "BRACKET_VIEWS"
	envPollInterval  = "POLL_INTERVAL"
	envSeedPriority  = "SEED_PRIORITY"
	envRedisURL      = "REDIS_URL"
	envRetryAttempts = "PROVIDER_RETRY_ATTEMPTS"
	envRankingsTTL   = "RANKINGS_CACHE_TTL"
	envMetricsPort   = "METRICS_PORT"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort     = "4000"
	defaultProvider = "fixture"
	// Poll cadence for live bracket views; the scoreboard payload is small
	// and the change detector short-circuits unchanged ticks.
	defaultPollInterval = 10 * Duration(time.Second)
	defaultMetricsPort  = "9090"
	// Three attempts rides out a transient feed blip without stretching a
	// poll tick past its interval.
	defaultRetryAttempts = 3
	// Standings move slowly compared to scores; a short TTL keeps the
	// pairing data fresh without hammering the standings endpoint.
	defaultRankingsTTL = 5 * Duration(time.Minute)
)
