package config

// Config holds runtime configuration for the server.
type Config struct {
	Port        string
	Provider    string
	Views       []ViewConfig
	ESPN        ESPNConfig
	RedisURL    string
	RankingsTTL Duration
	// RetryAttempts bounds upstream fetch retries per poll tick.
	RetryAttempts int
	Metrics       MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	pollInterval := durationEnvOrDefault(envPollInterval, defaultPollInterval)
	seedPriority := intListEnvOrDefault(envSeedPriority, []int{6, 4, 3, 2})

	return Config{
		Port:          envOrDefault(envPort, defaultPort),
		Provider:      envOrDefault(envProvider, defaultProvider),
		Views:         loadViews(pollInterval, seedPriority),
		ESPN:          loadESPN(),
		RedisURL:      envOrDefault(envRedisURL, ""),
		RankingsTTL:   durationEnvOrDefault(envRankingsTTL, defaultRankingsTTL),
		RetryAttempts: intEnvOrDefault(envRetryAttempts, defaultRetryAttempts),
		Metrics:       loadMetrics(),
	}
}
