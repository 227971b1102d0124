package config

const (
	envESPNBaseURL = "ESPN_BASE_URL"
	envESPNCDNURL  = "ESPN_CDN_URL"

	defaultESPNBaseURL = "https://site.api.espn.com/apis/site/v2/sports"
	defaultESPNCDNURL  = "https://cdn.espn.com/core"
)

// ESPNConfig controls how we talk to the ESPN site and CDN APIs.
type ESPNConfig struct {
	BaseURL string
	CDNURL  string
}

func loadESPN() ESPNConfig {
	return ESPNConfig{
		BaseURL: envOrDefault(envESPNBaseURL, defaultESPNBaseURL),
		CDNURL:  envOrDefault(envESPNCDNURL, defaultESPNCDNURL),
	}
}
