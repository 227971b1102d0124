package espn

import "time"

// Name identifies this provider in logs and metrics.
const Name = "espn"

const (
	defaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports"
	defaultCDNURL  = "https://cdn.espn.com/core"

	defaultHTTPTimeout = 10 * time.Second

	// maxBodyBytes caps how much of an upstream response is read. Scoreboard
	// payloads run to a few hundred KB; anything past this is broken.
	maxBodyBytes = 8 << 20
)
