package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	domainbracket "bracket-service/internal/domain/bracket"
	"bracket-service/internal/domain/teams"
	"bracket-service/internal/providers"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config controls how the client reaches the site API and the CDN.
type Config struct {
	BaseURL    string
	CDNURL     string
	HTTPClient *http.Client
}

// Client fetches scoreboards, standings and calendars from the public ESPN
// APIs and maps them to domain models.
type Client struct {
	baseURL    string
	cdnURL     string
	httpClient httpDoer
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeURL(cfg.BaseURL, defaultBaseURL),
		cdnURL:     normalizeURL(cfg.CDNURL, defaultCDNURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
	}
}

// FetchScoreboard retrieves the league scoreboard, optionally bounded by a
// YYYYMMDD-YYYYMMDD date range. The raw body is returned untouched for
// change detection.
func (c *Client) FetchScoreboard(ctx context.Context, league, dates string) (providers.ScoreboardResult, error) {
	url := c.baseURL + "/" + league + "/scoreboard"
	if dates != "" {
		url += "?dates=" + dates + "&limit=100"
	}

	body, err := c.get(ctx, url)
	if err != nil {
		return providers.ScoreboardResult{}, err
	}

	var payload scoreboardResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return providers.ScoreboardResult{}, fmt.Errorf("%s: decode scoreboard: %w", Name, err)
	}

	mapped, dropped := mapEvents(payload.Events)
	return providers.ScoreboardResult{
		Raw:     body,
		Games:   mapped,
		Dropped: dropped,
	}, nil
}

// FetchStandings retrieves seed/rank assignments from the CDN standings
// endpoint. Keys without a query string resolve to the league standings
// page ("nba" -> /nba/standings); keys carrying a query are used as-is
// ("soccer/table?league=uefa.champions").
func (c *Client) FetchStandings(ctx context.Context, standingsKey string) ([]teams.Ranking, error) {
	url := c.cdnURL + "/" + standingsKey
	if strings.Contains(standingsKey, "?") {
		url += "&xhr=1"
	} else {
		url += "/standings?xhr=1"
	}

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var payload standingsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%s: decode standings: %w", Name, err)
	}
	return mapStandings(payload), nil
}

// FetchCalendar retrieves the league's stage calendar from the scoreboard
// endpoint; stages without parseable dates are skipped.
func (c *Client) FetchCalendar(ctx context.Context, league string) ([]domainbracket.Stage, error) {
	body, err := c.get(ctx, c.baseURL+"/"+league+"/scoreboard")
	if err != nil {
		return nil, err
	}

	var payload scoreboardResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%s: decode calendar: %w", Name, err)
	}
	if len(payload.Leagues) == 0 {
		return nil, nil
	}
	return mapCalendar(payload.Leagues[0].Calendar), nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &providers.RateLimitError{
			Provider:   Name,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &providers.StatusError{
			Provider:   Name,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	if secs, err := strconv.Atoi(header); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}

func normalizeURL(url, fallback string) string {
	if url == "" {
		url = fallback
	}
	return strings.TrimRight(url, "/")
}

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}
