package config

import (
	"strings"
	"time"
)

// ViewMode selects which aggregation the bracket engine runs for a view.
type ViewMode string

const (
	// ModeSeries is the best-of-N single-elimination form: round records
	// come from the feed, grouping keys on normalized team names.
	ModeSeries ViewMode = "series"
	// ModeTwoLeg is the two-legged knockout form: aggregate scores over
	// legs, grouping keys on team ids, pairing table applies.
	ModeTwoLeg ViewMode = "twoleg"
)

// ViewConfig describes one independently polled bracket view.
type ViewConfig struct {
	Name         string
	Mode         ViewMode
	League       string // feed league path, e.g. "basketball/nba"
	StandingsKey string // CDN standings path segment, e.g. "nba"
	PollInterval time.Duration

	// SeasonWindow is the fixed MMDD-MMDD scoreboard window for views
	// classified by headline text; empty for calendar-driven views.
	SeasonWindowStart string
	SeasonWindowEnd   string

	// CalendarStage names the calendar entry whose date range bounds the
	// scoreboard fetch for calendar-driven views.
	CalendarStage string

	// WinsTarget is the series win count that settles a best-of series.
	WinsTarget int

	// SeedPriority is the broadcast display order of min-seeds; series
	// whose min seed is absent sort after listed ones.
	SeedPriority []int

	// Pairings enables the seed-range draw table for this view.
	Pairings bool
}

// defaultViews returns the two shipped bracket views. The NBA priority
// list encodes the current season's broadcast ordering and is deliberately
// configuration, not a derived rule.
func defaultViews(pollInterval time.Duration, seedPriority []int) []ViewConfig {
	return []ViewConfig{
		{
			Name:              "nba",
			Mode:              ModeSeries,
			League:            "basketball/nba",
			StandingsKey:      "nba",
			PollInterval:      pollInterval,
			SeasonWindowStart: "0418",
			SeasonWindowEnd:   "0620",
			WinsTarget:        4,
			SeedPriority:      seedPriority,
		},
		{
			Name:          "uefa-champions",
			Mode:          ModeTwoLeg,
			League:        "soccer/uefa.champions",
			StandingsKey:  "soccer/table?league=uefa.champions",
			PollInterval:  pollInterval,
			CalendarStage: "Knockout Round Playoffs",
			Pairings:      true,
		},
	}
}

func loadViews(pollInterval time.Duration, seedPriority []int) []ViewConfig {
	all := defaultViews(pollInterval, seedPriority)

	selected := strings.TrimSpace(envOrDefault(envViews, ""))
	if selected == "" {
		return all
	}

	wanted := make(map[string]bool)
	for _, name := range strings.Split(selected, ",") {
		wanted[strings.TrimSpace(name)] = true
	}

	views := make([]ViewConfig, 0, len(all))
	for _, v := range all {
		if wanted[v.Name] {
			views = append(views, v)
		}
	}
	if len(views) == 0 {
		return all
	}
	return views
}
