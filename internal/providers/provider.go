package providers

import (
	"context"

	domainbracket "bracket-service/internal/domain/bracket"
	"bracket-service/internal/domain/games"
	"bracket-service/internal/domain/teams"
)

// ScoreboardResult is one scoreboard fetch: the raw body alongside the
// normalized games. The raw bytes feed the change detector, so providers
// must return the body exactly as received, not a re-serialization.
type ScoreboardResult struct {
	Raw   []byte
	Games []games.Game
	// Dropped counts events the mapper rejected for missing competitor
	// data. The batch still succeeds.
	Dropped int
}

// ScoreboardProvider fetches the flat game list for a league. The dates
// parameter, when provided, is a YYYYMMDD-YYYYMMDD range limiting the
// fetch; providers interpret an empty range as "current scoreboard".
type ScoreboardProvider interface {
	FetchScoreboard(ctx context.Context, league, dates string) (ScoreboardResult, error)
}

// StandingsProvider fetches seed/rank assignments for a competition.
type StandingsProvider interface {
	FetchStandings(ctx context.Context, standingsKey string) ([]teams.Ranking, error)
}

// CalendarProvider fetches the stage calendar for a league.
type CalendarProvider interface {
	FetchCalendar(ctx context.Context, league string) ([]domainbracket.Stage, error)
}

// BracketProvider combines everything one bracket view polls.
type BracketProvider interface {
	ScoreboardProvider
	StandingsProvider
	CalendarProvider
}
