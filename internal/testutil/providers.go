package testutil

import (
	"context"
	"sync"

	domainbracket "bracket-service/internal/domain/bracket"
	"bracket-service/internal/domain/teams"
	"bracket-service/internal/providers"
)

// StubProvider is a configurable BracketProvider for tests. Every fetch
// records its call and returns the configured value or error.
type StubProvider struct {
	mu sync.Mutex

	ScoreboardResult providers.ScoreboardResult
	ScoreboardErr    error
	Standings        []teams.Ranking
	StandingsErr     error
	Calendar         []domainbracket.Stage
	CalendarErr      error

	ScoreboardCalls int
	StandingsCalls  int
	CalendarCalls   int

	// ScoreboardFn, when set, overrides the static result per call.
	ScoreboardFn func(call int) (providers.ScoreboardResult, error)
}

func (s *StubProvider) FetchScoreboard(ctx context.Context, league, dates string) (providers.ScoreboardResult, error) {
	_ = ctx
	_ = league
	_ = dates

	s.mu.Lock()
	s.ScoreboardCalls++
	call := s.ScoreboardCalls
	fn := s.ScoreboardFn
	s.mu.Unlock()

	if fn != nil {
		return fn(call)
	}
	return s.ScoreboardResult, s.ScoreboardErr
}

func (s *StubProvider) FetchStandings(ctx context.Context, standingsKey string) ([]teams.Ranking, error) {
	_ = ctx
	_ = standingsKey

	s.mu.Lock()
	s.StandingsCalls++
	s.mu.Unlock()

	return s.Standings, s.StandingsErr
}

func (s *StubProvider) FetchCalendar(ctx context.Context, league string) ([]domainbracket.Stage, error) {
	_ = ctx
	_ = league

	s.mu.Lock()
	s.CalendarCalls++
	s.mu.Unlock()

	return s.Calendar, s.CalendarErr
}
