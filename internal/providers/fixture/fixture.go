package fixture

import (
	"context"
	"fmt"
	"strings"
	"time"

	domainbracket "bracket-service/internal/domain/bracket"
	"bracket-service/internal/domain/games"
	"bracket-service/internal/domain/teams"
	"bracket-service/internal/providers"
)

// Provider returns a static bracket data set useful for local development
// and bootstrapping without upstream credentials or network access. The
// data is deterministic: the same league always yields the same payload.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{now: time.Now}
}

func soccer(league string) bool {
	return strings.HasPrefix(league, "soccer/") || strings.Contains(league, "uefa")
}

// FetchScoreboard returns a deterministic playoff scoreboard. Basketball
// leagues get a best-of round with headlines and records; soccer leagues a
// two-legged knockout tie plus its round-of-16 follow-up.
func (p *Provider) FetchScoreboard(ctx context.Context, league, dates string) (providers.ScoreboardResult, error) {
	_ = ctx
	_ = dates

	var list []games.Game
	if soccer(league) {
		list = soccerGames()
	} else {
		list = basketballGames()
	}

	return providers.ScoreboardResult{
		Raw:   []byte(fmt.Sprintf("fixture:%s:%d", league, len(list))),
		Games: list,
	}, nil
}

// FetchStandings returns fixed seeds/ranks matching the fixture games.
func (p *Provider) FetchStandings(ctx context.Context, standingsKey string) ([]teams.Ranking, error) {
	_ = ctx
	if soccer(standingsKey) {
		return []teams.Ranking{
			{TeamID: "83", Rank: 9},
			{TeamID: "132", Rank: 24},
			{TeamID: "86", Rank: 2},
		}, nil
	}
	return []teams.Ranking{
		{TeamID: "okc", Seed: 1},
		{TeamID: "mem", Seed: 8},
		{TeamID: "den", Seed: 4},
		{TeamID: "lac", Seed: 5},
	}, nil
}

// FetchCalendar returns the knockout stage calendar bracketing the fixture
// soccer games.
func (p *Provider) FetchCalendar(ctx context.Context, league string) ([]domainbracket.Stage, error) {
	_ = ctx
	_ = league
	return []domainbracket.Stage{
		{Label: "Knockout Round Playoffs", Start: date(2, 10), End: date(2, 25)},
		{Label: "Round of 16", Start: date(3, 3), End: date(3, 18)},
		{Label: "Quarterfinals", Start: date(4, 7), End: date(4, 15)},
		{Label: "Semifinals", Start: date(4, 28), End: date(5, 6)},
		{Label: "Final", Start: date(5, 30), End: date(5, 30)},
	}, nil
}

func basketballGames() []games.Game {
	okc := teams.Team{ID: "okc", DisplayName: "Oklahoma City Thunder", ShortDisplayName: "Thunder", Abbreviation: "OKC"}
	mem := teams.Team{ID: "mem", DisplayName: "Memphis Grizzlies", ShortDisplayName: "Grizzlies", Abbreviation: "MEM"}
	den := teams.Team{ID: "den", DisplayName: "Denver Nuggets", ShortDisplayName: "Nuggets", Abbreviation: "DEN"}
	lac := teams.Team{ID: "lac", DisplayName: "LA Clippers", ShortDisplayName: "Clippers", Abbreviation: "LAC"}

	return []games.Game{
		{
			ID: "fixture-nba-1", Date: date(4, 20), Status: games.StatusFinal,
			HomeTeam: okc, AwayTeam: mem, HomeScore: 118, AwayScore: 99,
			Headline: "West 1st Round - Game 1", HomeRecord: "1-0", AwayRecord: "0-1", Leg: 1,
		},
		{
			ID: "fixture-nba-2", Date: date(4, 22), Status: games.StatusFinal,
			HomeTeam: okc, AwayTeam: mem, HomeScore: 124, AwayScore: 107,
			Headline: "West 1st Round - Game 2", HomeRecord: "2-0", AwayRecord: "0-2", Leg: 1,
		},
		{
			ID: "fixture-nba-3", Date: date(4, 21), Status: games.StatusFinal,
			HomeTeam: den, AwayTeam: lac, HomeScore: 112, AwayScore: 110,
			Headline: "West 1st Round - Game 1", HomeRecord: "1-0", AwayRecord: "0-1", Leg: 1,
		},
		{
			ID: "fixture-nba-4", Date: date(4, 23), Status: games.StatusScheduled,
			HomeTeam: den, AwayTeam: lac,
			Headline: "West 1st Round - Game 2", HomeRecord: "1-0", AwayRecord: "0-1", Leg: 1,
		},
	}
}

func soccerGames() []games.Game {
	ars := teams.Team{ID: "83", DisplayName: "Arsenal", ShortDisplayName: "Arsenal", Abbreviation: "ARS"}
	bay := teams.Team{ID: "132", DisplayName: "Bayern Munich", ShortDisplayName: "Bayern", Abbreviation: "BAY"}
	rma := teams.Team{ID: "86", DisplayName: "Real Madrid", ShortDisplayName: "Real Madrid", Abbreviation: "RMA"}

	return []games.Game{
		{
			ID: "fixture-ucl-1", Date: date(2, 11), Status: games.StatusFinal,
			HomeTeam: ars, AwayTeam: bay, HomeScore: 2, AwayScore: 0, Leg: 1,
		},
		{
			ID: "fixture-ucl-2", Date: date(2, 18), Status: games.StatusFinal,
			HomeTeam: bay, AwayTeam: ars, HomeScore: 1, AwayScore: 1, Leg: 2,
		},
		{
			ID: "fixture-ucl-3", Date: date(3, 4), Status: games.StatusScheduled,
			HomeTeam: rma, AwayTeam: ars, Leg: 1,
		},
	}
}

// date pins fixture data to a fixed season so rebuilds are reproducible.
func date(m time.Month, d int) time.Time {
	return time.Date(2026, m, d, 19, 0, 0, 0, time.UTC)
}
