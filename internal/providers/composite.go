package providers

import (
	"context"

	"bracket-service/internal/domain/teams"
)

// standingsOverride swaps the standings side of a BracketProvider, leaving
// scoreboard and calendar on the base. Used to slot the shared cache in
// front of a live provider.
type standingsOverride struct {
	BracketProvider
	standings StandingsProvider
}

// WithStandings returns a BracketProvider that delegates standings fetches
// to the given provider and everything else to base.
func WithStandings(base BracketProvider, standings StandingsProvider) BracketProvider {
	if standings == nil {
		return base
	}
	return &standingsOverride{BracketProvider: base, standings: standings}
}

func (s *standingsOverride) FetchStandings(ctx context.Context, standingsKey string) ([]teams.Ranking, error) {
	return s.standings.FetchStandings(ctx, standingsKey)
}
