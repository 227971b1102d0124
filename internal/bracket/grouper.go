package bracket

import (
	"log/slog"
	"sort"
	"strings"

	domainbracket "bracket-service/internal/domain/bracket"
	"bracket-service/internal/domain/games"
	"bracket-service/internal/logging"
)

// KeyMode selects how a team resolves to its half of a matchup key.
type KeyMode int

const (
	// KeyByName keys on the normalized display name. Needed where the feed
	// reports unresolved play-in combinations ("Celtics/Knicks") whose
	// placeholder team ids are not stable across games.
	KeyByName KeyMode = iota
	// KeyByID keys on the raw team id, for feeds where ids are stable and
	// unambiguous across legs.
	KeyByID
)

// NormalizeTeamName produces the canonical form of a team display name.
// Slash-combined names ("Celtics/Knicks") are split, trimmed, sorted and
// rejoined so that both slash orders resolve identically; plain names are
// lower-cased. Symmetric under home/away and slash-order swaps.
func NormalizeTeamName(name string) string {
	if name == "" {
		return ""
	}
	parts := strings.Split(name, "/")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	sort.Strings(parts)
	return strings.ToLower(strings.Join(parts, "/"))
}

func teamKey(mode KeyMode, id, displayName string) string {
	if mode == KeyByID {
		return id
	}
	return NormalizeTeamName(displayName)
}

// MatchupKey builds the unordered pair key for two team keys. Sorting makes
// it symmetric under swapping home and away.
func MatchupKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "-" + b
}

// GroupGames buckets a flat game list into one partial series per canonical
// team pair. Games missing a competitor are dropped (logged, counted), not
// fatal to the batch. TeamA/TeamB are assigned lexicographically by team id
// so the feed's per-game home/away flags never decide series sides.
// Output order is deterministic (sorted by key).
func GroupGames(gameList []games.Game, mode KeyMode, logger *slog.Logger) (series []domainbracket.Series, dropped int) {
	byKey := make(map[string]*domainbracket.Series)
	keys := make([]string, 0)

	for _, g := range gameList {
		if g.HomeTeam.ID == "" || g.AwayTeam.ID == "" {
			logging.Warn(logger, "dropping game with missing competitor", logging.FieldGameID, g.ID)
			dropped++
			continue
		}

		key := MatchupKey(
			teamKey(mode, g.HomeTeam.ID, g.HomeTeam.ShortDisplayName),
			teamKey(mode, g.AwayTeam.ID, g.AwayTeam.ShortDisplayName),
		)

		s, ok := byKey[key]
		if !ok {
			teamA, teamB := g.HomeTeam, g.AwayTeam
			if teamB.ID < teamA.ID {
				teamA, teamB = teamB, teamA
			}
			s = &domainbracket.Series{Key: key, TeamA: teamA, TeamB: teamB}
			byKey[key] = s
			keys = append(keys, key)
		}
		s.Games = append(s.Games, g)
	}

	sort.Strings(keys)
	series = make([]domainbracket.Series, 0, len(keys))
	for _, key := range keys {
		s := byKey[key]
		sortSeriesGames(s.Games)
		series = append(series, *s)
	}
	return series, dropped
}

// sortSeriesGames orders a series' games by leg then date, the order the
// legs popup expects.
func sortSeriesGames(gs []games.Game) {
	sort.SliceStable(gs, func(i, j int) bool {
		if gs[i].Leg != gs[j].Leg {
			return gs[i].Leg < gs[j].Leg
		}
		return gs[i].Date.Before(gs[j].Date)
	})
}
