package bracket

import (
	"testing"
	"time"

	"bracket-service/internal/domain/games"
	"bracket-service/internal/domain/teams"
)

func TestNormalizeTeamNameSlashOrderSymmetry(t *testing.T) {
	a := NormalizeTeamName("Celtics/Knicks")
	b := NormalizeTeamName("Knicks / Celtics")
	if a != b {
		t.Fatalf("slash orders must normalize identically: %q vs %q", a, b)
	}
	if a != "celtics/knicks" {
		t.Fatalf("normalized name = %q, want %q", a, "celtics/knicks")
	}
}

func TestNormalizeTeamNamePlain(t *testing.T) {
	if got := NormalizeTeamName("Lakers"); got != "lakers" {
		t.Fatalf("NormalizeTeamName = %q, want %q", got, "lakers")
	}
	if got := NormalizeTeamName(""); got != "" {
		t.Fatalf("empty name must stay empty, got %q", got)
	}
}

func TestMatchupKeySymmetric(t *testing.T) {
	if MatchupKey("bos", "nyk") != MatchupKey("nyk", "bos") {
		t.Fatalf("matchup key must not depend on argument order")
	}
}

func TestGroupGamesHomeAwaySymmetry(t *testing.T) {
	bos := teams.Team{ID: "2", ShortDisplayName: "Celtics"}
	nyk := teams.Team{ID: "18", ShortDisplayName: "Knicks"}

	list := []games.Game{
		{ID: "g1", HomeTeam: bos, AwayTeam: nyk, Date: day(1)},
		{ID: "g2", HomeTeam: nyk, AwayTeam: bos, Date: day(2)},
	}

	series, dropped := GroupGames(list, KeyByName, nil)
	if dropped != 0 {
		t.Fatalf("dropped = %d, want 0", dropped)
	}
	if len(series) != 1 {
		t.Fatalf("expected one series, got %d", len(series))
	}
	if len(series[0].Games) != 2 {
		t.Fatalf("expected both games in the series, got %d", len(series[0].Games))
	}
}

func TestGroupGamesSideAssignmentIgnoresHomeAway(t *testing.T) {
	a := teams.Team{ID: "10", ShortDisplayName: "Arsenal"}
	b := teams.Team{ID: "3", ShortDisplayName: "Bayern"}

	// Team b has the lexicographically larger id here ("3" > "10"), so it
	// must land on side B regardless of hosting leg 1.
	series, _ := GroupGames([]games.Game{
		{ID: "leg1", HomeTeam: b, AwayTeam: a, Leg: 1},
		{ID: "leg2", HomeTeam: a, AwayTeam: b, Leg: 2},
	}, KeyByID, nil)

	if len(series) != 1 {
		t.Fatalf("expected one series, got %d", len(series))
	}
	s := series[0]
	if s.TeamA.ID != "10" || s.TeamB.ID != "3" {
		t.Fatalf("sides = %s/%s, want 10/3", s.TeamA.ID, s.TeamB.ID)
	}
}

func TestGroupGamesDropsMissingCompetitors(t *testing.T) {
	ok := games.Game{
		ID:       "g1",
		HomeTeam: teams.Team{ID: "1", ShortDisplayName: "One"},
		AwayTeam: teams.Team{ID: "2", ShortDisplayName: "Two"},
	}
	broken := games.Game{ID: "g2", HomeTeam: teams.Team{ID: "1"}}

	series, dropped := GroupGames([]games.Game{ok, broken}, KeyByID, nil)
	if dropped != 1 {
		t.Fatalf("dropped = %d, want 1", dropped)
	}
	if len(series) != 1 || len(series[0].Games) != 1 {
		t.Fatalf("valid game must still group: %+v", series)
	}
}

func TestGroupGamesOrdersGamesByLegThenDate(t *testing.T) {
	a := teams.Team{ID: "1", ShortDisplayName: "A"}
	b := teams.Team{ID: "2", ShortDisplayName: "B"}

	series, _ := GroupGames([]games.Game{
		{ID: "second", HomeTeam: a, AwayTeam: b, Leg: 2, Date: day(10)},
		{ID: "first", HomeTeam: b, AwayTeam: a, Leg: 1, Date: day(3)},
	}, KeyByID, nil)

	got := series[0].Games
	if got[0].ID != "first" || got[1].ID != "second" {
		t.Fatalf("games out of order: %s, %s", got[0].ID, got[1].ID)
	}
}

func day(n int) time.Time {
	return time.Date(2026, time.April, n, 19, 0, 0, 0, time.UTC)
}
