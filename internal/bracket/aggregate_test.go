package bracket

import (
	"testing"

	domainbracket "bracket-service/internal/domain/bracket"
	"bracket-service/internal/domain/games"
	"bracket-service/internal/domain/teams"
)

func twoLegSeries() domainbracket.Series {
	a := teams.Team{ID: "83", ShortDisplayName: "Arsenal", Abbreviation: "ARS"}
	b := teams.Team{ID: "132", ShortDisplayName: "Bayern", Abbreviation: "BAY"}
	return domainbracket.Series{
		Key:   "132-83",
		TeamA: a,
		TeamB: b,
		Games: []games.Game{
			{ID: "leg1", HomeTeam: a, AwayTeam: b, HomeScore: 2, AwayScore: 1, Leg: 1, Status: games.StatusFinal},
			{ID: "leg2", HomeTeam: b, AwayTeam: a, HomeScore: 1, AwayScore: 1, Leg: 2, Status: games.StatusFinal},
		},
	}
}

func TestAggregateTwoLeggedAttributesByTeamID(t *testing.T) {
	// Team A hosts leg 1 (wins 2-1) and visits leg 2 (draws 1-1). The
	// aggregate must follow the team, not the home slot: 3-2 to A.
	s := twoLegSeries()
	AggregateTwoLegged(&s)

	if s.AggregateA != 3 || s.AggregateB != 2 {
		t.Fatalf("aggregate = %d-%d, want 3-2", s.AggregateA, s.AggregateB)
	}
	if s.WinnerID != "83" {
		t.Fatalf("winner = %q, want %q", s.WinnerID, "83")
	}
	if !s.Decided {
		t.Fatalf("series with both legs final must be decided")
	}
	if s.Summary != "Completed" {
		t.Fatalf("summary = %q, want Completed", s.Summary)
	}
}

func TestAggregateTwoLeggedShootoutBreaksLevelAggregate(t *testing.T) {
	s := twoLegSeries()
	s.Games[0].HomeScore, s.Games[0].AwayScore = 1, 1
	s.Games[1].HomeScore, s.Games[1].AwayScore = 1, 1
	s.Games[1].HomeShootout, s.Games[1].AwayShootout = 4, 3 // B hosts leg 2

	AggregateTwoLegged(&s)

	if s.AggregateA != 2 || s.AggregateB != 2 {
		t.Fatalf("aggregate = %d-%d, want 2-2", s.AggregateA, s.AggregateB)
	}
	if s.ShootoutA != 3 || s.ShootoutB != 4 {
		t.Fatalf("shootout = %d-%d, want 3-4", s.ShootoutA, s.ShootoutB)
	}
	if s.WinnerID != "132" {
		t.Fatalf("shootout winner = %q, want %q", s.WinnerID, "132")
	}
	if s.Tied {
		t.Fatalf("shootout-decided series must not report tied")
	}
}

func TestAggregateTwoLeggedLevelWithoutShootoutIsTied(t *testing.T) {
	s := twoLegSeries()
	s.Games[0].HomeScore, s.Games[0].AwayScore = 1, 1
	s.Games[1].HomeScore, s.Games[1].AwayScore = 2, 2

	AggregateTwoLegged(&s)

	if !s.Tied {
		t.Fatalf("level aggregate without shootout must be an explicit tie")
	}
	if s.WinnerID != "" {
		t.Fatalf("tied series must not have a winner, got %q", s.WinnerID)
	}
	if s.Decided {
		t.Fatalf("tied series must not be decided")
	}
}

func TestAggregateTwoLeggedIgnoresUnfinishedLegs(t *testing.T) {
	s := twoLegSeries()
	s.Games[1].Status = games.StatusInProgress
	s.Games[1].HomeScore, s.Games[1].AwayScore = 9, 0

	AggregateTwoLegged(&s)

	if s.AggregateA != 2 || s.AggregateB != 1 {
		t.Fatalf("aggregate = %d-%d, want 2-1 (leg 2 not final)", s.AggregateA, s.AggregateB)
	}
	if s.Decided {
		t.Fatalf("series with an unfinished leg must not be decided")
	}
	if s.Summary != "In Progress" {
		t.Fatalf("summary = %q, want In Progress", s.Summary)
	}
}

func TestAggregateBestOfUsesLatestRecord(t *testing.T) {
	x := teams.Team{ID: "5", ShortDisplayName: "Thunder", Abbreviation: "OKC", Seed: 3}
	y := teams.Team{ID: "9", ShortDisplayName: "Grizzlies", Abbreviation: "MEM", Seed: 6}
	s := domainbracket.Series{
		TeamA: x,
		TeamB: y,
		Games: []games.Game{
			{ID: "g1", HomeTeam: x, AwayTeam: y, HomeRecord: "1-0", AwayRecord: "0-1", Status: games.StatusFinal},
			{ID: "g2", HomeTeam: y, AwayTeam: x, HomeRecord: "0-2", AwayRecord: "2-0", Status: games.StatusFinal},
		},
	}

	AggregateBestOf(&s, 4)

	if s.RecordA != (domainbracket.Record{Wins: 2, Losses: 0}) {
		t.Fatalf("record A = %s, want 2-0", s.RecordA)
	}
	if s.RecordB != (domainbracket.Record{Wins: 0, Losses: 2}) {
		t.Fatalf("record B = %s, want 0-2", s.RecordB)
	}
	if s.WinnerID != "5" {
		t.Fatalf("winner = %q, want %q", s.WinnerID, "5")
	}
	if s.Decided {
		t.Fatalf("2-0 must not be decided at a wins target of 4")
	}
	if s.Summary != "OKC leads 2 - 0" {
		t.Fatalf("summary = %q", s.Summary)
	}
}

func TestAggregateBestOfInfersZeroRecordFromOpponent(t *testing.T) {
	// Feed latency: one side still reads "0-0" while the opponent already
	// shows "2-1". The inverse of the opponent's record fills the gap.
	x := teams.Team{ID: "1", Abbreviation: "DEN"}
	y := teams.Team{ID: "2", Abbreviation: "LAL"}
	s := domainbracket.Series{
		TeamA: x,
		TeamB: y,
		Games: []games.Game{
			{ID: "g3", HomeTeam: x, AwayTeam: y, HomeRecord: "0-0", AwayRecord: "2-1", Status: games.StatusFinal},
		},
	}

	AggregateBestOf(&s, 4)

	if s.RecordA != (domainbracket.Record{Wins: 1, Losses: 2}) {
		t.Fatalf("inferred record A = %s, want 1-2", s.RecordA)
	}
	if s.RecordB != (domainbracket.Record{Wins: 2, Losses: 1}) {
		t.Fatalf("record B = %s, want 2-1", s.RecordB)
	}
}

func TestAggregateBestOfDecidedAtWinsTarget(t *testing.T) {
	x := teams.Team{ID: "1", Abbreviation: "BOS"}
	y := teams.Team{ID: "2", Abbreviation: "MIA"}
	s := domainbracket.Series{
		TeamA: x,
		TeamB: y,
		Games: []games.Game{
			{ID: "g6", HomeTeam: x, AwayTeam: y, HomeRecord: "4-2", AwayRecord: "2-4", Status: games.StatusFinal},
		},
	}

	AggregateBestOf(&s, 4)

	if !s.Decided {
		t.Fatalf("4 wins must decide the series")
	}
	if s.Summary != "BOS wins series 4 - 2" {
		t.Fatalf("summary = %q", s.Summary)
	}
}

func TestAggregateBestOfTiedSummary(t *testing.T) {
	x := teams.Team{ID: "1", Abbreviation: "NYK"}
	y := teams.Team{ID: "2", Abbreviation: "IND"}
	s := domainbracket.Series{
		TeamA: x,
		TeamB: y,
		Games: []games.Game{
			{ID: "g2", HomeTeam: y, AwayTeam: x, HomeRecord: "1-1", AwayRecord: "1-1", Status: games.StatusFinal},
		},
	}

	AggregateBestOf(&s, 4)

	if !s.Tied {
		t.Fatalf("equal wins must report tied")
	}
	if s.Summary != "Series tied 1 - 1" {
		t.Fatalf("summary = %q", s.Summary)
	}
}

func TestParseRecord(t *testing.T) {
	cases := []struct {
		in   string
		want domainbracket.Record
		ok   bool
	}{
		{"2-1", domainbracket.Record{Wins: 2, Losses: 1}, true},
		{" 0-0 ", domainbracket.Record{}, true},
		{"", domainbracket.Record{}, false},
		{"abc", domainbracket.Record{}, false},
		{"3", domainbracket.Record{}, false},
	}
	for _, tc := range cases {
		got, ok := parseRecord(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("parseRecord(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
