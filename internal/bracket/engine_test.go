package bracket

import (
	"testing"

	domainbracket "bracket-service/internal/domain/bracket"
	"bracket-service/internal/domain/games"
	"bracket-service/internal/domain/teams"
	"bracket-service/internal/metrics"
)

func bestOfEngine() *Engine {
	return NewEngine(Config{
		View:         "nba",
		Mode:         ModeBestOf,
		Keying:       KeyByName,
		WinsTarget:   4,
		SeedPriority: []int{6, 4, 3, 2},
		Classifiers:  ClassifierChain{NewHeadlineClassifier(NBAPlayoffRules())},
	}, nil, metrics.NewRecorder())
}

func twoLeggedEngine() *Engine {
	return NewEngine(Config{
		View:     "uefa-champions",
		Mode:     ModeTwoLegged,
		Keying:   KeyByID,
		Pairings: UEFAKnockoutPairings(),
	}, nil, metrics.NewRecorder())
}

func TestEngineRebuildBestOfEndToEnd(t *testing.T) {
	x := teams.Team{ID: "5", ShortDisplayName: "Thunder", Abbreviation: "OKC"}
	y := teams.Team{ID: "9", ShortDisplayName: "Grizzlies", Abbreviation: "MEM"}

	in := Input{
		Payload: []byte(`scoreboard-v1`),
		Games: []games.Game{
			{ID: "g1", HomeTeam: x, AwayTeam: y, Headline: "West 1st Round - Game 1",
				HomeRecord: "1-0", AwayRecord: "0-1", Status: games.StatusFinal, Date: day(19)},
			{ID: "g2", HomeTeam: y, AwayTeam: x, Headline: "West 1st Round - Game 2",
				HomeRecord: "0-2", AwayRecord: "2-0", Status: games.StatusFinal, Date: day(21)},
		},
		Rankings: []teams.Ranking{
			{TeamID: "5", Seed: 3},
			{TeamID: "9", Seed: 6},
		},
	}

	snap, changed := bestOfEngine().Rebuild(in)
	if !changed {
		t.Fatalf("first rebuild must report changed")
	}
	if snap == nil {
		t.Fatalf("expected a snapshot")
	}

	series := snap.SeriesFor(domainbracket.RoundFirst, domainbracket.ConferenceWest)
	if len(series) != 1 {
		t.Fatalf("expected one West first-round series, got %d (rounds: %+v)", len(series), snap.Rounds)
	}

	s := series[0]
	if s.TeamA.Seed != 3 || s.TeamB.Seed != 6 {
		t.Fatalf("seeds = %d/%d, want 3/6", s.TeamA.Seed, s.TeamB.Seed)
	}
	if s.RecordA != (domainbracket.Record{Wins: 2}) || s.RecordB != (domainbracket.Record{Losses: 2}) {
		t.Fatalf("records = %s / %s, want 2-0 / 0-2", s.RecordA, s.RecordB)
	}
	if s.WinnerID != "5" {
		t.Fatalf("winner = %q, want %q", s.WinnerID, "5")
	}
	if len(snap.Unclassified) != 0 {
		t.Fatalf("nothing should be unclassified: %+v", snap.Unclassified)
	}
}

func TestEngineRebuildSkipsUnchangedPayload(t *testing.T) {
	e := bestOfEngine()
	in := Input{Payload: []byte("same-body")}

	first, changed := e.Rebuild(in)
	if !changed {
		t.Fatalf("first rebuild must run")
	}

	second, changed := e.Rebuild(in)
	if changed {
		t.Fatalf("unchanged payload must not rebuild")
	}
	if second != first {
		t.Fatalf("skipped rebuild must return the prior snapshot")
	}
	if e.Last() != first {
		t.Fatalf("Last must return the prior snapshot")
	}
}

func TestEngineResetForcesRebuild(t *testing.T) {
	e := bestOfEngine()
	in := Input{Payload: []byte("same-body")}

	e.Rebuild(in)
	e.Reset()
	if e.Last() != nil {
		t.Fatalf("reset must clear the last snapshot")
	}
	if _, changed := e.Rebuild(in); !changed {
		t.Fatalf("rebuild after reset must run")
	}
}

func TestEngineSameTeamsDifferentRoundsStaySeparate(t *testing.T) {
	x := teams.Team{ID: "1", ShortDisplayName: "Celtics"}
	y := teams.Team{ID: "2", ShortDisplayName: "Knicks"}

	snap, _ := bestOfEngine().Rebuild(Input{
		Payload: []byte("p"),
		Games: []games.Game{
			{ID: "r1", HomeTeam: x, AwayTeam: y, Headline: "East 1st Round - Game 7",
				HomeRecord: "4-3", AwayRecord: "3-4", Status: games.StatusFinal},
			{ID: "r2", HomeTeam: x, AwayTeam: y, Headline: "East Finals - Game 1",
				HomeRecord: "1-0", AwayRecord: "0-1", Status: games.StatusFinal},
		},
	})

	first := snap.SeriesFor(domainbracket.RoundFirst, domainbracket.ConferenceEast)
	finals := snap.SeriesFor(domainbracket.RoundConferenceFinal, domainbracket.ConferenceEast)
	if len(first) != 1 || len(finals) != 1 {
		t.Fatalf("same matchup in two rounds must stay two series: %+v", snap.Rounds)
	}
	if first[0].RecordA.Wins != 4 || finals[0].RecordA.Wins != 1 {
		t.Fatalf("rounds mixed records: %s vs %s", first[0].RecordA, finals[0].RecordA)
	}
}

func TestEngineUnclassifiedBucketIsExplicit(t *testing.T) {
	x := teams.Team{ID: "1", ShortDisplayName: "A"}
	y := teams.Team{ID: "2", ShortDisplayName: "B"}

	snap, _ := bestOfEngine().Rebuild(Input{
		Payload: []byte("p"),
		Games: []games.Game{
			{ID: "g", HomeTeam: x, AwayTeam: y, Headline: "Emirates Cup"},
		},
	})

	if len(snap.Rounds) != 0 {
		t.Fatalf("unmatched headline must not produce a round group: %+v", snap.Rounds)
	}
	if len(snap.Unclassified) != 1 {
		t.Fatalf("unmatched series must land in the unclassified bucket")
	}
}

func TestEngineTwoLeggedPairingsAndLinkage(t *testing.T) {
	a := teams.Team{ID: "83", ShortDisplayName: "Club A"}
	b := teams.Team{ID: "132", ShortDisplayName: "Club B"}
	c := teams.Team{ID: "86", ShortDisplayName: "Club C"}

	calendar := stageCalendar()
	in := Input{
		Payload: []byte("ucl"),
		Games: []games.Game{
			// Knockout playoff tie between A (rank 9) and B (rank 24).
			{ID: "ko1", HomeTeam: a, AwayTeam: b, HomeScore: 2, AwayScore: 0,
				Leg: 1, Status: games.StatusFinal, Date: date(2026, 2, 11)},
			{ID: "ko2", HomeTeam: b, AwayTeam: a, HomeScore: 1, AwayScore: 1,
				Leg: 2, Status: games.StatusFinal, Date: date(2026, 2, 18)},
			// Round of 16 tie the playoff winner advanced into.
			{ID: "r16", HomeTeam: c, AwayTeam: a, HomeScore: 0, AwayScore: 0,
				Leg: 1, Status: games.StatusScheduled, Date: date(2026, 3, 4)},
		},
		Rankings: []teams.Ranking{
			{TeamID: "83", Rank: 9},
			{TeamID: "132", Rank: 24},
			{TeamID: "86", Rank: 2},
		},
		Calendar: calendar,
	}

	snap, changed := twoLeggedEngine().Rebuild(in)
	if !changed {
		t.Fatalf("first rebuild must run")
	}

	playoff := snap.SeriesFor(domainbracket.RoundKnockoutPlayoff, domainbracket.ConferenceNone)
	if len(playoff) != 1 {
		t.Fatalf("expected one playoff series, got %+v", snap.Rounds)
	}
	if playoff[0].WinnerID != "83" {
		t.Fatalf("aggregate 3-1 must give team 83 the tie, got %q", playoff[0].WinnerID)
	}

	if len(snap.Pairings) != 4 {
		t.Fatalf("pairings = %d, want 4", len(snap.Pairings))
	}
	pairingI := snap.Pairings[0]
	if pairingI.Label != "Pairing I" || len(pairingI.Series) != 1 {
		t.Fatalf("ranks 9/24 must land in pairing I: %+v", snap.Pairings)
	}
	if len(pairingI.NextRound) != 1 || !pairingI.NextRound[0].Involves("83") {
		t.Fatalf("round-of-16 tie sharing team 83 must be linked: %+v", pairingI.NextRound)
	}
}
