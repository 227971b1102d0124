package bracket

import (
	"testing"

	domainbracket "bracket-service/internal/domain/bracket"
	"bracket-service/internal/domain/teams"
)

func seededSeries(key string, seedA, seedB int) domainbracket.Series {
	return domainbracket.Series{
		Key:   key,
		TeamA: teams.Team{ID: key + "-a", Seed: seedA},
		TeamB: teams.Team{ID: key + "-b", Seed: seedB},
	}
}

func TestAssignPairingMatchesDrawTable(t *testing.T) {
	table := UEFAKnockoutPairings()
	cases := []struct {
		seedA, seedB int
		want         string
	}{
		{9, 24, "Pairing I"},
		{23, 10, "Pairing I"}, // seed order within the series must not matter
		{11, 22, "Pairing II"},
		{14, 19, "Pairing III"},
		{16, 17, "Pairing IV"},
	}
	for _, tc := range cases {
		got, ok := AssignPairing(seededSeries("s", tc.seedA, tc.seedB), table)
		if !ok || got != tc.want {
			t.Errorf("seeds %d/%d = %q ok=%v, want %q", tc.seedA, tc.seedB, got, ok, tc.want)
		}
	}
}

func TestAssignPairingOmitsUnmatchedSeeds(t *testing.T) {
	table := UEFAKnockoutPairings()

	// {5,12} matches no range: 5 is below every low band.
	if _, ok := AssignPairing(seededSeries("s", 5, 12), table); ok {
		t.Fatalf("seeds 5/12 must match no pairing")
	}
	// Missing seed (play-in side not ranked yet) is omitted, not an error.
	if _, ok := AssignPairing(seededSeries("s", 0, 20), table); ok {
		t.Fatalf("unseeded side must match no pairing")
	}
}

func TestAssignPairingsBucketsInTableOrder(t *testing.T) {
	table := UEFAKnockoutPairings()
	series := []domainbracket.Series{
		seededSeries("iv", 15, 18),
		seededSeries("i", 10, 23),
		seededSeries("skip", 1, 2),
	}

	groups := AssignPairings(series, table)
	if len(groups) != 4 {
		t.Fatalf("groups = %d, want 4 (one per table row)", len(groups))
	}
	if groups[0].Label != "Pairing I" || len(groups[0].Series) != 1 || groups[0].Series[0].Key != "i" {
		t.Fatalf("pairing I bucket wrong: %+v", groups[0])
	}
	if groups[3].Label != "Pairing IV" || len(groups[3].Series) != 1 || groups[3].Series[0].Key != "iv" {
		t.Fatalf("pairing IV bucket wrong: %+v", groups[3])
	}
	if len(groups[1].Series) != 0 || len(groups[2].Series) != 0 {
		t.Fatalf("unmatched pairings must stay empty")
	}
	if groups[0].Series[0].Pairing != "Pairing I" {
		t.Fatalf("assigned series must carry its pairing label")
	}
}

func TestLinkNextRoundBySharedTeam(t *testing.T) {
	playoff := seededSeries("ko", 9, 24)
	groups := []domainbracket.PairingGroup{{Label: "Pairing I", Series: []domainbracket.Series{playoff}}}

	next := []domainbracket.Series{
		{
			Key:   "r16-other",
			TeamA: teams.Team{ID: "x"},
			TeamB: teams.Team{ID: "y"},
		},
		{
			Key:   "r16-linked",
			TeamA: teams.Team{ID: playoff.TeamA.ID},
			TeamB: teams.Team{ID: "z"},
		},
	}

	LinkNextRound(groups, next)
	if len(groups[0].NextRound) != 1 || groups[0].NextRound[0].Key != "r16-linked" {
		t.Fatalf("expected the shared-team series linked, got %+v", groups[0].NextRound)
	}
}

func TestLinkNextRoundNoMatchLeavesGroupUnlinked(t *testing.T) {
	groups := []domainbracket.PairingGroup{
		{Label: "Pairing I", Series: []domainbracket.Series{seededSeries("ko", 9, 24)}},
	}
	LinkNextRound(groups, nil)
	if len(groups[0].NextRound) != 0 {
		t.Fatalf("no candidates must link nothing")
	}
}
