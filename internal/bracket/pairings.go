package bracket

import (
	domainbracket "bracket-service/internal/domain/bracket"
)

// PairingRange encodes one named draw slot as a pair of inclusive seed
// ranges: the better-seeded side must fall in [LowMin,LowMax] and the
// worse-seeded side in [HighMin,HighMax]. The table reflects the
// competition's official draw and is static configuration, never derived
// at runtime.
type PairingRange struct {
	Label   string
	LowMin  int
	LowMax  int
	HighMin int
	HighMax int
}

// UEFAKnockoutPairings is the draw table for the UEFA knockout playoff
// round: league-phase ranks 9-24 paired best-vs-worst in bands of two.
func UEFAKnockoutPairings() []PairingRange {
	return []PairingRange{
		{Label: "Pairing I", LowMin: 9, LowMax: 10, HighMin: 23, HighMax: 24},
		{Label: "Pairing II", LowMin: 11, LowMax: 12, HighMin: 21, HighMax: 22},
		{Label: "Pairing III", LowMin: 13, LowMax: 14, HighMin: 19, HighMax: 20},
		{Label: "Pairing IV", LowMin: 15, LowMax: 16, HighMin: 17, HighMax: 18},
	}
}

// AssignPairing finds the draw slot whose seed ranges cover the series'
// sorted seed pair. A series whose seeds match no range (seeds not yet
// finalized, play-in teams without a rank) is omitted from every bucket;
// during early rounds that is the expected state, not an error.
func AssignPairing(s domainbracket.Series, table []PairingRange) (string, bool) {
	if !s.TeamA.HasSeed() || !s.TeamB.HasSeed() {
		return "", false
	}
	low, high := s.TeamA.Seed, s.TeamB.Seed
	if low > high {
		low, high = high, low
	}

	for _, p := range table {
		if low >= p.LowMin && low <= p.LowMax && high >= p.HighMin && high <= p.HighMax {
			return p.Label, true
		}
	}
	return "", false
}

// AssignPairings buckets series into the table's named slots in table
// order. Unmatched series are left out of the result entirely.
func AssignPairings(series []domainbracket.Series, table []PairingRange) []domainbracket.PairingGroup {
	groups := make([]domainbracket.PairingGroup, len(table))
	for i, p := range table {
		groups[i] = domainbracket.PairingGroup{Label: p.Label}
	}

	index := make(map[string]int, len(table))
	for i, p := range table {
		index[p.Label] = i
	}

	for _, s := range series {
		label, ok := AssignPairing(s, table)
		if !ok {
			continue
		}
		s.Pairing = label
		i := index[label]
		groups[i].Series = append(groups[i].Series, s)
	}
	return groups
}

// LinkNextRound attaches, per pairing slot, the later-stage series that
// share a team with the slot's series, so the consumer can render the
// knockout columns side by side.
func LinkNextRound(groups []domainbracket.PairingGroup, next []domainbracket.Series) {
	for gi := range groups {
		for _, s := range groups[gi].Series {
			if linked, ok := findSharedTeamSeries(s, next); ok {
				groups[gi].NextRound = append(groups[gi].NextRound, linked)
			}
		}
	}
}

func findSharedTeamSeries(s domainbracket.Series, candidates []domainbracket.Series) (domainbracket.Series, bool) {
	for _, c := range candidates {
		if c.Involves(s.TeamA.ID) || c.Involves(s.TeamB.ID) {
			return c, true
		}
	}
	return domainbracket.Series{}, false
}
