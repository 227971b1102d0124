package teams

// Team is the normalized team shape used throughout the bracket pipeline.
// Teams are rebuilt from the feed on every poll cycle and never mutated
// in place afterwards.
type Team struct {
	ID               string `json:"id"`
	DisplayName      string `json:"displayName"`
	ShortDisplayName string `json:"shortDisplayName"`
	Abbreviation     string `json:"abbreviation"`
	Color            string `json:"color,omitempty"`
	AlternateColor   string `json:"alternateColor,omitempty"`
	Logo             string `json:"logo,omitempty"`
	// Seed is the competition seed from the standings feed; 0 means not
	// yet assigned (play-in teams, early season).
	Seed int `json:"seed,omitempty"`
	// Rank is the ranking-table position, used by draws keyed on league
	// phase standings rather than conference seeds.
	Rank int `json:"rank,omitempty"`
}

// HasSeed reports whether a competition seed has been assigned.
func (t Team) HasSeed() bool {
	return t.Seed > 0
}

// Ranking is one standings entry: the seed and/or rank for a team id.
type Ranking struct {
	TeamID string `json:"teamId"`
	Seed   int    `json:"seed,omitempty"`
	Rank   int    `json:"rank,omitempty"`
}

// RankingIndex builds a lookup table from a standings list.
func RankingIndex(rankings []Ranking) map[string]Ranking {
	idx := make(map[string]Ranking, len(rankings))
	for _, r := range rankings {
		idx[r.TeamID] = r
	}
	return idx
}
