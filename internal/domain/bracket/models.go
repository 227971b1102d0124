package bracket

import (
	"fmt"
	"time"

	"bracket-service/internal/domain/games"
	"bracket-service/internal/domain/teams"
)

// Round is a named tournament stage with a fixed display precedence.
// Higher values are later stages; RoundUnclassified sorts first so coverage
// gaps stay visible to the consumer instead of disappearing.
type Round int

const (
	RoundUnclassified Round = iota
	RoundKnockoutPlayoff
	RoundOf16
	RoundFirst
	RoundQuarterfinal
	RoundSemifinal
	RoundConferenceFinal
	RoundChampionship
)

var roundNames = map[Round]string{
	RoundUnclassified:    "Unclassified",
	RoundKnockoutPlayoff: "Knockout Playoffs",
	RoundOf16:            "Round of 16",
	RoundFirst:           "1st Round",
	RoundQuarterfinal:    "Quarterfinals",
	RoundSemifinal:       "Semifinals",
	RoundConferenceFinal: "Conference Finals",
	RoundChampionship:    "Final",
}

func (r Round) String() string {
	if name, ok := roundNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Round(%d)", int(r))
}

// MarshalText renders the round name in JSON output.
func (r Round) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Conference splits a round column where the competition runs parallel
// draws (NBA East/West). ConferenceNone covers unified draws.
type Conference int

const (
	ConferenceNone Conference = iota
	ConferenceEast
	ConferenceWest
)

func (c Conference) String() string {
	switch c {
	case ConferenceEast:
		return "East"
	case ConferenceWest:
		return "West"
	default:
		return ""
	}
}

// MarshalText renders the conference name in JSON output.
func (c Conference) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Record is a win/loss count within one round.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

func (r Record) String() string {
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}

// Inverse swaps wins and losses, which is the opponent's view of the
// same head-to-head record.
func (r Record) Inverse() Record {
	return Record{Wins: r.Losses, Losses: r.Wins}
}

// Series is the inferred pairing of two teams across one or more games.
// TeamA/TeamB are assigned deterministically (lexicographically by id), so
// the feed's home/away flags never decide which side a team occupies.
type Series struct {
	Key   string     `json:"key"`
	TeamA teams.Team `json:"teamA"`
	TeamB teams.Team `json:"teamB"`

	// Games are the constituent legs/games ordered by leg then date.
	Games []games.Game `json:"games"`

	// Aggregate scores (two-legged mode) summed over final games only.
	AggregateA int `json:"aggregateA"`
	AggregateB int `json:"aggregateB"`

	// Shootout scores from the deciding leg, zero when no shootout happened.
	ShootoutA int `json:"shootoutA,omitempty"`
	ShootoutB int `json:"shootoutB,omitempty"`

	// Per-round win records (best-of mode).
	RecordA Record `json:"recordA"`
	RecordB Record `json:"recordB"`

	Round      Round      `json:"round"`
	Conference Conference `json:"conference,omitempty"`
	Pairing    string     `json:"pairing,omitempty"`

	// WinnerID identifies the leading or winning team; empty while the
	// series has no final games. Tied is an explicit state, never a
	// defaulted winner.
	WinnerID string `json:"winnerId,omitempty"`
	Tied     bool   `json:"tied,omitempty"`
	// Decided is true once the series outcome is settled (wins target
	// reached, or all legs final with a non-tied aggregate).
	Decided bool `json:"decided"`

	// Summary is the human-readable series state ("BOS leads 2 - 1").
	Summary string `json:"summary,omitempty"`
}

// MinSeed returns the lower of the two teams' seeds, or 0 when neither
// team has one.
func (s Series) MinSeed() int {
	a, b := s.TeamA.Seed, s.TeamB.Seed
	switch {
	case a > 0 && b > 0:
		if a < b {
			return a
		}
		return b
	case a > 0:
		return a
	default:
		return b
	}
}

// SeedDiff returns the absolute difference between the two teams' seeds.
func (s Series) SeedDiff() int {
	d := s.TeamA.Seed - s.TeamB.Seed
	if d < 0 {
		return -d
	}
	return d
}

// Involves reports whether the given team id plays in this series.
func (s Series) Involves(teamID string) bool {
	return s.TeamA.ID == teamID || s.TeamB.ID == teamID
}

// Stage is one named calendar entry with its date range, consumed by the
// calendar-based round classifier.
type Stage struct {
	Label string    `json:"label"`
	Start time.Time `json:"startDate"`
	End   time.Time `json:"endDate"`
}

// RoundGroup is one ordered bracket column: a round (and conference, where
// the draw splits) with its display-ordered series.
type RoundGroup struct {
	Round      Round      `json:"round"`
	Conference Conference `json:"conference,omitempty"`
	Series     []Series   `json:"series"`
}

// PairingGroup is one named draw slot of a two-legged knockout bracket.
// NextRound carries the round-of-16 series reachable from this pairing's
// teams, so the consumer can render the linked columns.
type PairingGroup struct {
	Label     string   `json:"label"`
	Series    []Series `json:"series"`
	NextRound []Series `json:"nextRound,omitempty"`
}

// Snapshot is the immutable output of one successful pipeline run. It is
// discarded and rebuilt, never patched, and is the only artifact the
// rendering collaborator sees.
type Snapshot struct {
	View         string         `json:"view"`
	Hash         int32          `json:"hash"`
	BuiltAt      time.Time      `json:"builtAt"`
	Rounds       []RoundGroup   `json:"rounds"`
	Pairings     []PairingGroup `json:"pairings,omitempty"`
	Unclassified []Series       `json:"unclassified,omitempty"`
}

// SeriesFor returns the ordered series for a round/conference pair.
func (s *Snapshot) SeriesFor(round Round, conf Conference) []Series {
	if s == nil {
		return nil
	}
	for _, g := range s.Rounds {
		if g.Round == round && g.Conference == conf {
			return g.Series
		}
	}
	return nil
}
