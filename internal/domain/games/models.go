package games

import (
	"time"

	"bracket-service/internal/domain/teams"
)

// GameStatus mirrors the feed's game lifecycle states.
type GameStatus string

const (
	StatusScheduled  GameStatus = "SCHEDULED"
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusFinal      GameStatus = "FINAL"
)

// Game is one event from the scoreboard feed, normalized at the ingestion
// boundary. Created fresh each poll cycle; never mutated in place.
type Game struct {
	ID       string     `json:"id"`
	Date     time.Time  `json:"date"`
	Status   GameStatus `json:"status"`
	HomeTeam teams.Team `json:"homeTeam"`
	AwayTeam teams.Team `json:"awayTeam"`

	HomeScore int `json:"homeScore"`
	AwayScore int `json:"awayScore"`

	// Shootout scores are zero unless the feed reports a penalty shootout
	// for this leg.
	HomeShootout int `json:"homeShootout,omitempty"`
	AwayShootout int `json:"awayShootout,omitempty"`

	// Leg is 1 or 2 for two-legged series; 1 when the feed carries no leg.
	Leg int `json:"leg"`

	// Headline is the free-text event note used by the text round
	// classifier (e.g. "East 1st Round - Game 3").
	Headline string `json:"headline,omitempty"`

	// HomeRecord/AwayRecord are the feed's per-team series records for
	// the current round ("2-1"), empty when the feed omits them.
	HomeRecord string `json:"homeRecord,omitempty"`
	AwayRecord string `json:"awayRecord,omitempty"`
}

// Final reports whether the game has finished.
func (g Game) Final() bool {
	return g.Status == StatusFinal
}

// Involves reports whether the given team id plays in this game.
func (g Game) Involves(teamID string) bool {
	return g.HomeTeam.ID == teamID || g.AwayTeam.ID == teamID
}
