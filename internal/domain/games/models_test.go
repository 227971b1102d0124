package games

import (
	"testing"

	"bracket-service/internal/domain/teams"
)

func TestGameFinal(t *testing.T) {
	if (Game{Status: StatusScheduled}).Final() {
		t.Fatal("scheduled game is not final")
	}
	if (Game{Status: StatusInProgress}).Final() {
		t.Fatal("in-progress game is not final")
	}
	if !(Game{Status: StatusFinal}).Final() {
		t.Fatal("final game must report final")
	}
}

func TestGameInvolves(t *testing.T) {
	g := Game{
		HomeTeam: teams.Team{ID: "home"},
		AwayTeam: teams.Team{ID: "away"},
	}
	if !g.Involves("home") || !g.Involves("away") {
		t.Fatal("both competitors must be involved")
	}
	if g.Involves("other") {
		t.Fatal("unrelated team must not be involved")
	}
}
