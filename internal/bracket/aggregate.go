package bracket

import (
	"fmt"
	"strconv"
	"strings"

	domainbracket "bracket-service/internal/domain/bracket"
	"bracket-service/internal/domain/games"
)

// AggregateTwoLegged fills in the aggregate score, shootout result and
// winner state for a two-legged series. Scores are attributed to teamA/teamB
// by matching team id, never by home/away flag: a team may be home in leg 1
// and away in leg 2.
func AggregateTwoLegged(s *domainbracket.Series) {
	s.AggregateA, s.AggregateB = 0, 0
	s.ShootoutA, s.ShootoutB = 0, 0

	finals := 0
	for _, g := range s.Games {
		if !g.Final() {
			continue
		}
		finals++
		if g.HomeTeam.ID == s.TeamA.ID {
			s.AggregateA += g.HomeScore
			s.AggregateB += g.AwayScore
		} else {
			s.AggregateA += g.AwayScore
			s.AggregateB += g.HomeScore
		}
		if g.HomeShootout > 0 || g.AwayShootout > 0 {
			if g.HomeTeam.ID == s.TeamA.ID {
				s.ShootoutA, s.ShootoutB = g.HomeShootout, g.AwayShootout
			} else {
				s.ShootoutA, s.ShootoutB = g.AwayShootout, g.HomeShootout
			}
		}
	}

	s.WinnerID, s.Tied, s.Decided = "", false, false
	if finals == 0 {
		return
	}

	allFinal := finals == len(s.Games)
	switch {
	case s.AggregateA > s.AggregateB:
		s.WinnerID = s.TeamA.ID
	case s.AggregateB > s.AggregateA:
		s.WinnerID = s.TeamB.ID
	case s.ShootoutA > s.ShootoutB:
		s.WinnerID = s.TeamA.ID
	case s.ShootoutB > s.ShootoutA:
		s.WinnerID = s.TeamB.ID
	default:
		// Level on aggregate with no shootout reported: an explicit tie,
		// not a defaulted winner.
		s.Tied = true
	}
	s.Decided = allFinal && len(s.Games) >= 2 && s.WinnerID != ""

	if allFinal {
		s.Summary = "Completed"
	} else {
		s.Summary = "In Progress"
	}
}

// AggregateBestOf fills in the per-round win records and winner state for a
// best-of series. Records come from the feed's own per-team record field on
// the most recent game; a literal "0-0" against an opponent with a non-zero
// record is treated as feed latency and replaced by the inverse of the
// opponent's record. That reconciliation is deliberately narrow: any other
// disagreement between the two sides is trusted at face value.
func AggregateBestOf(s *domainbracket.Series, winsTarget int) {
	s.RecordA = roundRecord(s.Games, s.TeamA.ID, s.TeamB.ID)
	s.RecordB = roundRecord(s.Games, s.TeamB.ID, s.TeamA.ID)

	s.WinnerID, s.Tied, s.Decided = "", false, false
	switch {
	case s.RecordA.Wins > s.RecordB.Wins:
		s.WinnerID = s.TeamA.ID
	case s.RecordB.Wins > s.RecordA.Wins:
		s.WinnerID = s.TeamB.ID
	default:
		s.Tied = true
	}
	if winsTarget > 0 && (s.RecordA.Wins >= winsTarget || s.RecordB.Wins >= winsTarget) {
		s.Decided = true
	}

	s.Summary = bestOfSummary(s, winsTarget)
}

// roundRecord resolves a team's record for the round from the most recent
// game involving it, applying the narrow "0-0" inference.
func roundRecord(gs []games.Game, teamID, opponentID string) domainbracket.Record {
	var teamRaw, oppRaw string
	// Games are ordered ascending; scan from the latest backwards.
	for i := len(gs) - 1; i >= 0; i-- {
		g := gs[i]
		if !g.Involves(teamID) {
			continue
		}
		if g.HomeTeam.ID == teamID {
			teamRaw, oppRaw = g.HomeRecord, g.AwayRecord
		} else {
			teamRaw, oppRaw = g.AwayRecord, g.HomeRecord
		}
		break
	}

	rec, ok := parseRecord(teamRaw)
	if !ok {
		rec = domainbracket.Record{}
	}
	if rec.Wins == 0 && rec.Losses == 0 {
		if opp, ok := parseRecord(oppRaw); ok && (opp.Wins > 0 || opp.Losses > 0) {
			return opp.Inverse()
		}
	}
	return rec
}

func parseRecord(raw string) (domainbracket.Record, bool) {
	parts := strings.SplitN(strings.TrimSpace(raw), "-", 2)
	if len(parts) != 2 {
		return domainbracket.Record{}, false
	}
	wins, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return domainbracket.Record{}, false
	}
	losses, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return domainbracket.Record{}, false
	}
	return domainbracket.Record{Wins: wins, Losses: losses}, true
}

func bestOfSummary(s *domainbracket.Series, winsTarget int) string {
	winsA, winsB := s.RecordA.Wins, s.RecordB.Wins
	leader, leaderWins, trailWins := s.TeamA, winsA, winsB
	if winsB > winsA {
		leader, leaderWins, trailWins = s.TeamB, winsB, winsA
	}

	name := leader.Abbreviation
	if name == "" {
		name = leader.ShortDisplayName
	}

	switch {
	case winsTarget > 0 && leaderWins >= winsTarget:
		return fmt.Sprintf("%s wins series %d - %d", name, leaderWins, trailWins)
	case winsA != winsB:
		return fmt.Sprintf("%s leads %d - %d", name, leaderWins, trailWins)
	default:
		return fmt.Sprintf("Series tied %d - %d", winsA, winsB)
	}
}
