package espn

import (
	"time"

	domainbracket "bracket-service/internal/domain/bracket"
	"bracket-service/internal/domain/games"
	"bracket-service/internal/domain/teams"
)

// eventDateLayouts covers the date forms the feed has been seen to use.
var eventDateLayouts = []string{
	"2006-01-02T15:04Z07:00",
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
}

func mapEvents(events []event) (mapped []games.Game, dropped int) {
	mapped = make([]games.Game, 0, len(events))
	for _, ev := range events {
		g, ok := mapEvent(ev)
		if !ok {
			dropped++
			continue
		}
		mapped = append(mapped, g)
	}
	return mapped, dropped
}

// mapEvent normalizes one scoreboard event. Events without a competition or
// without both competitors are rejected; everything else is carried through
// even when scores or records are missing.
func mapEvent(ev event) (games.Game, bool) {
	if len(ev.Competitions) == 0 {
		return games.Game{}, false
	}
	comp := ev.Competitions[0]

	home, away, ok := splitCompetitors(comp.Competitors)
	if !ok {
		return games.Game{}, false
	}

	g := games.Game{
		ID:           ev.ID,
		Date:         parseEventDate(ev.Date),
		Status:       mapStatus(ev.Status.Type.State),
		HomeTeam:     mapTeam(home),
		AwayTeam:     mapTeam(away),
		HomeScore:    home.Score.Int(),
		AwayScore:    away.Score.Int(),
		HomeShootout: home.ShootoutScore.Int(),
		AwayShootout: away.ShootoutScore.Int(),
		Leg:          comp.Leg.Value.Int(),
		HomeRecord:   firstRecord(home.Records),
		AwayRecord:   firstRecord(away.Records),
	}
	if g.Leg == 0 {
		g.Leg = 1
	}
	if len(comp.Notes) > 0 {
		g.Headline = comp.Notes[0].Headline
	}
	return g, true
}

func splitCompetitors(list []competitor) (home, away competitor, ok bool) {
	if len(list) < 2 {
		return competitor{}, competitor{}, false
	}
	home, away = list[0], list[1]
	// The feed usually lists home first, but the flag is authoritative.
	if list[0].HomeAway == "away" || list[1].HomeAway == "home" {
		home, away = list[1], list[0]
	}
	if home.Team.ID == "" || away.Team.ID == "" {
		return competitor{}, competitor{}, false
	}
	return home, away, true
}

func mapTeam(c competitor) teams.Team {
	seed := c.Team.Seed.Int()
	if seed == 0 {
		seed = c.CuratedRank.Current.Int()
	}
	return teams.Team{
		ID:               c.Team.ID,
		DisplayName:      c.Team.DisplayName,
		ShortDisplayName: c.Team.ShortDisplayName,
		Abbreviation:     c.Team.Abbreviation,
		Color:            c.Team.Color,
		AlternateColor:   c.Team.AlternateColor,
		Logo:             c.Team.Logo,
		Seed:             seed,
	}
}

func mapStatus(state string) games.GameStatus {
	switch state {
	case "in":
		return games.StatusInProgress
	case "post":
		return games.StatusFinal
	default:
		return games.StatusScheduled
	}
}

func firstRecord(records []record) string {
	for _, r := range records {
		if r.Summary != "" {
			return r.Summary
		}
	}
	return ""
}

func parseEventDate(raw string) time.Time {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// mapCalendar flattens the (possibly nested) calendar into stages with
// resolved date ranges.
func mapCalendar(entries []calendarEntry) []domainbracket.Stage {
	var stages []domainbracket.Stage
	var walk func(list []calendarEntry)
	walk = func(list []calendarEntry) {
		for _, e := range list {
			if e.Label != "" {
				start := parseEventDate(e.StartDate)
				end := parseEventDate(e.EndDate)
				if !start.IsZero() && !end.IsZero() {
					stages = append(stages, domainbracket.Stage{
						Label: e.Label,
						Start: start,
						End:   end,
					})
				}
			}
			walk(e.Entries)
		}
	}
	walk(entries)
	return stages
}

// mapStandings walks the standings groups at any nesting depth and emits
// one ranking per entry. The seed comes from the playoff seed stat where
// the sport publishes one; the rank from the entry note or rank stat.
func mapStandings(payload standingsResponse) []teams.Ranking {
	var rankings []teams.Ranking

	var emit func(entries []standingsEntry)
	emit = func(entries []standingsEntry) {
		for _, e := range entries {
			if e.Team.ID == "" {
				continue
			}
			rankings = append(rankings, teams.Ranking{
				TeamID: e.Team.ID,
				Seed:   seedOf(e),
				Rank:   rankOf(e),
			})
		}
	}

	var walk func(block standingsBlock)
	walk = func(block standingsBlock) {
		emit(block.Entries)
		for _, group := range block.Groups {
			walk(group.Standings)
			walk(standingsBlock{Groups: group.Groups})
		}
	}
	walk(payload.Content.Standings)
	return rankings
}

func seedOf(e standingsEntry) int {
	for _, s := range e.Stats {
		if s.Name == "playoffSeed" || s.Type == "playoffseed" {
			return s.Value.Int()
		}
	}
	return 0
}

func rankOf(e standingsEntry) int {
	if r := e.Note.Rank.Int(); r > 0 {
		return r
	}
	for _, s := range e.Stats {
		if s.Name == "rank" {
			return s.Value.Int()
		}
	}
	return 0
}
