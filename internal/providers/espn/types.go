package espn

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// flexInt decodes JSON fields the feed serves inconsistently as numbers or
// quoted strings ("3" vs 3). Null and empty string decode to zero.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			// Some rank fields carry decorations ("3*"); take the digits.
			n, err = strconv.Atoi(strings.TrimRight(s, "*"))
			if err != nil {
				*f = 0
				return nil
			}
		}
		*f = flexInt(n)
		return nil
	}

	// Scores occasionally arrive as floats (2.0).
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexInt(int(n))
	return nil
}

func (f flexInt) Int() int { return int(f) }

type scoreboardResponse struct {
	Events  []event      `json:"events"`
	Leagues []leagueInfo `json:"leagues"`
}

type leagueInfo struct {
	Calendar []calendarEntry `json:"calendar"`
}

// calendarEntry is one stage of the league calendar. Some leagues nest
// stages under a season-level entry, so entries recurse.
type calendarEntry struct {
	Label     string          `json:"label"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Entries   []calendarEntry `json:"entries"`
}

type event struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Status       eventStatus   `json:"status"`
	Competitions []competition `json:"competitions"`
}

type eventStatus struct {
	Type statusType `json:"type"`
}

type statusType struct {
	State string `json:"state"`
}

type competition struct {
	Competitors []competitor `json:"competitors"`
	Notes       []note       `json:"notes"`
	Leg         legInfo      `json:"leg"`
}

type note struct {
	Headline string `json:"headline"`
}

type legInfo struct {
	Value flexInt `json:"value"`
}

type competitor struct {
	HomeAway      string     `json:"homeAway"`
	Score         flexInt    `json:"score"`
	ShootoutScore flexInt    `json:"shootoutScore"`
	CuratedRank   rankHolder `json:"curatedRank"`
	Team          teamInfo   `json:"team"`
	Records       []record   `json:"records"`
}

type rankHolder struct {
	Current flexInt `json:"current"`
}

type teamInfo struct {
	ID               string  `json:"id"`
	DisplayName      string  `json:"displayName"`
	ShortDisplayName string  `json:"shortDisplayName"`
	Abbreviation     string  `json:"abbreviation"`
	Color            string  `json:"color"`
	AlternateColor   string  `json:"alternateColor"`
	Logo             string  `json:"logo"`
	Seed             flexInt `json:"seed"`
}

type record struct {
	Type    string `json:"type"`
	Summary string `json:"summary"`
}

// standingsResponse is the CDN standings payload shape shared by the league
// standings and soccer table endpoints.
type standingsResponse struct {
	Content standingsContent `json:"content"`
}

type standingsContent struct {
	Standings standingsBlock `json:"standings"`
}

type standingsBlock struct {
	Groups  []standingsGroup `json:"groups"`
	Entries []standingsEntry `json:"entries"`
}

// standingsGroup nests arbitrarily (conference > division); entries appear
// at whatever depth the sport uses.
type standingsGroup struct {
	Name      string           `json:"name"`
	Groups    []standingsGroup `json:"groups"`
	Standings standingsBlock   `json:"standings"`
}

type standingsEntry struct {
	Team  teamInfo        `json:"team"`
	Note  standingsNote   `json:"note"`
	Stats []standingsStat `json:"stats"`
}

type standingsNote struct {
	Rank flexInt `json:"rank"`
}

type standingsStat struct {
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Value flexInt `json:"value"`
}
