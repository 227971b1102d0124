package bracket

import (
	"strings"

	domainbracket "bracket-service/internal/domain/bracket"
	"bracket-service/internal/domain/games"
)

// Classification is the round (and conference, where the draw splits) a
// game was assigned to.
type Classification struct {
	Round      domainbracket.Round
	Conference domainbracket.Conference
}

// Classifier assigns a game to a round. Implementations are chained; a
// false return means "no opinion", not "unclassified".
type Classifier interface {
	Classify(g games.Game) (Classification, bool)
}

// ClassifierChain tries each classifier in order and falls back to the
// explicit unclassified bucket, never silent omission.
type ClassifierChain []Classifier

func (c ClassifierChain) Classify(g games.Game) Classification {
	for _, classifier := range c {
		if classifier == nil {
			continue
		}
		if cls, ok := classifier.Classify(g); ok {
			return cls
		}
	}
	return Classification{Round: domainbracket.RoundUnclassified}
}

// HeadlineRule matches a substring of the game headline. Rules are checked
// in order, so more specific strings must precede the general ones they
// contain ("NBA Finals" before "Finals").
type HeadlineRule struct {
	Substr     string
	Round      domainbracket.Round
	Conference domainbracket.Conference
}

// HeadlineClassifier assigns rounds by free-text headline matching.
type HeadlineClassifier struct {
	rules []HeadlineRule
}

// NewHeadlineClassifier builds a classifier over an ordered rule list.
func NewHeadlineClassifier(rules []HeadlineRule) *HeadlineClassifier {
	return &HeadlineClassifier{rules: rules}
}

// NBAPlayoffRules is the headline rule set for the NBA playoff feed. The
// conference-qualified strings come first so that "East Finals" never falls
// through to the championship rule.
func NBAPlayoffRules() []HeadlineRule {
	return []HeadlineRule{
		{"East 1st Round", domainbracket.RoundFirst, domainbracket.ConferenceEast},
		{"East Semifinals", domainbracket.RoundSemifinal, domainbracket.ConferenceEast},
		{"East Finals", domainbracket.RoundConferenceFinal, domainbracket.ConferenceEast},
		{"West 1st Round", domainbracket.RoundFirst, domainbracket.ConferenceWest},
		{"West Semifinals", domainbracket.RoundSemifinal, domainbracket.ConferenceWest},
		{"West Finals", domainbracket.RoundConferenceFinal, domainbracket.ConferenceWest},
		{"NBA Finals", domainbracket.RoundChampionship, domainbracket.ConferenceNone},
	}
}

func (h *HeadlineClassifier) Classify(g games.Game) (Classification, bool) {
	for _, rule := range h.rules {
		if strings.Contains(g.Headline, rule.Substr) {
			return Classification{Round: rule.Round, Conference: rule.Conference}, true
		}
	}
	return Classification{}, false
}

// stageRule maps the known label spellings of one stage to its round.
// Stage labels vary across competitions and seasons ("Round of 16",
// "1/8-Finals", "Rd of 16"), so each round carries an ordered list of exact
// labels tried before looser substring fallbacks.
type stageRule struct {
	round      domainbracket.Round
	exact      []string
	substrings []string
}

func knockoutStageRules() []stageRule {
	return []stageRule{
		{
			round: domainbracket.RoundKnockoutPlayoff,
			exact: []string{"Knockout Round Playoffs"},
		},
		{
			round: domainbracket.RoundOf16,
			exact: []string{
				"Round of 16",
				"1/8-Finals",
				"Rd of 16",
				"Round of 16 Finals",
				"Knockout Stage Round of 16",
			},
			substrings: []string{"round of 16", "1/8"},
		},
		{
			round:      domainbracket.RoundQuarterfinal,
			exact:      []string{"Quarterfinals", "Quarter-finals"},
			substrings: []string{"quarter"},
		},
		{
			round:      domainbracket.RoundSemifinal,
			exact:      []string{"Semifinals", "Semi-finals"},
			substrings: []string{"semi"},
		},
		{
			round: domainbracket.RoundChampionship,
			exact: []string{"Final"},
		},
	}
}

// CalendarClassifier assigns rounds by stage date-range membership using a
// fetched stage calendar instead of headline text.
type CalendarClassifier struct {
	ranges []stageRange
}

type stageRange struct {
	round domainbracket.Round
	stage domainbracket.Stage
}

// NewCalendarClassifier resolves each known stage against the calendar.
// Stages absent from the calendar are skipped; games falling in no resolved
// range are left for the rest of the chain.
func NewCalendarClassifier(calendar []domainbracket.Stage) *CalendarClassifier {
	c := &CalendarClassifier{}
	for _, rule := range knockoutStageRules() {
		if stage, ok := findStage(calendar, rule); ok {
			c.ranges = append(c.ranges, stageRange{round: rule.round, stage: stage})
		}
	}
	return c
}

func findStage(calendar []domainbracket.Stage, rule stageRule) (domainbracket.Stage, bool) {
	for _, label := range rule.exact {
		for _, stage := range calendar {
			if stage.Label == label {
				return stage, true
			}
		}
	}
	for _, sub := range rule.substrings {
		for _, stage := range calendar {
			if strings.Contains(strings.ToLower(stage.Label), sub) {
				return stage, true
			}
		}
	}
	return domainbracket.Stage{}, false
}

func (c *CalendarClassifier) Classify(g games.Game) (Classification, bool) {
	for _, r := range c.ranges {
		if !g.Date.Before(r.stage.Start) && !g.Date.After(r.stage.End) {
			return Classification{Round: r.round}, true
		}
	}
	return Classification{}, false
}
