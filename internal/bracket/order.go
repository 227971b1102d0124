package bracket

import (
	"sort"

	domainbracket "bracket-service/internal/domain/bracket"
)

// OrderSeries produces the display order of series within a round.
//
// The primary key is the position of the series' min seed in the fixed
// priority list (a canonical broadcast ordering, not ascending numeric
// order). Series whose min seed is not listed sort after every listed one,
// keeping their original relative order. When the primary key does not
// discriminate, the ascending absolute seed difference breaks the tie.
// With an empty priority list the seed difference orders everything, which
// is what conference-grouped rounds use.
//
// The order is recomputed fully on every build; there is no positional
// memory across rebuilds.
func OrderSeries(series []domainbracket.Series, priority []int) []domainbracket.Series {
	out := make([]domainbracket.Series, len(series))
	copy(out, series)

	rank := make(map[int]int, len(priority))
	for i, seed := range priority {
		rank[seed] = i
	}
	unlisted := len(priority)

	priorityOf := func(s domainbracket.Series) int {
		if i, ok := rank[s.MinSeed()]; ok {
			return i
		}
		return unlisted
	}

	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := priorityOf(out[i]), priorityOf(out[j])
		if pi != pj {
			return pi < pj
		}
		if pi == unlisted && len(priority) > 0 {
			// Both unlisted: original relative order (stable sort).
			return false
		}
		return out[i].SeedDiff() < out[j].SeedDiff()
	})
	return out
}
