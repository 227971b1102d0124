package bracket

import (
	"log/slog"
	"sort"
	"time"

	domainbracket "bracket-service/internal/domain/bracket"
	"bracket-service/internal/domain/games"
	"bracket-service/internal/domain/teams"
	"bracket-service/internal/logging"
	"bracket-service/internal/metrics"
)

// Mode selects which aggregation pipeline a view runs.
type Mode int

const (
	// ModeBestOf infers per-round win records from the feed's record
	// strings and decides the series at a wins target.
	ModeBestOf Mode = iota
	// ModeTwoLegged sums scores across legs and breaks level aggregates
	// by shootout.
	ModeTwoLegged
)

// Config is the static per-view pipeline configuration. Everything here is
// fixed at construction; the engine carries no other tunables.
type Config struct {
	View         string
	Mode         Mode
	Keying       KeyMode
	WinsTarget   int
	SeedPriority []int
	Pairings     []PairingRange
	Classifiers  ClassifierChain
}

// Engine rebuilds one view's bracket snapshot from raw feed input. Each view
// owns its own engine instance; the change-detector state and last snapshot
// live on the instance, never in package globals. Engines are not safe for
// concurrent use; the poller serializes calls.
type Engine struct {
	cfg      Config
	detector ChangeDetector
	last     *domainbracket.Snapshot
	logger   *slog.Logger
	recorder *metrics.Recorder
}

func NewEngine(cfg Config, logger *slog.Logger, recorder *metrics.Recorder) *Engine {
	return &Engine{cfg: cfg, logger: logger, recorder: recorder}
}

// Input is one poll cycle's worth of upstream data.
type Input struct {
	// Payload is the raw scoreboard body; its hash gates the rebuild.
	Payload []byte
	Games   []games.Game
	// Rankings enrich teams with seeds before grouping. May be empty when
	// the standings fetch failed; the build proceeds without seeds.
	Rankings []teams.Ranking
	// Calendar feeds the date-range classifier in two-legged mode.
	Calendar []domainbracket.Stage
}

// Rebuild runs the full pipeline when the payload changed since the last
// call, returning the fresh snapshot and true. An unchanged payload returns
// the previous snapshot and false without touching the pipeline. The first
// call always builds.
func (e *Engine) Rebuild(in Input) (*domainbracket.Snapshot, bool) {
	changed, hash := e.detector.Check(in.Payload)
	if !changed {
		e.recorder.RecordRebuildSkipped(e.cfg.View)
		return e.last, false
	}

	start := time.Now()
	snap := e.build(in, hash)
	e.recorder.RecordRebuild(e.cfg.View, time.Since(start), nil)

	e.last = snap
	return snap, true
}

// Last returns the most recently built snapshot, nil before the first build.
func (e *Engine) Last() *domainbracket.Snapshot {
	return e.last
}

// Reset clears the change-detector state and last snapshot, forcing the
// next Rebuild to run the pipeline. Used when the season window rolls over.
func (e *Engine) Reset() {
	e.detector.Reset()
	e.last = nil
}

func (e *Engine) build(in Input, hash int32) *domainbracket.Snapshot {
	classifier := e.cfg.Classifiers
	if len(in.Calendar) > 0 {
		// The calendar classifier resolves stage ranges per build; it goes
		// ahead of any static rules for this view.
		classifier = append(ClassifierChain{NewCalendarClassifier(in.Calendar)}, classifier...)
	}

	enriched := applyRankings(in.Games, in.Rankings)

	buckets, order := bucketByClassification(enriched, classifier)

	snap := &domainbracket.Snapshot{
		View:    e.cfg.View,
		Hash:    hash,
		BuiltAt: time.Now().UTC(),
	}

	dropped := 0
	for _, cls := range order {
		series, d := GroupGames(buckets[cls], e.cfg.Keying, e.logger)
		dropped += d

		for i := range series {
			series[i].Round = cls.Round
			series[i].Conference = cls.Conference
			e.aggregate(&series[i])
		}
		series = OrderSeries(series, e.cfg.SeedPriority)

		if cls.Round == domainbracket.RoundUnclassified {
			snap.Unclassified = append(snap.Unclassified, series...)
			continue
		}
		snap.Rounds = append(snap.Rounds, domainbracket.RoundGroup{
			Round:      cls.Round,
			Conference: cls.Conference,
			Series:     series,
		})
	}

	if len(e.cfg.Pairings) > 0 {
		e.assignPairings(snap)
	}

	if dropped > 0 {
		e.recorder.RecordDroppedGames(e.cfg.View, dropped)
	}
	if n := len(snap.Unclassified); n > 0 {
		e.recorder.RecordUnclassified(e.cfg.View, n)
		logging.Warn(e.logger, "series left unclassified",
			logging.FieldView, e.cfg.View, logging.FieldCount, n)
	}
	return snap
}

func (e *Engine) aggregate(s *domainbracket.Series) {
	switch e.cfg.Mode {
	case ModeTwoLegged:
		AggregateTwoLegged(s)
	default:
		AggregateBestOf(s, e.cfg.WinsTarget)
	}
}

func (e *Engine) assignPairings(snap *domainbracket.Snapshot) {
	playoff := snap.SeriesFor(domainbracket.RoundKnockoutPlayoff, domainbracket.ConferenceNone)
	snap.Pairings = AssignPairings(playoff, e.cfg.Pairings)
	LinkNextRound(snap.Pairings, snap.SeriesFor(domainbracket.RoundOf16, domainbracket.ConferenceNone))
}

// applyRankings copies the game list with each team's seed and rank filled
// from the standings index. Teams absent from the standings keep whatever
// the scoreboard reported (usually zero). A team with a rank but no seed
// uses the rank as its seed, which is how league-phase draws are keyed.
func applyRankings(gameList []games.Game, rankings []teams.Ranking) []games.Game {
	if len(rankings) == 0 {
		return gameList
	}
	idx := teams.RankingIndex(rankings)

	out := make([]games.Game, len(gameList))
	copy(out, gameList)
	for i := range out {
		enrichTeam(&out[i].HomeTeam, idx)
		enrichTeam(&out[i].AwayTeam, idx)
	}
	return out
}

func enrichTeam(t *teams.Team, idx map[string]teams.Ranking) {
	r, ok := idx[t.ID]
	if !ok {
		return
	}
	if r.Seed > 0 {
		t.Seed = r.Seed
	}
	if r.Rank > 0 {
		t.Rank = r.Rank
		if t.Seed == 0 {
			t.Seed = r.Rank
		}
	}
}

// bucketByClassification splits games by their assigned round before
// grouping, so the same two teams meeting in different rounds never merge
// into one series. The bucket order is the round display order.
func bucketByClassification(gameList []games.Game, classifier ClassifierChain) (map[Classification][]games.Game, []Classification) {
	buckets := make(map[Classification][]games.Game)
	for _, g := range gameList {
		cls := classifier.Classify(g)
		buckets[cls] = append(buckets[cls], g)
	}

	order := make([]Classification, 0, len(buckets))
	for cls := range buckets {
		order = append(order, cls)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].Round != order[j].Round {
			return order[i].Round < order[j].Round
		}
		return order[i].Conference < order[j].Conference
	})
	return buckets, order
}
