package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"bracket-service/internal/bracket"
	domainbracket "bracket-service/internal/domain/bracket"
	"bracket-service/internal/domain/teams"
	"bracket-service/internal/logging"
	"bracket-service/internal/metrics"
	"bracket-service/internal/providers"
	"bracket-service/internal/store"
	"bracket-service/internal/timeutil"
)

const defaultInterval = 10 * time.Second

// Config describes what one view's poll cycle fetches.
type Config struct {
	View         string
	League       string
	StandingsKey string

	// CalendarStage, when set, bounds the scoreboard fetch by the named
	// calendar stage's start date through the end of the calendar.
	CalendarStage string

	// SeasonWindowStart/End (MMDD) bound the scoreboard fetch to a fixed
	// yearly window for views without a usable calendar.
	SeasonWindowStart string
	SeasonWindowEnd   string

	Interval time.Duration
	Provider string // provider name for metrics
}

// Poller drives one bracket view: fetch, rebuild, publish, on an interval.
// Ticks are serialized; a tick that outlives its interval delays the next
// one rather than overlapping it.
type Poller struct {
	cfg      Config
	provider providers.BracketProvider
	engine   *bracket.Engine
	store    *store.SnapshotStore
	logger   *slog.Logger
	metrics  *metrics.Recorder
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not
// failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(cfg Config, provider providers.BracketProvider, engine *bracket.Engine, snapshots *store.SnapshotStore, logger *slog.Logger, recorder *metrics.Recorder) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	return &Poller{
		cfg:      cfg,
		provider: provider,
		engine:   engine,
		store:    snapshots,
		logger:   logger,
		metrics:  recorder,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.cfg.Interval)

	go func() {
		p.logInfo("poller started",
			logging.FieldView, p.cfg.View,
			logging.FieldDurationMS, p.cfg.Interval.Milliseconds(),
		)
		// Initial fetch to warm the snapshot on boot.
		p.fetchOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				p.logInfo("poller stopped", logging.FieldView, p.cfg.View)
				return
			case <-p.done:
				p.stopTicker()
				p.logInfo("poller stopped", logging.FieldView, p.cfg.View)
				return
			case <-p.ticker.C:
				p.fetchOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// fetchOnce runs one full cycle. The generation is reserved before any
// fetch starts, so even if cycles ever raced, a stale result could not
// overwrite a newer published snapshot.
func (p *Poller) fetchOnce(ctx context.Context) {
	start := p.now()
	p.recordAttempt(start)
	generation := p.store.NextGen(p.cfg.View)

	calendar := p.fetchCalendar(ctx)
	dates := p.dateRange(calendar)

	var (
		scoreboard providers.ScoreboardResult
		rankings   []teams.Ranking
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		scoreboard, err = p.fetchScoreboard(gctx, dates)
		return err
	})
	g.Go(func() error {
		// Standings failures degrade to an unseeded build, never a lost
		// cycle.
		rankings = p.fetchStandings(gctx)
		return nil
	})
	err := g.Wait()

	if p.metrics != nil {
		p.metrics.RecordPollerCycle(p.cfg.View, time.Since(start), err)
	}
	if err != nil {
		p.logError("poller fetch failed", err,
			logging.FieldView, p.cfg.View,
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
		p.recordFailure(err, start)
		return
	}

	if scoreboard.Dropped > 0 {
		p.metrics.RecordDroppedGames(p.cfg.View, scoreboard.Dropped)
	}

	snap, rebuilt := p.engine.Rebuild(bracket.Input{
		Payload:  scoreboard.Raw,
		Games:    scoreboard.Games,
		Rankings: rankings,
		Calendar: calendar,
	})
	if snap != nil {
		p.store.SetSnapshot(p.cfg.View, snap, generation)
	}

	p.recordSuccess(start)
	if rebuilt {
		p.logInfo("bracket rebuilt",
			logging.FieldView, p.cfg.View,
			logging.FieldCount, len(scoreboard.Games),
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
	}
}

func (p *Poller) fetchScoreboard(ctx context.Context, dates string) (providers.ScoreboardResult, error) {
	start := p.now()
	result, err := p.provider.FetchScoreboard(ctx, p.cfg.League, dates)
	p.metrics.RecordProviderAttempt(p.cfg.Provider, time.Since(start), err)
	return result, err
}

func (p *Poller) fetchStandings(ctx context.Context) []teams.Ranking {
	start := p.now()
	rankings, err := p.provider.FetchStandings(ctx, p.cfg.StandingsKey)
	p.metrics.RecordProviderAttempt(p.cfg.Provider, time.Since(start), err)
	if err != nil {
		p.logWarn("standings fetch failed, building unseeded",
			logging.FieldView, p.cfg.View, "err", err)
		return nil
	}
	return rankings
}

func (p *Poller) fetchCalendar(ctx context.Context) []domainbracket.Stage {
	if p.cfg.CalendarStage == "" {
		return nil
	}
	start := p.now()
	calendar, err := p.provider.FetchCalendar(ctx, p.cfg.League)
	p.metrics.RecordProviderAttempt(p.cfg.Provider, time.Since(start), err)
	if err != nil {
		p.logWarn("calendar fetch failed, classifying without stages",
			logging.FieldView, p.cfg.View, "err", err)
		return nil
	}
	return calendar
}

// dateRange resolves the scoreboard date filter: the fixed season window
// when configured, otherwise the named calendar stage's start through the
// end of the calendar. Empty means "current scoreboard".
func (p *Poller) dateRange(calendar []domainbracket.Stage) string {
	if p.cfg.SeasonWindowStart != "" && p.cfg.SeasonWindowEnd != "" {
		year := p.now().UTC().Year()
		return fmt.Sprintf("%d%s-%d%s", year, p.cfg.SeasonWindowStart, year, p.cfg.SeasonWindowEnd)
	}

	if p.cfg.CalendarStage != "" {
		var start, end time.Time
		for _, stage := range calendar {
			if stage.Label == p.cfg.CalendarStage {
				start = stage.Start
			}
			if stage.End.After(end) {
				end = stage.End
			}
		}
		if !start.IsZero() && end.After(start) {
			return timeutil.CompactRange(start, end)
		}
	}
	return ""
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) logInfo(msg string, args ...any) {
	logging.Info(p.logger, msg, args...)
}

func (p *Poller) logWarn(msg string, args ...any) {
	logging.Warn(p.logger, msg, args...)
}

func (p *Poller) logError(msg string, err error, args ...any) {
	logging.Error(p.logger, msg, err, args...)
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}
