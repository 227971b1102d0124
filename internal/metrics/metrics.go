package metrics

import (
	"sync"
	"time"
)

type viewStats struct {
	providerCalls  int
	providerErrors int
	rebuilds       int
	rebuildSkips   int
	droppedGames   int
	unclassified   int
	lastLatency    time.Duration
}

// Recorder captures lightweight, in-memory metrics about the bracket
// pipeline. It is nil-safe so components can run without telemetry wired.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*viewStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*viewStats),
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for an upstream fetch and stores
// the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.statsLocked(provider)
	stats.providerCalls++
	stats.lastLatency = duration
	if err != nil {
		stats.providerErrors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRebuild tracks one bracket rebuild for a view.
func (r *Recorder) RecordRebuild(view string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.statsLocked(view).rebuilds++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRebuild(view, duration, err)
	}
}

// RecordRebuildSkipped tracks a tick short-circuited by the change detector.
func (r *Recorder) RecordRebuildSkipped(view string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.statsLocked(view).rebuildSkips++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRebuildSkipped(view)
	}
}

// RecordDroppedGames tracks games dropped for missing competitor data.
func (r *Recorder) RecordDroppedGames(view string, count int) {
	if r == nil || count <= 0 {
		return
	}
	r.mu.Lock()
	r.statsLocked(view).droppedGames += count
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordDroppedGames(view, count)
	}
}

// RecordUnclassified tracks series left in the unclassified bucket.
func (r *Recorder) RecordUnclassified(view string, count int) {
	if r == nil || count <= 0 {
		return
	}
	r.mu.Lock()
	r.statsLocked(view).unclassified += count
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordUnclassified(view, count)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(view string, duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(view, duration, err)
}

// Snapshot is a copy of the current in-memory stats for a provider or view.
type Snapshot struct {
	ProviderCalls  int
	ProviderErrors int
	Rebuilds       int
	RebuildSkips   int
	DroppedGames   int
	Unclassified   int
	LastLatency    time.Duration
}

func (r *Recorder) Snapshot(key string) Snapshot {
	if r == nil {
		return Snapshot{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[key]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		ProviderCalls:  stats.providerCalls,
		ProviderErrors: stats.providerErrors,
		Rebuilds:       stats.rebuilds,
		RebuildSkips:   stats.rebuildSkips,
		DroppedGames:   stats.droppedGames,
		Unclassified:   stats.unclassified,
		LastLatency:    stats.lastLatency,
	}
}

func (r *Recorder) statsLocked(key string) *viewStats {
	stats, ok := r.stats[key]
	if !ok {
		stats = &viewStats{}
		r.stats[key] = stats
	}
	return stats
}
