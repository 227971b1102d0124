package store

import (
	"sync"

	domainbracket "bracket-service/internal/domain/bracket"
)

// SnapshotStore keeps the latest bracket snapshot per view, guarded by a
// fetch-start generation counter. Publication order follows the order
// fetches began, so a slow cycle that finishes after a newer one cannot
// clobber the newer snapshot.
type SnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string]*entry
}

type entry struct {
	snapshot   *domainbracket.Snapshot
	generation uint64
	nextGen    uint64
}

// NewSnapshotStore constructs an empty SnapshotStore.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{snapshots: make(map[string]*entry)}
}

// NextGen reserves the next generation number for a view. Call it when a
// fetch cycle starts and pass the value to SetSnapshot on commit.
func (s *SnapshotStore) NextGen(view string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entryLocked(view)
	e.nextGen++
	return e.nextGen
}

// SetSnapshot publishes a snapshot for the generation that produced it.
// Returns false without storing when a newer generation already published.
func (s *SnapshotStore) SetSnapshot(view string, snap *domainbracket.Snapshot, generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entryLocked(view)
	if generation < e.generation {
		return false
	}
	e.snapshot = snap
	e.generation = generation
	return true
}

// Snapshot returns the latest published snapshot for a view; nil and false
// before the first publication.
func (s *SnapshotStore) Snapshot(view string) (*domainbracket.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.snapshots[view]
	if !ok || e.snapshot == nil {
		return nil, false
	}
	return e.snapshot, true
}

// Views lists the views holding a published snapshot.
func (s *SnapshotStore) Views() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]string, 0, len(s.snapshots))
	for view, e := range s.snapshots {
		if e.snapshot != nil {
			views = append(views, view)
		}
	}
	return views
}

func (s *SnapshotStore) entryLocked(view string) *entry {
	e, ok := s.snapshots[view]
	if !ok {
		e = &entry{}
		s.snapshots[view] = e
	}
	return e
}
