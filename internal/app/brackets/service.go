package brackets

import (
	"sort"

	domainbracket "bracket-service/internal/domain/bracket"
)

// Store defines the read contract over published snapshots.
type Store interface {
	Snapshot(view string) (*domainbracket.Snapshot, bool)
	Views() []string
}

// Service is the read side the HTTP layer consumes. It never builds or
// mutates snapshots, only serves whatever the pollers last published.
type Service struct {
	store Store
}

// NewService constructs a Service with the provided Store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Snapshots returns every published snapshot, ordered by view name.
func (s *Service) Snapshots() []*domainbracket.Snapshot {
	views := s.store.Views()
	sort.Strings(views)

	snapshots := make([]*domainbracket.Snapshot, 0, len(views))
	for _, view := range views {
		if snap, ok := s.store.Snapshot(view); ok {
			snapshots = append(snapshots, snap)
		}
	}
	return snapshots
}

// SnapshotByView returns a single view's snapshot if published.
func (s *Service) SnapshotByView(view string) (*domainbracket.Snapshot, bool) {
	return s.store.Snapshot(view)
}
