package overlay

import (
	"sync"

	"github.com/sylar-lab/sharks-backend-go/internal/models"
)

// State holds everything one dashboard session displays: the current
// overlay (nil when no valid overlay exists), the loaded point dataset,
// the simulated productivity surface, and the generation counter. The
// refresh controller owns all mutation; everything else reads snapshots.
//
// State is either Empty (no overlay, generation unchanged since the last
// success) or Ready (overlay present). All fields touched by a refresh
// are replaced together under the mutex, never one at a time, so a
// concurrent reader can never observe an overlay whose grid does not
// match the parameters that produced it.
type State struct {
	mu           sync.Mutex
	overlay      *models.Overlay
	points       []models.GeoPoint
	summary      models.DatasetSummary
	productivity []models.ProductivityPoint
	generation   uint64
}

// NewState creates an Empty state with generation 0
func NewState() *State {
	return &State{}
}

// Overlay returns the current overlay, or false when the state is Empty
func (s *State) Overlay() (*models.Overlay, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overlay == nil {
		return nil, false
	}
	return s.overlay, true
}

// Points returns the currently loaded point dataset in source order
func (s *State) Points() []models.GeoPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.points
}

// DatasetSummary returns the summary of the current point dataset
func (s *State) DatasetSummary() models.DatasetSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// Productivity returns the current simulated productivity points
func (s *State) Productivity() []models.ProductivityPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productivity
}

// Generation returns the generation of the last successful refresh
func (s *State) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// apply swaps the refresh outcome in as a single unit and returns the
// resulting generation. A nil overlay clears the state to Empty without
// advancing the generation; a non-nil overlay is stamped with the next
// generation here, under the same lock as the swap, so two concurrent
// refreshes can never both observe the old counter and stamp the same
// value.
func (s *State) apply(ov *models.Overlay, points []models.GeoPoint, summary models.DatasetSummary, prod []models.ProductivityPoint) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ov != nil {
		s.generation++
		ov.Generation = s.generation
	}
	s.overlay = ov
	s.points = points
	s.summary = summary
	s.productivity = prod
	return s.generation
}
