package service

import (
	"github.com/sylar-lab/sharks-backend-go/internal/models"
	"github.com/sylar-lab/sharks-backend-go/internal/overlay"
)

// MaxMarkers caps how many markers one request may render
const MaxMarkers = 100

// MapService handles business logic for the map dashboard
type MapService struct {
	controller *overlay.Controller
}

// NewMapService creates a new map service
func NewMapService(controller *overlay.Controller) *MapService {
	return &MapService{controller: controller}
}

// Refresh recomputes the session's overlay and reloads its dataset
func (s *MapService) Refresh(state *overlay.State, params overlay.RefreshParams) (*overlay.Result, error) {
	return s.controller.Refresh(state, params)
}

// Overlay returns the session's current overlay, or false when Empty
func (s *MapService) Overlay(state *overlay.State) (*models.Overlay, bool) {
	return state.Overlay()
}

// Stats summarizes the session's current overlay, or false when Empty
func (s *MapService) Stats(state *overlay.State) (*models.OverlayStats, bool) {
	ov, ok := state.Overlay()
	if !ok {
		return nil, false
	}
	stats := overlay.ComputeStats(ov)
	return &stats, true
}

// Markers returns the most recent limit points of the session's dataset
// as render-ready markers, newest subset in source order with 1-based
// indices
func (s *MapService) Markers(state *overlay.State, limit int) []models.Marker {
	if limit <= 0 || limit > MaxMarkers {
		limit = MaxMarkers
	}

	points := state.Points()
	if len(points) > limit {
		points = points[len(points)-limit:]
	}

	markers := make([]models.Marker, len(points))
	for i, p := range points {
		markers[i] = models.Marker{Index: i + 1, Lat: p.Lat, Lon: p.Lon}
	}
	return markers
}

// Productivity returns the session's simulated productivity surface
func (s *MapService) Productivity(state *overlay.State) []models.ProductivityPoint {
	return state.Productivity()
}

// DatasetSummary returns the summary of the session's loaded dataset
func (s *MapService) DatasetSummary(state *overlay.State) models.DatasetSummary {
	return state.DatasetSummary()
}
