package overlay

import (
	"github.com/sylar-lab/sharks-backend-go/internal/models"
	"github.com/sylar-lab/sharks-backend-go/internal/spatial"
)

// ComputeStats summarizes an overlay's rates and lattice spacing. The
// spacing is measured at the bounding-box center and is meant as a
// radius hint for the heatmap renderer.
func ComputeStats(ov *models.Overlay) models.OverlayStats {
	s := models.OverlayStats{EntryCount: len(ov.Entries)}
	if len(ov.Entries) == 0 {
		return s
	}

	s.MinRate = ov.Entries[0].Rate
	s.MaxRate = ov.Entries[0].Rate
	sum := 0.0
	for _, e := range ov.Entries {
		if e.Rate < s.MinRate {
			s.MinRate = e.Rate
		}
		if e.Rate > s.MaxRate {
			s.MaxRate = e.Rate
		}
		if e.Rate != 0 {
			s.NonzeroCount++
		}
		sum += e.Rate
	}
	s.MeanRate = sum / float64(len(ov.Entries))

	box := ov.Spec.Box
	midLat := (box.MinLat + box.MaxLat) / 2
	midLon := (box.MinLon + box.MaxLon) / 2
	latStep := (box.MaxLat - box.MinLat) / float64(ov.Spec.LatRes-1)
	lonStep := (box.MaxLon - box.MinLon) / float64(ov.Spec.LonRes-1)
	s.CellLatMeters = spatial.HaversineDistance(midLat-latStep/2, midLon, midLat+latStep/2, midLon)
	s.CellLonMeters = spatial.HaversineDistance(midLat, midLon-lonStep/2, midLat, midLon+lonStep/2)

	return s
}
