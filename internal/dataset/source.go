package dataset

import (
	"fmt"

	"github.com/sylar-lab/sharks-backend-go/internal/models"
	"github.com/sylar-lab/sharks-backend-go/internal/spatial"
)

// MaxPoints caps how many observations one refresh will hold. Sources
// keep the first MaxPoints rows in source order and report the true
// total so the caller can surface a truncation notice.
const MaxPoints = 1000

// Source reads the observed shark locations for one refresh cycle.
type Source interface {
	// Load returns at most MaxPoints points in source order, along with
	// the total count of usable rows before the cap was applied. Rows a
	// source cannot parse are skipped and excluded from the total, so
	// total > len(points) always means the cap cut usable data, never
	// that the source contained junk rows.
	Load() (points []models.GeoPoint, total int, err error)
}

// UnavailableError means the point dataset could not be read: the file
// or table is missing, unreadable, or lacks the latitude/longitude
// columns. The refresh degrades to an empty dataset rather than failing.
type UnavailableError struct {
	Cause error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("could not load shark locations: %v", e.Cause)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// Summarize builds the dataset summary for the renderer: counts,
// truncation flag, and the great-circle diagonal of the points' extent.
func Summarize(points []models.GeoPoint, total int) models.DatasetSummary {
	s := models.DatasetSummary{
		Count:       len(points),
		SourceCount: total,
		Truncated:   total > len(points),
	}
	if len(points) < 2 {
		return s
	}

	minLat, maxLat := points[0].Lat, points[0].Lat
	minLon, maxLon := points[0].Lon, points[0].Lon
	for _, p := range points[1:] {
		if p.Lat < minLat {
			minLat = p.Lat
		}
		if p.Lat > maxLat {
			maxLat = p.Lat
		}
		if p.Lon < minLon {
			minLon = p.Lon
		}
		if p.Lon > maxLon {
			maxLon = p.Lon
		}
	}
	s.ExtentMeters = spatial.HaversineDistance(minLat, minLon, maxLat, maxLon)
	return s
}
