package productivity

import (
	"math"
	"math/rand"

	"github.com/sylar-lab/sharks-backend-go/internal/models"
)

// DefaultPointCount is how many productivity samples each refresh draws
const DefaultPointCount = 40

// Simulator generates the simulated ocean-productivity surface shown
// alongside the prediction overlay. Productivity follows a
// cosine-of-latitude base (higher near the equator) plus Gaussian noise,
// clipped at zero.
type Simulator struct {
	count int
}

// NewSimulator creates a simulator drawing count points per refresh
func NewSimulator(count int) *Simulator {
	if count <= 0 {
		count = DefaultPointCount
	}
	return &Simulator{count: count}
}

// Generate draws a fresh set of productivity points
func (s *Simulator) Generate() []models.ProductivityPoint {
	points := make([]models.ProductivityPoint, s.count)
	for i := range points {
		lat := -60 + rand.Float64()*120
		lon := -180 + rand.Float64()*360
		p := 0.7*math.Cos(lat*math.Pi/180) + 0.1*rand.NormFloat64()
		if p < 0 {
			p = 0
		}
		points[i] = models.ProductivityPoint{Lat: lat, Lon: lon, Productivity: p}
	}
	return points
}
