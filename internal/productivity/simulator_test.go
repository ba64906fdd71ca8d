package productivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimulatorGenerate(t *testing.T) {
	t.Run("draws the configured number of points", func(t *testing.T) {
		points := NewSimulator(25).Generate()
		assert.Len(t, points, 25)
	})

	t.Run("zero count falls back to the default", func(t *testing.T) {
		points := NewSimulator(0).Generate()
		assert.Len(t, points, DefaultPointCount)
	})

	t.Run("points stay inside the simulated ocean band", func(t *testing.T) {
		for _, p := range NewSimulator(200).Generate() {
			assert.GreaterOrEqual(t, p.Lat, -60.0)
			assert.LessOrEqual(t, p.Lat, 60.0)
			assert.GreaterOrEqual(t, p.Lon, -180.0)
			assert.LessOrEqual(t, p.Lon, 180.0)
		}
	})

	t.Run("productivity is clipped at zero", func(t *testing.T) {
		for _, p := range NewSimulator(500).Generate() {
			assert.GreaterOrEqual(t, p.Productivity, 0.0)
		}
	})
}
