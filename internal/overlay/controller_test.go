package overlay

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sylar-lab/sharks-backend-go/internal/models"
	"github.com/sylar-lab/sharks-backend-go/internal/predict"
	"github.com/sylar-lab/sharks-backend-go/internal/productivity"
	"github.com/sylar-lab/sharks-backend-go/internal/spatial"
)

type stubSource struct {
	mu     sync.Mutex
	points []models.GeoPoint
	total  int
	err    error
	loads  int
}

func (s *stubSource) Load() ([]models.GeoPoint, int, error) {
	s.mu.Lock()
	s.loads++
	s.mu.Unlock()
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.points, s.total, nil
}

func (s *stubSource) loadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

type stubModel struct {
	rate float64
	err  error
}

func (m *stubModel) PredictRate(coords [][3]float64, numSamples int, alphaRegularization bool) ([]float64, []float64, []float64, error) {
	if m.err != nil {
		return nil, nil, nil, m.err
	}
	mean := make([]float64, len(coords))
	for i := range mean {
		mean[i] = m.rate
	}
	return mean, mean, mean, nil
}

type stubLoader struct {
	model predict.RateModel
	err   error
}

func (l stubLoader) Load() (predict.RateModel, error) {
	return l.model, l.err
}

func newTestController(source *stubSource, loader stubLoader) *Controller {
	return NewController(
		models.TrainingBounds(),
		predict.NewInvoker(loader),
		source,
		productivity.NewSimulator(10),
	)
}

func somePoints(n int) []models.GeoPoint {
	points := make([]models.GeoPoint, n)
	for i := range points {
		points[i] = models.GeoPoint{Lat: 10 + float64(i%40), Lon: -90 + float64(i%60)}
	}
	return points
}

func TestRefresh(t *testing.T) {
	params := RefreshParams{LatRes: 2, LonRes: 2, SampleCount: 500}

	t.Run("first refresh produces the four box corners", func(t *testing.T) {
		source := &stubSource{points: somePoints(5), total: 5}
		ctrl := newTestController(source, stubLoader{model: &stubModel{rate: 1.0}})
		state := NewState()

		result, err := ctrl.Refresh(state, params)
		require.NoError(t, err)
		assert.True(t, result.OverlayAvailable)
		assert.Equal(t, uint64(1), result.Generation)
		assert.Empty(t, result.Warnings)

		ov, ok := state.Overlay()
		require.True(t, ok)
		require.Len(t, ov.Entries, 4)

		box := models.TrainingBounds()
		wantPoints := []models.GeoPoint{
			{Lat: box.MinLat, Lon: box.MinLon},
			{Lat: box.MinLat, Lon: box.MaxLon},
			{Lat: box.MaxLat, Lon: box.MinLon},
			{Lat: box.MaxLat, Lon: box.MaxLon},
		}
		for i, e := range ov.Entries {
			assert.Equal(t, wantPoints[i], e.Point)
			assert.Equal(t, 1.0, e.Rate)
		}
	})

	t.Run("each successful refresh advances the generation by one", func(t *testing.T) {
		source := &stubSource{points: somePoints(5), total: 5}
		ctrl := newTestController(source, stubLoader{model: &stubModel{rate: 1.0}})
		state := NewState()

		for want := uint64(1); want <= 3; want++ {
			result, err := ctrl.Refresh(state, params)
			require.NoError(t, err)
			assert.Equal(t, want, result.Generation)
		}
		assert.Equal(t, uint64(3), state.Generation())
	})

	t.Run("prediction failure clears the overlay but keeps the dataset", func(t *testing.T) {
		source := &stubSource{points: somePoints(7), total: 7}
		good := stubLoader{model: &stubModel{rate: 1.0}}
		bad := stubLoader{err: errors.New("pickle corrupted")}

		state := NewState()
		_, err := newTestController(source, good).Refresh(state, params)
		require.NoError(t, err)
		require.Equal(t, uint64(1), state.Generation())

		result, err := newTestController(source, bad).Refresh(state, params)
		require.NoError(t, err)
		assert.False(t, result.OverlayAvailable)
		assert.NotEmpty(t, result.Warnings)

		_, ok := state.Overlay()
		assert.False(t, ok, "overlay must be cleared, not left stale")
		assert.Equal(t, uint64(1), state.Generation(), "failed refresh must not advance the generation")
		assert.Len(t, state.Points(), 7, "dataset load succeeded independently")
	})

	t.Run("recovery after a failed refresh resumes the counter", func(t *testing.T) {
		source := &stubSource{points: somePoints(3), total: 3}
		state := NewState()

		_, err := newTestController(source, stubLoader{model: &stubModel{rate: 1.0}}).Refresh(state, params)
		require.NoError(t, err)
		_, err = newTestController(source, stubLoader{err: errors.New("boom")}).Refresh(state, params)
		require.NoError(t, err)

		result, err := newTestController(source, stubLoader{model: &stubModel{rate: 2.0}}).Refresh(state, params)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), result.Generation)
	})

	t.Run("dataset failure degrades independently of the overlay", func(t *testing.T) {
		source := &stubSource{err: fmt.Errorf("no such file")}
		ctrl := newTestController(source, stubLoader{model: &stubModel{rate: 1.0}})
		state := NewState()

		result, err := ctrl.Refresh(state, params)
		require.NoError(t, err)
		assert.True(t, result.OverlayAvailable, "overlay computation proceeds without the dataset")
		assert.NotEmpty(t, result.Warnings)
		assert.Empty(t, state.Points())

		_, ok := state.Overlay()
		assert.True(t, ok)
	})

	t.Run("truncated dataset surfaces the true count", func(t *testing.T) {
		source := &stubSource{points: somePoints(1000), total: 1500}
		ctrl := newTestController(source, stubLoader{model: &stubModel{rate: 1.0}})
		state := NewState()

		result, err := ctrl.Refresh(state, params)
		require.NoError(t, err)
		assert.True(t, result.Dataset.Truncated)
		assert.Equal(t, 1500, result.Dataset.SourceCount)
		assert.Equal(t, 1000, result.Dataset.Count)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "1500")
		assert.Len(t, state.Points(), 1000)
	})

	t.Run("invalid grid spec fails fast and leaves state untouched", func(t *testing.T) {
		source := &stubSource{points: somePoints(5), total: 5}
		ctrl := newTestController(source, stubLoader{model: &stubModel{rate: 1.0}})
		state := NewState()

		_, err := ctrl.Refresh(state, params)
		require.NoError(t, err)
		loadsBefore := source.loadCount()

		_, err = ctrl.Refresh(state, RefreshParams{LatRes: 1, LonRes: 2, SampleCount: 500})
		var specErr *spatial.InvalidGridSpecError
		require.ErrorAs(t, err, &specErr)

		assert.Equal(t, loadsBefore, source.loadCount(), "no dataset load for a rejected spec")
		_, ok := state.Overlay()
		assert.True(t, ok, "previous overlay survives a rejected refresh")
		assert.Equal(t, uint64(1), state.Generation())
	})

	t.Run("every refresh reloads the dataset and productivity surface", func(t *testing.T) {
		source := &stubSource{points: somePoints(5), total: 5}
		ctrl := newTestController(source, stubLoader{model: &stubModel{rate: 1.0}})
		state := NewState()

		_, err := ctrl.Refresh(state, params)
		require.NoError(t, err)
		_, err = ctrl.Refresh(state, params)
		require.NoError(t, err)

		assert.Equal(t, 2, source.loadCount())
		assert.Len(t, state.Productivity(), 10)
	})

	t.Run("concurrent refreshes never duplicate a generation", func(t *testing.T) {
		source := &stubSource{points: somePoints(5), total: 5}
		ctrl := newTestController(source, stubLoader{model: &stubModel{rate: 1.0}})
		state := NewState()

		const refreshes = 16
		start := make(chan struct{})
		gens := make(chan uint64, refreshes)

		var wg sync.WaitGroup
		for i := 0; i < refreshes; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				result, err := ctrl.Refresh(state, params)
				if err == nil && result.OverlayAvailable {
					gens <- result.Generation
				}
			}()
		}
		close(start)
		wg.Wait()
		close(gens)

		seen := make(map[uint64]bool)
		for g := range gens {
			assert.False(t, seen[g], "generation %d handed out twice", g)
			seen[g] = true
		}
		assert.Len(t, seen, refreshes, "every successful refresh gets its own generation")
		assert.Equal(t, uint64(refreshes), state.Generation())
	})

	t.Run("overlay matches the requested resolution", func(t *testing.T) {
		source := &stubSource{points: nil, total: 0}
		ctrl := newTestController(source, stubLoader{model: &stubModel{rate: 0.25}})
		state := NewState()

		_, err := ctrl.Refresh(state, RefreshParams{LatRes: 4, LonRes: 6, SampleCount: 100})
		require.NoError(t, err)

		ov, ok := state.Overlay()
		require.True(t, ok)
		assert.Equal(t, 4, ov.Spec.LatRes)
		assert.Equal(t, 6, ov.Spec.LonRes)
		assert.Len(t, ov.Entries, 24)
	})
}

func TestComputeStats(t *testing.T) {
	box := models.TrainingBounds()
	ov := &models.Overlay{
		Spec: models.GridSpec{LatRes: 2, LonRes: 2, Box: box},
		Entries: []models.OverlayEntry{
			{Point: models.GeoPoint{Lat: 8, Lon: -98}, Rate: 0},
			{Point: models.GeoPoint{Lat: 8, Lon: -25}, Rate: 2},
			{Point: models.GeoPoint{Lat: 55, Lon: -98}, Rate: 4},
			{Point: models.GeoPoint{Lat: 55, Lon: -25}, Rate: 6},
		},
		Generation: 1,
	}

	stats := ComputeStats(ov)
	assert.Equal(t, 0.0, stats.MinRate)
	assert.Equal(t, 6.0, stats.MaxRate)
	assert.Equal(t, 3.0, stats.MeanRate)
	assert.Equal(t, 3, stats.NonzeroCount)
	assert.Equal(t, 4, stats.EntryCount)
	assert.Greater(t, stats.CellLatMeters, 0.0)
	assert.Greater(t, stats.CellLonMeters, 0.0)
}

func TestStateRead(t *testing.T) {
	t.Run("empty state has no overlay and generation zero", func(t *testing.T) {
		state := NewState()
		_, ok := state.Overlay()
		assert.False(t, ok)
		assert.Equal(t, uint64(0), state.Generation())
		assert.Empty(t, state.Points())
	})

	t.Run("reads do not mutate state", func(t *testing.T) {
		source := &stubSource{points: somePoints(3), total: 3}
		ctrl := newTestController(source, stubLoader{model: &stubModel{rate: 1.0}})
		state := NewState()

		_, err := ctrl.Refresh(state, RefreshParams{LatRes: 2, LonRes: 2, SampleCount: 100})
		require.NoError(t, err)

		first, _ := state.Overlay()
		second, _ := state.Overlay()
		assert.Same(t, first, second)
		assert.Equal(t, uint64(1), state.Generation())
	})
}
