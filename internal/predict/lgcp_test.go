package predict

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, art lgcpArtifact) string {
	t.Helper()
	data, err := json.Marshal(art)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "sparse_lgcp.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func validArtifact() lgcpArtifact {
	return lgcpArtifact{
		Intercept:   -1.0,
		Centers:     [][3]float64{{0.2, 0.3, 1.0}, {0.7, 0.6, 1.0}},
		Weights:     []float64{1.5, 0.8},
		LengthScale: 0.25,
		NoiseScale:  0.1,
		Alpha:       0.9,
	}
}

func TestLoadSparseLGCP(t *testing.T) {
	t.Run("loads a valid artifact", func(t *testing.T) {
		model, err := LoadSparseLGCP(writeArtifact(t, validArtifact()))
		require.NoError(t, err)
		assert.NotNil(t, model)
	})

	t.Run("fails on missing file", func(t *testing.T) {
		_, err := LoadSparseLGCP(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
	})

	t.Run("fails on malformed JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
		_, err := LoadSparseLGCP(path)
		require.Error(t, err)
	})

	t.Run("fails on weight/center mismatch", func(t *testing.T) {
		art := validArtifact()
		art.Weights = art.Weights[:1]
		_, err := LoadSparseLGCP(writeArtifact(t, art))
		require.Error(t, err)
	})

	t.Run("fails on non-positive length scale", func(t *testing.T) {
		art := validArtifact()
		art.LengthScale = 0
		_, err := LoadSparseLGCP(writeArtifact(t, art))
		require.Error(t, err)
	})
}

func TestSparseLGCPPredictRate(t *testing.T) {
	coords := [][3]float64{{0.1, 0.1, 1.0}, {0.5, 0.5, 1.0}, {0.9, 0.9, 1.0}}

	t.Run("returns one rate band per coordinate", func(t *testing.T) {
		model, err := LoadSparseLGCP(writeArtifact(t, validArtifact()))
		require.NoError(t, err)

		mean, lower, upper, err := model.PredictRate(coords, 200, true)
		require.NoError(t, err)
		assert.Len(t, mean, 3)
		assert.Len(t, lower, 3)
		assert.Len(t, upper, 3)
	})

	t.Run("rates are positive with ordered uncertainty bands", func(t *testing.T) {
		model, err := LoadSparseLGCP(writeArtifact(t, validArtifact()))
		require.NoError(t, err)

		mean, lower, upper, err := model.PredictRate(coords, 200, true)
		require.NoError(t, err)
		for i := range mean {
			assert.Greater(t, mean[i], 0.0)
			assert.LessOrEqual(t, lower[i], upper[i])
		}
	})

	t.Run("rejects non-positive sample counts", func(t *testing.T) {
		model, err := LoadSparseLGCP(writeArtifact(t, validArtifact()))
		require.NoError(t, err)

		_, _, _, err = model.PredictRate(coords, 0, true)
		require.Error(t, err)
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		model, err := LoadSparseLGCP(writeArtifact(t, validArtifact()))
		require.NoError(t, err)

		_, _, _, err = model.PredictRate(nil, 200, true)
		require.Error(t, err)
	})
}
