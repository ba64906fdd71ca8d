package predict

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"sort"
	"time"
)

// lgcpArtifact is the on-disk layout of a fitted sparse log-Gaussian Cox
// process: a log-linear basis expansion around inducing points, plus the
// posterior noise scale used for Monte Carlo sampling.
type lgcpArtifact struct {
	Intercept   float64      `json:"intercept"`
	Centers     [][3]float64 `json:"centers"` // Inducing points, (x, y, t) normalized
	Weights     []float64    `json:"weights"` // One per center
	LengthScale float64      `json:"length_scale"`
	NoiseScale  float64      `json:"noise_scale"`
	Alpha       float64      `json:"alpha"` // Regularization shrinkage factor
}

// SparseLGCP evaluates a fitted sparse LGCP artifact
type SparseLGCP struct {
	art lgcpArtifact
	rng *rand.Rand
}

// LoadSparseLGCP reads and validates a model artifact from disk
func LoadSparseLGCP(path string) (*SparseLGCP, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var art lgcpArtifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model artifact: %w", err)
	}
	if len(art.Centers) == 0 {
		return nil, fmt.Errorf("model artifact has no inducing points")
	}
	if len(art.Weights) != len(art.Centers) {
		return nil, fmt.Errorf("model artifact has %d weights for %d centers", len(art.Weights), len(art.Centers))
	}
	if art.LengthScale <= 0 {
		return nil, fmt.Errorf("model artifact has non-positive length scale %g", art.LengthScale)
	}

	log.Printf("[SparseLGCP] Loaded artifact %s: %d inducing points, length_scale=%.4f", path, len(art.Centers), art.LengthScale)

	return &SparseLGCP{
		art: art,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// PredictRate evaluates the latent intensity at each coordinate and
// averages exp(latent + noise) over numSamples Monte Carlo draws. The
// noise draw is shared across the batch within each sample, which is why
// callers must submit the whole grid in one call rather than per point.
func (m *SparseLGCP) PredictRate(coords [][3]float64, numSamples int, alphaRegularization bool) (mean, lower, upper []float64, err error) {
	if numSamples <= 0 {
		return nil, nil, nil, fmt.Errorf("num samples must be positive, got %d", numSamples)
	}
	if len(coords) == 0 {
		return nil, nil, nil, fmt.Errorf("no coordinates to predict")
	}

	latent := make([]float64, len(coords))
	for i, c := range coords {
		latent[i] = m.latentAt(c)
		if alphaRegularization {
			latent[i] *= m.art.Alpha
		}
	}

	mean = make([]float64, len(coords))
	lower = make([]float64, len(coords))
	upper = make([]float64, len(coords))

	samples := make([]float64, numSamples)
	draws := make([]float64, numSamples)
	for s := 0; s < numSamples; s++ {
		draws[s] = m.rng.NormFloat64() * m.art.NoiseScale
	}

	for i := range coords {
		sum := 0.0
		for s := 0; s < numSamples; s++ {
			v := math.Exp(latent[i] + draws[s])
			samples[s] = v
			sum += v
		}
		mean[i] = sum / float64(numSamples)

		sort.Float64s(samples)
		lower[i] = samples[numSamples/20]
		upper[i] = samples[numSamples-1-numSamples/20]
	}

	return mean, lower, upper, nil
}

// latentAt computes the basis expansion at one coordinate
func (m *SparseLGCP) latentAt(c [3]float64) float64 {
	v := m.art.Intercept
	twoL2 := 2 * m.art.LengthScale * m.art.LengthScale
	for i, center := range m.art.Centers {
		dx := c[0] - center[0]
		dy := c[1] - center[1]
		dt := c[2] - center[2]
		d2 := dx*dx + dy*dy + dt*dt
		v += m.art.Weights[i] * math.Exp(-d2/twoL2)
	}
	return v
}

// FileLoader loads a SparseLGCP artifact from a fixed path
type FileLoader struct {
	Path string
}

// Load implements Loader
func (l FileLoader) Load() (RateModel, error) {
	return LoadSparseLGCP(l.Path)
}
