package overlay

import (
	"fmt"
	"log"

	"github.com/sylar-lab/sharks-backend-go/internal/dataset"
	"github.com/sylar-lab/sharks-backend-go/internal/models"
	"github.com/sylar-lab/sharks-backend-go/internal/predict"
	"github.com/sylar-lab/sharks-backend-go/internal/productivity"
	"github.com/sylar-lab/sharks-backend-go/internal/spatial"
)

// RefreshParams are the tunables one refresh runs at. Any change in
// parameters simply runs a full recompute at the new values; nothing is
// diffed against the previous refresh.
type RefreshParams struct {
	LatRes      int
	LonRes      int
	SampleCount int
}

// Result reports the outcome of one refresh
type Result struct {
	Generation       uint64                `json:"generation"`
	OverlayAvailable bool                  `json:"overlay_available"`
	Stats            *models.OverlayStats  `json:"stats,omitempty"`
	Dataset          models.DatasetSummary `json:"dataset"`
	Warnings         []string              `json:"warnings"`
}

// Controller runs refresh cycles against a session's State. It owns the
// State's contents exclusively: a refresh either swaps in a complete new
// overlay (generation +1) or clears the overlay to unavailable, never a
// partial update. The controller itself is stateless and shared across
// sessions.
type Controller struct {
	box     models.BoundingBox
	invoker *predict.Invoker
	source  dataset.Source
	sim     *productivity.Simulator
}

// NewController creates a refresh controller. box is the model's
// training bounding box; every overlay is computed over it.
func NewController(box models.BoundingBox, invoker *predict.Invoker, source dataset.Source, sim *productivity.Simulator) *Controller {
	return &Controller{box: box, invoker: invoker, source: source, sim: sim}
}

// Refresh reloads the point dataset and recomputes the overlay at the
// given parameters, then swaps the outcome into state as one unit.
//
// An invalid grid spec fails the whole refresh up front and leaves state
// untouched. Dataset and overlay failures degrade independently: each
// turns into a warning on the Result while the other feed still updates.
func (c *Controller) Refresh(state *State, params RefreshParams) (*Result, error) {
	spec := models.GridSpec{LatRes: params.LatRes, LonRes: params.LonRes, Box: c.box}

	// Fail fast, before any dataset or model work is spent
	grid, err := spatial.BuildGrid(spec)
	if err != nil {
		return nil, err
	}

	var warnings []string

	points, total, err := c.source.Load()
	if err != nil {
		log.Printf("[RefreshController] Dataset load failed: %v", err)
		warnings = append(warnings, err.Error())
		points, total = nil, 0
	}
	summary := dataset.Summarize(points, total)
	if summary.Truncated {
		warnings = append(warnings, fmt.Sprintf(
			"dataset has %d shark locations; showing only the first %d for performance",
			summary.SourceCount, summary.Count))
	}

	prod := c.sim.Generate()

	entries, err := c.invoker.PredictOverlay(grid, c.box, params.SampleCount)
	if err != nil {
		log.Printf("[RefreshController] Prediction failed: %v", err)
		warnings = append(warnings, fmt.Sprintf("model prediction not available: %v", err))

		// Clear to Empty: the old overlay no longer matches the
		// requested parameters and must not be shown as current
		gen := state.apply(nil, points, summary, prod)
		return &Result{
			Generation:       gen,
			OverlayAvailable: false,
			Dataset:          summary,
			Warnings:         warnings,
		}, nil
	}

	// The generation is stamped by apply, inside the state's lock
	ov := &models.Overlay{
		Spec:    spec,
		Entries: entries,
	}
	state.apply(ov, points, summary, prod)

	stats := ComputeStats(ov)
	log.Printf("[RefreshController] Refresh complete: generation=%d, grid=%dx%d, rate min=%.3g max=%.3g mean=%.3g nonzero=%d/%d",
		ov.Generation, spec.LatRes, spec.LonRes,
		stats.MinRate, stats.MaxRate, stats.MeanRate, stats.NonzeroCount, stats.EntryCount)

	return &Result{
		Generation:       ov.Generation,
		OverlayAvailable: true,
		Stats:            &stats,
		Dataset:          summary,
		Warnings:         warnings,
	}, nil
}
