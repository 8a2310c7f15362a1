// Package analysis orchestrates one full measurement run: background
// crop, two-level thresholding, per-side region growing for fat, femur
// and muscle, the interactive extensor/flexor split and the final area
// report. Seeds and boundary polygons always come from an external
// Digitizer; the analyzer never decides where tissue is, it only grows
// and partitions regions from the supplied starting points.
package analysis

import (
	"fmt"

	"github.com/rs/zerolog"

	"thighcsa/internal/models"
	"thighcsa/pkg/measure"
	"thighcsa/pkg/segment"
)

// Digitizer supplies the externally digitized inputs of a run. All
// calls block until the external actor responds; the pipeline performs
// no other work while waiting. Coordinates are relative to the cropped
// working grid the analyzer presents.
type Digitizer interface {
	// Seed returns one seed coordinate for the given side and tissue.
	Seed(side models.Side, tissue models.Tissue) (models.Seed, error)

	// Polygon returns the boundary polygon separating the flexor
	// compartment from the extensors on the given side.
	Polygon(side models.Side) (models.Polygon, error)

	// Review presents a candidate extensor/flexor split and blocks
	// until the external actor approves (true) or rejects (false) it.
	Review(side models.Side, split Split) (bool, error)
}

// Split is one candidate extensor/flexor partition of a muscle mask.
// The two masks are exact complements within the muscle, so their
// pixel counts always sum to the muscle total.
type Split struct {
	Side     models.Side
	Extensor *models.Mask
	Flexor   *models.Mask
}

// Params configures a run.
type Params struct {
	// Tolerance is the region-growing intensity tolerance on the
	// quantized class grid. The pipeline uses 1 throughout.
	Tolerance int

	// Connectivity selects 4- or 8-neighbor growing.
	Connectivity segment.Connectivity

	// BackgroundMargin is the crop threshold offset above the image
	// minimum.
	BackgroundMargin int

	// UnitPolicy controls how a missing pixel spacing is handled.
	UnitPolicy measure.Policy
}

// DefaultParams returns the parameter set used by the original
// measurement protocol.
func DefaultParams() *Params {
	return &Params{
		Tolerance:        1,
		Connectivity:     segment.Connect4,
		BackgroundMargin: 1,
		UnitPolicy:       measure.Lenient,
	}
}

// Analyzer runs the measurement pipeline. Each run owns its grids and
// masks outright; nothing is shared across concurrent invocations.
type Analyzer struct {
	params *Params
	log    zerolog.Logger
}

// New creates an analyzer with the given parameters and logger.
func New(params *Params, log zerolog.Logger) *Analyzer {
	if params == nil {
		params = DefaultParams()
	}
	return &Analyzer{params: params, log: log}
}

// Process measures both sides of one image and assembles the area
// report. Fatal errors abort the run with no partial report.
func (a *Analyzer) Process(grid *models.Grid, dig Digitizer) (*models.Report, error) {
	// Strict runs fail before any interaction: every area they would
	// produce needs the spacing.
	if a.params.UnitPolicy == measure.Strict && grid.Spacing == nil {
		return nil, measure.ErrMissingSpacing
	}
	if grid.Spacing == nil {
		a.log.Warn().Msg("no pixel spacing, areas reported as raw pixel counts")
	}

	box, work, err := segment.Crop(grid, a.params.BackgroundMargin)
	if err != nil {
		return nil, err
	}
	a.log.Info().
		Int("rows", work.Rows).Int("cols", work.Cols).
		Msg("cropped to content bounding box")

	th := segment.TwoLevelThreshold(work)
	a.log.Info().Int("low", th.Low).Int("high", th.High).Msg("computed intensity bands")

	classes := segment.Quantize(work, th)
	midBand := segment.MidBand(work, th)
	bright := segment.BrightBand(work, th)

	report := &models.Report{
		CropBox: box,
		Low:     th.Low,
		High:    th.High,
	}
	for _, side := range models.Sides {
		result, err := a.processSide(side, work, classes, midBand, bright, dig)
		if err != nil {
			return nil, err
		}
		*report.Side(side) = *result
		report.Unit = result.Muscle.Unit
	}

	return report, nil
}

// processSide measures every tissue class for one side.
func (a *Analyzer) processSide(side models.Side, work, classes *models.Grid,
	midBand, bright *models.Mask, dig Digitizer) (*models.SideResult, error) {

	tol := a.params.Tolerance
	conn := a.params.Connectivity
	spacing := work.Spacing
	policy := a.params.UnitPolicy

	// Subcutaneous fat: a bright blob grown on the class grid.
	fatSeed, err := dig.Seed(side, models.Fat)
	if err != nil {
		return nil, fmt.Errorf("%s fat seed: %w", side, err)
	}
	fatMask, err := segment.Grow(classes, fatSeed, tol, conn)
	if err != nil {
		return nil, err
	}

	// Femur: the dark cortex blob, hole-filled to take in the marrow.
	femurSeed, err := dig.Seed(side, models.Femur)
	if err != nil {
		return nil, fmt.Errorf("%s femur seed: %w", side, err)
	}
	femurGrown, err := segment.Grow(classes, femurSeed, tol, conn)
	if err != nil {
		return nil, err
	}
	femurMask := segment.FillHoles(femurGrown)

	// Muscle: grown inside the mid threshold band only. A seed outside
	// the band fails rather than silently growing the wrong tissue.
	muscleSeed, err := dig.Seed(side, models.Muscle)
	if err != nil {
		return nil, fmt.Errorf("%s muscle seed: %w", side, err)
	}
	muscleMask, err := segment.GrowWithin(classes, midBand, muscleSeed, tol, conn)
	if err != nil {
		return nil, err
	}

	// Femur and muscle grow from the same class grid with different
	// seeds; their regions can touch at the boundary. Flag any overlap
	// instead of silently resolving it either way.
	if overlap := measure.Count(measure.Intersect(muscleMask, femurMask)); overlap > 0 {
		a.log.Warn().
			Str("side", side.String()).
			Int("pixels", overlap).
			Msg("femur and muscle regions overlap; noncontractile area may double-count boundary pixels")
	}

	split, err := a.splitLoop(side, muscleMask, dig)
	if err != nil {
		return nil, err
	}

	// Noncontractile elements: bright inclusions left inside the
	// filled muscle once the femur (cortex + marrow) is removed.
	filledMuscle := segment.FillHoles(muscleMask)
	noncontractile := measure.Intersect(measure.Subtract(filledMuscle, femurMask), bright)

	result := &models.SideResult{Side: side}
	for _, reg := range []struct {
		name string
		mask *models.Mask
		dst  *models.Region
	}{
		{fmt.Sprintf("%s fat", side), fatMask, &result.Fat},
		{fmt.Sprintf("%s femur", side), femurMask, &result.Femur},
		{fmt.Sprintf("%s muscle", side), muscleMask, &result.Muscle},
		{fmt.Sprintf("%s muscle, extensor", side), split.Extensor, &result.Extensor},
		{fmt.Sprintf("%s muscle, flexor", side), split.Flexor, &result.Flexor},
		{fmt.Sprintf("%s noncontractile", side), noncontractile, &result.Noncontractile},
	} {
		region, err := measure.NewRegion(reg.name, reg.mask, spacing, policy)
		if err != nil {
			return nil, err
		}
		*reg.dst = region
	}

	a.log.Info().
		Str("side", side.String()).
		Float64("muscle", result.Muscle.Area).
		Float64("extensor", result.Extensor.Area).
		Float64("flexor", result.Flexor.Area).
		Float64("fat", result.Fat.Area).
		Float64("noncontractile", result.Noncontractile.Area).
		Str("unit", string(result.Muscle.Unit)).
		Msg("side measured")

	return result, nil
}
