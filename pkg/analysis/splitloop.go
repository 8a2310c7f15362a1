package analysis

import (
	"fmt"

	"thighcsa/internal/models"
	"thighcsa/pkg/measure"
	"thighcsa/pkg/segment"
)

// splitState tracks the approve/reject loop around the extensor/flexor
// partition, the only cyclic control flow in the pipeline.
type splitState int

const (
	awaitingPolygon splitState = iota
	splitting
	awaitingApproval
	approved
)

// splitLoop partitions the muscle mask into extensor and flexor
// compartments using an externally digitized boundary polygon. The
// polygon is conventionally drawn around the flexors: flexor is
// muscle ∩ polygon, extensor is muscle ∖ polygon. The loop re-requests
// a polygon after every rejection and only terminates on approval.
// The muscle mask itself is never modified, so rejected iterations
// leave no trace.
func (a *Analyzer) splitLoop(side models.Side, muscle *models.Mask, dig Digitizer) (Split, error) {
	var (
		state    = awaitingPolygon
		poly     models.Polygon
		split    Split
		attempts int
	)

	for state != approved {
		switch state {
		case awaitingPolygon:
			var err error
			poly, err = dig.Polygon(side)
			if err != nil {
				return Split{}, fmt.Errorf("%s boundary polygon: %w", side, err)
			}
			attempts++
			state = splitting

		case splitting:
			polyMask, err := segment.Rasterize(poly, muscle.Rows, muscle.Cols)
			if err != nil {
				return Split{}, fmt.Errorf("%s boundary polygon: %w", side, err)
			}
			split = Split{
				Side:     side,
				Extensor: measure.Subtract(muscle, polyMask),
				Flexor:   measure.Intersect(muscle, polyMask),
			}
			state = awaitingApproval

		case awaitingApproval:
			ok, err := dig.Review(side, split)
			if err != nil {
				return Split{}, fmt.Errorf("%s split review: %w", side, err)
			}
			if ok {
				state = approved
				break
			}
			a.log.Info().
				Str("side", side.String()).
				Int("attempt", attempts).
				Msg("split rejected, requesting new polygon")
			split = Split{}
			state = awaitingPolygon
		}
	}

	a.log.Debug().
		Str("side", side.String()).
		Int("attempts", attempts).
		Msg("split approved")
	return split, nil
}
