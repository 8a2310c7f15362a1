package segment

import (
	"errors"
	"fmt"

	"thighcsa/internal/models"
)

// ErrEmptyImage is returned by Crop when every pixel is at or below the
// background threshold, leaving nothing to measure.
var ErrEmptyImage = errors.New("image contains only background")

// SeedOutOfBoundsError reports a seed coordinate outside the working
// grid. It carries the full seed so the caller can re-prompt the right
// input.
type SeedOutOfBoundsError struct {
	Seed       models.Seed
	Rows, Cols int
}

func (e *SeedOutOfBoundsError) Error() string {
	return fmt.Sprintf("%s %s seed (%d,%d) outside %dx%d grid",
		e.Seed.Side, e.Seed.Tissue, e.Seed.Row, e.Seed.Col, e.Rows, e.Cols)
}

// SeedOnExcludedPixelError reports a seed that landed on a pixel a
// prior masking step removed from consideration, e.g. a muscle seed
// outside the mid threshold band.
type SeedOnExcludedPixelError struct {
	Seed models.Seed
}

func (e *SeedOnExcludedPixelError) Error() string {
	return fmt.Sprintf("%s %s seed (%d,%d) lands on an excluded pixel",
		e.Seed.Side, e.Seed.Tissue, e.Seed.Row, e.Seed.Col)
}

// DegeneratePolygonError reports a polygon with fewer than three
// distinct vertices.
type DegeneratePolygonError struct {
	Distinct int
}

func (e *DegeneratePolygonError) Error() string {
	return fmt.Sprintf("polygon has %d distinct vertices, need at least 3", e.Distinct)
}
