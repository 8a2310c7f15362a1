// Package measure combines tissue masks with set algebra and converts
// pixel counts into physical areas. All mask operations allocate fresh
// masks; inputs are never mutated, so regions that share a parent mask
// cannot alias each other.
package measure

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"thighcsa/internal/models"
)

// ErrMissingSpacing is returned under the strict unit policy when the
// image carries no physical pixel spacing. Unitless areas would
// silently corrupt aggregate statistics in a longitudinal study, so
// strict runs abort instead.
var ErrMissingSpacing = errors.New("pixel spacing unknown, cannot convert to cm^2")

// Policy selects how a missing pixel spacing is handled.
type Policy int

const (
	// Lenient proceeds with raw pixel counts tagged pixel^2; callers
	// are expected to surface a warning.
	Lenient Policy = iota

	// Strict aborts the run when no spacing is available.
	Strict
)

// ParsePolicy converts a configuration string into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "lenient":
		return Lenient, nil
	case "strict":
		return Strict, nil
	}
	return Lenient, fmt.Errorf("unknown unit policy %q", s)
}

// sameDims panics when two masks of different provenance are combined;
// per the data model this is a programming error, not a recoverable
// runtime condition.
func sameDims(a, b *models.Mask) {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		panic(fmt.Sprintf("measure: mask dimensions differ: %dx%d vs %dx%d",
			a.Rows, a.Cols, b.Rows, b.Cols))
	}
}

// Intersect returns a ∩ b as a new mask.
func Intersect(a, b *models.Mask) *models.Mask {
	sameDims(a, b)
	out := models.NewMask(a.Rows, a.Cols)
	for i := range a.Bits {
		out.Bits[i] = a.Bits[i] && b.Bits[i]
	}
	return out
}

// Union returns a ∪ b as a new mask.
func Union(a, b *models.Mask) *models.Mask {
	sameDims(a, b)
	out := models.NewMask(a.Rows, a.Cols)
	for i := range a.Bits {
		out.Bits[i] = a.Bits[i] || b.Bits[i]
	}
	return out
}

// Subtract returns a ∖ b as a new mask.
func Subtract(a, b *models.Mask) *models.Mask {
	sameDims(a, b)
	out := models.NewMask(a.Rows, a.Cols)
	for i := range a.Bits {
		out.Bits[i] = a.Bits[i] && !b.Bits[i]
	}
	return out
}

// Count returns the number of true pixels in m.
func Count(m *models.Mask) int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// BoundingBox returns the smallest rectangle containing every true
// pixel. ok is false for an all-false mask.
func BoundingBox(m *models.Mask) (box models.Rect, ok bool) {
	box = models.Rect{MinRow: m.Rows, MinCol: m.Cols, MaxRow: -1, MaxCol: -1}
	for row := 0; row < m.Rows; row++ {
		for col := 0; col < m.Cols; col++ {
			if !m.At(row, col) {
				continue
			}
			if row < box.MinRow {
				box.MinRow = row
			}
			if row >= box.MaxRow {
				box.MaxRow = row + 1
			}
			if col < box.MinCol {
				box.MinCol = col
			}
			if col >= box.MaxCol {
				box.MaxCol = col + 1
			}
		}
	}
	return box, box.MaxRow >= 0
}

// Convert turns a pixel count into an area value. With known spacing
// the area is pixels × rowSpacing × colSpacing / 100, i.e. mm² scaled
// to cm². Without spacing the lenient policy returns the raw pixel
// count tagged pixel^2, and the strict policy fails with
// ErrMissingSpacing.
func Convert(pixels int, spacing *models.Spacing, policy Policy) (float64, models.Unit, error) {
	if spacing == nil {
		if policy == Strict {
			return 0, "", ErrMissingSpacing
		}
		return float64(pixels), models.UnitPixel2, nil
	}
	return float64(pixels) * spacing.Row * spacing.Col / 100, models.UnitCm2, nil
}

// NewRegion measures a mask into a named Region: pixel count, bounding
// box and converted area.
func NewRegion(name string, m *models.Mask, spacing *models.Spacing, policy Policy) (models.Region, error) {
	pixels := Count(m)
	area, unit, err := Convert(pixels, spacing, policy)
	if err != nil {
		return models.Region{}, fmt.Errorf("%s: %w", name, err)
	}
	box, _ := BoundingBox(m)
	return models.Region{
		Name:   name,
		Mask:   m,
		Bounds: box,
		Pixels: pixels,
		Area:   area,
		Unit:   unit,
	}, nil
}

// Summary returns the mean and standard deviation of a set of area
// values, used by the study log to position one run against the
// accumulated series.
func Summary(areas []float64) (mean, sigma float64) {
	if len(areas) == 0 {
		return 0, 0
	}
	if len(areas) == 1 {
		return areas[0], 0
	}
	mean, variance := stat.MeanVariance(areas, nil)
	return mean, math.Sqrt(variance)
}
