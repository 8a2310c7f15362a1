package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thighcsa/internal/models"
)

func maskOf(rows, cols int, set ...[2]int) *models.Mask {
	m := models.NewMask(rows, cols)
	for _, p := range set {
		m.Set(p[0], p[1], true)
	}
	return m
}

func TestMaskAlgebra(t *testing.T) {
	a := maskOf(3, 3, [2]int{0, 0}, [2]int{1, 1}, [2]int{2, 2})
	b := maskOf(3, 3, [2]int{1, 1}, [2]int{2, 2}, [2]int{0, 2})

	assert.Equal(t, 2, Count(Intersect(a, b)))
	assert.Equal(t, 4, Count(Union(a, b)))
	assert.Equal(t, 1, Count(Subtract(a, b)))
	assert.True(t, Subtract(a, b).At(0, 0))
}

func TestMaskAlgebraDoesNotMutateInputs(t *testing.T) {
	a := maskOf(2, 2, [2]int{0, 0}, [2]int{1, 1})
	b := maskOf(2, 2, [2]int{0, 0})

	_ = Subtract(a, b)
	assert.True(t, a.At(0, 0), "Subtract must allocate a new mask")
	_ = Union(a, b)
	assert.False(t, b.At(1, 1), "Union must allocate a new mask")
}

func TestMismatchedDimensionsPanic(t *testing.T) {
	a := models.NewMask(2, 3)
	b := models.NewMask(3, 2)

	require.Panics(t, func() { Intersect(a, b) })
	require.Panics(t, func() { Union(a, b) })
	require.Panics(t, func() { Subtract(a, b) })
}

func TestConvertWithSpacing(t *testing.T) {
	spacing := &models.Spacing{Row: 0.5, Col: 0.5}

	for _, policy := range []Policy{Lenient, Strict} {
		area, unit, err := Convert(400, spacing, policy)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, area, 1e-12, "400 px at 0.5x0.5 mm is 1 cm^2")
		assert.Equal(t, models.UnitCm2, unit)
	}
}

func TestConvertWithoutSpacing(t *testing.T) {
	area, unit, err := Convert(400, nil, Lenient)
	require.NoError(t, err)
	assert.Equal(t, 400.0, area)
	assert.Equal(t, models.UnitPixel2, unit)

	_, _, err = Convert(400, nil, Strict)
	require.ErrorIs(t, err, ErrMissingSpacing)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("lenient")
	require.NoError(t, err)
	assert.Equal(t, Lenient, p)

	p, err = ParsePolicy("strict")
	require.NoError(t, err)
	assert.Equal(t, Strict, p)

	_, err = ParsePolicy("whatever")
	assert.Error(t, err)
}

func TestBoundingBox(t *testing.T) {
	m := maskOf(5, 5, [2]int{1, 2}, [2]int{3, 1})
	box, ok := BoundingBox(m)
	require.True(t, ok)
	assert.Equal(t, models.Rect{MinRow: 1, MinCol: 1, MaxRow: 4, MaxCol: 3}, box)

	_, ok = BoundingBox(models.NewMask(3, 3))
	assert.False(t, ok)
}

func TestNewRegion(t *testing.T) {
	m := maskOf(4, 4, [2]int{1, 1}, [2]int{1, 2}, [2]int{2, 1}, [2]int{2, 2})
	region, err := NewRegion("left fat", m, &models.Spacing{Row: 1, Col: 1}, Strict)
	require.NoError(t, err)

	assert.Equal(t, "left fat", region.Name)
	assert.Equal(t, 4, region.Pixels)
	assert.InDelta(t, 0.04, region.Area, 1e-12)
	assert.Equal(t, models.UnitCm2, region.Unit)
	assert.Equal(t, models.Rect{MinRow: 1, MinCol: 1, MaxRow: 3, MaxCol: 3}, region.Bounds)

	_, err = NewRegion("left fat", m, nil, Strict)
	require.ErrorIs(t, err, ErrMissingSpacing)
	assert.Contains(t, err.Error(), "left fat", "strict failure must name the region")
}

func TestSummary(t *testing.T) {
	mean, sigma := Summary([]float64{2, 4})
	assert.InDelta(t, 3.0, mean, 1e-12)
	assert.InDelta(t, 1.4142, sigma, 1e-3)

	mean, sigma = Summary([]float64{7})
	assert.Equal(t, 7.0, mean)
	assert.Zero(t, sigma)

	mean, sigma = Summary(nil)
	assert.Zero(t, mean)
	assert.Zero(t, sigma)
}
