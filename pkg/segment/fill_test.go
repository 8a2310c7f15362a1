package segment

import (
	"testing"
)

func masksEqual(t *testing.T, a, b interface{ At(int, int) bool }, rows, cols int) bool {
	t.Helper()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if a.At(r, c) != b.At(r, c) {
				return false
			}
		}
	}
	return true
}

func TestFillHolesClosesInterior(t *testing.T) {
	ring := maskFrom([][]int{
		{0, 0, 0, 0, 0},
		{0, 1, 1, 1, 0},
		{0, 1, 0, 1, 0},
		{0, 1, 1, 1, 0},
		{0, 0, 0, 0, 0},
	})

	filled := FillHoles(ring)
	if !filled.At(2, 2) {
		t.Error("interior hole not filled")
	}
	if filled.At(0, 0) || filled.At(4, 4) {
		t.Error("exterior background must stay false")
	}
	if countMask(filled) != 9 {
		t.Errorf("expected 9 pixels after filling, got %d", countMask(filled))
	}
}

func TestFillHolesNoHolesUnchanged(t *testing.T) {
	solid := maskFrom([][]int{
		{0, 0, 0, 0},
		{0, 1, 1, 0},
		{0, 1, 1, 0},
		{0, 0, 0, 0},
	})

	filled := FillHoles(solid)
	if !masksEqual(t, solid, filled, 4, 4) {
		t.Error("a mask without holes must come back unchanged")
	}
}

func TestFillHolesIdempotent(t *testing.T) {
	ring := maskFrom([][]int{
		{1, 1, 1},
		{1, 0, 1},
		{1, 1, 1},
	})

	once := FillHoles(ring)
	twice := FillHoles(once)
	if !masksEqual(t, once, twice, 3, 3) {
		t.Error("filling an already-filled mask must be a no-op")
	}
}

func TestFillHolesOpenCavityStaysOpen(t *testing.T) {
	// A C-shape: the cavity reaches the border, so it is exterior
	// background, not a hole.
	c := maskFrom([][]int{
		{1, 1, 1},
		{1, 0, 0},
		{1, 1, 1},
	})

	filled := FillHoles(c)
	if filled.At(1, 1) || filled.At(1, 2) {
		t.Error("border-reachable cavity must not be filled")
	}
}

func TestFillHolesDoesNotMutateInput(t *testing.T) {
	ring := maskFrom([][]int{
		{1, 1, 1},
		{1, 0, 1},
		{1, 1, 1},
	})

	_ = FillHoles(ring)
	if ring.At(1, 1) {
		t.Error("FillHoles must not mutate its input")
	}
}
