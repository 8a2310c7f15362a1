package segment

import (
	"errors"
	"testing"

	"thighcsa/internal/models"
)

// gridFrom builds a grid from a row-major 2-D literal.
func gridFrom(rows [][]int) *models.Grid {
	g := models.NewGrid(len(rows), len(rows[0]))
	for r, row := range rows {
		for c, v := range row {
			g.Data[r*g.Cols+c] = v
		}
	}
	return g
}

// maskFrom builds a mask from a 2-D literal of 0/1 values.
func maskFrom(rows [][]int) *models.Mask {
	m := models.NewMask(len(rows), len(rows[0]))
	for r, row := range rows {
		for c, v := range row {
			m.Set(r, c, v != 0)
		}
	}
	return m
}

func countMask(m *models.Mask) int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

func TestCropBoundingBox(t *testing.T) {
	g := gridFrom([][]int{
		{0, 0, 0, 0, 0, 0},
		{0, 0, 5, 9, 0, 0},
		{0, 0, 7, 8, 0, 0},
		{0, 0, 0, 6, 0, 0},
		{0, 0, 0, 0, 0, 0},
	})

	box, cropped, err := Crop(g, 1)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	want := models.Rect{MinRow: 1, MinCol: 2, MaxRow: 4, MaxCol: 4}
	if box != want {
		t.Errorf("crop box: expected %+v, got %+v", want, box)
	}
	if cropped.Rows != 3 || cropped.Cols != 2 {
		t.Fatalf("cropped dims: expected 3x2, got %dx%d", cropped.Rows, cropped.Cols)
	}
	if cropped.At(0, 1) != 9 || cropped.At(2, 1) != 6 {
		t.Errorf("cropped content misplaced: %v", cropped.Data)
	}
}

func TestCropMarginExcludesNearBackground(t *testing.T) {
	// Values at min+margin must count as background.
	g := gridFrom([][]int{
		{0, 1, 0},
		{1, 4, 1},
		{0, 1, 0},
	})

	box, _, err := Crop(g, 1)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	want := models.Rect{MinRow: 1, MinCol: 1, MaxRow: 2, MaxCol: 2}
	if box != want {
		t.Errorf("crop box: expected %+v, got %+v", want, box)
	}
}

func TestCropEmptyImage(t *testing.T) {
	g := models.NewGrid(4, 4)
	if _, _, err := Crop(g, 1); !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("expected ErrEmptyImage, got %v", err)
	}
}

func TestCropPreservesSource(t *testing.T) {
	g := gridFrom([][]int{
		{0, 0, 0},
		{0, 9, 0},
		{0, 0, 0},
	})
	_, cropped, err := Crop(g, 1)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	cropped.Data[0] = 42
	if g.At(1, 1) != 9 {
		t.Error("cropping must copy pixel data, not alias the source grid")
	}
}
