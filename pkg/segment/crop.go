// Package segment implements the segmentation primitives of the
// measurement pipeline: background cropping, two-level Otsu
// thresholding, intensity quantization, seeded region growing, hole
// filling and polygon rasterization. Every function is a pure
// transformation from grids and masks to new grids and masks.
package segment

import "thighcsa/internal/models"

// Crop trims g to the bounding box of its non-background pixels. A
// pixel counts as content when its intensity exceeds min+margin, where
// min is the grid's observed minimum; margin absorbs near-black noise
// in the air around the limb. Returns the crop rectangle in original
// coordinates together with the cropped grid.
//
// Returns ErrEmptyImage when no pixel qualifies.
func Crop(g *models.Grid, margin int) (models.Rect, *models.Grid, error) {
	min, _ := g.MinMax()
	floor := min + margin

	box := models.Rect{
		MinRow: g.Rows, MinCol: g.Cols,
		MaxRow: -1, MaxCol: -1,
	}
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if g.At(row, col) <= floor {
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

	if box.MaxRow < 0 {
		return models.Rect{}, nil, ErrEmptyImage
	}
	return box, g.Crop(box), nil
}
