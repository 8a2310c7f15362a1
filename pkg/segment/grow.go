package segment

import "thighcsa/internal/models"

// Connectivity selects the neighborhood used when growing a region.
type Connectivity int

const (
	// Connect4 grows through edge-adjacent neighbors only.
	Connect4 Connectivity = 4

	// Connect8 also grows through diagonal neighbors.
	Connect8 Connectivity = 8
)

var (
	offsets4 = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	offsets8 = [][2]int{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}
)

func (c Connectivity) offsets() [][2]int {
	if c == Connect8 {
		return offsets8
	}
	return offsets4
}

// Grow returns the maximal connected region of pixels reachable from
// seed through pixels whose intensity stays within tolerance of the
// seed pixel's own intensity. The comparison base is always the seed's
// original intensity, never the previous pixel's, so the tolerance
// does not compound along long paths.
//
// Returns SeedOutOfBoundsError when the seed lies outside the grid.
func Grow(g *models.Grid, seed models.Seed, tolerance int, conn Connectivity) (*models.Mask, error) {
	return GrowWithin(g, nil, seed, tolerance, conn)
}

// GrowWithin is Grow restricted to the pixels of valid. A nil valid
// mask admits every pixel. The traversal never enters an invalid
// pixel, and a seed placed on one fails with SeedOnExcludedPixelError:
// such a pixel was zeroed by a prior masking step, so a region grown
// from it would measure the wrong tissue.
func GrowWithin(g *models.Grid, valid *models.Mask, seed models.Seed, tolerance int, conn Connectivity) (*models.Mask, error) {
	if !g.In(seed.Row, seed.Col) {
		return nil, &SeedOutOfBoundsError{Seed: seed, Rows: g.Rows, Cols: g.Cols}
	}
	if valid != nil && !valid.At(seed.Row, seed.Col) {
		return nil, &SeedOnExcludedPixelError{Seed: seed}
	}

	base := g.At(seed.Row, seed.Col)
	region := models.NewMask(g.Rows, g.Cols)
	visited := make([]bool, g.Rows*g.Cols)
	offsets := conn.offsets()

	// BFS over pixel indices. A pixel is enqueued at most once, the
	// first time it is reached, and joins the region iff its intensity
	// is within tolerance of the seed's. Expansion happens only from
	// included pixels, so excluded pixels form hard walls.
	queue := make([]int, 0, 1024)
	start := seed.Row*g.Cols + seed.Col
	queue = append(queue, start)
	visited[start] = true

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]

		row, col := idx/g.Cols, idx%g.Cols
		d := g.Data[idx] - base
		if d < 0 {
			d = -d
		}
		if d > tolerance {
			continue
		}
		region.Bits[idx] = true

		for _, off := range offsets {
			nr, nc := row+off[0], col+off[1]
			if nr < 0 || nr >= g.Rows || nc < 0 || nc >= g.Cols {
				continue
			}
			nidx := nr*g.Cols + nc
			if visited[nidx] {
				continue
			}
			if valid != nil && !valid.Bits[nidx] {
				continue
			}
			visited[nidx] = true
			queue = append(queue, nidx)
		}
	}

	return region, nil
}
