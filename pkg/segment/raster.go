package segment

import (
	"math"

	"thighcsa/internal/models"
)

// edgeEps is the tolerance for deciding that a pixel point lies exactly
// on a polygon edge.
const edgeEps = 1e-9

// Rasterize converts a closed polygon into an inclusion mask over a
// rows×cols grid. A pixel, treated as the point (col, row), is true
// iff it lies inside the polygon under the even-odd rule. Points
// exactly on an edge count as inside, so a polygon drawn along a
// region boundary leaves no seam when the mask partitions that region
// into two complementary halves.
//
// Returns DegeneratePolygonError when fewer than three distinct
// vertices are supplied.
func Rasterize(poly models.Polygon, rows, cols int) (*models.Mask, error) {
	if n := distinctVertices(poly); n < 3 {
		return nil, &DegeneratePolygonError{Distinct: n}
	}

	// Polygon bounding box limits the pixels worth testing.
	minX, minY := poly[0].X, poly[0].Y
	maxX, maxY := minX, minY
	for _, v := range poly[1:] {
		minX = math.Min(minX, v.X)
		maxX = math.Max(maxX, v.X)
		minY = math.Min(minY, v.Y)
		maxY = math.Max(maxY, v.Y)
	}
	rowLo := clamp(int(math.Floor(minY)), 0, rows-1)
	rowHi := clamp(int(math.Ceil(maxY)), 0, rows-1)
	colLo := clamp(int(math.Floor(minX)), 0, cols-1)
	colHi := clamp(int(math.Ceil(maxX)), 0, cols-1)

	m := models.NewMask(rows, cols)
	for row := rowLo; row <= rowHi; row++ {
		y := float64(row)
		for col := colLo; col <= colHi; col++ {
			x := float64(col)
			if evenOdd(poly, x, y) || onBoundary(poly, x, y) {
				m.Set(row, col, true)
			}
		}
	}
	return m, nil
}

// evenOdd is the ray-casting inclusion test: a ray from (x, y) towards
// +x crosses the polygon an odd number of times iff the point is
// inside. Half-open comparison on y makes vertices on the scanline
// count exactly once.
func evenOdd(poly models.Polygon, x, y float64) bool {
	inside := false
	j := len(poly) - 1
	for i := range poly {
		yi, yj := poly[i].Y, poly[j].Y
		if (yi > y) != (yj > y) {
			xCross := poly[i].X + (y-yi)*(poly[j].X-poly[i].X)/(yj-yi)
			if x < xCross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// onBoundary reports whether (x, y) lies on one of the polygon's
// edges, including the implied closing edge.
func onBoundary(poly models.Polygon, x, y float64) bool {
	j := len(poly) - 1
	for i := range poly {
		ax, ay := poly[j].X, poly[j].Y
		bx, by := poly[i].X, poly[i].Y
		if onSegment(ax, ay, bx, by, x, y) {
			return true
		}
		j = i
	}
	return false
}

func onSegment(ax, ay, bx, by, x, y float64) bool {
	if x < math.Min(ax, bx)-edgeEps || x > math.Max(ax, bx)+edgeEps ||
		y < math.Min(ay, by)-edgeEps || y > math.Max(ay, by)+edgeEps {
		return false
	}
	cross := (bx-ax)*(y-ay) - (by-ay)*(x-ax)
	scale := math.Max(1, math.Hypot(bx-ax, by-ay))
	return math.Abs(cross) <= edgeEps*scale
}

func distinctVertices(poly models.Polygon) int {
	n := 0
	for i, v := range poly {
		dup := false
		for _, u := range poly[:i] {
			if math.Abs(u.X-v.X) <= edgeEps && math.Abs(u.Y-v.Y) <= edgeEps {
				dup = true
				break
			}
		}
		if !dup {
			n++
		}
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
