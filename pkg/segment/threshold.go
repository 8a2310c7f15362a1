package segment

import (
	"gonum.org/v1/gonum/stat"

	"thighcsa/internal/models"
)

// Thresholds is a pair of intensities partitioning the intensity
// domain into three bands: dark (below Low), mid (Low through High
// inclusive) and bright (above High). Low <= High always holds.
type Thresholds struct {
	Low, High int
}

// maxBins caps the histogram resolution of the threshold search.
// 8-bit images are searched exactly; wider intensity ranges (16-bit
// DICOM) are binned down, which keeps the exhaustive two-cut search
// deterministic and cheap.
const maxBins = 1024

// TwoLevelThreshold computes the two cut points that maximize the
// between-class intensity variance across three classes, the
// multi-level generalization of Otsu's method. The search is an
// exhaustive scan over a cumulative-moment histogram, so identical
// input always yields identical thresholds.
//
// A grid with fewer than three distinct intensities has no meaningful
// three-way split; the thresholds then degrade to the grid's extrema.
func TwoLevelThreshold(g *models.Grid) Thresholds {
	min, max := g.MinMax()
	if countDistinct(g, 3) < 3 {
		return Thresholds{Low: min, High: max}
	}

	span := max - min + 1
	width := (span + maxBins - 1) / maxBins
	bins := (span + width - 1) / width

	hist := make([]float64, bins)
	levels := make([]float64, bins)
	for _, v := range g.Data {
		hist[(v-min)/width]++
	}
	for b := range levels {
		// Bin midpoint as the representative intensity.
		levels[b] = float64(min+b*width) + float64(width-1)/2
	}

	// Cumulative weight and weighted-sum tables; class moments for any
	// candidate cut pair come from two subtractions each.
	cw := make([]float64, bins+1)
	cs := make([]float64, bins+1)
	for b := 0; b < bins; b++ {
		cw[b+1] = cw[b] + hist[b]
		cs[b+1] = cs[b] + hist[b]*levels[b]
	}
	muT := stat.Mean(levels, hist)

	best := -1.0
	bi, bj := 1, bins-1
	for i := 1; i < bins; i++ {
		for j := i; j < bins; j++ {
			// dark = bins [0,i), mid = bins [i,j], bright = bins (j,bins).
			between := classTerm(cw[i], cs[i], muT) +
				classTerm(cw[j+1]-cw[i], cs[j+1]-cs[i], muT) +
				classTerm(cw[bins]-cw[j+1], cs[bins]-cs[j+1], muT)
			if between > best {
				best = between
				bi, bj = i, j
			}
		}
	}

	low := min + bi*width
	high := min + (bj+1)*width - 1
	if high > max {
		high = max
	}
	return Thresholds{Low: low, High: high}
}

// classTerm is one class's contribution to the between-class variance.
// Empty classes contribute nothing.
func classTerm(w, s, muT float64) float64 {
	if w == 0 {
		return 0
	}
	m := s / w
	return w * (m - muT) * (m - muT)
}

// countDistinct counts distinct intensities in g, stopping at limit.
func countDistinct(g *models.Grid, limit int) int {
	seen := make([]int, 0, limit)
	for _, v := range g.Data {
		known := false
		for _, u := range seen {
			if u == v {
				known = true
				break
			}
		}
		if !known {
			seen = append(seen, v)
			if len(seen) >= limit {
				return limit
			}
		}
	}
	return len(seen)
}
