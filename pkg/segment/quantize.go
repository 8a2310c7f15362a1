package segment

import "thighcsa/internal/models"

// Class labels assigned by Quantize. The gaps between labels are far
// wider than any region-growing tolerance in use, so growing with a
// small tolerance on a quantized grid isolates a single-class blob.
const (
	ClassDark   = 0
	ClassMid    = 128
	ClassBright = 255
)

// Quantize remaps g into the three intensity classes cut by th: dark
// pixels (below Low) become ClassDark, mid-band pixels ClassMid and
// bright pixels ClassBright. Region growing for fat and femur runs on
// this class grid so that a tolerance of 1 tracks exactly one class.
func Quantize(g *models.Grid, th Thresholds) *models.Grid {
	out := models.NewGrid(g.Rows, g.Cols)
	out.Spacing = g.Spacing
	for i, v := range g.Data {
		switch {
		case v < th.Low:
			out.Data[i] = ClassDark
		case v > th.High:
			out.Data[i] = ClassBright
		default:
			out.Data[i] = ClassMid
		}
	}
	return out
}

// MidBand returns the mask of pixels inside the mid threshold band,
// Low <= v <= High. Muscle growing is restricted to this band: pixels
// outside it count as zeroed, and a muscle seed placed on one is
// rejected with SeedOnExcludedPixelError.
func MidBand(g *models.Grid, th Thresholds) *models.Mask {
	m := models.NewMask(g.Rows, g.Cols)
	for i, v := range g.Data {
		m.Bits[i] = v >= th.Low && v <= th.High
	}
	return m
}

// BrightBand returns the mask of pixels above the High threshold.
// Noncontractile elements are the bright inclusions left inside the
// filled muscle region after the femur is removed.
func BrightBand(g *models.Grid, th Thresholds) *models.Mask {
	m := models.NewMask(g.Rows, g.Cols)
	for i, v := range g.Data {
		m.Bits[i] = v > th.High
	}
	return m
}
