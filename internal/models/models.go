// Package models holds the shared value types that flow through the
// measurement pipeline: intensity grids, boolean masks, seed points,
// polygons and the final area report.
package models

import "fmt"

// Spacing is the physical size of one pixel in mm along each axis.
// It is read from the image metadata (DICOM PixelSpacing) when available.
type Spacing struct {
	// Row is the distance in mm between the centers of two vertically
	// adjacent pixels.
	Row float64

	// Col is the distance in mm between the centers of two horizontally
	// adjacent pixels.
	Col float64
}

// Grid is a 2-D grid of integer intensity samples in row-major order.
// A Grid is immutable once constructed: pipeline stages that need a
// modified grid (cropping, quantization) build a new one.
type Grid struct {
	// Rows and Cols are the grid dimensions.
	Rows, Cols int

	// Data holds Rows*Cols intensity values in row-major order.
	// Treat as read-only after construction.
	Data []int

	// Spacing is the physical pixel spacing, or nil when the source
	// image carried no calibration.
	Spacing *Spacing
}

// NewGrid allocates a zero-valued grid with the given dimensions.
func NewGrid(rows, cols int) *Grid {
	return &Grid{
		Rows: rows,
		Cols: cols,
		Data: make([]int, rows*cols),
	}
}

// At returns the intensity at (row, col). Bounds are not checked.
func (g *Grid) At(row, col int) int {
	return g.Data[row*g.Cols+col]
}

// In reports whether (row, col) lies inside the grid.
func (g *Grid) In(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// MinMax returns the smallest and largest intensity in the grid.
func (g *Grid) MinMax() (min, max int) {
	min, max = g.Data[0], g.Data[0]
	for _, v := range g.Data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Crop returns a new grid restricted to r. The result copies the pixel
// data so the original grid stays untouched, and inherits the spacing.
func (g *Grid) Crop(r Rect) *Grid {
	out := NewGrid(r.Rows(), r.Cols())
	out.Spacing = g.Spacing
	for row := r.MinRow; row < r.MaxRow; row++ {
		src := g.Data[row*g.Cols+r.MinCol : row*g.Cols+r.MaxCol]
		copy(out.Data[(row-r.MinRow)*out.Cols:], src)
	}
	return out
}

// Mask is a 2-D boolean grid with the same dimensions as the Grid it
// was derived from. Masks are never mutated after the pipeline stage
// that creates them returns; combining stages always allocate a fresh
// mask. Combining masks of different dimensions is a programming error
// and panics.
type Mask struct {
	Rows, Cols int

	// Bits holds Rows*Cols inclusion flags in row-major order.
	Bits []bool
}

// NewMask allocates an all-false mask with the given dimensions.
func NewMask(rows, cols int) *Mask {
	return &Mask{
		Rows: rows,
		Cols: cols,
		Bits: make([]bool, rows*cols),
	}
}

// At returns the flag at (row, col). Bounds are not checked.
func (m *Mask) At(row, col int) bool {
	return m.Bits[row*m.Cols+col]
}

// Set writes the flag at (row, col). Bounds are not checked.
func (m *Mask) Set(row, col int, v bool) {
	m.Bits[row*m.Cols+col] = v
}

// Clone returns an independent copy of the mask.
func (m *Mask) Clone() *Mask {
	out := NewMask(m.Rows, m.Cols)
	copy(out.Bits, m.Bits)
	return out
}

// Rect is an axis-aligned rectangle over a grid. MaxRow and MaxCol are
// exclusive, so a full r×c grid is Rect{0, 0, r, c}.
type Rect struct {
	MinRow, MinCol int
	MaxRow, MaxCol int
}

// Rows returns the rectangle height in pixels.
func (r Rect) Rows() int { return r.MaxRow - r.MinRow }

// Cols returns the rectangle width in pixels.
func (r Rect) Cols() int { return r.MaxCol - r.MinCol }

// Side identifies the left or right thigh within one image.
type Side int

const (
	Left Side = iota
	Right
)

// Sides lists both sides in processing order.
var Sides = []Side{Left, Right}

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Tissue identifies which tissue class a seed point starts.
type Tissue int

const (
	Fat Tissue = iota
	Femur
	Muscle
)

func (t Tissue) String() string {
	switch t {
	case Fat:
		return "fat"
	case Femur:
		return "femur"
	case Muscle:
		return "muscle"
	}
	return fmt.Sprintf("Tissue(%d)", int(t))
}

// Seed is a starting coordinate for region growing, tagged with the
// tissue class and side it belongs to. Coordinates are relative to the
// cropped working grid presented to the digitizer.
type Seed struct {
	Row, Col int
	Tissue   Tissue
	Side     Side
}

// Vertex is one polygon corner. X is the column coordinate and Y the
// row coordinate, matching the axes a digitizer reports.
type Vertex struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Polygon is an ordered, implicitly closed vertex sequence with at
// least three distinct vertices. The first vertex is not repeated at
// the end; the closing edge is implied.
type Polygon []Vertex

// Unit tags area values with the unit system they are expressed in.
type Unit string

const (
	// UnitCm2 marks areas converted to cm² using the pixel spacing.
	UnitCm2 Unit = "cm^2"

	// UnitPixel2 marks raw pixel counts emitted when no spacing is known.
	UnitPixel2 Unit = "pixel^2"
)

// Region is a named mask together with its measured area.
type Region struct {
	// Name describes the region, e.g. "left muscle, flexor".
	Name string

	// Mask is the region's inclusion mask over the working grid.
	Mask *Mask

	// Bounds is the bounding box of the true pixels.
	Bounds Rect

	// Pixels is the number of true pixels.
	Pixels int

	// Area is the measured area in Unit.
	Area float64

	// Unit is the unit system Area is expressed in.
	Unit Unit
}

// SideResult collects the regions measured for one side.
type SideResult struct {
	Side Side

	Fat            Region
	Femur          Region
	Muscle         Region
	Extensor       Region
	Flexor         Region
	Noncontractile Region
}

// Areas returns the five reported scalar areas for the side, in
// reporting order: extensor, flexor, muscle total, fat, noncontractile.
func (s *SideResult) Areas() []float64 {
	return []float64{
		s.Extensor.Area,
		s.Flexor.Area,
		s.Muscle.Area,
		s.Fat.Area,
		s.Noncontractile.Area,
	}
}

// Report is the final output of one pipeline run.
type Report struct {
	Left  SideResult
	Right SideResult

	// Unit is the unit system every area in the report uses.
	Unit Unit

	// CropBox is the background crop rectangle in original image
	// coordinates; all masks are relative to it.
	CropBox Rect

	// Low and High are the two Otsu threshold intensities used to
	// partition the cropped grid into dark, mid and bright bands.
	Low, High int
}

// Side returns the result for the requested side.
func (r *Report) Side(s Side) *SideResult {
	if s == Left {
		return &r.Left
	}
	return &r.Right
}
