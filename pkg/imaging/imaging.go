// Package imaging adapts external image sources into the pipeline's
// intensity grids. It reads grayscale PNG/JPEG files and single-frame
// DICOM files, extracting the physical pixel spacing when the source
// carries one.
package imaging

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"thighcsa/internal/models"
)

// Load reads an image file into a grid, dispatching on the file
// extension: .dcm is parsed as DICOM, everything else as PNG/JPEG.
func Load(path string) (*models.Grid, error) {
	if strings.EqualFold(filepath.Ext(path), ".dcm") {
		return LoadDICOM(path)
	}
	return LoadGrayscale(path)
}

// LoadGrayscale reads a PNG or JPEG file as an intensity grid. Color
// images are reduced to luminance. PNG/JPEG files carry no physical
// calibration, so the resulting grid has nil spacing.
func LoadGrayscale(path string) (*models.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return GridFromImage(img), nil
}

// GridFromImage converts a decoded image into an intensity grid using
// 16-bit luminance samples.
func GridFromImage(img image.Image) *models.Grid {
	bounds := img.Bounds()
	g := models.NewGrid(bounds.Dy(), bounds.Dx())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray := color.Gray16Model.Convert(img.At(x, y)).(color.Gray16)
			g.Data[(y-bounds.Min.Y)*g.Cols+(x-bounds.Min.X)] = int(gray.Y)
		}
	}
	return g
}
