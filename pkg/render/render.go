// Package render writes mask overlay images for downstream review.
// It is a consumer of the pipeline's output, not part of the core:
// the analyzer hands it the working grid and the measured regions,
// and it produces one PNG per region with the mask highlighted.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"thighcsa/internal/models"
)

// GridImage renders an intensity grid as a 16-bit grayscale image,
// stretching the observed intensity range to full scale.
func GridImage(g *models.Grid) *image.Gray16 {
	min, max := g.MinMax()
	span := max - min
	if span == 0 {
		span = 1
	}

	img := image.NewGray16(image.Rect(0, 0, g.Cols, g.Rows))
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			v := uint16((g.At(row, col) - min) * 65535 / span)
			img.SetGray16(col, row, color.Gray16{Y: v})
		}
	}
	return img
}

// OverlayImage renders the grid with the region's pixels tinted so a
// reviewer can judge the segmentation at a glance.
func OverlayImage(g *models.Grid, region models.Region) (*image.NRGBA, error) {
	if region.Mask.Rows != g.Rows || region.Mask.Cols != g.Cols {
		return nil, fmt.Errorf("region %s mask is %dx%d, grid is %dx%d",
			region.Name, region.Mask.Rows, region.Mask.Cols, g.Rows, g.Cols)
	}

	base := GridImage(g)
	img := image.NewNRGBA(image.Rect(0, 0, g.Cols, g.Rows))
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			gray := uint8(base.Gray16At(col, row).Y >> 8)
			c := color.NRGBA{R: gray, G: gray, B: gray, A: 255}
			if region.Mask.At(row, col) {
				c.R = 255
				c.G = gray / 2
				c.B = gray / 2
			}
			img.SetNRGBA(col, row, c)
		}
	}
	return img, nil
}

// SaveOverlays writes one overlay PNG per region into dir, named after
// the region.
func SaveOverlays(g *models.Grid, regions []models.Region, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create overlay directory: %w", err)
	}

	for _, region := range regions {
		img, err := OverlayImage(g, region)
		if err != nil {
			return err
		}

		name := strings.ReplaceAll(region.Name, " ", "_")
		name = strings.ReplaceAll(name, ",", "")
		path := filepath.Join(dir, name+".png")

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return fmt.Errorf("failed to encode %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

// Regions collects every region of a report in rendering order.
func Regions(rep *models.Report) []models.Region {
	var out []models.Region
	for _, side := range models.Sides {
		s := rep.Side(side)
		out = append(out,
			s.Fat, s.Femur, s.Muscle, s.Extensor, s.Flexor, s.Noncontractile)
	}
	return out
}
