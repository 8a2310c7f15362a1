package imaging

import (
	"fmt"
	"strconv"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	"thighcsa/internal/models"
)

// LoadDICOM reads the first frame of a DICOM file as an intensity grid.
// The PixelSpacing attribute (0028,0030), when present, becomes the
// grid's physical spacing; files without it yield a grid with nil
// spacing, which downstream unit policy handles.
func LoadDICOM(path string) (*models.Grid, error) {
	dataset, err := dicom.ParseFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DICOM %s: %w", path, err)
	}

	pixelEl, err := dataset.FindElementByTag(tag.PixelData)
	if err != nil {
		return nil, fmt.Errorf("DICOM %s has no pixel data: %w", path, err)
	}
	info := dicom.MustGetPixelDataInfo(pixelEl.Value)
	if len(info.Frames) == 0 {
		return nil, fmt.Errorf("DICOM %s contains no frames", path)
	}

	native, err := info.Frames[0].GetNativeFrame()
	if err != nil {
		return nil, fmt.Errorf("DICOM %s: cannot access native pixel data: %w", path, err)
	}

	g := models.NewGrid(native.Rows, native.Cols)
	for i, samples := range native.Data {
		// First sample only; cross-sectional MR is single-channel.
		g.Data[i] = samples[0]
	}
	g.Spacing = pixelSpacing(&dataset)
	return g, nil
}

// pixelSpacing extracts PixelSpacing as (row, col) mm. Returns nil
// when the attribute is absent or malformed; the caller's unit policy
// decides whether that is fatal.
func pixelSpacing(dataset *dicom.Dataset) *models.Spacing {
	el, err := dataset.FindElementByTag(tag.PixelSpacing)
	if err != nil {
		return nil
	}
	values, ok := el.Value.GetValue().([]string)
	if !ok || len(values) < 2 {
		return nil
	}
	row, err := strconv.ParseFloat(values[0], 64)
	if err != nil || row <= 0 {
		return nil
	}
	col, err := strconv.ParseFloat(values[1], 64)
	if err != nil || col <= 0 {
		return nil
	}
	return &models.Spacing{Row: row, Col: col}
}
