// Package report renders and persists area reports. A run either
// prints a single report or appends one row to a longitudinal study
// log, matching the two operating modes of the measurement protocol.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"thighcsa/internal/models"
	"thighcsa/pkg/measure"
)

// studyLogHeader is the column layout of the study log CSV. One row
// per run: subject, timestamp, five areas per side, unit.
var studyLogHeader = []string{
	"subject", "date",
	"left_extensor", "left_flexor", "left_muscle", "left_fat", "left_noncontractile",
	"right_extensor", "right_flexor", "right_muscle", "right_fat", "right_noncontractile",
	"unit",
}

// StudyLog appends finished runs to a CSV file so measurements stay
// comparable across a longitudinal study.
type StudyLog struct {
	Path string
}

// Append writes one row for the report, creating the file with a
// header when it does not exist yet.
func (l *StudyLog) Append(subject string, when time.Time, rep *models.Report) error {
	_, statErr := os.Stat(l.Path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(l.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open study log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(studyLogHeader); err != nil {
			return fmt.Errorf("failed to write study log header: %w", err)
		}
	}

	row := []string{subject, when.Format("2006-01-02")}
	for _, side := range models.Sides {
		for _, area := range rep.Side(side).Areas() {
			row = append(row, strconv.FormatFloat(area, 'f', 3, 64))
		}
	}
	row = append(row, string(rep.Unit))
	if err := w.Write(row); err != nil {
		return fmt.Errorf("failed to append study log row: %w", err)
	}
	w.Flush()
	return w.Error()
}

// Write renders the single-report text form of a finished run.
func Write(w io.Writer, rep *models.Report) error {
	fmt.Fprintf(w, "Cross-sectional areas (%s)\n", rep.Unit)
	fmt.Fprintf(w, "Crop box: rows %d-%d, cols %d-%d; intensity bands: <%d / %d-%d / >%d\n",
		rep.CropBox.MinRow, rep.CropBox.MaxRow, rep.CropBox.MinCol, rep.CropBox.MaxCol,
		rep.Low, rep.Low, rep.High, rep.High)

	for _, side := range models.Sides {
		s := rep.Side(side)
		fmt.Fprintf(w, "\n%s side:\n", side)
		fmt.Fprintf(w, "  muscle total:   %10.3f\n", s.Muscle.Area)
		fmt.Fprintf(w, "  extensors:      %10.3f\n", s.Extensor.Area)
		fmt.Fprintf(w, "  flexors:        %10.3f\n", s.Flexor.Area)
		fmt.Fprintf(w, "  fat:            %10.3f\n", s.Fat.Area)
		fmt.Fprintf(w, "  noncontractile: %10.3f\n", s.Noncontractile.Area)
	}

	mean, sigma := measure.Summary([]float64{rep.Left.Muscle.Area, rep.Right.Muscle.Area})
	_, err := fmt.Fprintf(w, "\nmuscle mean across sides: %.3f (sd %.3f)\n", mean, sigma)
	return err
}
