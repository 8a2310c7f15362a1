package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"thighcsa/internal/models"
	"thighcsa/pkg/analysis"
)

// planFile is the YAML layout of a digitization plan: pre-recorded
// seeds and boundary polygons standing in for the interactive
// digitizer. Coordinates are relative to the cropped working grid.
type planFile struct {
	Subject string   `yaml:"subject"`
	Left    sidePlan `yaml:"left"`
	Right   sidePlan `yaml:"right"`
}

type sidePlan struct {
	Fat     seedPlan       `yaml:"fat"`
	Femur   seedPlan       `yaml:"femur"`
	Muscle  seedPlan       `yaml:"muscle"`
	Polygon models.Polygon `yaml:"polygon"`
}

type seedPlan struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// scriptDigitizer replays a digitization plan through the
// analysis.Digitizer interface, approving the first split on each
// side. It lets recorded sessions be re-measured without the
// interactive front-end.
type scriptDigitizer struct {
	subject string
	sides   map[models.Side]sidePlan
	log     zerolog.Logger
}

func loadPlan(path string, log zerolog.Logger) (*scriptDigitizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading plan file: %w", err)
	}

	var plan planFile
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("error parsing plan file: %w", err)
	}

	return &scriptDigitizer{
		subject: plan.Subject,
		sides: map[models.Side]sidePlan{
			models.Left:  plan.Left,
			models.Right: plan.Right,
		},
		log: log,
	}, nil
}

// Seed returns the recorded seed for the side and tissue.
func (d *scriptDigitizer) Seed(side models.Side, tissue models.Tissue) (models.Seed, error) {
	plan := d.sides[side]
	var p seedPlan
	switch tissue {
	case models.Fat:
		p = plan.Fat
	case models.Femur:
		p = plan.Femur
	case models.Muscle:
		p = plan.Muscle
	}
	return models.Seed{Row: p.Row, Col: p.Col, Tissue: tissue, Side: side}, nil
}

// Polygon returns the recorded flexor boundary for the side.
func (d *scriptDigitizer) Polygon(side models.Side) (models.Polygon, error) {
	poly := d.sides[side].Polygon
	if len(poly) == 0 {
		return nil, fmt.Errorf("plan has no polygon for the %s side", side)
	}
	return poly, nil
}

// Review approves every split: a recorded plan already reflects an
// accepted digitization.
func (d *scriptDigitizer) Review(side models.Side, split analysis.Split) (bool, error) {
	d.log.Info().Str("side", side.String()).Msg("auto-approving recorded split")
	return true, nil
}
