package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"thighcsa/pkg/analysis"
	"thighcsa/pkg/config"
	"thighcsa/pkg/imaging"
	"thighcsa/pkg/measure"
	"thighcsa/pkg/render"
	"thighcsa/pkg/report"
	"thighcsa/pkg/segment"
)

func main() {
	// Parse command line arguments
	inputPath := flag.String("input", "", "Cross-sectional image (PNG, JPEG or DICOM)")
	planPath := flag.String("plan", "", "YAML digitization plan with seeds and boundary polygons")
	configPath := flag.String("config", "thighcsa.yaml", "Configuration file")
	subject := flag.String("subject", "", "Subject identifier for the study log")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration file and exit")
	flag.Parse()

	if *writeConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote default configuration to %s\n", *configPath)
		return
	}

	if *inputPath == "" || *planPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	level := zerolog.WarnLevel
	if cfg.Output.Verbose {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	grid, err := imaging.Load(*inputPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load image")
	}
	log.Info().
		Int("rows", grid.Rows).Int("cols", grid.Cols).
		Bool("calibrated", grid.Spacing != nil).
		Msg("image loaded")

	dig, err := loadPlan(*planPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load digitization plan")
	}

	policy, err := measure.ParsePolicy(cfg.Measurement.UnitPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid unit policy")
	}
	params := &analysis.Params{
		Tolerance:        cfg.Segmentation.Tolerance,
		Connectivity:     segment.Connectivity(cfg.Segmentation.Connectivity),
		BackgroundMargin: cfg.Segmentation.BackgroundMargin,
		UnitPolicy:       policy,
	}

	analyzer := analysis.New(params, log)
	rep, err := analyzer.Process(grid, dig)
	if err != nil {
		log.Fatal().Err(err).Msg("measurement run failed")
	}

	switch cfg.Output.Policy {
	case config.PolicyStudyLog:
		studyLog := &report.StudyLog{Path: cfg.Output.StudyLogPath}
		id := *subject
		if id == "" {
			id = dig.subject
		}
		if err := studyLog.Append(id, time.Now(), rep); err != nil {
			log.Fatal().Err(err).Msg("failed to append study log")
		}
		log.Info().Str("path", cfg.Output.StudyLogPath).Msg("study log updated")
	default:
		if err := report.Write(os.Stdout, rep); err != nil {
			log.Fatal().Err(err).Msg("failed to write report")
		}
	}

	if cfg.Output.SaveMasks {
		work := grid.Crop(rep.CropBox)
		if err := render.SaveOverlays(work, render.Regions(rep), cfg.Output.MaskDir); err != nil {
			log.Fatal().Err(err).Msg("failed to save mask overlays")
		}
		log.Info().Str("dir", cfg.Output.MaskDir).Msg("mask overlays saved")
	}
}
