package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/landsurv/parcelkml/internal/config"
	"github.com/landsurv/parcelkml/internal/kml"
	"github.com/landsurv/parcelkml/internal/logger"
	"github.com/landsurv/parcelkml/internal/records"
	"github.com/landsurv/parcelkml/internal/traverse"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"     env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
	DataDir    string `short:"d" long:"data-dir"   env:"DATA_DIR"    description:"Directory containing the parcel start and bearing/distance files"`
	OutputDir  string `short:"o" long:"output-dir" env:"OUTPUT_DIR"  description:"Directory to write KML files into"`
	Parcels    int    `short:"n" long:"parcels"    env:"PARCELS"     description:"Number of parcels to process when the config lists none"`
	Minify     bool   `short:"m" long:"minify"     description:"Minify the generated KML"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		// The config file is optional when --data-dir is given; the
		// conventional parcel file names cover that case.
		if os.IsNotExist(err) && opts.DataDir != "" {
			cfg = &config.Config{}
		} else {
			log.Fatal().Err(err).Str("path", opts.ConfigFile).Msg("Failed to load configuration")
		}
	}

	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}
	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}
	if opts.Parcels > 0 && len(cfg.Parcels) == 0 {
		cfg.Count = opts.Parcels
	}

	if err := cfg.Normalize(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	if cfg.DataDir != "" {
		if _, err := os.Stat(cfg.DataDir); err != nil {
			log.Fatal().Err(err).Str("path", cfg.DataDir).Msg("Data directory is not accessible")
		}
	}

	log.Info().
		Int("parcels", len(cfg.Parcels)).
		Str("data_dir", cfg.DataDir).
		Str("output_dir", cfg.OutputDir).
		Msg("Starting survey processing")

	parcels := make([]kml.Parcel, 0, len(cfg.Parcels))
	for i, p := range cfg.Parcels {
		bounds, err := processParcel(p)
		if err != nil {
			log.Fatal().Err(err).Str("parcel", p.Name).Msg("Failed to process parcel")
		}

		pointsFile := filepath.Join(cfg.OutputDir, fmt.Sprintf("parcel%d_survey_points.kml", i+1))
		doc := kml.PointsDocument(p.Name+" Survey Points", bounds)
		if err := kml.WriteFile(doc, pointsFile, opts.Minify); err != nil {
			log.Fatal().Err(err).Str("parcel", p.Name).Msg("Failed to write survey points KML")
		}

		log.Info().
			Str("parcel", p.Name).
			Int("points", len(bounds)).
			Str("file", pointsFile).
			Msg("Parcel processed")

		parcels = append(parcels, kml.Parcel{Name: p.Name, Bounds: bounds})
	}

	outlineFile := filepath.Join(cfg.OutputDir, "survey_outline.kml")
	doc := kml.OutlineDocument("Survey Outline", parcels)
	if err := kml.WriteFile(doc, outlineFile, opts.Minify); err != nil {
		log.Fatal().Err(err).Msg("Failed to write survey outline KML")
	}

	log.Info().Str("file", outlineFile).Msg("Survey processing finished")
}

// processParcel resolves one parcel's input files into its closed boundary.
func processParcel(p config.Parcel) (traverse.Traverse, error) {
	start, err := records.ReadStart(p.Start)
	if err != nil {
		return nil, fmt.Errorf("starting location: %w", err)
	}

	log.Debug().
		Str("name", start.Name).
		Float64("lat", start.Lat).
		Float64("lon", start.Lon).
		Msg("Starting point")

	legs, err := records.ReadBearings(p.Bearings)
	if err != nil {
		return nil, fmt.Errorf("bearing/distance records: %w", err)
	}

	bounds, err := traverse.Walk(start, legs)
	if err != nil {
		return nil, fmt.Errorf("walk traverse: %w", err)
	}

	closed, err := traverse.Close(bounds)
	if err != nil {
		return nil, fmt.Errorf("validate closure: %w", err)
	}

	return closed, nil
}
