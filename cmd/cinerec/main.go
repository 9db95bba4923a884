// Package main provides the cinerec command line interface.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"cinerec/internal/config"
	"cinerec/internal/features"
	"cinerec/internal/ingest"
	"cinerec/internal/service"
)

var (
	cfgPath string
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "cinerec",
		Short: "Content-based movie recommendations",
		Long:  "cinerec ranks movies by content similarity to a seed title and re-ranks the candidates with soft user preferences.",
	}
)

func main() {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func loadConfig() (*config.AppConfig, error) {
	if cfgPath != "" {
		return config.Load(cfgPath)
	}
	cfg, _, err := config.LoadDefault()
	return cfg, err
}

// buildRecommender loads the corpus and initializes the pipeline from config.
func buildRecommender(logger zerolog.Logger) (*service.Recommender, *config.AppConfig, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	movies, err := ingest.NewLoader(cfg.DataPath, logger).Load()
	if err != nil {
		return nil, nil, err
	}
	rec, err := service.NewRecommender(movies, service.Config{
		Features: features.Params{
			MaxFeatures: cfg.Features.MaxFeatures,
			NgramMin:    cfg.Features.NgramMin,
			NgramMax:    cfg.Features.NgramMax,
			MinDF:       cfg.Features.MinDF,
		},
		CachePath: cfg.CachePath,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := rec.Init(); err != nil {
		return nil, nil, err
	}
	return rec, cfg, nil
}
