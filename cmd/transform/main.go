package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/SparkleMalone/SimpleFeatures/internal/config"
	"github.com/SparkleMalone/SimpleFeatures/internal/logger"
	"github.com/SparkleMalone/SimpleFeatures/internal/pipeline"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
	Check      bool   `long:"check" description:"Validate the configuration and exit"`
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
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if opts.Check {
		log.Info().
			Int("layers", len(cfg.Layers)).
			Int("operations", len(cfg.Operations)).
			Int("outputs", len(cfg.Outputs)).
			Msg("Configuration is valid")
		return
	}

	runner := pipeline.New(cfg)
	if err := runner.Load(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load layers")
	}
	if err := runner.Run(); err != nil {
		log.Fatal().Err(err).Msg("Pipeline failed")
	}
	if err := runner.WriteOutputs(); err != nil {
		log.Fatal().Err(err).Msg("Failed to write outputs")
	}
}
