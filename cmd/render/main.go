package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/SparkleMalone/SimpleFeatures/internal/config"
	"github.com/SparkleMalone/SimpleFeatures/internal/logger"
	"github.com/SparkleMalone/SimpleFeatures/internal/pipeline"
	"github.com/SparkleMalone/SimpleFeatures/internal/render"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
	Output     string `short:"o" long:"out"    description:"Override the configured image path"`
	Width      int    `short:"W" long:"width"  description:"Override image width"`
	Height     int    `short:"H" long:"height" description:"Override image height"`
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
	if cfg.Render == nil {
		log.Fatal().Msg("Configuration has no render section")
	}

	runner := pipeline.New(cfg)
	if err := runner.Load(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load layers")
	}
	if err := runner.Run(); err != nil {
		log.Fatal().Err(err).Msg("Pipeline failed")
	}

	layers := make([]render.StyledCollection, 0, len(cfg.Render.Layers))
	for _, sl := range cfg.Render.Layers {
		c, ok := runner.Layer(sl.Layer)
		if !ok {
			log.Fatal().Str("layer", sl.Layer).Msg("Render layer not loaded")
		}
		style, err := render.StyleFromConfig(sl)
		if err != nil {
			log.Fatal().Err(err).Msg("Bad layer style")
		}
		layers = append(layers, render.StyledCollection{Collection: c, Style: style})
	}

	renderOpts := render.Options{Width: cfg.Render.Width, Height: cfg.Render.Height}
	if opts.Width > 0 {
		renderOpts.Width = opts.Width
	}
	if opts.Height > 0 {
		renderOpts.Height = opts.Height
	}
	if cfg.Render.Background != "" {
		bg, err := render.ParseHexColor(cfg.Render.Background)
		if err != nil {
			log.Fatal().Err(err).Msg("Bad background color")
		}
		renderOpts.Background = bg
		renderOpts.HasBackground = true
	}

	img, err := render.Plot(layers, renderOpts)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to render plot")
	}

	path := cfg.Render.Path
	if opts.Output != "" {
		path = opts.Output
	}
	if err := render.Save(path, img); err != nil {
		log.Fatal().Err(err).Msg("Failed to save image")
	}

	log.Info().Str("path", path).Int("layers", len(layers)).Msg("Plot written")
}
