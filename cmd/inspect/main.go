package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/SparkleMalone/SimpleFeatures/internal/crs"
	"github.com/SparkleMalone/SimpleFeatures/internal/dataset"
	"github.com/SparkleMalone/SimpleFeatures/internal/logger"
	"github.com/SparkleMalone/SimpleFeatures/internal/topo"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	EPSG      int    `short:"e" long:"epsg"     env:"EPSG"   description:"EPSG code of the input data"    default:"4326"`
	Format    string `short:"f" long:"format"   description:"Output format" choice:"text" choice:"json" default:"text"`
	LonColumn string `long:"lon-column"         description:"CSV longitude column" default:"lon"`
	LatColumn string `long:"lat-column"         description:"CSV latitude column" default:"lat"`
	Validate  bool   `short:"v" long:"validate" description:"Check geometry validity (needs GEOS, slower)"`

	Args struct {
		Paths []string `positional-arg-name:"dataset" required:"1"`
	} `positional-args:"true"`
}

// Summary is the per-dataset inspection report.
type Summary struct {
	Path          string            `json:"path"`
	CRS           string            `json:"crs"`
	Features      int               `json:"features"`
	GeometryTypes map[string]int    `json:"geometry_types"`
	Bound         [4]float64        `json:"bound"` // minx, miny, maxx, maxy
	Attributes    map[string]string `json:"attributes"`
	Invalid       int               `json:"invalid,omitempty"`
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

	system, err := crs.FromEPSG(opts.EPSG)
	if err != nil {
		log.Fatal().Err(err).Msg("Unknown CRS")
	}

	summaries := make([]Summary, 0, len(opts.Args.Paths))
	for _, path := range opts.Args.Paths {
		s, err := inspect(path, system, opts)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("Failed to inspect dataset")
		}
		summaries = append(summaries, s)
	}

	if opts.Format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summaries); err != nil {
			log.Fatal().Err(err).Msg("Failed to encode summary")
		}
		return
	}

	for _, s := range summaries {
		printSummary(s, opts.Validate)
	}
}

func inspect(path string, system *crs.CRS, opts Options) (Summary, error) {
	c, err := dataset.Load(path, system.Code, dataset.Options{
		LonColumn: opts.LonColumn,
		LatColumn: opts.LatColumn,
	})
	if err != nil {
		return Summary{}, err
	}

	b := c.Bound()
	s := Summary{
		Path:          path,
		CRS:           system.String(),
		Features:      c.Len(),
		GeometryTypes: c.GeometryTypes(),
		Bound:         [4]float64{b.Min[0], b.Min[1], b.Max[0], b.Max[1]},
		Attributes:    c.AttributeSchema(),
	}

	if opts.Validate {
		for _, f := range c.Features {
			ok, err := topo.Valid(f.Geometry)
			if err != nil {
				return Summary{}, err
			}
			if !ok {
				s.Invalid++
			}
		}
	}

	return s, nil
}

func printSummary(s Summary, validated bool) {
	fmt.Printf("%s\n", s.Path)
	fmt.Printf("  crs:      %s\n", s.CRS)
	fmt.Printf("  features: %d\n", s.Features)
	for name, count := range s.GeometryTypes {
		fmt.Printf("    %-16s %d\n", name, count)
	}
	fmt.Printf("  bound:    %.6f %.6f %.6f %.6f\n", s.Bound[0], s.Bound[1], s.Bound[2], s.Bound[3])
	if len(s.Attributes) > 0 {
		fmt.Printf("  attributes:\n")
		for name, kind := range s.Attributes {
			fmt.Printf("    %-16s %s\n", name, kind)
		}
	}
	if validated {
		fmt.Printf("  invalid:  %d\n", s.Invalid)
	}
}
