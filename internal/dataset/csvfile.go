package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"

	"github.com/SparkleMalone/SimpleFeatures/internal/feature"
)

// loadCSV reads point features from a CSV file with a header row. The
// coordinate columns are found case-insensitively; the remaining columns
// become string properties.
func loadCSV(path string, epsg int, opts Options) (*feature.Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	lonIdx, latIdx := -1, -1
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
		switch strings.ToLower(names[i]) {
		case strings.ToLower(opts.lonColumn()):
			lonIdx = i
		case strings.ToLower(opts.latColumn()):
			latIdx = i
		}
	}
	if lonIdx < 0 || latIdx < 0 {
		return nil, fmt.Errorf("CSV %s has no %q/%q columns", path, opts.lonColumn(), opts.latColumn())
	}

	collection := feature.NewCollection(epsg)
	malformed := 0

	for row := 1; ; row++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		lon, lonErr := strconv.ParseFloat(record[lonIdx], 64)
		lat, latErr := strconv.ParseFloat(record[latIdx], 64)
		if lonErr != nil || latErr != nil {
			malformed++
			log.Warn().Int("row", row).Str("path", path).Msg("Malformed coordinate, skipping row")
			if malformed > opts.ErrorLimit {
				return nil, fmt.Errorf("%d malformed rows in %s, giving up", malformed, path)
			}
			continue
		}

		ft := feature.NewFeature(orb.Point{lon, lat})
		ft.ID = strconv.Itoa(row)
		for i, v := range record {
			if i == lonIdx || i == latIdx {
				continue
			}
			ft.Properties[names[i]] = v
		}
		collection.Append(ft)
	}

	return collection, nil
}

// saveCSV writes point features as lon, lat plus sorted property columns.
// Non-point geometries cannot be represented and are an error.
func saveCSV(path string, c *feature.Collection, opts Options) error {
	for _, ft := range c.Features {
		if _, ok := ft.Geometry.(orb.Point); !ok {
			return fmt.Errorf("CSV output supports points only, found %s", ft.Geometry.GeoJSONType())
		}
	}

	keys := c.AttributeKeys()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	header := append([]string{opts.lonColumn(), opts.latColumn()}, keys...)
	if err := w.Write(header); err != nil {
		return err
	}

	for _, ft := range c.Features {
		p := ft.Geometry.(orb.Point)
		record := make([]string, 0, len(header))
		record = append(record,
			strconv.FormatFloat(p[0], 'f', -1, 64),
			strconv.FormatFloat(p[1], 'f', -1, 64),
		)
		for _, k := range keys {
			record = append(record, propertyString(ft.Properties[k]))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func propertyString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
