package dataset

import (
	"bufio"
	"fmt"
	"os"

	"github.com/paulmach/orb/encoding/wkt"

	"github.com/SparkleMalone/SimpleFeatures/internal/feature"
)

// saveWKT writes one geometry per line, prefixed with the feature ID.
func saveWKT(path string, c *feature.Collection) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	for _, ft := range c.Features {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", ft.ID, wkt.MarshalString(ft.Geometry)); err != nil {
			return err
		}
	}
	return w.Flush()
}
