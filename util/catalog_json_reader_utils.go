package util

import (
	"fmt"
	"os"

	"ft-server/catalog"

	"github.com/goccy/go-json"
)

// ReadCatalogFromJSON loads a catalog override: a JSON array of points of
// interest. Entries without an id get one derived from their name.
func ReadCatalogFromJSON(filePath string) (catalog.Catalog, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var c catalog.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	if len(c) == 0 {
		return nil, fmt.Errorf("catalog %q is empty", filePath)
	}
	for i := range c {
		if err := ValidateStruct(c[i]); err != nil {
			return nil, fmt.Errorf("catalog entry %d (%q): %w", i, c[i].Name, err)
		}
	}
	return c.WithIDs(), nil
}
