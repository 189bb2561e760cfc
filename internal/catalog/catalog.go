// Package catalog loads section catalogs from YAML files.
//
// A catalog file lists sections in the order they appear in a document:
//
//	items:
//	  - key: item_1
//	    title: Item 1. Business
//	  - key: item_1a
//	    title: Item 1A. Risk Factors
package catalog

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/dgallion1/itemsplit/internal/segment"
)

type file struct {
	Items []segment.Entry `yaml:"items"`
}

// Read decodes a catalog from r.
func Read(r io.Reader) (*segment.Catalog, error) {
	var f file
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return segment.NewCatalog(f.Items...)
}

// Load reads the catalog at path. An empty path yields the default 10-K catalog.
func Load(path string) (*segment.Catalog, error) {
	if path == "" {
		return segment.DefaultCatalog(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	c, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Write encodes c in the file format Read accepts.
func Write(w io.Writer, c *segment.Catalog) error {
	return yaml.NewEncoder(w).Encode(file{Items: c.Entries()})
}
