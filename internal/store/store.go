// Package store persists segmentation results.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/dgallion1/itemsplit/internal/segment"
)

// Sink writes the blocks of one filing and returns where they went.
type Sink interface {
	Put(ctx context.Context, name string, blocks []segment.TextBlock) (string, error)
}

// ResultName maps an input filename to its result object name: the base name
// with its extension replaced by .json.
func ResultName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
}

// Encode renders blocks as the indented JSON array written by every sink.
func Encode(blocks []segment.TextBlock) ([]byte, error) {
	if blocks == nil {
		blocks = []segment.TextBlock{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(blocks); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
