package segment

import (
	"fmt"
	"unicode/utf8"

	"github.com/dgallion1/itemsplit/internal/doctree"
)

const (
	DefaultThreshold       = 70
	DefaultMaxHeaderLength = 200
)

// Options configures one segmentation run. A nil Catalog selects
// DefaultCatalog and a zero MaxHeaderLength selects DefaultMaxHeaderLength;
// Threshold is always taken as given.
type Options struct {
	Catalog         *Catalog
	Threshold       int // Scores must be strictly greater to qualify.
	MaxHeaderLength int // Longer block text is prose, never a header.
}

// Validate reports out-of-range settings.
func (o Options) Validate() error {
	if o.Threshold < 0 || o.Threshold > 100 {
		return fmt.Errorf("threshold %d out of range 0..100", o.Threshold)
	}
	if o.MaxHeaderLength < 0 {
		return fmt.Errorf("max header length %d is negative", o.MaxHeaderLength)
	}
	return nil
}

// DefaultOptions returns the 10-K catalog with the default threshold and
// header length.
func DefaultOptions() Options {
	return Options{
		Catalog:         DefaultCatalog(),
		Threshold:       DefaultThreshold,
		MaxHeaderLength: DefaultMaxHeaderLength,
	}
}

func (o Options) withDefaults() Options {
	if o.Catalog == nil {
		o.Catalog = DefaultCatalog()
	}
	if o.MaxHeaderLength == 0 {
		o.MaxHeaderLength = DefaultMaxHeaderLength
	}
	return o
}

// Candidate is a block hypothesized to be the header of section Key.
type Candidate struct {
	Key      string         `json:"item_key"`
	Score    int            `json:"score"`
	Node     doctree.NodeID `json:"node"`
	Position int            `json:"position"` // Index in tree.Blocks()
	RawText  string         `json:"raw_text"`
}

// Scan scores every short block below the tree's body against the catalog and
// groups qualifying candidates by key, each group in document order.
func Scan(tree *doctree.Tree, opts Options) (map[string][]Candidate, error) {
	opts = opts.withDefaults()

	if tree.Text(tree.Body(), " ") == "" {
		return nil, &EmptyDocumentError{Title: tree.Title}
	}

	blocks := tree.Blocks()
	groups := make(map[string][]Candidate)
	for pos, id := range blocks {
		raw := tree.Text(id, " ")
		if raw == "" {
			continue
		}
		if utf8.RuneCountInString(raw) > opts.MaxHeaderLength {
			continue
		}
		key, score := opts.Catalog.BestMatch(Normalize(raw))
		if score > opts.Threshold {
			groups[key] = append(groups[key], Candidate{
				Key:      key,
				Score:    score,
				Node:     id,
				Position: pos,
				RawText:  raw,
			})
		}
	}
	return groups, nil
}
