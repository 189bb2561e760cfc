// Package segment locates the catalog's section headers in a document tree
// and splits the document text into one block per section.
//
// A run is a pure function of (tree, options): the caller's tree is cloned
// before labeling, nothing is cached between runs, and every failure is one of
// the typed errors in this package.
package segment

import (
	"fmt"

	"github.com/dgallion1/itemsplit/internal/doctree"
)

// Detect scans, selects and validates without touching the tree. It returns
// the winning header per key.
func Detect(tree *doctree.Tree, opts Options) (MatchResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	groups, err := Scan(tree, opts)
	if err != nil {
		return nil, err
	}
	result := SelectBest(groups)
	if err := Validate(result, opts.Catalog); err != nil {
		return nil, err
	}
	return result, nil
}

// Run segments tree into one TextBlock per catalog key, in document order.
// A document whose own text already contains a sentinel string fails with an
// error matching ErrSegmentation (reason "marker_mismatch").
func Run(tree *doctree.Tree, opts Options) ([]TextBlock, error) {
	opts = opts.withDefaults()
	result, err := Detect(tree, opts)
	if err != nil {
		return nil, err
	}

	labeled := tree.Clone()
	Label(labeled, result)

	blocks := Split(labeled.Linearize())
	if len(blocks) != opts.Catalog.Len() {
		return nil, fmt.Errorf("%w: found %d section markers, expected %d",
			ErrSegmentation, len(blocks), opts.Catalog.Len())
	}
	return blocks, nil
}
