package segment

import (
	"sort"
	"strings"

	"github.com/dgallion1/itemsplit/internal/doctree"
)

// markerRun brackets the key inside every sentinel.
const markerRun = "********************"

// Sentinel returns the marker text for key, e.g.
// ********************[item_1a]********************.
func Sentinel(key string) string {
	return markerRun + "[" + strings.ToLower(key) + "]" + markerRun
}

// Label replaces each winning node with a sentinel node at the same position,
// then removes every table. Sentinels inside a replaced winner or a removed
// table are moved to the position of the node that contained them, so the
// labeled tree always holds one sentinel per winner.
func Label(tree *doctree.Tree, result MatchResult) {
	winners := make([]Candidate, 0, len(result))
	for _, c := range result {
		winners = append(winners, c)
	}
	// Descendants come after their ancestors in document order; label them first.
	sort.Slice(winners, func(i, j int) bool { return winners[i].Position > winners[j].Position })

	for _, w := range winners {
		marker := tree.NewNode(doctree.Node{
			Kind: doctree.KindSentinel,
			Tag:  "div",
			Text: Sentinel(w.Key),
		})
		with := append([]doctree.NodeID{marker}, tree.Find(w.Node, doctree.KindSentinel)...)
		tree.Replace(w.Node, with...)
	}

	for _, table := range tree.Find(tree.Root(), doctree.KindTable) {
		if !tree.Attached(table) {
			continue
		}
		tree.Replace(table, tree.Find(table, doctree.KindSentinel)...)
	}
}
