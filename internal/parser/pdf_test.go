package parser

import (
	"testing"
)

func TestPagesToTree_LineBlocks(t *testing.T) {
	pages := splitPages("ITEM 1. BUSINESS\nWe build things.\n\f\n  \n\fITEM 2. PROPERTIES\nOffices.")
	tree := pagesToTree("report", pages)

	got := blockTexts(tree)
	want := []string{"ITEM 1. BUSINESS", "We build things.", "ITEM 2. PROPERTIES", "Offices."}
	if len(got) != len(want) {
		t.Fatalf("expected %d blocks, got %d: %q", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("block[%d]: expected %q, got %q", i, w, got[i])
		}
	}

	last := tree.Node(tree.Blocks()[3])
	if last.Page != 3 {
		t.Errorf("expected page 3 for last block, got %d", last.Page)
	}
}
