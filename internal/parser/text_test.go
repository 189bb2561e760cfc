package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/itemsplit/internal/doctree"
)

func blockTexts(tree *doctree.Tree) []string {
	var out []string
	for _, id := range tree.Blocks() {
		out = append(out, tree.Text(id, " "))
	}
	return out
}

func TestTextParser_BasicParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextParser{}
	tree, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tree.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", tree.Title)
	}
	got := blockTexts(tree)
	if len(got) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(got))
	}

	want := []string{
		"First paragraph line one. First paragraph line two.",
		"Second paragraph.",
		"Third paragraph.",
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("block[%d]: expected %q, got %q", i, w, got[i])
		}
	}
}

func TestTextParser_LinearizeKeepsLines(t *testing.T) {
	input := "ITEM 1.  BUSINESS\n\nWe make things.\nMany things."
	p := &TextParser{}
	tree, err := p.Parse(strings.NewReader(input), "filing.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "ITEM 1.  BUSINESS\nWe make things. Many things."
	if got := tree.Linearize(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	tree, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "empty" {
		t.Errorf("expected title %q, got %q", "empty", tree.Title)
	}
	if len(tree.Blocks()) != 0 {
		t.Errorf("expected 0 blocks for empty input, got %d", len(tree.Blocks()))
	}
}

func TestTextParser_MultipleBlankLines(t *testing.T) {
	// Multiple consecutive blank lines should not produce empty paragraphs.
	input := "Para one.\n\n\n\nPara two."
	p := &TextParser{}
	tree, err := p.Parse(strings.NewReader(input), "gaps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Blocks()) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(tree.Blocks()))
	}
}

func TestTextParser_WhitespaceOnlyLines(t *testing.T) {
	// Lines with only whitespace should be treated as blank.
	input := "Para one.\n   \nPara two."
	p := &TextParser{}
	tree, err := p.Parse(strings.NewReader(input), "ws.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Blocks()) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(tree.Blocks()))
	}
}
