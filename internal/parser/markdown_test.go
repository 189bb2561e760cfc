package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/itemsplit/internal/doctree"
)

func TestMarkdownParser_HeadingsAndParagraphsAreBlocks(t *testing.T) {
	input := `# Annual Report

Intro text.

## Item 1. Business

Business content.

## Item 1A. Risk Factors

Risk content.
`
	p := &MarkdownParser{}
	tree, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tree.Title != "doc" {
		t.Errorf("expected title %q, got %q", "doc", tree.Title)
	}

	want := []string{
		"Annual Report",
		"Intro text.",
		"Item 1. Business",
		"Business content.",
		"Item 1A. Risk Factors",
		"Risk content.",
	}
	got := blockTexts(tree)
	if len(got) != len(want) {
		t.Fatalf("expected %d blocks, got %d: %q", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("block[%d]: expected %q, got %q", i, w, got[i])
		}
	}

	heading := tree.Node(tree.Blocks()[2])
	if heading.Tag != "h2" {
		t.Errorf("expected h2 tag, got %q", heading.Tag)
	}
}

func TestMarkdownParser_ListItems(t *testing.T) {
	input := "Intro.\n\n- first item\n- second item\n"

	p := &MarkdownParser{}
	tree, err := p.Parse(strings.NewReader(input), "list.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var items []string
	for _, id := range tree.Blocks() {
		if tree.Node(id).Tag == "li" {
			items = append(items, tree.Text(id, " "))
		}
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 list items, got %d", len(items))
	}
	if items[0] != "first item" || items[1] != "second item" {
		t.Errorf("unexpected list items: %q", items)
	}
}

func TestMarkdownParser_CodeBlocks(t *testing.T) {
	input := "# API\n\n```\nGET /api/users\n```\n\nMore text after code.\n"

	p := &MarkdownParser{}
	tree, err := p.Parse(strings.NewReader(input), "api.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	linear := tree.Linearize()
	if !strings.Contains(linear, "GET /api/users") {
		t.Errorf("expected code block content in text, got %q", linear)
	}
	if !strings.Contains(linear, "More text after code.") {
		t.Errorf("expected post-code text, got %q", linear)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	tree, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Blocks()) != 0 {
		t.Errorf("expected 0 blocks for empty input, got %d", len(tree.Blocks()))
	}
	if tree.Body() != tree.Root() {
		t.Errorf("expected body to default to root")
	}
	if tree.Node(tree.Root()).Kind != doctree.KindDocument {
		t.Errorf("expected document root")
	}
}

func TestMarkdownParser_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"plain.md", "plain"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		tree, err := p.Parse(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if tree.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, tree.Title)
		}
	}
}
