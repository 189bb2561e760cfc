package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/itemsplit/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown documents using goldmark. Headings,
// paragraphs, list items and code blocks each become one block node.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Tree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	tree := doctree.New(trimExt(filename, ".md", ".markdown"))

	var addBlocks func(n ast.Node, parent doctree.NodeID)
	addBlocks = func(n ast.Node, parent doctree.NodeID) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch node := c.(type) {
			case *ast.Heading:
				appendBlock(tree, parent, fmt.Sprintf("h%d", node.Level), extractText(node, src))
			case *ast.List:
				list := tree.Append(parent, doctree.Node{Kind: doctree.KindInline, Tag: "ul"})
				for item := node.FirstChild(); item != nil; item = item.NextSibling() {
					appendBlock(tree, list, "li", extractText(item, src))
				}
			case *ast.Blockquote:
				quote := tree.Append(parent, doctree.Node{Kind: doctree.KindBlock, Tag: "blockquote"})
				addBlocks(node, quote)
			case *ast.FencedCodeBlock, *ast.CodeBlock:
				appendBlock(tree, parent, "pre", extractText(node, src))
			case *ast.ThematicBreak:
			default:
				appendBlock(tree, parent, "p", extractText(node, src))
			}
		}
	}
	addBlocks(doc, tree.Root())

	return tree, nil
}

func appendBlock(tree *doctree.Tree, parent doctree.NodeID, tag, body string) {
	if body == "" {
		return
	}
	id := tree.Append(parent, doctree.Node{Kind: doctree.KindBlock, Tag: tag})
	tree.AppendText(id, body)
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	switch n.(type) {
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch {
		case c.Kind() == ast.KindText:
			t := c.(*ast.Text)
			buf.Write(t.Segment.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case c.Type() == ast.TypeBlock:
			if buf.Len() > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(extractText(c, src))
		default:
			// Nested inlines: emphasis, links, code spans.
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
