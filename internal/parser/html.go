package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/itemsplit/internal/doctree"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML primary documents, including inline-XBRL filings.
type HTMLParser struct{}

// Elements dropped with their content before any scanning. Anchors carry
// table-of-contents links that would otherwise look like section headers.
var droppedElements = map[string]bool{
	"ix:header": true,
	"a":         true,
	"hr":        true,
	"script":    true,
	"style":     true,
	"head":      true,
	"noscript":  true,
}

var blockElements = map[string]bool{
	"div": true, "p": true, "li": true, "blockquote": true, "center": true,
	"section": true, "article": true, "pre": true, "br": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Tree, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	tree := doctree.New(trimExt(filename, ".html", ".htm"))

	// Extract title from <title> tag if present.
	if title := findTitle(doc); title != "" {
		tree.Title = title
	}

	var walk func(n *html.Node, parent doctree.NodeID)
	walk = func(n *html.Node, parent doctree.NodeID) {
		switch n.Type {
		case html.TextNode:
			if strings.TrimSpace(n.Data) != "" {
				tree.AppendText(parent, n.Data)
			}
			return
		case html.ElementNode:
			tag := strings.ToLower(n.Data)
			if droppedElements[tag] {
				return
			}
			id := tree.Append(parent, doctree.Node{Kind: elementKind(tag), Tag: tag})
			if tag == "body" {
				tree.SetBody(id)
			}
			parent = id
		case html.DocumentNode:
		default:
			return
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, parent)
		}
	}
	walk(doc, tree.Root())

	return tree, nil
}

func elementKind(tag string) doctree.Kind {
	switch {
	case tag == "table":
		return doctree.KindTable
	case tag == "body" || tag == "html":
		return doctree.KindDocument
	case blockElements[tag]:
		return doctree.KindBlock
	}
	return doctree.KindInline
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}
