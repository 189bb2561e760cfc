package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/itemsplit/internal/doctree"
)

// TextParser handles plain text documents such as pre-HTML EDGAR filings.
// Each blank-line separated paragraph becomes one block, so a header line
// standing on its own ("ITEM 1.  BUSINESS") is a header candidate.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Tree, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	tree := doctree.New(trimExt(filename, ".txt"))
	for _, para := range paragraphs {
		id := tree.Append(tree.Root(), doctree.Node{Kind: doctree.KindBlock, Tag: "p"})
		for _, line := range strings.Split(para, "\n") {
			tree.AppendText(id, line)
		}
	}

	return tree, nil
}
