package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/itemsplit/internal/doctree"
)

// Parser converts a primary document into a doctree.Tree.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.Tree, error)
}

// Format names a primary document encoding.
type Format string

const (
	FormatHTML     Format = "html"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
)

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// Options tunes parsers that have knobs.
type Options struct {
	PDFFallbackPdftotext bool
}

// ForFormat returns the parser for a known format.
func ForFormat(f Format, opts Options) (Parser, error) {
	switch f {
	case FormatHTML:
		return &HTMLParser{}, nil
	case FormatText:
		return &TextParser{}, nil
	case FormatMarkdown:
		return &MarkdownParser{}, nil
	case FormatPDF:
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case FormatDOCX:
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %q", f)
	}
}

// FormatForFile maps a filename extension to a format.
func FormatForFile(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return FormatText, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	f, err := FormatForFile(filename)
	if err != nil {
		return nil, err
	}
	return ForFormat(f, opts)
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

func trimExt(filename string, exts ...string) string {
	for _, ext := range exts {
		filename = strings.TrimSuffix(filename, ext)
	}
	return filename
}
