// Package filing isolates the primary document from an EDGAR full-submission
// file: it decodes the bytes, finds the single <DOCUMENT> of the requested form
// type with <SEQUENCE>1, and unwraps inline-XBRL content.
package filing

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/itemsplit/internal/parser"
)

// DefaultFormType is the form whose primary document is extracted.
const DefaultFormType = "10-K"

// ErrNoPrimaryDocument means the envelope holds no document of the form type.
var ErrNoPrimaryDocument = errors.New("no primary document in filing")

// AmbiguousDocumentError means more than one primary document matched.
type AmbiguousDocumentError struct {
	FormType string
	Matches  int
}

func (e *AmbiguousDocumentError) Error() string {
	return fmt.Sprintf("ambiguous %s primary document: %d matches", e.FormType, e.Matches)
}

// Primary is an isolated primary document.
type Primary struct {
	Content  string
	Format   parser.Format
	Encoding string
	XBRL     bool
}

var (
	envelopePattern = regexp.MustCompile(`(?i)<DOCUMENT>`)
	xbrlOpen        = regexp.MustCompile(`(?i)<XBRL[^>]*>`)
	xbrlBlock       = regexp.MustCompile(`(?is)<XBRL[^>]*>(.*?)</XBRL>`)
	htmlMarkup      = regexp.MustCompile(`(?i)<(html|body|div|p|table|font)[\s>]`)
)

// IsEnvelope reports whether raw looks like a full-submission file rather than
// an already isolated document.
func IsEnvelope(raw []byte) bool {
	head := raw
	if len(head) > 64*1024 {
		head = head[:64*1024]
	}
	return envelopePattern.Match(head) || bytes.Contains(head, []byte("<SEC-DOCUMENT>"))
}

// Extract isolates the primary document of formType (DefaultFormType if empty).
func Extract(raw []byte, formType string) (*Primary, error) {
	if formType == "" {
		formType = DefaultFormType
	}
	text, enc := Decode(raw)

	pattern, err := documentPattern(formType)
	if err != nil {
		return nil, err
	}
	matches := pattern.FindAllStringSubmatch(text, -1)
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: form type %s", ErrNoPrimaryDocument, formType)
	case 1:
	default:
		return nil, &AmbiguousDocumentError{FormType: formType, Matches: len(matches)}
	}

	doc := matches[0][1]
	p := &Primary{Content: doc, Encoding: enc}
	if xbrlOpen.MatchString(doc) {
		if inner := xbrlBlock.FindStringSubmatch(doc); inner != nil {
			p.Content = strings.ReplaceAll(inner[1], "&nbsp;", " ")
			p.XBRL = true
		}
	}
	p.Format = SniffFormat(p.Content)
	return p, nil
}

// SniffFormat tells HTML apart from plain-text primary documents.
func SniffFormat(content string) parser.Format {
	if htmlMarkup.MatchString(content) {
		return parser.FormatHTML
	}
	return parser.FormatText
}

func documentPattern(formType string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`(?s)<DOCUMENT>\s*<TYPE>\s*` + regexp.QuoteMeta(formType) + `\s*<SEQUENCE>1\b\s*(.*?)</DOCUMENT>`)
	if err != nil {
		return nil, fmt.Errorf("compile document pattern: %w", err)
	}
	return re, nil
}
