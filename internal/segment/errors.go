package segment

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSegmentation matches every failure of the segmentation core via errors.Is.
var ErrSegmentation = errors.New("segmentation failed")

// MissingSectionError reports catalog keys without a qualifying header.
type MissingSectionError struct {
	Keys []string // Catalog order
}

func (e *MissingSectionError) Error() string {
	return fmt.Sprintf("missing sections: %s", strings.Join(e.Keys, ", "))
}

func (e *MissingSectionError) Is(target error) bool { return target == ErrSegmentation }

// OutOfOrderError reports the first pair of winning headers whose document
// positions contradict catalog order. Earlier precedes Later in the catalog.
type OutOfOrderError struct {
	Earlier Candidate
	Later   Candidate
}

func (e *OutOfOrderError) Error() string {
	return fmt.Sprintf("sections out of document order: %s (position %d, %q) must precede %s (position %d, %q)",
		e.Earlier.Key, e.Earlier.Position, e.Earlier.RawText,
		e.Later.Key, e.Later.Position, e.Later.RawText)
}

func (e *OutOfOrderError) Is(target error) bool { return target == ErrSegmentation }

// EmptyDocumentError reports a document whose body holds no text.
type EmptyDocumentError struct {
	Title string
}

func (e *EmptyDocumentError) Error() string {
	if e.Title == "" {
		return "document has no content"
	}
	return fmt.Sprintf("document %q has no content", e.Title)
}

func (e *EmptyDocumentError) Is(target error) bool { return target == ErrSegmentation }

// Reason returns a short, stable label for err suitable for metrics.
func Reason(err error) string {
	var (
		missing *MissingSectionError
		order   *OutOfOrderError
		empty   *EmptyDocumentError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &missing):
		return "missing_section"
	case errors.As(err, &order):
		return "out_of_order"
	case errors.As(err, &empty):
		return "empty_document"
	case errors.Is(err, ErrSegmentation):
		return "marker_mismatch"
	}
	return "other"
}
