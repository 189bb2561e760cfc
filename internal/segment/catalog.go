package segment

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidCatalog is returned by NewCatalog for malformed entries.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Section keys must fit the sentinel grammar: item_ + digits + optional letter.
var keyPattern = regexp.MustCompile(`^item_\d+[a-z]?$`)

// Entry maps a section key to its canonical title.
type Entry struct {
	Key   string `json:"key" yaml:"key"`
	Title string `json:"title" yaml:"title"`
}

// Catalog is an ordered, immutable set of sections. Its order is the order the
// sections are expected to appear in a document.
type Catalog struct {
	entries    []Entry
	normalized []string
	index      map[string]int
}

// NewCatalog validates entries and precomputes their normalized titles.
func NewCatalog(entries ...Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrInvalidCatalog)
	}
	c := &Catalog{
		entries:    make([]Entry, len(entries)),
		normalized: make([]string, len(entries)),
		index:      make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if !keyPattern.MatchString(e.Key) {
			return nil, fmt.Errorf("%w: key %q does not match %s", ErrInvalidCatalog, e.Key, keyPattern)
		}
		if _, dup := c.index[e.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidCatalog, e.Key)
		}
		norm := Normalize(e.Title)
		if norm == "" {
			return nil, fmt.Errorf("%w: empty title for %q", ErrInvalidCatalog, e.Key)
		}
		c.entries[i] = e
		c.normalized[i] = norm
		c.index[e.Key] = i
	}
	return c, nil
}

// MustCatalog is NewCatalog for static tables; it panics on invalid input.
func MustCatalog(entries ...Entry) *Catalog {
	c, err := NewCatalog(entries...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of sections.
func (c *Catalog) Len() int { return len(c.entries) }

// Entries returns a copy of the entries in catalog order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Keys returns the section keys in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.Key
	}
	return keys
}

// Index returns the catalog position of key.
func (c *Catalog) Index(key string) (int, bool) {
	i, ok := c.index[key]
	return i, ok
}

// BestMatch scores a normalized candidate against every title and returns the
// highest-scoring key. Ties go to the entry that comes first in the catalog.
func (c *Catalog) BestMatch(normalized string) (string, int) {
	bestKey, bestScore := "", -1
	for i, title := range c.normalized {
		if score := Ratio(normalized, title); score > bestScore {
			bestKey, bestScore = c.entries[i].Key, score
		}
	}
	return bestKey, bestScore
}

var defaultEntries = []Entry{
	{"item_1", "item 1 business"},
	{"item_1a", "item 1a risk factors"},
	{"item_1b", "item 1b unresolved staff comments"},
	{"item_1c", "item 1c cybersecurity"},
	{"item_2", "item 2 properties"},
	{"item_3", "item 3 legal proceedings"},
	{"item_4", "item 4 mine safety disclosures"},
	{"item_5", "item 5 market for registrants common equity related stock holder matters and issuer purchases of equity securities"},
	{"item_6", "item 6 reserved"},
	{"item_7", "item 7 managements discussion and analysis of financial condition and results of operations"},
	{"item_7a", "item 7a quantitative and qualitative disclosures about market risk"},
	{"item_8", "item 8 financial statements and supplementary data"},
	{"item_9", "item 9 changes in and disagreements with accountants on accounting and financial disclosure"},
	{"item_9a", "item 9a controls and procedures"},
	{"item_9b", "item 9b other information"},
	{"item_9c", "item 9c disclosure regarding foreign jurisdictions that prevent inspections"},
	{"item_10", "item 10 directors executive officers and corporate governance"},
	{"item_11", "item 11 executive compensation"},
	{"item_12", "item 12 security ownership of certain beneficial owners and management and related stock holder matters"},
	{"item_13", "item 13 certain relationships and related transactions and director independence"},
	{"item_14", "item 14 principal accounting fees and services"},
	{"item_15", "item 15 exhibits financial statement schedules"},
	{"item_16", "item 16 form 10k summary"},
}

// DefaultCatalog returns the Form 10-K item vocabulary.
func DefaultCatalog() *Catalog {
	return MustCatalog(defaultEntries...)
}
