package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/itemsplit/internal/segment"
)

const tenQ = `items:
  - key: item_1
    title: "Item 1. Financial Statements"
  - key: item_2
    title: "Item 2. Management's Discussion and Analysis"
  - key: item_3
    title: "Item 3. Quantitative and Qualitative Disclosures About Market Risk"
`

func TestRead_PreservesOrder(t *testing.T) {
	c, err := Read(strings.NewReader(tenQ))
	require.NoError(t, err)

	assert.Equal(t, []string{"item_1", "item_2", "item_3"}, c.Keys())

	key, score := c.BestMatch(segment.Normalize("ITEM 2. MANAGEMENT'S DISCUSSION AND ANALYSIS"))
	assert.Equal(t, "item_2", key)
	assert.Equal(t, 100, score)
}

func TestRead_InvalidCatalog(t *testing.T) {
	_, err := Read(strings.NewReader("items:\n  - key: part_1\n    title: Part I\n"))
	assert.ErrorIs(t, err, segment.ErrInvalidCatalog)

	_, err = Read(strings.NewReader("items: [unclosed"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, segment.DefaultCatalog().Keys(), c.Keys())

	path := filepath.Join(t.TempDir(), "10q.yaml")
	require.NoError(t, os.WriteFile(path, []byte(tenQ), 0o644))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWriteThenRead(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, segment.DefaultCatalog()))

	c, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, segment.DefaultCatalog().Entries(), c.Entries())
}
