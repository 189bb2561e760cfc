package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/itemsplit/internal/segment"
)

const catalogYAML = `items:
  - key: item_1
    title: Item 1. Business
  - key: item_1a
    title: Item 1A. Risk Factors
`

const filingHTML = `<html><body>
<p>Item 1. Business</p><p>We make widgets.</p>
<p>Item 1A. Risk Factors</p><p>Widgets may fail.</p>
</body></html>`

// setup moves into an empty directory holding a two-item catalog and returns
// its path.
func setup(t *testing.T) (dir, catalogPath string) {
	t.Helper()
	dir = t.TempDir()
	t.Chdir(dir)
	for _, k := range []string{"OUTPUT_DIR", "S3_BUCKET", "CATALOG_FILE", "INBOX_DIR", "SWEEP_SCHEDULE"} {
		t.Setenv(k, "")
	}
	catalogPath = filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(catalogYAML), 0o644))
	return dir, catalogPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCatalogCmd_Default(t *testing.T) {
	setup(t)

	out, err := run(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "key: item_1a")
	assert.Contains(t, out, "key: item_16")
}

func TestFileCmd_PrintsBlocks(t *testing.T) {
	dir, cat := setup(t)
	path := filepath.Join(dir, "acme.htm")
	require.NoError(t, os.WriteFile(path, []byte(filingHTML), 0o644))

	out, err := run(t, "file", "--catalog", cat, path)
	require.NoError(t, err)

	var blocks []segment.TextBlock
	require.NoError(t, json.Unmarshal([]byte(out), &blocks))
	assert.Equal(t, []segment.TextBlock{
		{Key: "item_1", Text: "We make widgets."},
		{Key: "item_1a", Text: "Widgets may fail."},
	}, blocks)
}

func TestFileCmd_Explain(t *testing.T) {
	dir, cat := setup(t)
	path := filepath.Join(dir, "acme.htm")
	require.NoError(t, os.WriteFile(path, []byte(filingHTML), 0o644))

	out, err := run(t, "file", "--explain", "--catalog", cat, path)
	require.NoError(t, err)
	assert.Contains(t, out, "Item 1A. Risk Factors")
	assert.Contains(t, out, "item_1a")
	assert.Contains(t, out, "100")
}

func TestFileCmd_MissingSectionFails(t *testing.T) {
	dir, _ := setup(t)
	path := filepath.Join(dir, "acme.htm")
	require.NoError(t, os.WriteFile(path, []byte(filingHTML), 0o644))

	_, err := run(t, "file", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, segment.ErrSegmentation)
}

func TestFileCmd_InvalidThreshold(t *testing.T) {
	dir, cat := setup(t)
	path := filepath.Join(dir, "acme.htm")
	require.NoError(t, os.WriteFile(path, []byte(filingHTML), 0o644))

	_, err := run(t, "file", "--threshold", "150", "--catalog", cat, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCORE_THRESHOLD")
}

func TestBatchCmd(t *testing.T) {
	dir, cat := setup(t)
	in := filepath.Join(dir, "in")
	out := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(in, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(in, "good.htm"), []byte(filingHTML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "bad.htm"), []byte("<p>Item 1. Business</p>"), 0o644))

	stdout, err := run(t, "batch", "--catalog", cat, "-o", out, in)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Succeeded:  1")
	assert.Contains(t, stdout, "Failed:     1")
	assert.Contains(t, stdout, "missing_section")

	_, err = os.Stat(filepath.Join(out, "good.json"))
	assert.NoError(t, err)
	log, err := os.ReadFile(filepath.Join(dir, "error_log.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(log), "bad.htm")

	_, err = run(t, "batch", "--catalog", cat, "-o", out, "--fail-on-error", in)
	assert.Error(t, err)
}

func TestBatchCmd_RequiresOutput(t *testing.T) {
	dir, _ := setup(t)

	_, err := run(t, "batch", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output directory")
}
