package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgallion1/itemsplit/internal/segment"
)

// DirSink writes one JSON file per filing into a directory.
type DirSink struct {
	Dir string
}

func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir}
}

func (s *DirSink) Put(ctx context.Context, name string, blocks []segment.TextBlock) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := Encode(blocks)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(s.Dir, ResultName(name))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("rename %s: %w", tmp, err)
	}
	return path, nil
}
