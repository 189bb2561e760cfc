package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dgallion1/itemsplit/internal/parser"
)

// Submitter accepts jobs; *Orchestrator is one.
type Submitter interface {
	Submit(job *Job) error
}

type fileStamp struct {
	size    int64
	modTime time.Time
}

// Sweeper submits filings dropped into an inbox directory. A file is submitted
// once per (size, mtime); a rejected submission is retried on the next sweep.
type Sweeper struct {
	dir      string
	sub      Submitter
	maxBytes int64
	log      *slog.Logger

	mu   sync.Mutex
	seen map[string]fileStamp
}

func NewSweeper(dir string, sub Submitter, maxBytes int64, log *slog.Logger) *Sweeper {
	return &Sweeper{
		dir:      dir,
		sub:      sub,
		maxBytes: maxBytes,
		log:      log,
		seen:     make(map[string]fileStamp),
	}
}

// Sweep submits every new supported file and returns how many were queued.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read inbox: %w", err)
	}

	queued := 0
	for _, e := range entries {
		if ctx.Err() != nil {
			return queued, ctx.Err()
		}
		if e.IsDir() || !parser.IsSupportedExtension(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		stamp := fileStamp{size: info.Size(), modTime: info.ModTime()}
		if prev, ok := s.seen[path]; ok && prev == stamp {
			continue
		}
		if s.maxBytes > 0 && info.Size() > s.maxBytes {
			s.log.Warn("inbox file too large, skipping", "path", path, "size", info.Size())
			s.seen[path] = stamp
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			s.log.Error("read inbox file", "path", path, "error", err)
			continue
		}
		job := NewJob(e.Name(), "", data)
		if err := s.sub.Submit(job); err != nil {
			s.log.Warn("inbox submit rejected", "path", path, "error", err)
			continue
		}
		s.seen[path] = stamp
		queued++
		s.log.Info("queued inbox filing", "path", path, "job_id", job.ID)
	}
	return queued, nil
}

// Schedule registers the sweep on c under a standard cron spec or a
// descriptor such as "@every 5m".
func (s *Sweeper) Schedule(ctx context.Context, c *cron.Cron, spec string) (cron.EntryID, error) {
	id, err := c.AddFunc(spec, func() {
		n, err := s.Sweep(ctx)
		if err != nil {
			s.log.Error("inbox sweep failed", "error", err)
			return
		}
		s.log.Info("inbox sweep complete", "queued", n)
	})
	if err != nil {
		return 0, fmt.Errorf("schedule inbox sweep %q: %w", spec, err)
	}
	return id, nil
}
