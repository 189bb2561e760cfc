package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/itemsplit/internal/doctree"
	"github.com/dgallion1/itemsplit/internal/filing"
	"github.com/dgallion1/itemsplit/internal/parser"
	"github.com/dgallion1/itemsplit/internal/segment"
	"github.com/dgallion1/itemsplit/internal/store"
)

// WorkerConfig holds what every job of a run shares.
type WorkerConfig struct {
	Segment  segment.Options
	FormType string
	Parser   parser.Options
}

// Worker processes a single filing job. A Worker holds no per-job state and
// is safe for concurrent use.
type Worker struct {
	sink    store.Sink
	log     *slog.Logger
	cfg     WorkerConfig
	stats   *LatencyStats
	metrics *Metrics
	backoff func(attempt int) time.Duration
}

// NewWorker creates a worker. sink, stats and metrics may be nil; without a
// sink results stay on the job only.
func NewWorker(sink store.Sink, log *slog.Logger, cfg WorkerConfig, stats *LatencyStats, metrics *Metrics) *Worker {
	if cfg.FormType == "" {
		cfg.FormType = filing.DefaultFormType
	}
	return &Worker{
		sink:    sink,
		log:     log,
		cfg:     cfg,
		stats:   stats,
		metrics: metrics,
		backoff: Backoff,
	}
}

// Process runs parse, segment and store for a job. Failures are recorded on
// the job; Process itself never fails.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "filename", job.Filename)
	start := time.Now()
	defer func() {
		snap := job.Snapshot()
		elapsed := time.Since(start)
		if w.stats != nil {
			w.stats.Record(elapsed, snap.Status == StatusFailed)
		}
		w.metrics.observe(snap, elapsed.Seconds())
	}()

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	tree, err := w.Parse(job.Filename, job.FileData())
	if err != nil {
		log.Error("parse failed", "error", err)
		job.Fail("parsing", failureReason("parsing", err), err)
		return
	}
	if job.Title != "" {
		tree.Title = job.Title
	}

	// Phase 2: Segment
	job.SetStatus(StatusSegmenting, "segmenting")
	blocks, err := segment.Run(tree, w.cfg.Segment)
	if err != nil {
		log.Warn("segmentation failed", "reason", segment.Reason(err), "error", err)
		job.Fail("segmenting", failureReason("segmenting", err), err)
		return
	}
	job.SetBlocks(blocks)
	log.Info("segmented filing", "sections", len(blocks))

	// Phase 3: Store
	if w.sink != nil {
		job.SetStatus(StatusStoring, "storing")
		loc, err := w.store(ctx, log, job.Filename, blocks)
		if err != nil {
			log.Error("store failed", "error", err)
			job.Fail("storing", failureReason("storing", err), err)
			return
		}
		job.SetLocation(loc)
		log.Info("stored sections", "location", loc)
	}

	job.SetStatus(StatusCompleted, "done")
}

// Parse builds the document tree for raw filing bytes. Full-submission
// envelopes are reduced to their primary document first; other files are
// parsed by extension, with text-like content decoded to UTF-8.
func (w *Worker) Parse(filename string, raw []byte) (*doctree.Tree, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &segment.EmptyDocumentError{Title: filename}
	}

	var (
		format  parser.Format
		content []byte
	)
	if filing.IsEnvelope(raw) {
		primary, err := filing.Extract(raw, w.cfg.FormType)
		if err != nil {
			return nil, fmt.Errorf("extract primary document: %w", err)
		}
		format, content = primary.Format, []byte(primary.Content)
	} else {
		f, err := parser.FormatForFile(filename)
		if err != nil {
			return nil, err
		}
		format, content = f, raw
		if f == parser.FormatText || f == parser.FormatHTML {
			text, _ := filing.Decode(raw)
			content = []byte(text)
			if f == parser.FormatText {
				format = filing.SniffFormat(text)
			}
		}
	}

	p, err := parser.ForFormat(format, w.cfg.Parser)
	if err != nil {
		return nil, err
	}
	tree, err := p.Parse(bytes.NewReader(content), filename)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}
	return tree, nil
}

func (w *Worker) store(ctx context.Context, log *slog.Logger, name string, blocks []segment.TextBlock) (string, error) {
	var lastErr error
	for attempt := range MaxRetries {
		loc, err := w.sink.Put(ctx, name, blocks)
		if err == nil {
			return loc, nil
		}
		lastErr = err
		if !IsRetryable(err) || attempt == MaxRetries-1 {
			break
		}
		log.Warn("retryable store error", "attempt", attempt, "error", err)
		select {
		case <-time.After(w.backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", lastErr
}

// failureReason classifies err for job status and metrics labels.
func failureReason(phase string, err error) string {
	var ambiguous *filing.AmbiguousDocumentError
	switch {
	case errors.Is(err, filing.ErrNoPrimaryDocument):
		return "no_primary_document"
	case errors.As(err, &ambiguous):
		return "ambiguous_document"
	case errors.Is(err, segment.ErrSegmentation):
		return segment.Reason(err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return phase
}
