package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/itemsplit/internal/store"
)

// DefaultBatchExtensions are the filing files a batch picks up.
var DefaultBatchExtensions = []string{".txt", ".htm", ".html"}

// BatchConfig describes one directory run.
type BatchConfig struct {
	InputDir    string
	ErrorLog    string   // Created fresh each run; empty disables the log
	Concurrency int      // Defaults to GOMAXPROCS
	Extensions  []string // Defaults to DefaultBatchExtensions
}

// Failure is one filing the batch could not segment.
type Failure struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
	Error  string `json:"error"`
}

// Report summarizes a batch run.
type Report struct {
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Failures  []Failure     `json:"failures"`
	Elapsed   time.Duration `json:"elapsed"`
}

// RunBatch segments every matching file directly inside cfg.InputDir with w.
// A failing filing is logged and counted; the run continues. Files that would
// write the same result name (acme.txt and acme.htm) are processed once, in
// name order, and the rest fail with reason "duplicate_output". The returned
// error is non-nil only when the run itself could not proceed. onDone, if set,
// is called after each filing from the goroutine that processed it.
func RunBatch(ctx context.Context, w *Worker, cfg BatchConfig, onDone func(JobSnapshot)) (*Report, error) {
	start := time.Now()
	files, err := batchFiles(cfg)
	if err != nil {
		return nil, err
	}
	report := &Report{Total: len(files), Failures: []Failure{}}
	if len(files) == 0 {
		return report, nil
	}

	elog, err := openErrorLog(cfg.ErrorLog, cfg.InputDir)
	if err != nil {
		return nil, err
	}
	defer elog.Close()

	limit := cfg.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	var mu sync.Mutex
	record := func(path string, snap JobSnapshot) error {
		mu.Lock()
		defer mu.Unlock()
		if snap.Status == StatusCompleted {
			report.Succeeded++
		} else {
			f := Failure{File: path, Reason: snap.Progress.Reason, Error: strings.Join(snap.Progress.Errors, "; ")}
			report.Failed++
			report.Failures = append(report.Failures, f)
			if err := elog.Write(f); err != nil {
				return err
			}
		}
		if onDone != nil {
			onDone(snap)
		}
		return nil
	}

	files, dups := uniqueOutputs(files)
	for _, d := range dups {
		if err := record(d.path, d.snapshot()); err != nil {
			return nil, fmt.Errorf("batch %s: %w", cfg.InputDir, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return record(path, processFile(gctx, w, path))
		})
	}
	err = g.Wait()

	slices.SortFunc(report.Failures, func(a, b Failure) int { return strings.Compare(a.File, b.File) })
	report.Elapsed = time.Since(start)
	if err != nil {
		return report, fmt.Errorf("batch %s: %w", cfg.InputDir, err)
	}
	return report, nil
}

func processFile(ctx context.Context, w *Worker, path string) JobSnapshot {
	data, err := os.ReadFile(path)
	job := NewJob(filepath.Base(path), "", data)
	if err != nil {
		job.Fail("reading", "read", err)
		return job.Snapshot()
	}
	w.Process(ctx, job)
	return job.Snapshot()
}

// duplicate is a file whose result name another file already claimed.
type duplicate struct {
	path  string
	owner string
}

func (d duplicate) snapshot() JobSnapshot {
	job := NewJob(filepath.Base(d.path), "", nil)
	job.Fail("queued", "duplicate_output",
		fmt.Errorf("result %s is already written by %s", store.ResultName(d.path), filepath.Base(d.owner)))
	return job.Snapshot()
}

// uniqueOutputs keeps the first file per result name. files must be sorted.
func uniqueOutputs(files []string) (keep []string, dups []duplicate) {
	owner := make(map[string]string, len(files))
	for _, path := range files {
		name := store.ResultName(path)
		if first, ok := owner[name]; ok {
			dups = append(dups, duplicate{path: path, owner: first})
			continue
		}
		owner[name] = path
		keep = append(keep, path)
	}
	return keep, dups
}

func batchFiles(cfg BatchConfig) ([]string, error) {
	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = DefaultBatchExtensions
	}
	entries, err := os.ReadDir(cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if slices.Contains(exts, strings.ToLower(filepath.Ext(e.Name()))) {
			files = append(files, filepath.Join(cfg.InputDir, e.Name()))
		}
	}
	return files, nil
}

// errorLog appends one record per failed filing.
type errorLog struct {
	f *os.File
}

func openErrorLog(path, inputDir string) (*errorLog, error) {
	if path == "" {
		return &errorLog{}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create error log: %w", err)
	}
	if _, err := fmt.Fprintf(f, "Error log for %s\n%s\n", inputDir, strings.Repeat("=", 30)); err != nil {
		f.Close()
		return nil, fmt.Errorf("write error log: %w", err)
	}
	return &errorLog{f: f}, nil
}

func (l *errorLog) Write(fail Failure) error {
	if l.f == nil {
		return nil
	}
	_, err := fmt.Fprintf(l.f, "!--- ERROR ---!\nFile: %s\nError: %s\n\n", fail.File, fail.Error)
	return err
}

func (l *errorLog) Close() error {
	if l.f == nil {
		return nil
	}
	return l.f.Close()
}
