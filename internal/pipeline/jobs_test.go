package pipeline

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/itemsplit/internal/segment"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestNewJob(t *testing.T) {
	data := []byte("hello world")
	job := NewJob("acme.txt", "Acme 10-K", data)

	if job.Status != StatusQueued || job.Phase != "queued" {
		t.Errorf("expected queued job, got %q/%q", job.Status, job.Phase)
	}
	if job.ContentHash != ContentHashHex(data) {
		t.Errorf("content hash = %q", job.ContentHash)
	}
	if job.DocID != job.ContentHash[:16] {
		t.Errorf("doc id = %q, want hash prefix", job.DocID)
	}
	if len(job.ID) != 26 {
		t.Errorf("job id %q should be a 26-char ULID", job.ID)
	}
	if string(job.FileData()) != "hello world" {
		t.Errorf("file data = %q", job.FileData())
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := &Job{
		ID:        "test-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusParsing, "parsing"},
		{StatusSegmenting, "segmenting"},
		{StatusStoring, "storing"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
	if !job.Status.Finished() {
		t.Error("completed job should be finished")
	}
}

func TestJob_Fail(t *testing.T) {
	job := NewJob("a.txt", "", []byte("x"))
	job.Fail("segmenting", "missing_section", errors.New("missing sections: item_2"))

	snap := job.Snapshot()
	if snap.Status != StatusFailed || snap.Phase != "segmenting" {
		t.Errorf("expected failed/segmenting, got %q/%q", snap.Status, snap.Phase)
	}
	if snap.Progress.Reason != "missing_section" {
		t.Errorf("reason = %q", snap.Progress.Reason)
	}
	if len(snap.Progress.Errors) != 1 || !strings.Contains(snap.Progress.Errors[0], "item_2") {
		t.Errorf("errors = %v", snap.Progress.Errors)
	}
	if job.FileData() != nil {
		t.Error("failed job should release file data")
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "err-test", UpdatedAt: time.Now()}
	job.AddError("first")
	job.AddError("second")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "first" {
		t.Errorf("expected first error %q, got %q", "first", snap.Progress.Errors[0])
	}
}

func TestJob_SetBlocks(t *testing.T) {
	job := NewJob("a.txt", "", []byte("raw"))
	job.SetBlocks([]segment.TextBlock{{Key: "item_1", Text: "a"}, {Key: "item_2", Text: "b"}})
	job.SetLocation("/out/a.json")

	snap := job.Snapshot()
	if snap.Progress.Sections != 2 {
		t.Errorf("expected 2 sections, got %d", snap.Progress.Sections)
	}
	if snap.Progress.Location != "/out/a.json" {
		t.Errorf("location = %q", snap.Progress.Location)
	}
	if len(job.Blocks()) != 2 {
		t.Errorf("blocks = %v", job.Blocks())
	}
	if job.FileData() != nil {
		t.Error("segmented job should release file data")
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	// Snapshot should always return non-nil errors slice.
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if len(snap.Progress.Errors) != 0 {
		t.Errorf("expected empty errors, got %d", len(snap.Progress.Errors))
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", Status: StatusCompleted, UpdatedAt: time.Now()}
	running := &Job{ID: "running", Status: StatusSegmenting, UpdatedAt: time.Now()}
	store.Put(expired)
	store.Put(running)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	fresh := &Job{ID: "new", Status: StatusFailed, UpdatedAt: time.Now()}
	store.Put(fresh)

	if n := store.Cleanup(); n != 1 {
		t.Errorf("expected 1 eviction, got %d", n)
	}
	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("running") == nil {
		t.Error("expected unfinished job to survive cleanup")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
	if store.Len() != 2 {
		t.Errorf("expected 2 jobs, got %d", store.Len())
	}
}

func TestNewJobID_SortsByTime(t *testing.T) {
	base := time.UnixMilli(1_700_000_000_000)
	a := newULID(base)
	b := newULID(base)
	c := newULID(base.Add(time.Millisecond))

	if len(a) != 26 {
		t.Fatalf("expected 26 chars, got %d", len(a))
	}
	if !(a < b && b < c) {
		t.Errorf("expected %s < %s < %s", a, b, c)
	}
	for _, r := range a {
		if !strings.ContainsRune(crockford, r) {
			t.Fatalf("unexpected rune %q in %s", r, a)
		}
	}
}

func TestEncodeBase32_KnownValues(t *testing.T) {
	var zero [16]byte
	if got := encodeBase32(zero); got != strings.Repeat("0", 26) {
		t.Errorf("zero = %s", got)
	}

	var max [16]byte
	for i := range max {
		max[i] = 0xff
	}
	if got := encodeBase32(max); got != "7"+strings.Repeat("Z", 25) {
		t.Errorf("max = %s", got)
	}
}
