package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/scorefetch/scorefetch/internal/config"
)

// eventRecorder collects progress events for assertions.
type eventRecorder struct {
	mu     sync.Mutex
	events []ProgressEvent
}

func (r *eventRecorder) record(event ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) countLevel(level ProgressLevel) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Level == level {
			n++
		}
	}
	return n
}

func (r *eventRecorder) hasMessageContaining(substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func testManager(t *testing.T, outputDir string, concurrency int) (*Manager, *eventRecorder) {
	t.Helper()

	settings := config.DefaultSettings()
	settings.OutputDir = outputDir
	settings.MaxConcurrentDownloads = concurrency
	settings.RequestsPerSecond = 0 // no pacing in tests

	rec := &eventRecorder{}
	return NewManager(settings, rec.record), rec
}

func TestStartDownloads_MixedResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "broken") {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("score data for " + r.URL.Path))
	}))
	defer server.Close()

	outputDir := filepath.Join(t.TempDir(), "scores")
	m, rec := testManager(t, outputDir, 3)

	m.refs.Add(server.URL + "/a.xml")
	m.refs.Add(server.URL + "/broken-1.mxl")
	m.refs.Add(server.URL + "/b.mxl")
	m.refs.Add(server.URL + "/broken-2.xml")
	m.refs.Add(server.URL + "/c.xml")

	if err := m.StartDownloads(context.Background()); err != nil {
		t.Fatalf("StartDownloads() error = %v", err)
	}

	// Exactly K failure events, N-K files written.
	if got := rec.countLevel(LevelError); got != 2 {
		t.Errorf("failure events = %d, want 2", got)
	}
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatalf("reading output dir: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("files written = %d, want 3", len(entries))
	}

	for _, name := range []string{"a.xml", "b.mxl", "c.xml"} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
			t.Errorf("expected file %s: %v", name, err)
		}
	}
	for _, name := range []string{"broken-1.mxl", "broken-2.xml"} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); !os.IsNotExist(err) {
			t.Errorf("file %s should not have been written", name)
		}
	}

	// Failure lines carry the filename, and the completion marker is reached.
	if !rec.hasMessageContaining("broken-1.mxl") {
		t.Error("failure event should name the failed file")
	}
	if rec.countLevel(LevelSuccess) != 1 {
		t.Error("run should end with exactly one completion event")
	}

	received, done, failed, total := m.GetProgress()
	if done != 3 || failed != 2 || total != 5 {
		t.Errorf("GetProgress() = (done %d, failed %d, total %d), want (3, 2, 5)", done, failed, total)
	}
	if received <= 0 {
		t.Errorf("receivedBytes = %d, want > 0", received)
	}
}

func TestStartDownloads_FaultIsolationSequential(t *testing.T) {
	// Concurrency 1 pins the order: the failing ref comes first and must
	// not prevent the later ones.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "a-fails.xml") {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	outputDir := filepath.Join(t.TempDir(), "scores")
	m, rec := testManager(t, outputDir, 1)

	m.refs.Add(server.URL + "/a-fails.xml")
	m.refs.Add(server.URL + "/z-succeeds.xml")

	if err := m.StartDownloads(context.Background()); err != nil {
		t.Fatalf("StartDownloads() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(outputDir, "z-succeeds.xml")); err != nil {
		t.Errorf("later ref should still be fetched after an earlier failure: %v", err)
	}
	if got := rec.countLevel(LevelError); got != 1 {
		t.Errorf("failure events = %d, want 1", got)
	}
}

func TestStartDownloads_EmptySet(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
	}))
	defer server.Close()

	outputDir := filepath.Join(t.TempDir(), "scores")
	m, rec := testManager(t, outputDir, 2)

	if err := m.StartDownloads(context.Background()); err != nil {
		t.Fatalf("StartDownloads() error = %v", err)
	}

	if n := atomic.LoadInt32(&requests); n != 0 {
		t.Errorf("requests = %d, want 0", n)
	}
	if got := rec.countLevel(LevelError); got != 0 {
		t.Errorf("failure events = %d, want 0", got)
	}
	if rec.countLevel(LevelSuccess) != 1 {
		t.Error("empty run should still reach the completion marker")
	}
}

func TestStartDownloads_Idempotent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("content"))
	}))
	defer server.Close()

	outputDir := filepath.Join(t.TempDir(), "scores")
	m, rec := testManager(t, outputDir, 2)
	m.refs.Add(server.URL + "/song.xml")

	for run := 0; run < 2; run++ {
		if err := m.StartDownloads(context.Background()); err != nil {
			t.Fatalf("run %d: StartDownloads() error = %v", run, err)
		}
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("files = %d, want 1 (overwrite, no duplicates)", len(entries))
	}
	if got := rec.countLevel(LevelError); got != 0 {
		t.Errorf("failure events = %d, want 0", got)
	}
}

func TestStartDownloads_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("content"))
	}))
	defer server.Close()

	m, _ := testManager(t, filepath.Join(t.TempDir(), "scores"), 1)
	m.refs.Add(server.URL + "/song.xml")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := m.StartDownloads(ctx); err == nil {
		t.Error("StartDownloads() should propagate cancellation")
	}
}
