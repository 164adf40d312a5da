package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.PageURL == "" {
		t.Error("PageURL should have a default")
	}
	if s.OutputDir != "scores" {
		t.Errorf("OutputDir = %q, want %q", s.OutputDir, "scores")
	}
	if len(s.ScoreSuffixes) != 2 {
		t.Fatalf("ScoreSuffixes = %v, want two entries", s.ScoreSuffixes)
	}
	if s.ScoreSuffixes[0] != ".xml" || s.ScoreSuffixes[1] != ".mxl" {
		t.Errorf("ScoreSuffixes = %v, want [.xml .mxl]", s.ScoreSuffixes)
	}
	if s.MaxConcurrentDownloads < 1 {
		t.Errorf("MaxConcurrentDownloads = %d, want >= 1", s.MaxConcurrentDownloads)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}
	if s.PageURL != DefaultSettings().PageURL {
		t.Error("missing config file should yield defaults")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "settings.json")

	s := DefaultSettings()
	s.OutputDir = "/tmp/sheets"
	s.MaxConcurrentDownloads = 2

	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.OutputDir != "/tmp/sheets" {
		t.Errorf("OutputDir = %q, want %q", loaded.OutputDir, "/tmp/sheets")
	}
	if loaded.MaxConcurrentDownloads != 2 {
		t.Errorf("MaxConcurrentDownloads = %d, want 2", loaded.MaxConcurrentDownloads)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SCOREFETCH_PAGE_URL", "https://example.com/demo/")
	t.Setenv("SCOREFETCH_OUTPUT_DIR", "downloads")
	t.Setenv("SCOREFETCH_SUFFIXES", ".xml, .musicxml")
	t.Setenv("SCOREFETCH_MAX_CONCURRENT", "8")
	t.Setenv("SCOREFETCH_WAIT_TIMEOUT_SECONDS", "30")

	s := DefaultSettings()
	s.ApplyEnv()

	if s.PageURL != "https://example.com/demo/" {
		t.Errorf("PageURL = %q, want env override", s.PageURL)
	}
	if s.OutputDir != "downloads" {
		t.Errorf("OutputDir = %q, want %q", s.OutputDir, "downloads")
	}
	if len(s.ScoreSuffixes) != 2 || s.ScoreSuffixes[1] != ".musicxml" {
		t.Errorf("ScoreSuffixes = %v, want [.xml .musicxml]", s.ScoreSuffixes)
	}
	if s.MaxConcurrentDownloads != 8 {
		t.Errorf("MaxConcurrentDownloads = %d, want 8", s.MaxConcurrentDownloads)
	}
	if s.WaitTimeout() != 30*time.Second {
		t.Errorf("WaitTimeout() = %v, want 30s", s.WaitTimeout())
	}
}

func TestApplyEnv_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("SCOREFETCH_MAX_CONCURRENT", "not-a-number")
	t.Setenv("SCOREFETCH_REQUESTS_PER_SECOND", "-1")

	s := DefaultSettings()
	want := s.MaxConcurrentDownloads
	wantRate := s.RequestsPerSecond
	s.ApplyEnv()

	if s.MaxConcurrentDownloads != want {
		t.Errorf("MaxConcurrentDownloads = %d, want default %d", s.MaxConcurrentDownloads, want)
	}
	if s.RequestsPerSecond != wantRate {
		t.Errorf("RequestsPerSecond = %v, want default %v", s.RequestsPerSecond, wantRate)
	}
}
