package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Settings holds all configuration options.
type Settings struct {
	// Target page and output
	PageURL   string `json:"page_url"`
	OutputDir string `json:"output_dir"`

	// Extraction settings
	ScoreSuffixes       []string `json:"score_suffixes"`
	WaitTimeoutSeconds  float64  `json:"wait_timeout_seconds"`
	PollIntervalSeconds float64  `json:"poll_interval_seconds"`

	// Download settings
	MaxConcurrentDownloads int     `json:"max_concurrent_downloads"`
	RequestsPerSecond      float64 `json:"requests_per_second"`
	HTTPTimeoutSeconds     float64 `json:"http_timeout_seconds"`
	UserAgent              string  `json:"user_agent"`
}

// DefaultSettings returns settings with default values.
//
// The defaults target the OpenSheetMusicDisplay public demo page and save
// files into a "scores" directory under the working directory.
func DefaultSettings() *Settings {
	return &Settings{
		PageURL:   "https://opensheetmusicdisplay.github.io/demo/",
		OutputDir: "scores",

		ScoreSuffixes:       []string{".xml", ".mxl"},
		WaitTimeoutSeconds:  15,
		PollIntervalSeconds: 0.5,

		MaxConcurrentDownloads: 4,
		RequestsPerSecond:      4,
		HTTPTimeoutSeconds:     60,
		UserAgent:              "scorefetch",
	}
}

// Load reads settings from a JSON file.
//
// If the file does not exist, defaults are returned without error.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides settings from SCOREFETCH_* environment variables.
//
// A .env file in the working directory is loaded first if present.
// Recognized variables:
//
//	SCOREFETCH_PAGE_URL
//	SCOREFETCH_OUTPUT_DIR
//	SCOREFETCH_SUFFIXES              (comma-separated, e.g. ".xml,.mxl")
//	SCOREFETCH_WAIT_TIMEOUT_SECONDS
//	SCOREFETCH_MAX_CONCURRENT
//	SCOREFETCH_REQUESTS_PER_SECOND
func (s *Settings) ApplyEnv() {
	// Missing .env is fine, environment variables still apply.
	_ = godotenv.Load()

	s.PageURL = getEnv("SCOREFETCH_PAGE_URL", s.PageURL)
	s.OutputDir = getEnv("SCOREFETCH_OUTPUT_DIR", s.OutputDir)

	if v, ok := os.LookupEnv("SCOREFETCH_SUFFIXES"); ok && v != "" {
		var suffixes []string
		for _, suf := range strings.Split(v, ",") {
			if suf = strings.TrimSpace(suf); suf != "" {
				suffixes = append(suffixes, suf)
			}
		}
		if len(suffixes) > 0 {
			s.ScoreSuffixes = suffixes
		}
	}

	if v, ok := os.LookupEnv("SCOREFETCH_WAIT_TIMEOUT_SECONDS"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			s.WaitTimeoutSeconds = f
		}
	}
	if v, ok := os.LookupEnv("SCOREFETCH_MAX_CONCURRENT"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.MaxConcurrentDownloads = n
		}
	}
	if v, ok := os.LookupEnv("SCOREFETCH_REQUESTS_PER_SECOND"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			s.RequestsPerSecond = f
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// WaitTimeout returns the select-population wait timeout as a duration.
func (s *Settings) WaitTimeout() time.Duration {
	return secondsToDuration(s.WaitTimeoutSeconds)
}

// PollInterval returns the select readiness poll interval as a duration.
func (s *Settings) PollInterval() time.Duration {
	return secondsToDuration(s.PollIntervalSeconds)
}

// HTTPTimeout returns the per-request HTTP timeout as a duration.
func (s *Settings) HTTPTimeout() time.Duration {
	return secondsToDuration(s.HTTPTimeoutSeconds)
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
