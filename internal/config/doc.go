// Package config provides configuration management for scorefetch.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - SCOREFETCH_* environment variable overrides (including .env files)
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Targets the OpenSheetMusicDisplay demo page
//	// Saves into ./scores
//	// Accepts .xml and .mxl files
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Environment Overrides
//
//	settings.ApplyEnv()
//	// SCOREFETCH_PAGE_URL, SCOREFETCH_OUTPUT_DIR, SCOREFETCH_SUFFIXES,
//	// SCOREFETCH_WAIT_TIMEOUT_SECONDS, SCOREFETCH_MAX_CONCURRENT,
//	// SCOREFETCH_REQUESTS_PER_SECOND
package config
