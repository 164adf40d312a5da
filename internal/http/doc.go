// Package http provides an HTTP client configured for fetching score files.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout handling
//   - Request pacing via a token bucket
//   - Streaming file downloads with progress tracking
//
// # Basic Usage
//
//	client := http.NewClient(http.Config{
//	    Timeout:           60 * time.Second,
//	    UserAgent:         "scorefetch",
//	    RequestsPerSecond: 4,
//	})
//
//	written, err := client.DownloadFile(ctx, url, "scores/song.mxl", func(written, total int64) {
//	    fmt.Printf("%d bytes\n", written)
//	})
//
// # Progress Tracking
//
// The ProgressWriter type can be used to wrap any io.Writer for progress tracking:
//
//	pw := &http.ProgressWriter{
//	    Writer:   file,
//	    Total:    contentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
