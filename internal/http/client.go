package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/juju/ratelimit"
)

// Config controls the HTTP client behavior.
type Config struct {
	// Timeout is the per-request timeout.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// RequestsPerSecond paces requests against the target host.
	// Zero or negative disables pacing.
	RequestsPerSecond float64
}

// Client wraps HTTP operations for fetching score files.
//
// Client provides:
//   - A configured User-Agent header
//   - Timeout handling
//   - Request pacing via a token bucket, so the demo host is not hammered
//     when downloads run concurrently
//   - Streaming file download with progress tracking
//
// Example usage:
//
//	client := NewClient(Config{Timeout: 60 * time.Second, UserAgent: "scorefetch"})
//	written, err := client.DownloadFile(ctx, scoreURL, "scores/sonatina.mxl", nil)
type Client struct {
	httpClient *http.Client
	userAgent  string
	bucket     *ratelimit.Bucket
}

// NewClient creates a new HTTP client with the given configuration.
func NewClient(cfg Config) *Client {
	var bucket *ratelimit.Bucket
	if cfg.RequestsPerSecond > 0 {
		bucket = ratelimit.NewBucketWithRate(cfg.RequestsPerSecond, 1)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  cfg.UserAgent,
		bucket:     bucket,
	}
}

// ProgressWriter wraps a writer to track download progress.
//
// Use this to monitor downloads by providing an OnUpdate callback
// that receives the current bytes written and total expected bytes.
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	// Parameters are (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// DownloadFile downloads a URL to the specified path with an optional
// progress callback, returning the number of bytes written.
//
// The request waits for a pacing token first when a request rate is
// configured. The response body is streamed directly to disk, so large
// files are never held in memory. An existing file at destPath is
// overwritten.
//
// A non-success HTTP status or network failure is reported as a fetch
// error; a failure to create or write the local file as a write error.
//
// Example:
//
//	written, err := client.DownloadFile(ctx, url, "scores/song.xml", func(written, total int64) {
//	    if total > 0 {
//	        fmt.Printf("%.1f%%\r", float64(written)/float64(total)*100)
//	    }
//	})
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) (int64, error) {
	c.wait()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("fetch: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("fetch: HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	file, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("write: %w", err)
	}
	defer file.Close()

	var writer io.Writer = file
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   file,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	written, err := io.Copy(writer, resp.Body)
	if err != nil {
		return written, fmt.Errorf("write: %w", err)
	}

	return written, nil
}

// wait blocks until a pacing token is available.
func (c *Client) wait() {
	if c.bucket != nil {
		c.bucket.Wait(1)
	}
}
