// Package download provides the orchestration logic for the
// extract-then-fetch pipeline.
//
// # Manager
//
// The Manager coordinates the whole run:
//
//  1. Render the demo page in a headless browser
//  2. Extract and dedupe the score URLs from its select control
//  3. Download every score into the output directory
//
// # Basic Usage
//
//	manager := download.NewManager(settings, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := manager.Discover(ctx); err != nil {
//	    log.Fatal(err) // fatal: browser, page structure, or timeout
//	}
//
//	if err := manager.StartDownloads(ctx); err != nil {
//	    log.Fatal(err) // only cancellation or output dir failure
//	}
//
// # Fault Isolation
//
// Each download runs inside its own error boundary: a non-success HTTP
// status, network failure, or local write failure is reported through the
// progress callback and counted, but never prevents the remaining
// downloads from being attempted. There are no retries; each ref gets a
// single best-effort attempt.
//
// # Concurrency
//
// Downloads run on an errgroup pool bounded by
// settings.MaxConcurrentDownloads; a limit of 1 reproduces strictly
// sequential fetching. Requests are additionally paced by the client's
// token bucket.
package download
