package download

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/scorefetch/scorefetch/internal/browser"
	"github.com/scorefetch/scorefetch/internal/config"
	"github.com/scorefetch/scorefetch/internal/extract"
	httpclient "github.com/scorefetch/scorefetch/internal/http"
	ioutils "github.com/scorefetch/scorefetch/internal/io"
	"github.com/scorefetch/scorefetch/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a pipeline progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Manager coordinates the extract-then-fetch pipeline.
type Manager struct {
	settings  *config.Settings
	client    *httpclient.Client
	session   *browser.Session
	extractor *extract.Extractor

	refs *model.RefSet

	totalFiles      int32
	downloadedFiles int32
	failedFiles     int32
	receivedBytes   int64

	onProgress func(ProgressEvent)
}

// NewManager creates a new Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings: settings,
		client: httpclient.NewClient(httpclient.Config{
			Timeout:           settings.HTTPTimeout(),
			UserAgent:         settings.UserAgent,
			RequestsPerSecond: settings.RequestsPerSecond,
		}),
		session: browser.NewSession(browser.Config{
			PageURL:      settings.PageURL,
			WaitTimeout:  settings.WaitTimeout(),
			PollInterval: settings.PollInterval(),
			UserAgent:    settings.UserAgent,
		}),
		extractor:  extract.New(settings.ScoreSuffixes),
		refs:       model.NewRefSet(),
		onProgress: onProgress,
	}
}

// Discover renders the demo page and extracts the set of score URLs.
//
// Any error here is fatal for the run: a browser that cannot start, a page
// without the select control, or a control that never populates. A page
// that populates but yields zero qualifying URLs is not an error; the
// fetch stage then trivially does nothing.
func (m *Manager) Discover(ctx context.Context) error {
	m.progress(ProgressEvent{Message: fmt.Sprintf("Loading %s", m.settings.PageURL), Level: LevelVerbose})

	values, err := m.session.CollectOptionValues(ctx)
	if err != nil {
		return fmt.Errorf("extracting score links: %w", err)
	}

	m.refs = m.extractor.Extract(values)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d score URLs", m.refs.Len()), Level: LevelInfo})

	return nil
}

// RefCount returns the number of discovered score URLs.
func (m *Manager) RefCount() int {
	return m.refs.Len()
}

// Refs returns the discovered refs in download order.
func (m *Manager) Refs() []model.ScoreRef {
	return m.refs.Sorted()
}

// StartDownloads fetches every discovered ref into the output directory.
//
// Downloads run on a bounded worker pool. A failure fetching or writing
// one ref is reported and counted but never aborts the others; the only
// errors returned are context cancellation and failure to create the
// output directory.
func (m *Manager) StartDownloads(ctx context.Context) error {
	refs := m.refs.Sorted()
	atomic.StoreInt32(&m.totalFiles, int32(len(refs)))

	if len(refs) == 0 {
		m.progress(ProgressEvent{Message: "Done! Nothing to download", Level: LevelSuccess})
		return nil
	}

	if err := ioutils.EnsureDir(m.settings.OutputDir); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	limit := m.settings.MaxConcurrentDownloads
	if limit < 1 {
		limit = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, ref := range refs {
		ref := ref
		g.Go(func() error {
			// Returning an error here would cancel sibling downloads, so
			// only cancellation is ever propagated.
			if err := ctx.Err(); err != nil {
				return err
			}

			if err := m.downloadScore(ctx, ref); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				failed := atomic.AddInt32(&m.failedFiles, 1)
				done := atomic.LoadInt32(&m.downloadedFiles)
				m.progress(ProgressEvent{
					Message: fmt.Sprintf("[%d/%d] Failed %s: %v", done+failed, len(refs), ref.Filename, err),
					Level:   LevelError,
				})
				return nil
			}

			done := atomic.AddInt32(&m.downloadedFiles, 1)
			failed := atomic.LoadInt32(&m.failedFiles)
			m.progress(ProgressEvent{
				Message: fmt.Sprintf("[%d/%d] Downloaded %s", done+failed, len(refs), ref.Filename),
				Level:   LevelInfo,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	downloaded := atomic.LoadInt32(&m.downloadedFiles)
	failed := atomic.LoadInt32(&m.failedFiles)
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Done! %d downloaded, %d failed", downloaded, failed),
		Level:   LevelSuccess,
	})

	return nil
}

// GetProgress returns current download progress.
func (m *Manager) GetProgress() (received int64, filesDone, filesFailed, filesTotal int32) {
	return atomic.LoadInt64(&m.receivedBytes),
		atomic.LoadInt32(&m.downloadedFiles),
		atomic.LoadInt32(&m.failedFiles),
		atomic.LoadInt32(&m.totalFiles)
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

func (m *Manager) downloadScore(ctx context.Context, ref model.ScoreRef) error {
	dest := filepath.Join(m.settings.OutputDir, ref.Filename)

	var prev int64
	_, err := m.client.DownloadFile(ctx, ref.URL, dest, func(written, total int64) {
		atomic.AddInt64(&m.receivedBytes, written-prev)
		prev = written
	})
	return err
}
