package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// ErrSelectNotFound is returned when the loaded page has no select control.
//
// The demo page exposes its score list through a single select element
// populated by client-side scripting; without it extraction cannot proceed.
var ErrSelectNotFound = errors.New("no select control found on page")

// ErrPopulateTimeout is returned when the select control exists but its
// options never appeared before the wait timeout elapsed.
var ErrPopulateTimeout = errors.New("select control was not populated before the wait timeout")

// Config controls the browser session.
type Config struct {
	// PageURL is the demo page to load.
	PageURL string

	// WaitTimeout bounds how long to wait for the select control to be
	// populated after navigation.
	WaitTimeout time.Duration

	// PollInterval is how often the select control is re-read while
	// waiting for it to be populated.
	PollInterval time.Duration

	// UserAgent overrides the browser's User-Agent when non-empty.
	UserAgent string
}

// selectProbe is the result of one read of the page's select control.
type selectProbe struct {
	Found  bool     `json:"found"`
	Values []string `json:"values"`
}

// optionValuesJS reads the option values of the first select control.
const optionValuesJS = `(() => {
	const sel = document.querySelector("select");
	return {
		found: sel !== null,
		values: sel ? Array.from(sel.options).map(o => o.value) : [],
	};
})()`

// Session drives a headless browser to read the demo page's score list.
//
// The select control on the demo page is empty in the raw page source and
// only filled in by client-side scripting, so a plain HTTP fetch cannot see
// it. Session renders the page in headless Chrome and polls the control
// until its option count stabilizes instead of sleeping a fixed duration.
type Session struct {
	cfg Config

	// readOptions reads the select control once. Replaceable in tests so
	// the wait loop can run without a browser.
	readOptions func(ctx context.Context) (selectProbe, error)
}

// NewSession creates a Session for the configured page.
func NewSession(cfg Config) *Session {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = 15 * time.Second
	}

	s := &Session{cfg: cfg}
	s.readOptions = s.evaluateSelect
	return s
}

// CollectOptionValues launches a headless browser, loads the page, and
// returns the raw option values of its select control once client-side
// scripting has populated it.
//
// The browser process is owned by this call and released on every exit
// path, including errors. Returns ErrSelectNotFound if the page never
// presents a select control, ErrPopulateTimeout if the control stays empty
// past the wait timeout, or a launch/navigation error from the browser.
func (s *Session) CollectOptionValues(ctx context.Context) ([]string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
	)
	if s.cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(s.cfg.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	navCtx, cancelNav := context.WithTimeout(browserCtx, s.cfg.WaitTimeout)
	err := chromedp.Run(navCtx,
		chromedp.Navigate(s.cfg.PageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	cancelNav()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", s.cfg.PageURL, err)
	}

	return s.waitForOptions(browserCtx)
}

// waitForOptions polls the select control until its option count is
// non-zero and stable across two consecutive reads, or the wait timeout
// elapses.
func (s *Session) waitForOptions(ctx context.Context) ([]string, error) {
	deadline := time.Now().Add(s.cfg.WaitTimeout)
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	selectSeen := false
	prevCount := -1

	for {
		probe, err := s.readOptions(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading select control: %w", err)
		}

		if probe.Found {
			selectSeen = true
			n := len(probe.Values)
			if n > 0 && n == prevCount {
				return probe.Values, nil
			}
			prevCount = n
		}

		if time.Now().After(deadline) {
			if !selectSeen {
				return nil, ErrSelectNotFound
			}
			return nil, ErrPopulateTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// evaluateSelect reads the select control once via the browser.
func (s *Session) evaluateSelect(ctx context.Context) (selectProbe, error) {
	var probe selectProbe
	if err := chromedp.Run(ctx, chromedp.Evaluate(optionValuesJS, &probe)); err != nil {
		return selectProbe{}, err
	}
	return probe, nil
}
