// Package browser drives a headless Chrome session to read the score list
// from the demo page.
//
// The demo page's select control is populated by client-side scripting and
// is empty in the raw page source, so the page must be rendered in a real
// browser before the option values can be read.
//
// # Usage
//
//	session := browser.NewSession(browser.Config{
//	    PageURL:      "https://opensheetmusicdisplay.github.io/demo/",
//	    WaitTimeout:  15 * time.Second,
//	    PollInterval: 500 * time.Millisecond,
//	})
//
//	values, err := session.CollectOptionValues(ctx)
//	switch {
//	case errors.Is(err, browser.ErrSelectNotFound):
//	    // page structure changed, fatal
//	case errors.Is(err, browser.ErrPopulateTimeout):
//	    // scripting never filled the control, fatal
//	}
//
// Instead of pausing a fixed duration after navigation, the session polls
// the control until its option count stabilizes, bounded by WaitTimeout.
// The browser process is always released before CollectOptionValues
// returns.
package browser
