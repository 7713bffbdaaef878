// Page fetching with bounded retry and post-load settle actions

package fetch

import (
	"fmt"
	"log"
	"time"

	"go-jobstreet-crawler/internal/browser"
)

// FetchError means a listing fetch exhausted every retry. It ends the
// current role's pagination, not the whole run.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch of %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// DetailTimeoutError means the detail page's title anchor never appeared.
// It is fatal to that one record only; the caller skips it and continues.
type DetailTimeoutError struct {
	URL string
	Err error
}

func (e *DetailTimeoutError) Error() string {
	return fmt.Sprintf("detail page %s did not become ready: %v", e.URL, e.Err)
}

func (e *DetailTimeoutError) Unwrap() error {
	return e.Err
}

type Options struct {
	Retries       int
	RetryDelay    time.Duration
	SettleDelay   time.Duration
	ScrollSettle  time.Duration
	DetailTimeout time.Duration
}

type Fetcher struct {
	engine browser.Engine
	opts   Options
	sleep  func(time.Duration)
}

func New(engine browser.Engine, opts Options) *Fetcher {
	if opts.Retries <= 0 {
		opts.Retries = 3
	}
	return &Fetcher{engine: engine, opts: opts, sleep: time.Sleep}
}

// FetchListing attempts a listing fetch up to Retries times. Each attempt
// navigates, waits for the page to settle, scrolls to the bottom so lazy
// content loads, waits again, then captures the rendered markup. Failed
// attempts wait RetryDelay before the next try; exhaustion returns a
// *FetchError wrapping the last cause.
func (f *Fetcher) FetchListing(url string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= f.opts.Retries; attempt++ {
		markup, err := f.attempt(url)
		if err == nil {
			return markup, nil
		}
		lastErr = err
		log.Printf("⚠️ Error on attempt %d for %s: %v", attempt, url, err)
		if attempt < f.opts.Retries {
			log.Printf("⏳ Retrying in %v...", f.opts.RetryDelay)
			f.sleep(f.opts.RetryDelay)
		}
	}
	return "", &FetchError{URL: url, Attempts: f.opts.Retries, Err: lastErr}
}

func (f *Fetcher) attempt(url string) (string, error) {
	if err := f.engine.Navigate(url); err != nil {
		return "", err
	}
	f.sleep(f.opts.SettleDelay)
	if err := f.engine.ScrollToBottom(); err != nil {
		return "", err
	}
	f.sleep(f.opts.ScrollSettle)
	return f.engine.Content()
}

// FetchDetail navigates to a detail page and waits for its title anchor
// before capturing. A single attempt: navigation errors and anchor
// timeouts both surface as *DetailTimeoutError so the caller skips the
// record instead of retrying.
func (f *Fetcher) FetchDetail(url, anchor string) (string, error) {
	if err := f.engine.Navigate(url); err != nil {
		return "", &DetailTimeoutError{URL: url, Err: err}
	}
	if err := f.engine.WaitFor(anchor, f.opts.DetailTimeout); err != nil {
		return "", &DetailTimeoutError{URL: url, Err: err}
	}
	f.sleep(f.opts.ScrollSettle)
	return f.engine.Content()
}
