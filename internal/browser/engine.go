package browser

import "time"

// Engine is the narrow surface the crawl pipeline needs from the
// rendering engine. The production implementation drives Playwright; the
// tests substitute a fake. All calls are synchronous and operate on one
// stateful session: navigating replaces the currently loaded page.
type Engine interface {
	Navigate(url string) error
	Content() (string, error)
	WaitFor(selector string, timeout time.Duration) error
	ScrollToBottom() error
	Click(selector string) error
}
