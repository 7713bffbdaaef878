package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightEngine drives one Chromium page through playwright-go. It is
// not safe for concurrent use; the pipeline serializes all calls against
// the session.
type PlaywrightEngine struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
}

func NewPlaywrightEngine(headless bool) (*PlaywrightEngine, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not launch playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}

	page, err := browser.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("could not create page: %w", err)
	}

	return &PlaywrightEngine{pw: pw, browser: browser, page: page}, nil
}

func (e *PlaywrightEngine) Navigate(url string) error {
	_, err := e.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	})
	return err
}

func (e *PlaywrightEngine) Content() (string, error) {
	return e.page.Content()
}

func (e *PlaywrightEngine) WaitFor(selector string, timeout time.Duration) error {
	return e.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

func (e *PlaywrightEngine) ScrollToBottom() error {
	_, err := e.page.Evaluate("window.scrollTo(0, document.body.scrollHeight)")
	return err
}

func (e *PlaywrightEngine) Click(selector string) error {
	return e.page.Locator(selector).First().Click()
}

func (e *PlaywrightEngine) Close() error {
	if err := e.browser.Close(); err != nil {
		e.pw.Stop()
		return err
	}
	return e.pw.Stop()
}
