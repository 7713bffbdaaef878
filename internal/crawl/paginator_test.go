package crawl

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-jobstreet-crawler/internal/config"
	"go-jobstreet-crawler/internal/extract"
	"go-jobstreet-crawler/internal/fetch"
)

// fakeEngine serves canned markup per URL on one simulated session.
type fakeEngine struct {
	pages       map[string]string
	current     string
	navigations []string
	clicks      []string
	failWaitFor bool
}

func (f *fakeEngine) Navigate(url string) error {
	f.navigations = append(f.navigations, url)
	f.current = f.pages[url]
	return nil
}

func (f *fakeEngine) Content() (string, error) { return f.current, nil }

func (f *fakeEngine) WaitFor(selector string, timeout time.Duration) error {
	if f.failWaitFor {
		return fmt.Errorf("timeout waiting for %s", selector)
	}
	return nil
}

func (f *fakeEngine) ScrollToBottom() error { return nil }

func (f *fakeEngine) Click(selector string) error {
	f.clicks = append(f.clicks, selector)
	return nil
}

func card(title, href, posted string) string {
	return fmt.Sprintf(`<article data-automation="normalJob">
		<a data-automation="jobTitle" href=%q>%s</a>
		<span data-automation="jobListingDate">%s</span>
	</article>`, href, title, posted)
}

func listingPage(cards ...string) string {
	return "<html><body>" + strings.Join(cards, "\n") + "</body></html>"
}

func detailPage(title, company string) string {
	return fmt.Sprintf(`<html><body>
		<h1 data-automation="job-detail-title">%s</h1>
		<span data-automation="advertiser-name">%s</span>
		<div data-automation="jobAdDetails"><p>Analyze data.</p></div>
	</body></html>`, title, company)
}

func testConfig(filterBy string) *config.Config {
	return &config.Config{
		Roles:       []string{"Data Analyst"},
		BaseURL:     "https://id.jobstreet.com",
		SourceName:  "jobstreet",
		FilterBy:    filterBy,
		MaxDaysAgo:  7,
		MaxPages:    2,
		DaysCeiling: 31,
		Retries:     3,
	}
}

func newTestPaginator(engine *fakeEngine, cfg *config.Config) *Paginator {
	fetcher := fetch.New(engine, fetch.Options{Retries: cfg.Retries})
	return New(engine, fetcher, extract.JobStreet(), cfg)
}

func TestCrawlRole_TwoPageRun(t *testing.T) {
	base := "https://id.jobstreet.com"
	engine := &fakeEngine{pages: map[string]string{
		base + "/id/data-analyst-jobs?page=1": listingPage(
			card("Data Analyst", "/id/job/1", "2 hari yang lalu"),
			card("BI Analyst", "/id/job/2", "1 hari yang lalu"),
			card("Junior Analyst", "/id/job/3", "5 jam yang lalu"),
			card("Old Analyst", "/id/job/4", "12 hari yang lalu"),
			card("Stale Analyst", "/id/job/5", "30+ hari yang lalu"),
		),
		base + "/id/data-analyst-jobs?page=2": listingPage(),
		base + "/id/job/1":                    detailPage("Data Analyst", "PT Satu"),
		base + "/id/job/2":                    detailPage("BI Analyst", "PT Dua"),
		base + "/id/job/3":                    detailPage("Junior Analyst", "PT Tiga"),
	}}

	p := newTestPaginator(engine, testConfig("days_ago"))
	records := p.CrawlRole(context.Background(), "Data Analyst")

	assert.Len(t, records, 3)
	assert.Equal(t, "Data Analyst", records[0].Role)
	assert.Equal(t, base+"/id/job/1", records[0].Link)
	assert.Equal(t, "PT Satu", records[0].Company)

	for _, nav := range engine.navigations {
		assert.NotContains(t, nav, "page=3", "must stop after the empty page 2")
	}
}

func TestCrawlRole_StopsOnZeroCards(t *testing.T) {
	engine := &fakeEngine{pages: map[string]string{
		"https://id.jobstreet.com/id/data-analyst-jobs?page=1": listingPage(),
	}}

	p := newTestPaginator(engine, testConfig("days_ago"))
	records := p.CrawlRole(context.Background(), "Data Analyst")

	assert.Empty(t, records)
	assert.Len(t, engine.navigations, 1)
}

func TestCrawlRole_StopsWhenNothingPassesFilter(t *testing.T) {
	engine := &fakeEngine{pages: map[string]string{
		"https://id.jobstreet.com/id/data-analyst-jobs?page=1": listingPage(
			card("Old Analyst", "/id/job/1", "20 hari yang lalu"),
			card("Stale Analyst", "/id/job/2", "40 hari yang lalu"),
		),
	}}

	p := newTestPaginator(engine, testConfig("days_ago"))
	records := p.CrawlRole(context.Background(), "Data Analyst")

	assert.Empty(t, records)
	//raw card count > 0 but no valid jobs: one listing fetch, no detail fetches
	assert.Len(t, engine.navigations, 1)
}

func TestCrawlRole_DetailTimeoutSkipsRecordOnly(t *testing.T) {
	base := "https://id.jobstreet.com"
	engine := &fakeEngine{
		failWaitFor: true,
		pages: map[string]string{
			base + "/id/data-analyst-jobs?page=1": listingPage(
				card("Data Analyst", "/id/job/1", "2 hari yang lalu"),
			),
		},
	}

	p := newTestPaginator(engine, testConfig("days_ago"))
	records := p.CrawlRole(context.Background(), "Data Analyst")

	//the only card timed out on detail, so the page had no valid jobs
	assert.Empty(t, records)
}

func TestCrawlRole_PageLimit(t *testing.T) {
	base := "https://id.jobstreet.com"
	pages := map[string]string{
		base + "/id/job/1": detailPage("Data Analyst", "PT Satu"),
	}
	for i := 1; i <= 5; i++ {
		pages[fmt.Sprintf("%s/id/data-analyst-jobs?page=%d", base, i)] = listingPage(
			card("Data Analyst", "/id/job/1", "2 hari yang lalu"),
		)
	}
	engine := &fakeEngine{pages: pages}

	p := newTestPaginator(engine, testConfig("pages"))
	records := p.CrawlRole(context.Background(), "Data Analyst")

	//pages policy: MaxPages=2, one record per page
	assert.Len(t, records, 2)
	for _, nav := range engine.navigations {
		assert.NotContains(t, nav, "page=3")
	}
}

func TestCrawlRole_SortActivatedOncePerRole(t *testing.T) {
	base := "https://id.jobstreet.com"
	engine := &fakeEngine{pages: map[string]string{
		base + "/id/data-analyst-jobs?page=1": listingPage(card("Data Analyst", "/id/job/1", "1 hari yang lalu")),
		base + "/id/data-analyst-jobs?page=2": listingPage(card("BI Analyst", "/id/job/2", "1 hari yang lalu")),
		base + "/id/job/1":                    detailPage("Data Analyst", "PT Satu"),
		base + "/id/job/2":                    detailPage("BI Analyst", "PT Dua"),
	}}

	cfg := testConfig("pages")
	cfg.SortByDate = true
	p := newTestPaginator(engine, cfg)
	records := p.CrawlRole(context.Background(), "Data Analyst")

	assert.Len(t, records, 2)
	//sort control opened and option picked exactly once across both pages
	assert.Len(t, engine.clicks, 2)
}
