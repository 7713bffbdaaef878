// Per-role pagination state machine
// One engine session, one role at a time; the page-by-page loop decides
// when the role is exhausted

package crawl

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-jobstreet-crawler/internal/browser"
	"go-jobstreet-crawler/internal/config"
	"go-jobstreet-crawler/internal/extract"
	"go-jobstreet-crawler/internal/fetch"
	"go-jobstreet-crawler/internal/filter"
	"go-jobstreet-crawler/internal/jobs"
	"go-jobstreet-crawler/internal/recency"
)

// Outcome is the result of processing one card: either a finished record
// or a reason it was skipped. Skips are logged and never abort the page.
type Outcome struct {
	Record     *jobs.JobRecord
	SkipReason string
}

type Paginator struct {
	engine  browser.Engine
	fetcher *fetch.Fetcher
	listing *extract.ListingExtractor
	detail  *extract.DetailExtractor
	parser  *recency.Parser
	filter  *filter.RecordFilter
	sel     extract.SelectorSet
	cfg     *config.Config
	now     func() time.Time
}

func New(engine browser.Engine, fetcher *fetch.Fetcher, sel extract.SelectorSet, cfg *config.Config) *Paginator {
	return &Paginator{
		engine:  engine,
		fetcher: fetcher,
		listing: extract.NewListingExtractor(sel, cfg.BaseURL),
		detail:  extract.NewDetailExtractor(sel),
		parser:  recency.NewParser(cfg.DaysCeiling),
		filter:  filter.New(filter.Policy(cfg.FilterBy), cfg.MaxDaysAgo, cfg.StartDateTime(), cfg.DaysCeiling),
		sel:     sel,
		cfg:     cfg,
		now:     time.Now,
	}
}

// CrawlRole walks one role's listing pages and returns its accumulated
// records. It stops when a page fetch exhausts its retries, a page has no
// cards, a page has cards but none survive the filter/detail pipeline, or
// the page ceiling is reached. Failures end this role only.
func (p *Paginator) CrawlRole(ctx context.Context, role string) []jobs.JobRecord {
	slug := jobs.RoleSlug(role)
	ceiling := p.cfg.PageCeiling()

	var records []jobs.JobRecord
	sortApplied := false

	for page := 1; page <= ceiling; page++ {
		if ctx.Err() != nil {
			log.Printf("🛑 Crawl cancelled during role %q", role)
			break
		}

		url := fmt.Sprintf("%s/id/%s-jobs?page=%d", p.cfg.BaseURL, slug, page)
		log.Printf("📄 Crawling page %d for role %q...", page, role)

		markup, err := p.fetcher.FetchListing(url)
		if err != nil {
			log.Printf("🛑 Giving up on page %d for %q: %v", page, role, err)
			break
		}

		if p.cfg.SortByDate && !sortApplied {
			if fresh, err := p.applySort(); err != nil {
				log.Printf("⚠️ Could not switch to date-sorted order, continuing unsorted: %v", err)
			} else {
				sortApplied = true
				markup = fresh
			}
		}

		cards, err := p.listing.Cards(markup)
		if err != nil {
			log.Printf("🛑 Could not parse page %d for %q: %v", page, role, err)
			break
		}
		log.Printf("🔍 Found %d job cards on page %d.", len(cards), page)

		if len(cards) == 0 {
			log.Printf("🛑 No jobs found on page %d. Stopping.", page)
			break
		}

		valid := 0
		for _, card := range cards {
			if ctx.Err() != nil {
				break
			}
			outcome := p.processCard(role, card)
			if outcome.Record != nil {
				records = append(records, *outcome.Record)
				valid++
				log.Printf("✅ Scraped: %s | %s", outcome.Record.Title, outcome.Record.Company)
				continue
			}
			log.Printf("🚫 Skipped %q: %s", card.Title, outcome.SkipReason)
		}

		if valid == 0 {
			log.Printf("🛑 No valid jobs found on page %d. Stopping.", page)
			break
		}
	}

	return records
}

// processCard runs one card through filter, detail fetch and extraction.
func (p *Paginator) processCard(role string, card jobs.ListingCard) Outcome {
	rec := p.parser.Parse(card.RawPostedText)

	if !p.filter.Accepts(rec) {
		return Outcome{SkipReason: fmt.Sprintf("posted %d days ago, outside the cutoff", rec.DaysAgo)}
	}

	if card.DetailURL == jobs.FieldMissing {
		return Outcome{SkipReason: "card has no detail link"}
	}

	markup, err := p.fetcher.FetchDetail(card.DetailURL, p.sel.DetailTitle)
	if err != nil {
		return Outcome{SkipReason: err.Error()}
	}

	record, err := p.detail.Record(markup)
	if err != nil {
		return Outcome{SkipReason: fmt.Sprintf("could not parse detail page: %v", err)}
	}

	record.Role = role
	record.Link = card.DetailURL
	record.PostedDate = p.parser.AbsoluteDate(rec, p.now())
	if record.Title == jobs.FieldMissing && card.Title != jobs.FieldMissing {
		record.Title = card.Title
	}

	return Outcome{Record: &record}
}

// applySort activates the site's sort-by-date control and re-captures the
// re-rendered listing. Runs at most once per role.
func (p *Paginator) applySort() (string, error) {
	if err := p.engine.Click(p.sel.SortControl); err != nil {
		return "", err
	}
	if err := p.engine.Click(p.sel.SortByDate); err != nil {
		return "", err
	}
	if err := p.engine.WaitFor(p.sel.Card, p.cfg.DetailTimeout()); err != nil {
		return "", err
	}
	return p.engine.Content()
}
