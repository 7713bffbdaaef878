package main

import (
	"context"
	"log"
	"time"

	"go-jobstreet-crawler/internal/browser"
	"go-jobstreet-crawler/internal/config"
	"go-jobstreet-crawler/internal/crawl"
	"go-jobstreet-crawler/internal/database"
	"go-jobstreet-crawler/internal/extract"
	"go-jobstreet-crawler/internal/fetch"
	"go-jobstreet-crawler/internal/reporter"
	"go-jobstreet-crawler/internal/sink"
)

func main() {
	//load config
	cfg := config.Load()
	log.Printf("🔧 Config loaded. Roles: %v, cutoff: %s", cfg.Roles, cfg.FilterBy)

	//setup context with timeout = 30 mins
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	log.Println("🚀 Starting JobStreet crawl...")

	//the only unrecoverable failure is the engine not coming up
	engine, err := browser.NewPlaywrightEngine(cfg.Headless)
	if err != nil {
		log.Fatalf("❌ Failed to start browser engine: %v", err)
	}
	defer engine.Close()
	log.Println("✅ Browser initialized successfully!")

	//optional collaborators
	var report *reporter.TelegramReporter
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		report, err = reporter.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Telegram reporter unavailable: %v. Continuing without it.", err)
			report = nil
		} else {
			log.Println("🤖 Telegram reporter initialized.")
		}
	}

	var repo *database.Repository
	if cfg.DatabaseURL != "" {
		repo, err = database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("⚠️ Database unavailable: %v. Continuing without the archive.", err)
			repo = nil
		} else {
			defer repo.Close()
			log.Println("🗄️ Database archive connected.")
		}
	}

	//build the pipeline
	selectors := extract.JobStreet()
	fetcher := fetch.New(engine, fetch.Options{
		Retries:       cfg.Retries,
		RetryDelay:    cfg.RetryDelay(),
		SettleDelay:   cfg.SettleDelay(),
		ScrollSettle:  cfg.ScrollSettle(),
		DetailTimeout: cfg.DetailTimeout(),
	})
	paginator := crawl.New(engine, fetcher, selectors, cfg)
	results := sink.New(cfg.OutputDir, cfg.SourceName)

	//crawl roles sequentially on the one engine session
	for _, role := range cfg.Roles {
		log.Printf("▶️ Crawling role: %s", role)
		records := paginator.CrawlRole(ctx, role)
		log.Printf("📦 Collected %d records for %q", len(records), role)

		out, err := results.Persist(role, records)
		if err != nil {
			log.Printf("⚠️ Failed to persist %q: %v", role, err)
			if report != nil {
				report.SendError(err)
			}
			continue
		}

		if repo != nil && len(records) > 0 {
			inserted, err := repo.SaveRecords(ctx, records)
			if err != nil {
				log.Printf("⚠️ Failed to archive %q: %v", role, err)
			} else {
				log.Printf("🗄️ Archived %d new rows for %q", inserted, role)
			}
		}

		if report != nil {
			if err := report.SendRoleSummary(role, len(records), out.Rows, out.CSVPath); err != nil {
				log.Printf("⚠️ Failed to send summary to Telegram: %v", err)
			}
		}
	}

	log.Println("🏁 Execution finished.")
}
