// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	//search
	Roles      []string `yaml:"roles"`
	BaseURL    string   `yaml:"base_url"`
	SourceName string   `yaml:"source_name"`
	SortByDate bool     `yaml:"sort_by_date"`

	//cutoff policy: "pages", "days_ago" or "date"
	FilterBy   string `yaml:"filter_by"`
	StartDate  string `yaml:"start_date"`
	MaxDaysAgo int    `yaml:"max_days_ago"`
	MaxPages   int    `yaml:"max_pages"`

	//recency ceiling for "30+ hari" style strings
	DaysCeiling int `yaml:"days_ceiling"`

	//fetch behaviour
	Retries              int `yaml:"retries"`
	RetryDelaySeconds    int `yaml:"retry_delay_seconds"`
	SettleDelaySeconds   int `yaml:"settle_delay_seconds"`
	ScrollSettleSeconds  int `yaml:"scroll_settle_seconds"`
	DetailTimeoutSeconds int `yaml:"detail_timeout_seconds"`

	//output
	OutputDir string `yaml:"output_dir"`
	Headless  bool   `yaml:"headless"`

	//optional collaborators, env-only
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	DatabaseURL    string `yaml:"database_url" env:"DATABASE_URL"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{Headless: true}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.DatabaseURL = dbURL
	}

	//Set default values if not set
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://id.jobstreet.com"
	}
	if cfg.SourceName == "" {
		cfg.SourceName = "jobstreet"
	}
	if cfg.FilterBy == "" {
		cfg.FilterBy = "pages"
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 1
	}
	if cfg.MaxDaysAgo <= 0 {
		cfg.MaxDaysAgo = 30
	}
	if cfg.DaysCeiling <= 0 {
		cfg.DaysCeiling = 31
	}
	if cfg.Retries <= 0 {
		cfg.Retries = 3
	}
	if cfg.RetryDelaySeconds <= 0 {
		cfg.RetryDelaySeconds = 5
	}
	if cfg.SettleDelaySeconds <= 0 {
		cfg.SettleDelaySeconds = 5
	}
	if cfg.ScrollSettleSeconds <= 0 {
		cfg.ScrollSettleSeconds = 2
	}
	if cfg.DetailTimeoutSeconds <= 0 {
		cfg.DetailTimeoutSeconds = 10
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "scraped_data"
	}

	//Validate required fields
	if len(cfg.Roles) == 0 {
		log.Fatal("at least one role is required")
	}

	switch cfg.FilterBy {
	case "pages", "days_ago":
	case "date":
		if _, err := time.Parse("2006-01-02", cfg.StartDate); err != nil {
			log.Fatalf("filter_by=date requires a valid start_date (YYYY-MM-DD): %v", err)
		}
	default:
		log.Fatalf("invalid filter_by %q: must be pages, days_ago or date", cfg.FilterBy)
	}

	return cfg
}

// StartDateTime parses StartDate; the zero time when unset or invalid.
func (c *Config) StartDateTime() time.Time {
	t, err := time.Parse("2006-01-02", c.StartDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// PageCeiling is the hard pagination limit for one role: MaxPages under
// the pages policy, otherwise a safety cap while the date filter decides.
func (c *Config) PageCeiling() int {
	if c.FilterBy == "pages" {
		return c.MaxPages
	}
	return 100
}

func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds) * time.Second
}

func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelaySeconds) * time.Second
}

func (c *Config) ScrollSettle() time.Duration {
	return time.Duration(c.ScrollSettleSeconds) * time.Second
}

func (c *Config) DetailTimeout() time.Duration {
	return time.Duration(c.DetailTimeoutSeconds) * time.Second
}
