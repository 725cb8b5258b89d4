package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the service.
type Config struct {
	DatabaseURL string
	ListenAddr  string

	// BaseURL is the externally visible address used in mailed links.
	BaseURL string

	// SchedulingTZ is the timezone used for window math and date
	// truncation. Stored task instants are assumed to use the same
	// reference.
	SchedulingTZ string

	ScanInterval time.Duration
	Lookahead    time.Duration

	// NotifyChannel selects the reminder gateway: "email" or "telegram".
	NotifyChannel string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	TelegramToken string

	SessionTTL time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		ListenAddr:    strings.TrimSpace(os.Getenv("LISTEN_ADDR")),
		BaseURL:       strings.TrimSpace(os.Getenv("BASE_URL")),
		SchedulingTZ:  strings.TrimSpace(os.Getenv("SCHEDULING_TZ")),
		ScanInterval:  parseSeconds(os.Getenv("SCAN_INTERVAL_SECONDS")),
		Lookahead:     parseMinutes(os.Getenv("REMINDER_LOOKAHEAD_MINUTES")),
		NotifyChannel: strings.TrimSpace(os.Getenv("NOTIFY_CHANNEL")),
		SMTPHost:      strings.TrimSpace(os.Getenv("SMTP_HOST")),
		SMTPPort:      strings.TrimSpace(os.Getenv("SMTP_PORT")),
		SMTPUser:      strings.TrimSpace(os.Getenv("SMTP_USER")),
		SMTPPassword:  strings.TrimSpace(os.Getenv("SMTP_PASSWORD")),
		SMTPFrom:      strings.TrimSpace(os.Getenv("SMTP_FROM")),
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "focusmate.db"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":3000"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:3000"
	}
	if cfg.ScanInterval == 0 {
		cfg.ScanInterval = time.Minute
	}
	if cfg.Lookahead == 0 {
		cfg.Lookahead = 15 * time.Minute
	}
	if cfg.NotifyChannel == "" {
		cfg.NotifyChannel = "email"
	}
	if cfg.SMTPPort == "" {
		cfg.SMTPPort = "587"
	}
	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUser
	}
	cfg.SessionTTL = time.Hour

	switch cfg.NotifyChannel {
	case "email":
		if cfg.SMTPHost == "" {
			return cfg, fmt.Errorf("SMTP_HOST is required for the email channel")
		}
	case "telegram":
		if cfg.TelegramToken == "" {
			return cfg, fmt.Errorf("TELEGRAM_TOKEN is required for the telegram channel")
		}
	default:
		return cfg, fmt.Errorf("unknown NOTIFY_CHANNEL %q", cfg.NotifyChannel)
	}

	return cfg, nil
}

// Location resolves the scheduling timezone, falling back to the host zone.
func (c Config) Location() (*time.Location, error) {
	if c.SchedulingTZ == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.SchedulingTZ)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.SchedulingTZ, err)
	}
	return loc, nil
}

func parseSeconds(raw string) time.Duration {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

func parseMinutes(raw string) time.Duration {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Minute
}
