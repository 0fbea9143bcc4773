// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultMaxPhotos  = 100
	DefaultPDFTimeout = 60 * time.Second
)

// Config holds all configuration for the application.
type Config struct {
	TelegramBotToken   string
	LogLevel           string
	MaxPhotos          int
	ClearAfterPDF      bool
	PDFTimeout         time.Duration
	WhitelistedUserIDs []int64
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
		MaxPhotos:        DefaultMaxPhotos,
		ClearAfterPDF:    true,
		PDFTimeout:       DefaultPDFTimeout,
	}

	if maxStr := os.Getenv("MAX_PHOTOS"); maxStr != "" {
		if n, err := strconv.Atoi(maxStr); err == nil && n > 0 {
			cfg.MaxPhotos = n
		}
	}

	if clearStr := os.Getenv("CLEAR_AFTER_PDF"); clearStr != "" {
		cfg.ClearAfterPDF = clearStr == "true"
	}

	if secStr := os.Getenv("PDF_TIMEOUT_SECONDS"); secStr != "" {
		if sec, err := strconv.Atoi(secStr); err == nil && sec > 0 {
			cfg.PDFTimeout = time.Duration(sec) * time.Second
		}
	}

	whitelistStr := os.Getenv("WHITELISTED_USER_IDS")
	if whitelistStr != "" {
		for idStr := range strings.SplitSeq(whitelistStr, ",") {
			idStr = strings.TrimSpace(idStr)
			if idStr == "" {
				continue
			}
			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil {
				continue
			}
			cfg.WhitelistedUserIDs = append(cfg.WhitelistedUserIDs, id)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration is present.
func (c *Config) validate() error {
	var errs []string

	if c.TelegramBotToken == "" {
		errs = append(errs, "TELEGRAM_BOT_TOKEN is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsUserWhitelisted checks if a Telegram user ID may use the bot.
// An empty whitelist means the bot is open to everyone.
func (c *Config) IsUserWhitelisted(userID int64) bool {
	if len(c.WhitelistedUserIDs) == 0 {
		return true
	}
	return slices.Contains(c.WhitelistedUserIDs, userID)
}
