package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvAPIURL   = "BM_POPUP_API_URL"
	EnvWebURL   = "BM_POPUP_WEB_URL"
	EnvCDPURL   = "BM_POPUP_CDP_URL"
	EnvStorage  = "BM_POPUP_STORAGE"
	EnvLogLevel = "BM_POPUP_LOG_LEVEL"
)

// Config holds application configuration.
type Config struct {
	APIURL            string `json:"apiUrl"`
	WebURL            string `json:"webUrl"`
	CDPURL            string `json:"cdpUrl"`
	Storage           string `json:"storage"`
	DebounceMs        int    `json:"debounceMs"`
	VisibleTags       int    `json:"visibleTags"`
	PageSize          int    `json:"pageSize"`
	LogLevel          string `json:"logLevel"`
	LogFile           string `json:"logFile"`
	RequestTimeoutSec int    `json:"requestTimeoutSec"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		APIURL:            "http://localhost:8000/api",
		WebURL:            "http://localhost:3000",
		CDPURL:            "http://127.0.0.1:9222",
		Storage:           "sqlite",
		DebounceMs:        300,
		VisibleTags:       8,
		PageSize:          20,
		LogLevel:          "info",
		RequestTimeoutSec: 15,
	}
}

// LoadConfig reads config from the JSON file.
// Creates the file with defaults if it doesn't exist.
// Environment overrides (including a .env in the working directory) are applied last.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: defaults are usable even if the file can't be written
			_ = SaveConfig(path, &config)
			config.applyEnv()
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()
	config.applyEnv()

	return &config, nil
}

// applyDefaults fills missing or invalid fields.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.APIURL == "" {
		c.APIURL = defaults.APIURL
	}
	if c.WebURL == "" {
		c.WebURL = defaults.WebURL
	}
	if c.CDPURL == "" {
		c.CDPURL = defaults.CDPURL
	}
	if c.Storage == "" {
		c.Storage = defaults.Storage
	}
	if c.DebounceMs <= 0 {
		c.DebounceMs = defaults.DebounceMs
	}
	if c.VisibleTags <= 0 {
		c.VisibleTags = defaults.VisibleTags
	}
	if c.PageSize <= 0 {
		c.PageSize = defaults.PageSize
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.RequestTimeoutSec <= 0 {
		c.RequestTimeoutSec = defaults.RequestTimeoutSec
	}
}

func (c *Config) applyEnv() {
	// A missing .env is the common case
	_ = godotenv.Load()

	overrides := []struct {
		env   string
		field *string
	}{
		{EnvAPIURL, &c.APIURL},
		{EnvWebURL, &c.WebURL},
		{EnvCDPURL, &c.CDPURL},
		{EnvStorage, &c.Storage},
		{EnvLogLevel, &c.LogLevel},
	}
	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.env)); v != "" {
			*o.field = v
		}
	}
}

// SaveConfig writes config to the JSON file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Debounce returns the search debounce interval.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// RequestTimeout returns the HTTP request timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// SettingsURL is where the user manages their token.
func (c *Config) SettingsURL() string {
	return c.webLink("settings")
}

// BillingURL is where the user upgrades their plan.
func (c *Config) BillingURL() string {
	return c.webLink("settings/billing")
}

// TermsURL is where the user accepts the terms of service.
func (c *Config) TermsURL() string {
	return c.webLink("terms")
}

// BookmarkURL links to a saved item in the web app.
func (c *Config) BookmarkURL(id string) string {
	return c.webLink("bookmarks/" + id)
}

func (c *Config) webLink(path string) string {
	return strings.TrimRight(c.WebURL, "/") + "/" + path
}

// DefaultDir returns ~/.config/bm-popup
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "bm-popup"), nil
}

// DefaultConfigFilePath returns the default config path: ~/.config/bm-popup/config.json
func DefaultConfigFilePath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LogFilePath returns the configured log file, or bm-popup.log inside dir.
func (c *Config) LogFilePath(dir string) string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(dir, "bm-popup.log")
}
