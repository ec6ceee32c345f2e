package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikbrunner/bm-popup/internal/config"
	"gotest.tools/v3/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvAPIURL, config.EnvWebURL, config.EnvCDPURL,
		config.EnvStorage, config.EnvLogLevel,
	} {
		t.Setenv(key, "")
	}
	// Keep a stray .env in the package dir from leaking in
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfig_CreatesDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", "config.json")

	cfg, err := config.LoadConfig(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, *cfg, config.DefaultConfig())

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadConfig_MissingFieldsUseDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	assert.NilError(t, os.WriteFile(path, []byte(`{"apiUrl":"https://api.example.com","debounceMs":150}`), 0644))

	cfg, err := config.LoadConfig(path)
	assert.NilError(t, err)

	assert.Equal(t, cfg.APIURL, "https://api.example.com")
	assert.Equal(t, cfg.Debounce(), 150*time.Millisecond)
	assert.Equal(t, cfg.VisibleTags, 8)
	assert.Equal(t, cfg.PageSize, 20)
	assert.Equal(t, cfg.Storage, "sqlite")
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvAPIURL, "https://override.example.com")
	t.Setenv(config.EnvStorage, "json")

	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "config.json"))
	assert.NilError(t, err)

	assert.Equal(t, cfg.APIURL, "https://override.example.com")
	assert.Equal(t, cfg.Storage, "json")
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	assert.NilError(t, os.WriteFile(path, []byte("{"), 0644))

	_, err := config.LoadConfig(path)
	assert.Assert(t, err != nil)
}

func TestLinks(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.WebURL = "https://app.example.com/"

	assert.Equal(t, cfg.SettingsURL(), "https://app.example.com/settings")
	assert.Equal(t, cfg.BillingURL(), "https://app.example.com/settings/billing")
	assert.Equal(t, cfg.TermsURL(), "https://app.example.com/terms")
	assert.Equal(t, cfg.BookmarkURL("42"), "https://app.example.com/bookmarks/42")
}

func TestLogFilePath(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, cfg.LogFilePath("/tmp/x"), "/tmp/x/bm-popup.log")

	cfg.LogFile = "/var/log/popup.log"
	assert.Equal(t, cfg.LogFilePath("/tmp/x"), "/var/log/popup.log")
}
