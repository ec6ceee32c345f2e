package main

import (
	"fmt"
	"path/filepath"

	"github.com/nikbrunner/bm-popup/internal/config"
	"github.com/nikbrunner/bm-popup/internal/logging"
	"github.com/nikbrunner/bm-popup/internal/prefs"
	"github.com/spf13/cobra"
)

// env is what every command needs: config, its directory and the prefs store.
type env struct {
	cfg   *config.Config
	dir   string
	store prefs.Store
}

func loadEnv(configPath string) (*env, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}

	dir := filepath.Dir(configPath)
	store, err := prefs.Open(cfg.Storage, dir)
	if err != nil {
		return nil, fmt.Errorf("open prefs: %w", err)
	}
	logging.Trace("prefs.open", map[string]interface{}{"backend": cfg.Storage, "dir": dir})

	return &env{cfg: cfg, dir: dir, store: store}, nil
}

func (e *env) Close() error {
	return prefs.Close(e.store)
}

// consoleLogging sends subcommand logs to stderr in console format.
// The popup itself logs to a file because the TUI owns the terminal.
func consoleLogging(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", configPath, err)
	}
	logging.ConfigureConsole(cmd.ErrOrStderr(), cfg.LogLevel)
	return nil
}
