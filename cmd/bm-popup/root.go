package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/nikbrunner/bm-popup/internal/api"
	"github.com/nikbrunner/bm-popup/internal/browser"
	"github.com/nikbrunner/bm-popup/internal/config"
	"github.com/nikbrunner/bm-popup/internal/logging"
	"github.com/nikbrunner/bm-popup/internal/logging/events"
	"github.com/nikbrunner/bm-popup/internal/messaging"
	"github.com/nikbrunner/bm-popup/internal/popup"
	"github.com/nikbrunner/bm-popup/internal/prefs"
	"github.com/nikbrunner/bm-popup/internal/tui"
	"github.com/spf13/cobra"
)

var (
	configPath string
	tabURL     string
	tabTitle   string
)

func init() {
	defaultPath, err := config.DefaultConfigFilePath()
	if err != nil {
		Red.Println("Error resolving config path:", err)
		os.Exit(1)
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultPath, "Path to config file")
	rootCmd.Flags().StringVar(&tabURL, "url", "", "Page to save instead of the browser's active tab")
	rootCmd.Flags().StringVar(&tabTitle, "title", "", "Title for --url when the page has none")
}

var rootCmd = &cobra.Command{
	Use:   "bm-popup",
	Short: "Save the current page or search your bookmarks",
	Long: `bm-popup opens a small terminal popup for the page in your browser.

Without a token it shows setup instructions. On a normal page it opens the
save form; on browser-internal pages it searches your saved bookmarks.

The active tab is read over the Chrome DevTools protocol (cdpUrl in the
config). Pass --url to save a page without a running browser.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPopup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		Red.Println(err)
		os.Exit(1)
	}
}

func runPopup(cmd *cobra.Command, args []string) (err error) {
	e, err := loadEnv(configPath)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := logging.Configure(e.cfg.LogFilePath(e.dir), e.cfg.LogLevel); err != nil {
		Yellow.Fprintln(os.Stderr, "Logging disabled:", err)
	}
	defer logging.Close()

	session := uuid.NewString()
	logging.WithSession(session)
	events.View.Open(session)

	defer func() {
		if r := recover(); r != nil {
			events.View.Panic(r)
			err = errors.New(popup.GenericFailure)
		}
	}()

	token, err := prefs.Token(e.store)
	if err != nil {
		return err
	}
	client := api.NewClient(api.Options{
		BaseURL: e.cfg.APIURL,
		Token:   token,
		Timeout: e.cfg.RequestTimeout(),
	})

	var host browser.Host
	if tabURL != "" {
		host = browser.NewStatic(tabURL, tabTitle, e.cfg.RequestTimeout())
	} else {
		cdp := browser.NewCDP(context.Background(), e.cfg.CDPURL)
		defer cdp.Close()
		host = cdp
	}

	app := tui.NewApp(tui.AppParams{
		Deps: tui.Deps{
			Prefs:  e.store,
			Router: messaging.NewRouter(client),
			Host:   host,
			Config: *e.cfg,
		},
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		logging.Error(err)
		return errors.New(popup.GenericFailure)
	}

	if finalApp, ok := finalModel.(tui.App); ok && finalApp.Failure() != "" {
		if tabURL == "" {
			Faint.Fprintf(os.Stderr, "Is the browser running with --remote-debugging-port? (cdpUrl: %s)\n", e.cfg.CDPURL)
		}
		return fmt.Errorf("%s (details in %s)", finalApp.Failure(), e.cfg.LogFilePath(e.dir))
	}
	return nil
}
