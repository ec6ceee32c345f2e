package main

import (
	"errors"
	"strings"

	"github.com/nikbrunner/bm-popup/internal/prefs"
	"github.com/spf13/cobra"
)

func init() {
	tokenCmd.AddCommand(tokenSetCmd, tokenClearCmd, tokenShowCmd)
	rootCmd.AddCommand(tokenCmd)
}

var tokenCmd = &cobra.Command{
	Use:               "token",
	Short:             "Manage the API token",
	PersistentPreRunE: consoleLogging,
}

var tokenSetCmd = &cobra.Command{
	Use:   "set <token>",
	Short: "Store the API token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token := strings.TrimSpace(args[0])
		if token == "" {
			return errors.New("token must not be empty")
		}
		return withStore(func(store prefs.Store) error {
			if err := store.Set(prefs.KeyToken, token); err != nil {
				return err
			}
			Green.Println("Token saved:", maskToken(token))
			return nil
		})
	},
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store prefs.Store) error {
			if err := store.Set(prefs.KeyToken, ""); err != nil {
				return err
			}
			Green.Println("Token removed")
			return nil
		})
	},
}

var tokenShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored API token (masked)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store prefs.Store) error {
			token, err := prefs.Token(store)
			if err != nil {
				return err
			}
			if token == "" {
				Yellow.Println("No token set. Run: bm-popup token set <token>")
				return nil
			}
			Cyan.Println(maskToken(token))
			return nil
		})
	},
}

// maskToken keeps the first and last four characters of long tokens.
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

// withStore opens the configured prefs store for the duration of fn.
func withStore(fn func(prefs.Store) error) error {
	e, err := loadEnv(configPath)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(e.store)
}
