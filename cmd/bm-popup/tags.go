package main

import (
	"strings"

	"github.com/nikbrunner/bm-popup/internal/model"
	"github.com/nikbrunner/bm-popup/internal/prefs"
	"github.com/spf13/cobra"
)

var clearDefaultTags bool

func init() {
	tagsDefaultCmd.Flags().BoolVar(&clearDefaultTags, "clear", false, "Remove all default tags")
	tagsCmd.AddCommand(tagsDefaultCmd, tagsLastCmd)
	rootCmd.AddCommand(tagsCmd)
}

var tagsCmd = &cobra.Command{
	Use:               "tags",
	Short:             "Manage preselected tags",
	PersistentPreRunE: consoleLogging,
}

var tagsDefaultCmd = &cobra.Command{
	Use:   "default [tag...]",
	Short: "Show or set the tags preselected on every save",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store prefs.Store) error {
			if clearDefaultTags {
				if err := prefs.SetTags(store, prefs.KeyDefaultTags, []string{}); err != nil {
					return err
				}
				Green.Println("Default tags cleared")
				return nil
			}

			if len(args) == 0 {
				tags, err := prefs.Tags(store, prefs.KeyDefaultTags)
				if err != nil {
					return err
				}
				printTags("Default tags", tags)
				return nil
			}

			tags := normalizeTags(args)
			if err := prefs.SetTags(store, prefs.KeyDefaultTags, tags); err != nil {
				return err
			}
			printTags("Default tags saved", tags)
			return nil
		})
	},
}

var tagsLastCmd = &cobra.Command{
	Use:   "last",
	Short: "Show the tags used for the last save",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store prefs.Store) error {
			tags, err := prefs.Tags(store, prefs.KeyLastUsedTags)
			if err != nil {
				return err
			}
			printTags("Last used tags", tags)
			return nil
		})
	},
}

// normalizeTags lowercases, trims and dedupes tags, keeping first-seen order.
func normalizeTags(args []string) []string {
	cleaned := make([]string, 0, len(args))
	for _, arg := range args {
		if tag := strings.ToLower(strings.TrimSpace(arg)); tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return model.UnionTags(cleaned)
}

func printTags(label string, tags []string) {
	CyanBold.Printf("%s: ", label)
	if len(tags) == 0 {
		Faint.Println("(none)")
		return
	}
	Cyan.Println(strings.Join(tags, ", "))
}
