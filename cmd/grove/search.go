package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/livingtree/grove/internal/catalog"
	"github.com/spf13/cobra"
)

var (
	searchKind  string
	searchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Full-text search the workspace index",
	Long: `Search the catalog for commands, agents, and PRPs matching the
query. An empty query lists recently indexed documents. Run
"grove index" first if results look stale.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchKind, "kind", "", "Filter by kind: command, agent, or prp")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum results")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchKind != "" && searchKind != catalog.KindCommand &&
		searchKind != catalog.KindAgent && searchKind != catalog.KindPRP {
		return fmt.Errorf("invalid kind %q: expected command, agent, or prp", searchKind)
	}

	store, err := catalog.New(catalog.DefaultConfig())
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("WARNING: catalog close: %v", err)
		}
	}()

	results, err := store.Search(strings.Join(args, " "), searchKind, searchLimit)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No matches.")
		return nil
	}

	for _, r := range results {
		title := r.Title
		if title == "" {
			title = r.Name
		}
		line := fmt.Sprintf("[%s] %s  %s", r.Kind, title, r.Path)
		if r.Description != "" {
			line += "  " + r.Description
		}
		fmt.Println(line)
	}
	return nil
}
