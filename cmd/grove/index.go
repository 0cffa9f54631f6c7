package main

import (
	"fmt"
	"log"

	"github.com/livingtree/grove/internal/catalog"
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the full-text search index",
	Long: `Reindex the workspace corpus (commands, agents, PRPs) into the
SQLite catalog under ~/.grove/. Unchanged documents are skipped by
content hash; documents whose files vanished are pruned.`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	root, err := workspaceRoot()
	if err != nil {
		return err
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

	docs, err := catalog.Collect(root)
	if err != nil {
		return fmt.Errorf("collecting documents: %w", err)
	}

	result, err := store.Reindex(docs)
	if err != nil {
		return fmt.Errorf("reindexing: %w", err)
	}

	fmt.Printf("Indexed %d, unchanged %d, pruned %d.\n",
		result.Indexed, result.Unchanged, result.Pruned)
	return nil
}
