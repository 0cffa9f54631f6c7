package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/livingtree/grove/internal/audit"
	"github.com/livingtree/grove/internal/inventory"
	"github.com/livingtree/grove/internal/workspace"
	"github.com/spf13/cobra"
)

var auditJSON bool

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Cross-check documented counts against actual files",
	Long: `Scan the workspace's documentation for count claims ("24 commands",
"9 new + 15 existing = 24") and compare them against the actual files.

Findings are reported, never auto-fixed: a count mismatch can mean
missing files, not just a stale README. Exits non-zero when any
finding exists.`,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "Emit findings as JSON")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	root, err := workspaceRoot()
	if err != nil {
		return err
	}

	counts, err := inventory.Count(root)
	if err != nil {
		return fmt.Errorf("counting artifacts: %w", err)
	}

	settings, err := workspace.NewFileStore().Load(root)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	docs := audit.DefaultDocs(root, settings.DocGlobs)
	findings := audit.Run(counts, docs)

	if auditJSON {
		out := struct {
			Counts   audit.Counts    `json:"counts"`
			Findings []audit.Finding `json:"findings"`
		}{counts, findings}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling findings: %w", err)
		}
		fmt.Println(string(data))
	} else {
		fmt.Printf("Actual: %d commands, %d agents, %d PRPs\n\n",
			counts.Commands, counts.Agents, counts.PRPs)
		if len(findings) == 0 {
			fmt.Println("Documentation is consistent.")
		}
		for _, f := range findings {
			fmt.Printf("%-7s %s:%d  %s\n", f.Severity, f.File, f.Line, f.Message)
		}
	}

	if len(findings) > 0 {
		os.Exit(1)
	}
	return nil
}
