package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/livingtree/grove/internal/prp"
	"github.com/livingtree/grove/internal/workspace"
	"github.com/spf13/cobra"
)

var validateJSON bool

var validateCmd = &cobra.Command{
	Use:   "validate <prp-path>",
	Short: "Score a PRP against the readiness threshold",
	Long: `Validate a PRP document: check the six required sections and score
it against the workspace minimum (default 8).

A relative path is resolved against the workspace root, so
"PRPs/user-auth.md" works from any subdirectory. Exits non-zero when
the PRP is invalid.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Emit the report as JSON")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	root, err := workspaceRoot()
	if err != nil {
		return err
	}

	settings, err := workspace.NewFileStore().Load(root)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	minScore := settings.EffectiveMinScore()

	path := args[0]
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	report := prp.ValidateFile(path, minScore)
	report.Path = args[0]

	if validateJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		fmt.Println(string(data))
	} else {
		printReport(report, minScore)
	}

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func printReport(report prp.Report, minScore int) {
	if report.Error != "" {
		fmt.Printf("INVALID  %s: %s\n", report.Path, report.Error)
		return
	}
	if len(report.MissingSections) > 0 {
		fmt.Printf("INVALID  %s (%s): missing %s\n",
			report.Path, report.Status, strings.Join(report.MissingSections, ", "))
		return
	}

	verdict := "INVALID"
	if report.Valid {
		verdict = "VALID"
	}
	fmt.Printf("%-8s %s (%s): score %d/%d", verdict, report.Path, report.Status, report.Score, minScore)

	var missing []string
	if !report.HasPnpm {
		missing = append(missing, "pnpm")
	}
	if !report.HasDocker {
		missing = append(missing, "docker")
	}
	if !report.HasValidation {
		missing = append(missing, "validation commands")
	}
	if len(missing) > 0 {
		fmt.Printf(" (no mention of %s)", strings.Join(missing, ", "))
	}
	fmt.Println()
}
