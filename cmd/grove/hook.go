package main

import (
	"fmt"
	"os"

	"github.com/livingtree/grove/internal/hook"
	"github.com/livingtree/grove/internal/workspace"
	"github.com/spf13/cobra"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Run the PRP gate hook (JSON on stdin/stdout)",
	Long: `Read a {"prompt": "..."} JSON payload on stdin, find the first
PRPs/<name>.md reference in the prompt, validate it, and write the
validation report as JSON on stdout.

Intended for UserPromptSubmit hooks: the assistant sees the report
before executing the PRP. Always exits zero so a hook failure never
blocks the prompt; the report itself carries the verdict.

Settings hookup:
  { "hooks": { "UserPromptSubmit": [ { "command": "grove hook" } ] } }`,
	RunE: runHook,
}

func init() {
	rootCmd.AddCommand(hookCmd)
}

// runHook never returns an error: a hook that exits non-zero would block
// the prompt it is meant to gate. Failures go to stderr only.
func runHook(cmd *cobra.Command, args []string) error {
	root, err := workspaceRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "grove hook: %v\n", err)
		return nil
	}

	minScore := workspace.DefaultMinScore
	if settings, err := workspace.NewFileStore().Load(root); err == nil {
		minScore = settings.EffectiveMinScore()
	} else {
		fmt.Fprintf(os.Stderr, "grove hook: loading settings: %v\n", err)
	}

	if err := hook.Run(os.Stdin, os.Stdout, root, minScore); err != nil {
		fmt.Fprintf(os.Stderr, "grove hook: %v\n", err)
	}
	return nil
}
