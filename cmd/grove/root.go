package main

import (
	"fmt"
	"os"

	"github.com/livingtree/grove/internal/workspace"
	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd is the base command when grove is called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "grove",
	Short: "Workspace server for AI-assisted projects",
	Long: `grove manages a workspace of slash commands, subagent definitions,
and PRP planning documents.

Core commands:
  serve      Start the MCP server (stdio transport)
  lint       Check commands and agents for definition problems
  audit      Cross-check documented counts against actual files
  validate   Score a PRP against the readiness threshold
  render     Show a slash command with arguments substituted
  list       List commands, agents, or PRPs
  new        Scaffold a command, agent, or PRP
  search     Full-text search the workspace index
  hook       Run the PRP gate hook (JSON on stdin/stdout)`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// workspaceRoot locates the workspace for the current directory.
func workspaceRoot() (string, error) {
	return workspace.FindFromWd()
}

// verbosePrintf prints only when verbose mode is enabled.
func verbosePrintf(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
