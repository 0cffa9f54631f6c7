package main

import (
	"fmt"
	"strings"

	"github.com/livingtree/grove/internal/command"
	"github.com/livingtree/grove/internal/workspace"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <command> [arguments...]",
	Short: "Show a slash command with arguments substituted",
	Long: `Render a slash command's body the way the assistant would receive
it: $ARGUMENTS replaced with the argument string, $1..$9 with
positional words.

Examples:
  grove render /development:create-pr
  grove render git:commit "fix flaky registry test"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	root, err := workspaceRoot()
	if err != nil {
		return err
	}

	registry := command.NewRegistry(workspace.CommandsPath(root))
	if err := registry.Reload(); err != nil {
		return fmt.Errorf("loading commands: %w", err)
	}

	c, ok := registry.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown command %q (run: grove list commands)", args[0])
	}

	arguments := strings.Join(args[1:], " ")
	fmt.Println(command.Expand(c.Body, arguments))
	return nil
}
