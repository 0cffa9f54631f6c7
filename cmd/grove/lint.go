package main

import (
	"fmt"
	"io"
	"os"

	"github.com/livingtree/grove/internal/agent"
	"github.com/livingtree/grove/internal/command"
	"github.com/livingtree/grove/internal/workspace"
	"github.com/spf13/cobra"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check commands and agents for definition problems",
	Long: `Parse every slash command and subagent definition and report
problems: unreadable frontmatter, unknown frontmatter keys, duplicate
invocation names, agents whose name does not match their filename, and
unknown model aliases.

Exits non-zero only when load errors are found; warnings alone exit
zero.`,
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

// lintWorkspace reports definition problems to out and returns the
// error and warning counts separately. Load errors (unparseable files,
// duplicate invocations) are errors; schema issues in files that still
// load (unknown keys, empty bodies, bad model aliases) are warnings.
func lintWorkspace(root string, out io.Writer) (errCount, warnCount int, err error) {
	registry := command.NewRegistry(workspace.CommandsPath(root))
	if err := registry.Reload(); err != nil {
		return 0, 0, fmt.Errorf("loading commands: %w", err)
	}
	for _, e := range registry.Errors() {
		fmt.Fprintf(out, "ERROR  %s: %v\n", e.Path, e.Err)
		errCount++
	}
	for _, c := range registry.List() {
		for _, w := range c.Warnings {
			fmt.Fprintf(out, "WARN   %s: %s\n", c.Path, w)
			warnCount++
		}
	}
	verbosePrintf("checked %d command(s)\n", registry.Len())

	agents, loadErrs, err := agent.LoadDir(workspace.AgentsPath(root))
	if err != nil {
		return errCount, warnCount, fmt.Errorf("loading agents: %w", err)
	}
	for _, e := range loadErrs {
		fmt.Fprintf(out, "ERROR  %s: %v\n", e.Path, e.Err)
		errCount++
	}
	for _, a := range agents {
		for _, issue := range a.Issues {
			fmt.Fprintf(out, "WARN   %s: %s\n", a.Path, issue)
			warnCount++
		}
	}
	verbosePrintf("checked %d agent(s)\n", len(agents))

	return errCount, warnCount, nil
}

func runLint(cmd *cobra.Command, args []string) error {
	root, err := workspaceRoot()
	if err != nil {
		return err
	}

	errCount, warnCount, err := lintWorkspace(root, os.Stdout)
	if err != nil {
		return err
	}

	if errCount == 0 && warnCount == 0 {
		fmt.Println("No problems found.")
		return nil
	}

	fmt.Printf("\n%d error(s), %d warning(s).\n", errCount, warnCount)
	if errCount > 0 {
		os.Exit(1)
	}
	return nil
}
