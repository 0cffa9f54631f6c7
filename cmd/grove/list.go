package main

import (
	"fmt"
	"strings"

	"github.com/livingtree/grove/internal/agent"
	"github.com/livingtree/grove/internal/command"
	"github.com/livingtree/grove/internal/prp"
	"github.com/livingtree/grove/internal/workspace"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:       "list [commands|agents|prps]",
	Short:     "List commands, agents, or PRPs",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"commands", "agents", "prps"},
	RunE:      runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	root, err := workspaceRoot()
	if err != nil {
		return err
	}

	what := "commands"
	if len(args) > 0 {
		what = args[0]
	}

	switch what {
	case "commands":
		return listCommands(root)
	case "agents":
		return listAgents(root)
	case "prps":
		return listPRPs(root)
	default:
		return fmt.Errorf("unknown kind %q: expected commands, agents, or prps", what)
	}
}

func listCommands(root string) error {
	registry := command.NewRegistry(workspace.CommandsPath(root))
	if err := registry.Reload(); err != nil {
		return fmt.Errorf("loading commands: %w", err)
	}

	for _, c := range registry.List() {
		line := c.Invocation()
		if c.Meta.ArgumentHint != "" {
			line += " " + c.Meta.ArgumentHint
		}
		if c.Meta.Description != "" {
			line += "  " + c.Meta.Description
		}
		fmt.Println(line)
	}
	fmt.Printf("\n%d command(s) in %d namespace(s).\n", registry.Len(), len(registry.Namespaces()))

	if errs := registry.Errors(); len(errs) > 0 {
		fmt.Printf("%d file(s) failed to load (run: grove lint).\n", len(errs))
	}
	return nil
}

func listAgents(root string) error {
	agents, loadErrs, err := agent.LoadDir(workspace.AgentsPath(root))
	if err != nil {
		return fmt.Errorf("loading agents: %w", err)
	}

	for _, a := range agents {
		line := a.Name
		if a.Model != "" {
			line += " [" + a.Model + "]"
		}
		if len(a.Tools) > 0 {
			line += " (" + strings.Join(a.Tools, ", ") + ")"
		}
		if a.Description != "" {
			line += "  " + a.Description
		}
		fmt.Println(line)
	}
	fmt.Printf("\n%d agent(s).\n", len(agents))

	if len(loadErrs) > 0 {
		fmt.Printf("%d file(s) failed to load (run: grove lint).\n", len(loadErrs))
	}
	return nil
}

func listPRPs(root string) error {
	settings, err := workspace.NewFileStore().Load(root)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	reports, err := prp.ValidateDir(workspace.PRPsPath(root), settings.EffectiveMinScore())
	if err != nil {
		return fmt.Errorf("validating PRPs: %w", err)
	}

	for _, r := range reports {
		verdict := "invalid"
		if r.Valid {
			verdict = "valid"
		}
		if r.Error != "" {
			verdict = "error"
		}
		fmt.Printf("%-8s %-8s score=%d  %s\n", r.Status, verdict, r.Score, r.Path)
	}
	fmt.Printf("\n%d PRP(s).\n", len(reports))
	return nil
}
