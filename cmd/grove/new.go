package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/livingtree/grove/internal/scaffold"
	"github.com/livingtree/grove/internal/workspace"
	"github.com/spf13/cobra"
)

var (
	newDescription string
	newModel       string
	newHint        string
)

var newCmd = &cobra.Command{
	Use:   "new <command|agent|prp> <name>",
	Short: "Scaffold a command, agent, or PRP",
	Long: `Create a skeleton workspace artifact.

Commands take a namespaced name ("development:create-pr" becomes
.claude/commands/development/create-pr.md). Agents take a bare name.
PRPs take a title, which is slugified into the filename; a fresh PRP
carries every required section and validates as structurally complete.

Examples:
  grove new command development:create-pr --description "Open a pull request"
  grove new agent code-reviewer --model sonnet
  grove new prp "User authentication with magic links"`,
	Args: cobra.ExactArgs(2),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVar(&newDescription, "description", "", "Description for the frontmatter")
	newCmd.Flags().StringVar(&newModel, "model", "inherit", "Model alias for a new agent")
	newCmd.Flags().StringVar(&newHint, "hint", "", "argument-hint for a new command")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	root, err := workspaceRoot()
	if err != nil {
		return err
	}

	renderer, err := scaffold.NewRenderer()
	if err != nil {
		return err
	}

	var path, content string
	switch args[0] {
	case "command":
		path, content, err = newCommand(root, renderer, args[1])
	case "agent":
		path, content, err = newAgent(root, renderer, args[1])
	case "prp":
		path, content, err = newPRP(root, renderer, args[1])
	default:
		return fmt.Errorf("unknown kind %q: expected command, agent, or prp", args[0])
	}
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Printf("Created %s\n", path)
	return nil
}

func newCommand(root string, renderer scaffold.Renderer, name string) (string, string, error) {
	name = strings.TrimPrefix(name, "/")
	namespace := ""
	if i := strings.LastIndex(name, ":"); i >= 0 {
		namespace, name = name[:i], name[i+1:]
	}
	name = scaffold.Slugify(name)
	if name == "untitled" {
		return "", "", fmt.Errorf("command name must contain letters or digits")
	}

	content, err := renderer.Render(scaffold.Command, scaffold.CommandData{
		Namespace:    namespace,
		Name:         name,
		Description:  newDescription,
		ArgumentHint: newHint,
	})
	if err != nil {
		return "", "", err
	}

	dir := workspace.CommandsPath(root)
	if namespace != "" {
		dir = filepath.Join(dir, filepath.FromSlash(strings.ReplaceAll(namespace, ":", "/")))
	}
	return filepath.Join(dir, name+".md"), content, nil
}

func newAgent(root string, renderer scaffold.Renderer, name string) (string, string, error) {
	name = scaffold.Slugify(name)
	content, err := renderer.Render(scaffold.Agent, scaffold.AgentData{
		Name:        name,
		Description: newDescription,
		Model:       newModel,
	})
	if err != nil {
		return "", "", err
	}
	return filepath.Join(workspace.AgentsPath(root), name+".md"), content, nil
}

func newPRP(root string, renderer scaffold.Renderer, title string) (string, string, error) {
	content, err := renderer.Render(scaffold.PRP, scaffold.PRPData{Title: title})
	if err != nil {
		return "", "", err
	}
	return filepath.Join(workspace.PRPsPath(root), scaffold.Slugify(title)+".md"), content, nil
}
