package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	groveserver "github.com/livingtree/grove/internal/server"
	"github.com/livingtree/grove/internal/updater"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var serveWatch bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio transport)",
	Long: `Start the grove MCP server on stdio.

The server exposes workspace tools (grove_list_commands,
grove_render_command, grove_validate_prp, grove_audit, grove_search),
every slash command as an MCP prompt, and the grove://workspace/status
resource.

With --watch, .claude/commands/ is watched and the registry reloads on
changes, so command edits take effect without a restart.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload commands when .claude/commands/ changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// stdout is the MCP transport; everything human-facing goes to stderr.
	log.SetOutput(os.Stderr)

	s, registry, cleanup, err := groveserver.New()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if serveWatch {
		go func() {
			if err := registry.Watch(ctx); err != nil {
				log.Printf("WARNING: command watch stopped: %v", err)
			}
		}()
	}

	// Best-effort version check, printed to stderr.
	go func() {
		result := updater.CheckVersion(groveserver.Version)
		if result.UpdateAvailable {
			fmt.Fprintf(os.Stderr, "Update available: v%s -> v%s (run: grove update)\n",
				result.CurrentVersion, result.LatestVersion)
		}
	}()

	return server.ServeStdio(s)
}
