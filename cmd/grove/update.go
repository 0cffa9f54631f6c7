package main

import (
	"fmt"
	"os"

	groveserver "github.com/livingtree/grove/internal/server"
	"github.com/livingtree/grove/internal/updater"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update grove to the latest release",
	RunE:  runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(os.Stderr, "Checking for updates...")

	result := updater.CheckVersion(groveserver.Version)
	if !result.UpdateAvailable {
		fmt.Fprintf(os.Stderr, "Already at the latest version (v%s).\n", result.CurrentVersion)
		return nil
	}

	fmt.Fprintf(os.Stderr, "New version available: v%s -> v%s. Downloading...\n",
		result.CurrentVersion, result.LatestVersion)

	if err := updater.SelfUpdate(groveserver.Version); err != nil {
		return fmt.Errorf("update failed (download manually from %s): %w", result.ReleaseURL, err)
	}

	fmt.Fprintf(os.Stderr, "Updated to v%s. Restart grove to use the new version.\n", result.LatestVersion)
	return nil
}
