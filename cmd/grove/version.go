package main

import (
	"fmt"

	groveserver "github.com/livingtree/grove/internal/server"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("grove v%s\n", groveserver.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
