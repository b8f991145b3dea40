// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "iskcon-portal",
	Short: "iskcon-portal is a web-based administration portal for a temple community",
	Long: `iskcon-portal is a web-based administration portal for a temple
community that provides an easy-to-use interface for managing devotees,
sessions, donations and kitchen inventory.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
