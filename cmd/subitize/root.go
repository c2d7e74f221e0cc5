package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "subitize",
	Short: "Subitize runs a visual counting (subitizing) experiment in the terminal",
	Long: `Subitize measures how quickly and accurately a participant counts small
groups of circles. Each trial shows a fixation cross, briefly displays 1-10
circles, then asks for the count (digit keys, 0 meaning 10). Results are
exported to CSV and archived in a SQLite database.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("data-dir", "data", "Directory for results, archive, and logs")
}
