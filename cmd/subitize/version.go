package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("subitize v%s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
