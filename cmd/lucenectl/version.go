package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the lucenectl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lucenectl version %s (%s)\n", Version, GitCommit)
	},
}
