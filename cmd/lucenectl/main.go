// Command lucenectl is a thin CLI over the lucenequery core: it parses
// a query into its fields, repairs a malformed query, or rewrites a
// node at a given position, and prints the result as a table or JSON.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Version information, set at build time via -ldflags.
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	verbose bool
	logger  *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lucenectl",
		Short: "Inspect and repair Lucene query strings",
		Long:  "lucenectl parses Lucene query syntax, enumerates the fields it references, detects and repairs common syntax mistakes, and rewrites individual nodes to new values.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if verbose {
				logger, err = zap.NewDevelopment()
			} else {
				logger, err = zap.NewProduction()
			}
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(rewriteCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
