package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/loglens/lucenequery/internal/cli/config"
	"github.com/loglens/lucenequery/internal/cli/ui"
	"github.com/loglens/lucenequery/pkg/lucenequery"
)

var repairJSON bool

func init() {
	repairCmd.Flags().BoolVar(&repairJSON, "json", false, "Print the repair result as JSON")
}

// repairJSONOutput is the --json shape for the repair subcommand: the
// repaired keyword and flags, plus one structured QueryError per
// diagnostic line so a scripted caller gets a stable code instead of
// having to pattern-match the human-readable message.
type repairJSONOutput struct {
	Keyword     string                   `json:"keyword"`
	IsLegal     bool                     `json:"is_legal"`
	IsResolved  bool                     `json:"is_resolved"`
	Diagnostics []lucenequery.QueryError `json:"diagnostics"`
}

var repairCmd = &cobra.Command{
	Use:   "repair <query>",
	Short: "Repair a malformed query and report what was wrong",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		requestID := uuid.New()
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		result := lucenequery.RepairWithBudget(args[0], cfg.Repair.MaxResolveTimes)
		if logger != nil {
			logger.Debug("repair invoked",
				zapRequestID(requestID),
				zapQuery(args[0]),
				zap.Int("max_resolve_times", cfg.Repair.MaxResolveTimes),
				zap.Bool("is_legal", result.IsLegal),
				zap.Bool("is_resolved", result.IsResolved),
			)
		}

		if repairJSON || cfg.Output.Format == "json" {
			return json.NewEncoder(os.Stdout).Encode(repairJSONOutput{
				Keyword:     result.Keyword,
				IsLegal:     result.IsLegal,
				IsResolved:  result.IsResolved,
				Diagnostics: lucenequery.Diagnostics(result),
			})
		}

		kv := ui.NewKeyValueTable(os.Stdout, cfg.Output.NoColor)
		kv.AddRow("keyword", result.Keyword)
		kv.AddRow("is_legal", fmt.Sprintf("%t", result.IsLegal))
		kv.AddRow("is_resolved", fmt.Sprintf("%t", result.IsResolved))
		kv.Render()

		if result.Message != "" {
			sec := ui.NewSection(os.Stdout, "Diagnostics", cfg.Output.NoColor)
			for _, line := range strings.Split(result.Message, "\n") {
				sec.AddLine(line)
			}
			sec.Render()
		}
		return nil
	},
}
