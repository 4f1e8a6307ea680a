package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/loglens/lucenequery/internal/cli/config"
	"github.com/loglens/lucenequery/internal/cli/ui"
	"github.com/loglens/lucenequery/pkg/lucenequery"
)

var fieldsJSON bool

func init() {
	fieldsCmd.Flags().BoolVar(&fieldsJSON, "json", false, "Print fields as JSON")
}

var fieldsCmd = &cobra.Command{
	Use:   "fields <query>",
	Short: "Extract the fields referenced by a query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		requestID := uuid.New()
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if logger != nil {
			logger.Debug("fields invoked", zapRequestID(requestID), zapQuery(args[0]))
		}

		fs, err := lucenequery.ParseFields(args[0])
		if err != nil {
			return reportParseError(err, cfg)
		}

		if fieldsJSON || cfg.Output.Format == "json" {
			return json.NewEncoder(os.Stdout).Encode(fs)
		}

		t := ui.NewTable(os.Stdout, []string{"POS", "NAME", "TYPE", "OPERATOR", "VALUE"}, &ui.TableOptions{NoColor: cfg.Output.NoColor})
		for _, f := range fs {
			t.AddRow(fmt.Sprintf("%d", f.Pos), f.Name, f.Type.String(), f.Operator, f.Value)
		}
		t.Render()
		return nil
	},
}
