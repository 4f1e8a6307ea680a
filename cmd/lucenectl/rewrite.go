package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/loglens/lucenequery/internal/cli/config"
	"github.com/loglens/lucenequery/pkg/lucenequery"
)

var edits []string

func init() {
	rewriteCmd.Flags().StringArrayVar(&edits, "edit", nil, "A position:value pair to splice in, e.g. --edit 5:bar (repeatable)")
}

var rewriteCmd = &cobra.Command{
	Use:   "rewrite <query>",
	Short: "Replace nodes in a query by source position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		requestID := uuid.New()
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		directives, err := parseEdits(edits)
		if err != nil {
			return err
		}

		out, err := lucenequery.Rewrite(args[0], directives)
		if logger != nil {
			logger.Debug("rewrite invoked", zapRequestID(requestID), zapQuery(args[0]), zap.Int("edits", len(directives)))
		}
		if err != nil {
			return reportParseError(err, cfg)
		}

		fmt.Println(out)
		return nil
	},
}

func parseEdits(raw []string) ([]lucenequery.EditDirective, error) {
	directives := make([]lucenequery.EditDirective, 0, len(raw))
	for _, r := range raw {
		parts := strings.SplitN(r, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid --edit %q: expected position:value", r)
		}
		pos, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid --edit %q: position must be an integer", r)
		}
		directives = append(directives, lucenequery.EditDirective{Pos: pos, Value: parts[1]})
	}
	return directives, nil
}
