package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/loglens/lucenequery/internal/cli/config"
	"github.com/loglens/lucenequery/pkg/lucenequery"
)

// reportParseError renders a ParseFields/Rewrite failure as a
// structured QueryError (JSON mode) or as its formatted terminal text
// (table mode), and returns an error so the caller's RunE exits
// non-zero. repair never takes this path: Repair has no error return.
func reportParseError(err error, cfg *config.Config) error {
	parseErr, ok := err.(*lucenequery.ParseError)
	if !ok {
		return err
	}
	qe := parseErr.AsQueryError()

	if cfg.Output.Format == "json" {
		if encErr := json.NewEncoder(os.Stdout).Encode(qe); encErr != nil {
			return encErr
		}
		return fmt.Errorf("%s", qe.Message)
	}

	fmt.Fprint(os.Stderr, qe.Format())
	return fmt.Errorf("%s", qe.Message)
}
