package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/appgen/internal/diag"
	"github.com/vvka-141/appgen/internal/services"
	"github.com/vvka-141/appgen/internal/tui"
)

type jsonStatement struct {
	Kind  string `json:"kind"`
	Table string `json:"table"`
	SQL   string `json:"sql"`
}

type jsonReport struct {
	BoundedContext string          `json:"bounded_context"`
	Tables         []string        `json:"tables"`
	Statements     []jsonStatement `json:"statements"`
	Deferred       bool            `json:"deferred_foreign_keys"`
	Diagnostics    diag.List       `json:"diagnostics"`
	Written        []string        `json:"written,omitempty"`
	Verified       int             `json:"verified,omitempty"`
}

// printOutcome reports a compilation. Human output goes to stderr so that
// stdout stays clean; --json writes a machine-readable report to stdout.
func printOutcome(cmd *cobra.Command, outcome *services.Outcome, asJSON bool) error {
	if outcome == nil || outcome.Result == nil {
		return nil
	}
	res := outcome.Result

	if asJSON {
		report := jsonReport{
			BoundedContext: res.BoundedContext,
			Tables:         make([]string, 0, len(res.Tables)),
			Statements:     make([]jsonStatement, 0, len(res.Statements)),
			Deferred:       res.Deferred,
			Diagnostics:    res.Diagnostics,
			Written:        outcome.Written,
			Verified:       outcome.Verified,
		}
		if report.Diagnostics == nil {
			report.Diagnostics = diag.List{}
		}
		for _, t := range res.Tables {
			report.Tables = append(report.Tables, t.Name)
		}
		for _, s := range res.Statements {
			report.Statements = append(report.Statements, jsonStatement{Kind: string(s.Kind), Table: s.Table, SQL: s.SQL})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	}

	errOut := cmd.ErrOrStderr()
	styled := errOut == os.Stderr && tui.UseColor(os.Stderr)
	r := tui.NewReport(styled)

	fmt.Fprint(errOut, r.Diagnostics(res.Diagnostics))
	if getVerboseFlag(cmd) {
		fmt.Fprint(errOut, r.Tables(res))
	}
	fmt.Fprintln(errOut, r.Summary(res))
	return nil
}
