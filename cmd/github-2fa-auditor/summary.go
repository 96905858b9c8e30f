package main

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/vilaca/github-2fa-auditor/internal/domain"
)

// printSummary renders the run outcome for whoever reads the job output.
func printSummary(out io.Writer, org string, outcome domain.Outcome) {
	found := len(outcome.Findings)

	switch outcome.State {
	case domain.StateEmpty:
		fmt.Fprint(out, pterm.Success.Sprintfln("All members of %s have two-factor authentication enabled.", org))
		return
	case domain.StateDryRun:
		fmt.Fprint(out, pterm.Warning.Sprintfln("%d member(s) of %s without 2FA. Dry-run is enabled, nobody was removed.", found, org))
	case domain.StateThresholdTripped:
		fmt.Fprint(out, pterm.Error.Sprintfln("%d member(s) of %s without 2FA exceed the safety threshold. Nobody was removed.", found, org))
	case domain.StateRemoved:
		fmt.Fprint(out, pterm.Info.Sprintfln("Removed %d of %d member(s) of %s without 2FA (%d failed).",
			outcome.Removed(), found, org, outcome.Failed()))
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(summaryRows(outcome)).Srender()
	if err != nil {
		return
	}
	fmt.Fprintln(out, table)
}

// summaryRows builds the result table, one row per finding.
func summaryRows(outcome domain.Outcome) pterm.TableData {
	results := make(map[string]domain.RemovalResult, len(outcome.Removals))
	for _, r := range outcome.Removals {
		results[r.Member.Login] = r
	}

	rows := pterm.TableData{{"LOGIN", "PROFILE", "RESULT"}}
	for _, m := range outcome.Findings {
		result := "kept"
		if r, ok := results[m.Login]; ok {
			if r.Succeeded() {
				result = "removed"
			} else {
				result = "failed: " + r.Err.Error()
			}
		}
		rows = append(rows, []string{m.Login, m.ProfileURL, result})
	}
	return rows
}
