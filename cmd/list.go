package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-tracker/internal/storage"
	"github.com/Tiliavir/time-tracker/internal/summary"
	"github.com/Tiliavir/time-tracker/internal/timecalc"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openStore(storage.Selection{})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	projects := db.Projects()
	if len(projects) == 0 {
		fmt.Fprintln(out, styleWarn.Render("No projects found."))
		return nil
	}
	for _, p := range projects {
		fmt.Fprintf(out, "%s  %s\n", p.Title, styleDim.Render(pluralJobs(len(p.Jobs))))
	}
	return nil
}

// printSummaries prints one line per project, optionally followed by a total.
func printSummaries(w io.Writer, summaries []summary.Summary, withTotal bool) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, styleWarn.Render("No projects found."))
		return
	}
	for _, s := range summaries {
		fmt.Fprintf(w, "%-20s %s  %s\n", s.Title,
			timecalc.FormatDuration(s.TotalSeconds),
			styleDim.Render(pluralJobs(s.JobCount)))
	}
	if withTotal {
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "%-20s %s\n", "Total", timecalc.FormatDuration(summary.GrandTotal(summaries)))
	}
}

func pluralJobs(n int) string {
	if n == 1 {
		return "1 job"
	}
	return fmt.Sprintf("%d jobs", n)
}
