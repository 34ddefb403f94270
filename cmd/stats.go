package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-tracker/internal/storage"
	"github.com/Tiliavir/time-tracker/internal/summary"
	"github.com/Tiliavir/time-tracker/internal/timecalc"
)

var displayCmd = &cobra.Command{
	Use:   "display [project]",
	Short: "Show all-time totals, or the jobs of one project",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDisplay,
}

func runDisplay(cmd *cobra.Command, args []string) error {
	now := time.Now()
	out := cmd.OutOrStdout()

	db, err := openStore(storage.Selection{Project: argAt(args, 0)})
	if err != nil {
		return err
	}

	if db.Requested() == "" {
		fmt.Fprintln(out, styleHeader.Render("All projects"))
		fmt.Fprintln(out, rule)
		printSummaries(out, summary.SummarizeAll(db.Projects()), true)
		return nil
	}

	name, ok := db.Selected()
	if !ok {
		return handleError(cmd.ErrOrStderr(), &storage.Error{Kind: storage.KindWrongName, Name: db.Requested()})
	}
	p, _ := db.Project(name)

	fmt.Fprintln(out, styleHeader.Render(p.Title))
	fmt.Fprintln(out, rule)
	merged := summary.MergeByName(p.Jobs)
	if len(merged) == 0 {
		fmt.Fprintln(out, styleDim.Render("No jobs recorded."))
	}
	for _, j := range merged {
		fmt.Fprintf(out, "%-20s %s  %s\n", jobLabel(j.Name),
			timecalc.FormatDuration(j.TotalSeconds), styleDim.Render(pluralJobs(j.Count)))
	}
	fmt.Fprintln(out, rule)

	today := summary.SummarizeToday(p, now)
	week := summary.SummarizeWeek(p, now)
	fmt.Fprintf(out, "%-20s %s\n", "Today", timecalc.FormatDuration(today.TotalSeconds))
	fmt.Fprintf(out, "%-20s %s\n", "This week", timecalc.FormatDuration(week.TotalSeconds()))
	fmt.Fprintf(out, "%-20s %s\n", "Total", timecalc.FormatDuration(p.TotalSeconds()))
	return nil
}
