package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-tracker/internal/storage"
	"github.com/Tiliavir/time-tracker/internal/summary"
	"github.com/Tiliavir/time-tracker/internal/timecalc"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show time tracked today",
	Args:  cobra.NoArgs,
	RunE:  runToday,
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show time tracked this week, by weekday",
	Args:  cobra.NoArgs,
	RunE:  runWeek,
}

func runToday(cmd *cobra.Command, args []string) error {
	now := time.Now()
	out := cmd.OutOrStdout()

	db, err := openStore(storage.Selection{})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, styleHeader.Render("Today "+now.Format("2006-01-02")))
	active := summary.ActiveToday(db.Projects(), now)
	if len(active) == 0 {
		fmt.Fprintln(out, styleWarn.Render("Nothing tracked today."))
		return nil
	}

	var grandTotal int64
	for _, p := range active {
		d := summary.SummarizeToday(p, now)
		grandTotal += d.TotalSeconds
		fmt.Fprintln(out, rule)
		fmt.Fprintf(out, "%-20s %s  %s\n", p.Title, timecalc.FormatDuration(d.TotalSeconds), styleDim.Render(pluralJobs(d.JobCount)))
		for _, j := range d.Jobs {
			fmt.Fprintf(out, "  %s %-15s %s\n", j.CompletedAt().In(now.Location()).Format("15:04"),
				jobLabel(j.Name), timecalc.FormatDuration(j.Seconds()))
		}
	}
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "%-20s %s\n", "Total", timecalc.FormatDuration(grandTotal))
	return nil
}

func runWeek(cmd *cobra.Command, args []string) error {
	now := time.Now()
	out := cmd.OutOrStdout()

	db, err := openStore(storage.Selection{})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, styleHeader.Render("Week "+timecalc.ISOWeekLabel(now)))
	active := summary.ActiveThisWeek(db.Projects(), now)
	if len(active) == 0 {
		fmt.Fprintln(out, styleWarn.Render("Nothing tracked this week."))
		return nil
	}

	var grandTotal int64
	for _, p := range active {
		w := summary.SummarizeWeek(p, now)
		grandTotal += w.TotalSeconds()
		fmt.Fprintln(out, rule)
		fmt.Fprintf(out, "%-20s %s\n", p.Title, timecalc.FormatDuration(w.TotalSeconds()))
		for _, b := range w.Ordered() {
			fmt.Fprintf(out, "  %-18s %s  %s\n", b.Weekday, timecalc.FormatDuration(b.TotalSeconds), styleDim.Render(pluralJobs(b.JobCount)))
		}
	}
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "%-20s %s\n", "Total", timecalc.FormatDuration(grandTotal))
	return nil
}
