package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-tracker/internal/recorder"
	"github.com/Tiliavir/time-tracker/internal/storage"
)

var startCmd = &cobra.Command{
	Use:   "start <project> [job-name]",
	Short: "Start a live timer for a project; Ctrl+C stops and saves it",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	db, err := openStore(storage.Selection{Project: argAt(args, 0), Job: argAt(args, 1)})
	if err != nil {
		return err
	}

	// The first interrupt cancels the session. Further interrupts are absorbed
	// until the job has been saved and stop runs.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec := recorder.New(db, newLiveReporter(cmd.OutOrStdout(), app.cfg.ClearScreen), app.logger)
	rec.Interval = app.cfg.Tick

	err = rec.Run(ctx)
	return finishSession(cmd.ErrOrStderr(), rec.State(), err)
}
