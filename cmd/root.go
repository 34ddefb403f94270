package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-tracker/internal/config"
	"github.com/Tiliavir/time-tracker/internal/storage"
)

var (
	configPath string
	dataDir    string
	verbose    bool
)

// app holds what PersistentPreRunE resolved for the running command.
var app struct {
	cfg    config.Config
	logger *slog.Logger
}

var rootCmd = &cobra.Command{
	Use:   "time-tracker",
	Short: "Track time spent on projects",
	Long: `time-tracker records how long you work on named projects.
All data is stored in a single JSON file in ~/.time-tracker/.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		var shown shownError
		if !errors.As(err, &shown) {
			fmt.Fprintln(os.Stderr, styleErr.Render(errorMessage(err)))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.time-tracker/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the project store")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(displayCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(exportCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	level := cfg.Level()
	if verbose {
		level = slog.LevelDebug
	}
	app.cfg = cfg
	app.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if cfg.Warning != nil {
		app.logger.Warn("config file not written", "err", cfg.Warning)
	}
	app.logger.Debug("configuration loaded", "data_dir", cfg.DataDir, "store_file", cfg.StoreFile)
	return nil
}

// openStore loads the project store with the given selection.
func openStore(sel storage.Selection) (*storage.Db, error) {
	return storage.Open(app.cfg.DataDir, sel,
		storage.WithFileName(app.cfg.StoreFile),
		storage.WithLogger(app.logger),
	)
}

// argAt returns args[i] or "" when absent.
func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
