package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/time-tracker/internal/model"
	"github.com/Tiliavir/time-tracker/internal/storage"
	"github.com/Tiliavir/time-tracker/internal/timecalc"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every recorded job to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md, yaml")
}

// exportRow is one job flattened with its project.
type exportRow struct {
	Project         string `json:"project" yaml:"project"`
	Job             string `json:"job" yaml:"job"`
	CompletedAt     string `json:"completed_at" yaml:"completed_at"`
	DurationSeconds int64  `json:"duration_seconds" yaml:"duration_seconds"`
}

func exportRows(projects []model.Project, loc *time.Location) []exportRow {
	rows := []exportRow{}
	for _, p := range projects {
		for _, j := range p.Jobs {
			rows = append(rows, exportRow{
				Project:         p.Title,
				Job:             j.Name,
				CompletedAt:     j.CompletedAt().In(loc).Format(time.RFC3339),
				DurationSeconds: j.Seconds(),
			})
		}
	}
	return rows
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := openStore(storage.Selection{})
	if err != nil {
		return err
	}
	rows := exportRows(db.Projects(), time.Local)
	return writeExport(cmd.OutOrStdout(), exportFormat, rows)
}

func writeExport(w io.Writer, format string, rows []exportRow) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	case "md":
		fmt.Fprintln(w, "| Project | Job | Completed | Duration |")
		fmt.Fprintln(w, "|---------|-----|-----------|----------|")
		for _, r := range rows {
			fmt.Fprintf(w, "| %s | %s | %s | %s |\n", r.Project, r.Job, r.CompletedAt, timecalc.FormatDuration(r.DurationSeconds))
		}
	case "csv":
		fmt.Fprintln(w, "project,job,completed_at,duration_seconds")
		for _, r := range rows {
			fmt.Fprintf(w, "%s,%s,%s,%d\n",
				csvEscape(r.Project),
				csvEscape(r.Job),
				csvEscape(r.CompletedAt),
				r.DurationSeconds,
			)
		}
	default:
		return fmt.Errorf("unknown export format %q (want csv, json, md or yaml)", format)
	}
	return nil
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
