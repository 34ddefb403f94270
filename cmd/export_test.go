package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/time-tracker/internal/model"
)

func TestCsvEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"with space", "with space"},
		{"with,comma", `"with,comma"`},
		{`with"quote`, `"with""quote"`},
		{"with\nnewline", "\"with\nnewline\""},
		{"with\rreturn", "\"with\rreturn\""},
		{"", ""},
	}
	for _, tt := range tests {
		got := csvEscape(tt.input)
		if got != tt.want {
			t.Errorf("csvEscape(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func sampleRows() []exportRow {
	end := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	projects := []model.Project{
		{Title: "alpha", Jobs: []model.Job{model.NewJob("review, part 1", 125, end)}},
		{Title: "beta", Jobs: []model.Job{model.NewJob("", 5, end)}},
		{Title: "empty"},
	}
	return exportRows(projects, time.UTC)
}

func TestExportRows(t *testing.T) {
	rows := sampleRows()
	require.Len(t, rows, 2)
	assert.Equal(t, exportRow{
		Project:         "alpha",
		Job:             "review, part 1",
		CompletedAt:     "2026-02-27T10:00:00Z",
		DurationSeconds: 125,
	}, rows[0])
}

func TestWriteExport(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{"csv", []string{"project,job,completed_at,duration_seconds", `alpha,"review, part 1",2026-02-27T10:00:00Z,125`, "beta,,2026-02-27T10:00:00Z,5"}},
		{"json", []string{`"project": "alpha"`, `"duration_seconds": 125`}},
		{"yaml", []string{"- project: alpha", "  duration_seconds: 125", "  job: \"\""}},
		{"md", []string{"| alpha | review, part 1 | 2026-02-27T10:00:00Z | 00.02.05 |"}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeExport(&buf, tt.format, sampleRows()))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestWriteExportUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, writeExport(&buf, "xml", nil))
}
