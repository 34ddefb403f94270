package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/time-tracker/internal/model"
	"github.com/Tiliavir/time-tracker/internal/storage"
	"github.com/Tiliavir/time-tracker/internal/timecalc"
)

type cliEnv struct {
	t       *testing.T
	dataDir string
	config  string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return &cliEnv{
		t:       t,
		dataDir: t.TempDir(),
		config:  filepath.Join(t.TempDir(), "config.yaml"),
	}
}

func (e *cliEnv) run(args ...string) (string, string, error) {
	e.t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--config", e.config, "--data-dir", e.dataDir}, args...))
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func (e *cliEnv) writeStore(projects []model.Project) {
	e.t.Helper()
	data, err := json.Marshal(projects)
	require.NoError(e.t, err)
	require.NoError(e.t, os.WriteFile(filepath.Join(e.dataDir, storage.DefaultFileName), data, 0o600))
}

func TestNewAndList(t *testing.T) {
	env := newCLIEnv(t)

	out, _, err := env.run("list")
	require.NoError(t, err)
	assert.Contains(t, out, "No projects found.")

	out, _, err = env.run("new", "alpha")
	require.NoError(t, err)
	assert.Contains(t, out, `Created project "alpha".`)

	out, _, err = env.run("list")
	require.NoError(t, err)
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "0 jobs")
}

func TestRecoverableErrorsAreDisplayed(t *testing.T) {
	env := newCLIEnv(t)
	_, _, err := env.run("new", "alpha")
	require.NoError(t, err)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"duplicate", []string{"new", "alpha"}, `Project "alpha" already exists`},
		{"new without name", []string{"new"}, "Missing project name"},
		{"delete unknown", []string{"delete", "ghost"}, `Could not find project "ghost"`},
		{"delete without name", []string{"delete"}, "Missing project name"},
		{"start unknown", []string{"start", "ghost"}, `Could not find project "ghost"`},
		{"start without name", []string{"start"}, "Missing project name"},
		{"display unknown", []string{"display", "ghost"}, `Could not find project "ghost"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errOut, err := env.run(tt.args...)
			require.NoError(t, err)
			assert.Contains(t, errOut, tt.want)
		})
	}
}

func TestDelete(t *testing.T) {
	env := newCLIEnv(t)
	env.writeStore([]model.Project{{Title: "alpha"}, {Title: "beta"}})

	out, _, err := env.run("delete", "alpha")
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted project "alpha".`)

	out, _, err = env.run("list")
	require.NoError(t, err)
	assert.NotContains(t, out, "alpha")
	assert.Contains(t, out, "beta")
}

func TestCorruptStoreIsFatal(t *testing.T) {
	env := newCLIEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.dataDir, storage.DefaultFileName), []byte("not json"), 0o600))

	_, _, err := env.run("list")
	assert.ErrorIs(t, err, storage.KindParseFile)
}

func TestDisplayAndReports(t *testing.T) {
	env := newCLIEnv(t)
	now := time.Now()
	stamp := now.Add(-time.Minute)
	later := now.Add(time.Minute)
	if !timecalc.SameDay(stamp, later) || !timecalc.IsThisWeek(stamp, later) {
		t.Skip("too close to a day or week boundary")
	}
	env.writeStore([]model.Project{
		{Title: "alpha", Jobs: []model.Job{
			model.NewJob("review", 100, stamp),
			model.NewJob("review", 25, stamp),
			model.NewJob("", 3600, now.AddDate(0, 0, -30)),
		}},
		{Title: "idle"},
	})

	out, _, err := env.run("display")
	require.NoError(t, err)
	assert.Contains(t, out, "All projects")
	assert.Contains(t, out, "01.02.05")

	out, _, err = env.run("display", "alpha")
	require.NoError(t, err)
	assert.Contains(t, out, "review")
	assert.Contains(t, out, "00.02.05")
	assert.Contains(t, out, "2 jobs")

	out, _, err = env.run("today")
	require.NoError(t, err)
	assert.Contains(t, out, "alpha")
	assert.NotContains(t, out, "idle")
	assert.Contains(t, out, "00.02.05")

	out, _, err = env.run("week")
	require.NoError(t, err)
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, stamp.Weekday().String())

	out, _, err = env.run("export", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "alpha,review,")
}
