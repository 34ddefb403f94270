package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/Tiliavir/time-tracker/internal/recorder"
	"github.com/Tiliavir/time-tracker/internal/storage"
	"github.com/Tiliavir/time-tracker/internal/timecalc"
)

var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorRed    = lipgloss.Color("#fb4934")
	colorDim    = lipgloss.Color("#928374")
	colorHeader = lipgloss.Color("#fe8019")

	styleOK     = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarn   = lipgloss.NewStyle().Foreground(colorYellow)
	styleErr    = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleHeader = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
)

const rule = "--------------------------------"

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// errorMessage turns a classified error into the text shown to the user.
func errorMessage(err error) string {
	var e *storage.Error
	if !errors.As(err, &e) {
		e = &storage.Error{Kind: storage.KindOf(err)}
	}
	name := e.Name
	switch e.Kind {
	case storage.KindNoName:
		return "Missing project name"
	case storage.KindWrongName:
		return fmt.Sprintf("Could not find project %q", name)
	case storage.KindProjectExists:
		return fmt.Sprintf("Project %q already exists", name)
	case storage.KindCreateProject:
		return fmt.Sprintf("Could not create project %q%s", name, cause(e))
	case storage.KindDeleteProject:
		return fmt.Sprintf("Could not delete project %q%s", name, cause(e))
	case storage.KindSaveJob:
		return fmt.Sprintf("Could not save job: %v", err)
	case storage.KindStartRecording:
		return "Could not start recording: the session cannot be interrupted"
	case storage.KindNoFile, storage.KindCreateFile, storage.KindCreateDir, storage.KindParseFile:
		return fmt.Sprintf("Could not open project store: %v", err)
	default:
		return err.Error()
	}
}

func cause(e *storage.Error) string {
	if e.Err == nil {
		return ""
	}
	return ": " + e.Err.Error()
}

// handleError prints recoverable errors and passes fatal ones up to Execute.
func handleError(w io.Writer, err error) error {
	if err == nil {
		return nil
	}
	kind := storage.KindOf(err)
	if kind == storage.KindUnknown || kind.Fatal() {
		return err
	}
	fmt.Fprintln(w, styleErr.Render(errorMessage(err)))
	return nil
}

// shownError wraps an error the user has already seen. Execute exits with
// status 1 without printing it again.
type shownError struct{ error }

func (e shownError) Unwrap() error { return e.error }

// finishSession classifies the outcome of a recorder run. A save failure has
// already been shown by the reporter, so only its exit status remains.
func finishSession(w io.Writer, state recorder.State, err error) error {
	if err == nil {
		return nil
	}
	if state != recorder.Stopped {
		return handleError(w, err)
	}
	if kind := storage.KindOf(err); kind == storage.KindUnknown || kind.Fatal() {
		return shownError{err}
	}
	return nil
}

// liveReporter shows a running session. On a terminal it redraws a single
// screen each tick; otherwise it prints one line per minute.
type liveReporter struct {
	out        io.Writer
	redraw     bool
	lastMinute int64
}

func newLiveReporter(out io.Writer, clearScreen bool) *liveReporter {
	return &liveReporter{out: out, redraw: clearScreen && isTerminal(out), lastMinute: -1}
}

func (r *liveReporter) Tick(project, job string, elapsed int64) {
	if !r.redraw {
		if elapsed/60 == r.lastMinute {
			return
		}
		r.lastMinute = elapsed / 60
	}
	if r.redraw {
		fmt.Fprint(r.out, "\033[H\033[2J")
	}
	fmt.Fprintf(r.out, "%s  %s%s\n",
		styleHeader.Render(project),
		styleOK.Render(timecalc.FormatDuration(elapsed)),
		jobSuffix(job))
	if r.redraw {
		fmt.Fprintln(r.out, styleDim.Render("Press Ctrl+C to stop and save."))
	}
}

func (r *liveReporter) Saving(project, job string, elapsed int64) {
	if r.redraw {
		fmt.Fprint(r.out, "\033[H\033[2J")
	}
	fmt.Fprintf(r.out, "Saving %s%s: %s\n", project, jobSuffix(job), timecalc.FormatDuration(elapsed))
}

func (r *liveReporter) Saved(project string, elapsed int64, err error) {
	if err != nil {
		fmt.Fprintln(r.out, styleErr.Render(errorMessage(err)))
		return
	}
	fmt.Fprintln(r.out, styleOK.Render(fmt.Sprintf("Saved %s to %q.", timecalc.FormatElapsed(elapsed), project)))
}

func jobSuffix(job string) string {
	if job == "" {
		return ""
	}
	return " " + styleDim.Render("("+job+")")
}

func jobLabel(name string) string {
	if name == "" {
		return styleDim.Render("unnamed")
	}
	return name
}
