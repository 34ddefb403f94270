// Package recorder runs the live timer of a "start" invocation.
//
// A session is either Running or Stopped. Run enters Running only when the
// supplied context can be cancelled, reports the elapsed time once per tick,
// and on cancellation freezes the elapsed seconds and saves exactly one job.
package recorder

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Tiliavir/time-tracker/internal/storage"
)

// State is the recorder's lifecycle state.
type State int

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "idle"
	}
}

// Store is the part of the project store a session needs.
type Store interface {
	Selected() (string, bool)
	Requested() string
	SelectedJob() string
	SaveJob(name string, seconds int64) error
}

// Reporter displays session progress.
type Reporter interface {
	Tick(project, job string, elapsed int64)
	Saving(project, job string, elapsed int64)
	Saved(project string, elapsed int64, err error)
}

// Clock abstracts wall time and ticking.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) (<-chan time.Time, func())
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) NewTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// SystemClock is the real wall clock.
var SystemClock Clock = systemClock{}

// Recorder measures one live session.
type Recorder struct {
	Store    Store
	Reporter Reporter
	Clock    Clock
	Interval time.Duration
	Logger   *slog.Logger

	state atomic.Int32
}

// New returns a Recorder ticking once per second on the system clock.
func New(store Store, reporter Reporter, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Recorder{
		Store:    store,
		Reporter: reporter,
		Clock:    SystemClock,
		Interval: time.Second,
		Logger:   logger,
	}
}

// State returns the current lifecycle state.
func (r *Recorder) State() State {
	return State(r.state.Load())
}

// Run records a session for the selected project until ctx is cancelled,
// then saves the elapsed whole seconds as one job. The returned error is the
// outcome of that save, or the reason the session never started.
func (r *Recorder) Run(ctx context.Context) error {
	project, ok := r.Store.Selected()
	if !ok {
		if r.Store.Requested() == "" {
			return &storage.Error{Kind: storage.KindNoName}
		}
		return &storage.Error{Kind: storage.KindWrongName, Name: r.Store.Requested()}
	}
	if ctx.Done() == nil {
		// Without a way to cancel, Running would never end.
		return &storage.Error{Kind: storage.KindStartRecording, Name: project}
	}

	job := r.Store.SelectedJob()
	interval := r.Interval
	if interval <= 0 {
		interval = time.Second
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	log := logger.With("session", uuid.NewString(), "project", project)

	start := r.Clock.Now()
	ticks, stop := r.Clock.NewTicker(interval)
	defer stop()

	r.state.Store(int32(Running))
	log.Info("session started", "job", job)
	r.Reporter.Tick(project, job, 0)

	for {
		select {
		case <-ctx.Done():
			elapsed := wholeSeconds(r.Clock.Now().Sub(start))
			r.state.Store(int32(Stopped))
			log.Info("session stopped", "elapsed", elapsed, "cause", context.Cause(ctx))

			r.Reporter.Saving(project, job, elapsed)
			err := r.Store.SaveJob(project, elapsed)
			if err != nil {
				log.Error("saving session failed", "err", err)
			}
			r.Reporter.Saved(project, elapsed, err)
			return err
		case <-ticks:
			r.Reporter.Tick(project, job, wholeSeconds(r.Clock.Now().Sub(start)))
		}
	}
}

func wholeSeconds(d time.Duration) int64 {
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}
