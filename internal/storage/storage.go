package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/Tiliavir/time-tracker/internal/model"
)

// DefaultFileName is the backing file inside the data directory.
const DefaultFileName = "projects.json"

// Selection is the project and job the user named on the command line.
type Selection struct {
	Project string
	Job     string
}

// Db is the project store for one CLI invocation. Every mutation rewrites
// the whole backing file; there is no locking across processes.
type Db struct {
	path     string
	sel      Selection
	selected bool
	projects []model.Project

	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Db.
type Option func(*Db)

// WithClock overrides the source of job completion timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Db) { d.now = now }
}

// WithLogger sets the logger used for store events.
func WithLogger(l *slog.Logger) Option {
	return func(d *Db) { d.logger = l }
}

// WithFileName overrides DefaultFileName.
func WithFileName(name string) Option {
	return func(d *Db) { d.path = filepath.Join(filepath.Dir(d.path), name) }
}

// Open loads the store kept in dir, creating the directory and an empty
// backing file when missing. A backing file that does not parse is fatal.
func Open(dir string, sel Selection, opts ...Option) (*Db, error) {
	d := &Db{
		path:   filepath.Join(dir, DefaultFileName),
		sel:    sel,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}

	if err := os.MkdirAll(filepath.Dir(d.path), 0o700); err != nil {
		return nil, newError(KindCreateDir, "", err)
	}

	projects, err := d.load()
	if errors.Is(err, KindNoFile) {
		d.logger.Info("creating empty store", "path", d.path)
		if err := writeAtomic(d.path, []byte("[]")); err != nil {
			return nil, newError(KindCreateFile, "", err)
		}
		projects, err = []model.Project{}, nil
	}
	if err != nil {
		return nil, err
	}
	d.projects = projects
	d.resolve()
	return d, nil
}

// Path returns the backing file location.
func (d *Db) Path() string {
	return d.path
}

// Requested returns the project name supplied at load time, resolved or not.
func (d *Db) Requested() string {
	return d.sel.Project
}

// Selected returns the requested project name if it matches a stored project.
// An unresolved request and no request both yield ok == false; compare with
// Requested to tell them apart.
func (d *Db) Selected() (string, bool) {
	return d.sel.Project, d.selected
}

// SelectedJob returns the job name supplied at load time.
func (d *Db) SelectedJob() string {
	return d.sel.Job
}

// Projects returns the in-memory projects in load order.
func (d *Db) Projects() []model.Project {
	return slices.Clone(d.projects)
}

// Project looks up a project by title.
func (d *Db) Project(title string) (model.Project, bool) {
	i := indexOf(d.projects, title)
	if i < 0 {
		return model.Project{}, false
	}
	return d.projects[i], true
}

// CreateProject appends an empty project titled name and persists the store.
// Titles are unique: an existing title is rejected without writing.
func (d *Db) CreateProject(name string) error {
	if name == "" {
		return newError(KindNoName, "", nil)
	}
	if indexOf(d.projects, name) >= 0 {
		return newError(KindProjectExists, name, nil)
	}

	next := append(slices.Clone(d.projects), model.Project{Title: name, Jobs: []model.Job{}})
	if err := d.persist(next); err != nil {
		return newError(KindCreateProject, name, err)
	}
	d.projects = next
	d.resolve()
	d.logger.Info("project created", "project", name)
	return nil
}

// DeleteProject removes every project titled name and persists the store.
// It returns how many projects were removed; zero leaves the file untouched.
func (d *Db) DeleteProject(name string) (int, error) {
	if name == "" {
		return 0, newError(KindNoName, "", nil)
	}

	next := slices.DeleteFunc(slices.Clone(d.projects), func(p model.Project) bool {
		return p.Title == name
	})
	removed := len(d.projects) - len(next)
	if removed == 0 {
		return 0, nil
	}
	if err := d.persist(next); err != nil {
		return 0, newError(KindDeleteProject, name, err)
	}
	d.projects = next
	d.resolve()
	d.logger.Info("project deleted", "project", name, "removed", removed)
	return removed, nil
}

// SaveJob appends a job of the given length to the project titled name,
// labelled with the selected job name and stamped with the current time.
//
// The store is reloaded from disk, merged and written back in one step so
// that changes made by other invocations since Open are kept.
func (d *Db) SaveJob(name string, seconds int64) error {
	if name == "" {
		return newError(KindNoName, "", nil)
	}
	if seconds < 0 {
		return newError(KindSaveJob, name, fmt.Errorf("negative duration %d", seconds))
	}

	fresh, err := d.load()
	if err != nil {
		return err
	}
	i := indexOf(fresh, name)
	if i < 0 {
		return newError(KindWrongName, name, nil)
	}

	job := model.NewJob(d.sel.Job, seconds, d.now())
	fresh[i].Jobs = append(slices.Clone(fresh[i].Jobs), job)
	if err := d.persist(fresh); err != nil {
		return newError(KindSaveJob, name, err)
	}
	d.projects = fresh
	d.resolve()
	d.logger.Info("job saved", "project", name, "job", job.Name, "seconds", seconds)
	return nil
}

// load reads and parses the backing file.
func (d *Db) load() ([]model.Project, error) {
	data, err := os.ReadFile(d.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, newError(KindNoFile, "", err)
	}
	if err != nil {
		return nil, newError(KindParseFile, "", fmt.Errorf("reading %s: %w", d.path, err))
	}

	var projects []model.Project
	err = json.Unmarshal(data, &projects)
	if err == nil && !bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		// null decodes into a nil slice without error.
		err = errors.New("store is not a JSON array")
	}
	if err != nil {
		// Keep a copy of the unreadable content before anyone overwrites it.
		backupPath := d.path + ".corrupt"
		if werr := os.WriteFile(backupPath, data, 0o600); werr != nil {
			d.logger.Warn("could not back up corrupt store", "path", backupPath, "err", werr)
		}
		return nil, newError(KindParseFile, "", fmt.Errorf("corrupt JSON in %s (copied to %s): %w", d.path, backupPath, err))
	}
	return projects, nil
}

// persist serializes the complete list and replaces the backing file.
func (d *Db) persist(projects []model.Project) error {
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling projects: %w", err)
	}
	if err := writeAtomic(d.path, data); err != nil {
		return err
	}
	d.logger.Debug("store written", "path", d.path, "projects", len(projects))
	return nil
}

func (d *Db) resolve() {
	d.selected = d.sel.Project != "" && indexOf(d.projects, d.sel.Project) >= 0
}

func indexOf(projects []model.Project, title string) int {
	return slices.IndexFunc(projects, func(p model.Project) bool {
		return p.Title == title
	})
}

// writeAtomic writes data to a temp file next to path and renames it over path.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
