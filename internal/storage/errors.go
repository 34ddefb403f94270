package storage

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the tracker core can report. The set is
// closed: callers switch over it exhaustively.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNoFile means the backing file was absent. Open recovers from it.
	KindNoFile
	KindCreateFile
	KindCreateDir
	// KindParseFile means the backing file does not hold project data.
	KindParseFile
	KindCreateProject
	KindDeleteProject
	// KindNoName means a project name was required but not supplied.
	KindNoName
	// KindWrongName means the supplied name matches no stored project.
	KindWrongName
	// KindStartRecording means a live session could not be made cancellable.
	KindStartRecording
	KindProjectExists
	KindSaveJob
)

func (k Kind) String() string {
	switch k {
	case KindNoFile:
		return "no file"
	case KindCreateFile:
		return "create file"
	case KindCreateDir:
		return "create dir"
	case KindParseFile:
		return "parse file"
	case KindCreateProject:
		return "create project"
	case KindDeleteProject:
		return "delete project"
	case KindNoName:
		return "no name"
	case KindWrongName:
		return "wrong name"
	case KindStartRecording:
		return "start recording"
	case KindProjectExists:
		return "project exists"
	case KindSaveJob:
		return "save job"
	default:
		return "unknown"
	}
}

// Error lets a Kind be used as an errors.Is target.
func (k Kind) Error() string {
	return k.String()
}

// Fatal reports whether the process cannot safely continue after k.
func (k Kind) Fatal() bool {
	switch k {
	case KindCreateFile, KindCreateDir, KindParseFile, KindStartRecording:
		return true
	default:
		return false
	}
}

// Error is a classified failure. Name is the project involved, if any.
type Error struct {
	Kind Kind
	Name string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Name != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Name)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches a bare Kind target.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// KindOf returns the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return KindUnknown
}

func newError(kind Kind, name string, err error) *Error {
	return &Error{Kind: kind, Name: name, Err: err}
}
