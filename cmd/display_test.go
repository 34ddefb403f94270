package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/time-tracker/internal/recorder"
	"github.com/Tiliavir/time-tracker/internal/storage"
)

func TestFinishSession(t *testing.T) {
	wrongName := &storage.Error{Kind: storage.KindWrongName, Name: "alpha"}
	parseFile := &storage.Error{Kind: storage.KindParseFile, Err: errors.New("bad json")}
	saveJob := &storage.Error{Kind: storage.KindSaveJob, Name: "alpha", Err: errors.New("disk full")}

	tests := []struct {
		name      string
		state     recorder.State
		err       error
		wantErr   error
		wantShown bool
		wantOut   string
	}{
		{"saved", recorder.Stopped, nil, nil, false, ""},
		{"project deleted while running", recorder.Stopped, wrongName, nil, false, ""},
		{"save failed", recorder.Stopped, saveJob, nil, false, ""},
		{"store corrupted while running", recorder.Stopped, parseFile, storage.KindParseFile, true, ""},
		{"never started", recorder.Idle, wrongName, nil, false, `Could not find project "alpha"`},
		{"cannot be interrupted", recorder.Idle, &storage.Error{Kind: storage.KindStartRecording}, storage.KindStartRecording, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := finishSession(&out, tt.state, tt.err)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
				var shown shownError
				assert.Equal(t, tt.wantShown, errors.As(err, &shown))
			}
			if tt.wantOut == "" {
				assert.Empty(t, out.String())
			} else {
				assert.Contains(t, out.String(), tt.wantOut)
			}
		})
	}
}

func TestLiveReporterPrintsOncePerMinute(t *testing.T) {
	var out bytes.Buffer
	rep := newLiveReporter(&out, true)

	// A 7s tick never lands on a whole minute after zero.
	for elapsed := int64(0); elapsed <= 130; elapsed += 7 {
		rep.Tick("alpha", "", elapsed)
	}

	assert.Equal(t, 3, strings.Count(out.String(), "alpha"))
	assert.Contains(t, out.String(), "00.00.00")
	assert.Contains(t, out.String(), "00.01.03")
	assert.Contains(t, out.String(), "00.02.06")
}
