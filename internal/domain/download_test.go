package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRef() VideoReference {
	return NewVideoReference("  My Video \n", "abc123")
}

func TestNewVideoReference(t *testing.T) {
	ref := testRef()

	assert.Equal(t, "My Video", ref.Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", ref.URL)
}

func TestNewDownloadJob(t *testing.T) {
	job := NewDownloadJob("run-1", 2, testRef())

	assert.NotEmpty(t, job.ID)
	assert.Equal(t, "run-1", job.RunID)
	assert.Equal(t, 2, job.Index)
	assert.Equal(t, "My Video", job.Title)
	assert.Equal(t, StatusPending, job.Status)
	assert.Equal(t, testRef(), job.Reference())
}

func TestDownloadJob_Transitions(t *testing.T) {
	job := NewDownloadJob("run-1", 0, testRef())

	job.MarkAcquiring()
	assert.Equal(t, StatusAcquiring, job.Status)
	assert.NotNil(t, job.StartedAt)
	assert.False(t, job.IsTerminal())

	job.MarkMerging("/out/v.mp4", "/out/a.m4a")
	assert.Equal(t, StatusMerging, job.Status)
	assert.Equal(t, "/out/v.mp4", job.VideoFile)
	assert.Equal(t, "/out/a.m4a", job.AudioFile)

	job.MarkCompleted("/out/My Video.mp4")
	assert.Equal(t, StatusCompleted, job.Status)
	assert.Equal(t, "/out/My Video.mp4", job.OutputFile)
	assert.NotNil(t, job.CompletedAt)
	assert.True(t, job.IsTerminal())
}

func TestDownloadJob_MarkFailed(t *testing.T) {
	job := NewDownloadJob("run-1", 0, testRef())

	job.MarkFailed(errors.New("stream closed"))

	assert.Equal(t, StatusFailed, job.Status)
	assert.Equal(t, "stream closed", job.ErrorMessage)
	assert.True(t, job.IsTerminal())
}

func TestRunSummary_Counts(t *testing.T) {
	summary := &RunSummary{Results: []JobResult{
		{Index: 0},
		{Index: 1, Err: errors.New("boom")},
		{Index: 2},
	}}

	assert.Equal(t, 2, summary.Completed())
	assert.Equal(t, 1, summary.Failed())
}

func TestTrackKind_Names(t *testing.T) {
	tests := []struct {
		kind      TrackKind
		container string
		file      string
	}{
		{TrackVideo, "mp4", "Clip_videoonly.mp4"},
		{TrackAudio, "m4a", "Clip_audioonly.m4a"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.container, tt.kind.Container())
			assert.Equal(t, tt.file, tt.kind.IntermediateName("Clip"))
		})
	}

	assert.True(t, ValidateTrackKind(TrackVideo))
	assert.True(t, ValidateTrackKind(TrackAudio))
	assert.False(t, ValidateTrackKind("subtitle"))
}

func TestSafeFileName(t *testing.T) {
	assert.Equal(t, "AC_DC live", SafeFileName("AC/DC live"))
	assert.Equal(t, "a_b", SafeFileName(`a\b`))
	assert.Equal(t, "Intro: part 1", SafeFileName("Intro: part 1"))
	assert.Equal(t, "AC_DC live.mp4", OutputName("AC/DC live"))
	assert.Equal(t, "AC_DC live (2).mp4", NumberedOutputName("AC/DC live", 2))
}

func TestProgressState(t *testing.T) {
	assert.False(t, ProgressState{Received: 10}.Known())
	assert.False(t, ProgressState{Received: 10, Total: -1}.Complete())
	assert.False(t, ProgressState{Received: 5, Total: 10}.Complete())
	assert.True(t, ProgressState{Received: 10, Total: 10}.Complete())
}

func TestErrorsUnwrap(t *testing.T) {
	base := errors.New("connection reset")

	assert.ErrorIs(t, &TransportError{Op: "channels.list", Err: base}, base)
	assert.ErrorIs(t, &ListingError{PlaylistID: "UU1", Page: 1, Err: base}, base)
	assert.ErrorIs(t, &AcquisitionError{Kind: TrackAudio, Title: "x", Err: ErrNoMatchingStream}, ErrNoMatchingStream)

	var mergeErr *MergeError
	wrapped := errors.Join(errors.New("ctx"), &MergeError{Output: "x.mp4", ExitCode: 1, Err: base})
	assert.ErrorAs(t, wrapped, &mergeErr)
	assert.Equal(t, 1, mergeErr.ExitCode)
}

func TestRunState_IsTerminal(t *testing.T) {
	assert.True(t, RunFinished.IsTerminal())
	assert.True(t, RunAborted.IsTerminal())
	assert.False(t, RunIdle.IsTerminal())
	assert.False(t, RunProcessingQueue.IsTerminal())
}
