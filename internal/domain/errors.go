package domain

import (
	"errors"
	"fmt"
)

// Terminal run errors.
var (
	ErrChannelNotFound   = errors.New("channel not found")
	ErrEmptyChannel      = errors.New("no video found on this channel")
	ErrDirectoryConflict = errors.New("output directory already exists or cannot be created")
)

// ErrNoMatchingStream is returned when the resolver offers no stream in the
// container expected for a track.
var ErrNoMatchingStream = errors.New("no matching stream")

// TransportError wraps any HTTP failure during a catalog call.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ListingError reports that an upload list could not be fetched completely.
// Page is the zero-based index of the page that failed.
type ListingError struct {
	PlaylistID string
	Page       int
	Err        error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("listing %s failed at page %d: %v", e.PlaylistID, e.Page, e.Err)
}

func (e *ListingError) Unwrap() error { return e.Err }

// AcquisitionError reports a failed stream download for one track of a video.
type AcquisitionError struct {
	Kind  TrackKind
	Title string
	Err   error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquire %s stream of %q: %v", e.Kind, e.Title, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// MergeError reports a failed remux. ExitCode is -1 when the process never ran.
type MergeError struct {
	Output   string
	ExitCode int
	Err      error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge into %s failed (exit code %d): %v", e.Output, e.ExitCode, e.Err)
}

func (e *MergeError) Unwrap() error { return e.Err }
