package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// WatchURLPrefix is prepended to a video id to build its public URL
const WatchURLPrefix = "https://www.youtube.com/watch?v="

// UploadsPageSize is the number of items requested per uploads page, the API maximum
const UploadsPageSize = 50

// ChannelInfo is the result of resolving a channel reference
type ChannelInfo struct {
	Title         string `json:"title"`
	UploadsListID string `json:"uploads_list_id"`
}

// VideoReference points at a single public video
type VideoReference struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// NewVideoReference builds a reference from a catalog title and video id
func NewVideoReference(title, videoID string) VideoReference {
	return VideoReference{
		Title: strings.TrimSpace(title),
		URL:   WatchURLPrefix + videoID,
	}
}

// TrackKind identifies which elementary stream is being acquired
type TrackKind string

const (
	TrackVideo TrackKind = "video"
	TrackAudio TrackKind = "audio"
)

// Container returns the container extension expected for the track
func (k TrackKind) Container() string {
	if k == TrackAudio {
		return "m4a"
	}
	return "mp4"
}

// Label returns a capitalized name for terminal output
func (k TrackKind) Label() string {
	if k == TrackAudio {
		return "Audio"
	}
	return "Video"
}

// IntermediateName returns the transient file name for a track of the given title,
// e.g. "Title_videoonly.mp4" or "Title_audioonly.m4a".
func (k TrackKind) IntermediateName(title string) string {
	return SafeFileName(title) + "_" + string(k) + "only." + k.Container()
}

// ValidateTrackKind checks if a track kind is valid
func ValidateTrackKind(kind TrackKind) bool {
	return kind == TrackVideo || kind == TrackAudio
}

// OutputName returns the final merged file name for a title
func OutputName(title string) string {
	return SafeFileName(title) + ".mp4"
}

// NumberedOutputName returns the output name used when n-1 earlier videos
// of the same channel share the title
func NumberedOutputName(title string, n int) string {
	return fmt.Sprintf("%s (%d).mp4", SafeFileName(title), n)
}

// ChannelDir returns the per-channel output directory under root
func ChannelDir(root, channelTitle string) string {
	return filepath.Join(root, SafeFileName(channelTitle))
}

// SafeFileName replaces characters that cannot appear in a single path element.
func SafeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, name)
}

// ProgressState is the cumulative transfer state of one acquisition.
// Total <= 0 means the size is not known yet.
type ProgressState struct {
	Received int64
	Total    int64
}

// Known reports whether the total size is available
func (p ProgressState) Known() bool {
	return p.Total > 0
}

// Complete reports whether every byte has been received
func (p ProgressState) Complete() bool {
	return p.Known() && p.Received == p.Total
}
