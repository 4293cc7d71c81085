package domain

import "context"

// Catalog resolves channels and lists their uploads
type Catalog interface {
	// ResolveChannel looks the reference up as a username, then as a channel id.
	// Returns ErrChannelNotFound when neither lookup matches.
	ResolveChannel(ctx context.Context, reference string) (*ChannelInfo, error)

	// ListUploads returns every video of the upload list in catalog order,
	// or an error if any page could not be fetched
	ListUploads(ctx context.Context, uploadsListID string) ([]VideoReference, error)
}

// StreamAcquirer downloads a single track of a video
type StreamAcquirer interface {
	// Acquire stores the best stream of the given kind in destDir and returns its path
	Acquire(ctx context.Context, kind TrackKind, ref VideoReference, destDir string) (string, error)
}

// Remuxer combines a video-only and an audio-only file without re-encoding
type Remuxer interface {
	Merge(ctx context.Context, videoFile, audioFile, outputFile string) error
}

// ProgressListener receives transfer events from a StreamAcquirer.
// Total is <= 0 while the size is unknown.
type ProgressListener interface {
	Begin(kind TrackKind, total int64)
	Progress(kind TrackKind, state ProgressState)
}
