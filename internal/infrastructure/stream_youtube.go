package infrastructure

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kkdai/youtube/v2"
	"go.uber.org/zap"

	"github.com/yourusername/ytchannel-go/internal/domain"
)

// StreamClient is the subset of the stream resolver used for acquisition.
// *youtube.Client satisfies it.
type StreamClient interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
	GetStreamContext(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error)
}

// NewStreamClient returns a resolver client without a request timeout.
// Long transfers must not be cut off mid-stream.
func NewStreamClient() *youtube.Client {
	return &youtube.Client{}
}

// YouTubeStreamAcquirer implements StreamAcquirer on top of the stream resolver
type YouTubeStreamAcquirer struct {
	client   StreamClient
	listener domain.ProgressListener
	logger   *zap.Logger
}

// NewYouTubeStreamAcquirer creates a new acquirer. listener may be nil.
func NewYouTubeStreamAcquirer(client StreamClient, listener domain.ProgressListener, logger *zap.Logger) *YouTubeStreamAcquirer {
	return &YouTubeStreamAcquirer{
		client:   client,
		listener: listener,
		logger:   logger,
	}
}

// Acquire downloads the best stream of the requested kind into destDir
func (a *YouTubeStreamAcquirer) Acquire(ctx context.Context, kind domain.TrackKind, ref domain.VideoReference, destDir string) (string, error) {
	if !domain.ValidateTrackKind(kind) {
		return "", a.failed(kind, ref, fmt.Errorf("unsupported track kind %q", kind))
	}

	video, err := a.client.GetVideoContext(ctx, ref.URL)
	if err != nil {
		return "", a.failed(kind, ref, fmt.Errorf("resolve video: %w", err))
	}

	format := SelectFormat(video.Formats, kind)
	if format == nil {
		return "", a.failed(kind, ref, domain.ErrNoMatchingStream)
	}

	a.logger.Debug("Selected stream",
		zap.String("title", ref.Title),
		zap.String("kind", string(kind)),
		zap.Int("itag", format.ItagNo),
		zap.String("mime_type", format.MimeType),
		zap.Int("bitrate", format.Bitrate))

	stream, size, err := a.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return "", a.failed(kind, ref, fmt.Errorf("open stream: %w", err))
	}
	defer stream.Close()

	if size <= 0 {
		size = format.ContentLength
	}

	path := filepath.Join(destDir, kind.IntermediateName(ref.Title))
	file, err := os.Create(path)
	if err != nil {
		return "", a.failed(kind, ref, fmt.Errorf("create file: %w", err))
	}
	defer file.Close()

	var writer io.Writer = file
	if a.listener != nil {
		a.listener.Begin(kind, size)
		writer = io.MultiWriter(file, &progressWriter{kind: kind, total: size, listener: a.listener})
	}

	written, err := io.Copy(writer, stream)
	if err != nil {
		return "", a.failed(kind, ref, fmt.Errorf("transfer after %d bytes: %w", written, err))
	}

	if err := file.Sync(); err != nil {
		return "", a.failed(kind, ref, fmt.Errorf("sync file: %w", err))
	}

	a.logger.Debug("Stream acquired",
		zap.String("title", ref.Title),
		zap.String("kind", string(kind)),
		zap.String("path", path),
		zap.Int64("bytes", written))

	return path, nil
}

func (a *YouTubeStreamAcquirer) failed(kind domain.TrackKind, ref domain.VideoReference, err error) error {
	return &domain.AcquisitionError{Kind: kind, Title: ref.Title, Err: err}
}

// SelectFormat picks the best stream of the given kind from formats.
// Video streams must be video-only mp4, ranked by height then bitrate.
// Audio streams must be mp4 audio (m4a), ranked by bitrate.
// Returns nil when no stream matches.
func SelectFormat(formats youtube.FormatList, kind domain.TrackKind) *youtube.Format {
	var best *youtube.Format
	for i := range formats {
		format := &formats[i]

		switch kind {
		case domain.TrackVideo:
			if !strings.HasPrefix(format.MimeType, "video/mp4") || format.AudioChannels > 0 {
				continue
			}
			if best == nil || format.Height > best.Height ||
				(format.Height == best.Height && format.Bitrate > best.Bitrate) {
				best = format
			}
		case domain.TrackAudio:
			if !strings.HasPrefix(format.MimeType, "audio/mp4") {
				continue
			}
			if best == nil || format.Bitrate > best.Bitrate {
				best = format
			}
		}
	}
	return best
}

// progressWriter forwards cumulative byte counts to a listener
type progressWriter struct {
	kind     domain.TrackKind
	total    int64
	received int64
	listener domain.ProgressListener
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.received += int64(len(p))
	w.listener.Progress(w.kind, domain.ProgressState{Received: w.received, Total: w.total})
	return len(p), nil
}

var _ domain.StreamAcquirer = (*YouTubeStreamAcquirer)(nil)
var _ StreamClient = (*youtube.Client)(nil)
