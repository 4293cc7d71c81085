package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/ytchannel-go/internal/domain"
	"github.com/yourusername/ytchannel-go/internal/infrastructure"
	"github.com/yourusername/ytchannel-go/pkg/logger"
)

// Pipeline downloads every upload of a channel, one video at a time.
// A failed video is logged and skipped; it never stops the run.
type Pipeline struct {
	catalog  domain.Catalog
	acquirer domain.StreamAcquirer
	remuxer  domain.Remuxer
	repo     domain.JobRepository
	notifier *infrastructure.NotificationService
	config   *domain.DownloadConfig
	logger   *zap.Logger

	mu    sync.RWMutex
	state domain.RunState
}

// NewPipeline creates a new pipeline. repo and notifier may be nil.
func NewPipeline(
	catalog domain.Catalog,
	acquirer domain.StreamAcquirer,
	remuxer domain.Remuxer,
	repo domain.JobRepository,
	notifier *infrastructure.NotificationService,
	config *domain.DownloadConfig,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		catalog:  catalog,
		acquirer: acquirer,
		remuxer:  remuxer,
		repo:     repo,
		notifier: notifier,
		config:   config,
		logger:   logger,
		state:    domain.RunIdle,
	}
}

// State returns the current run state
func (p *Pipeline) State() domain.RunState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

func (p *Pipeline) setState(state domain.RunState) {
	p.mu.Lock()
	p.state = state
	p.mu.Unlock()
}

// Run resolves the channel, lists its uploads and processes them in order.
// It returns an error only when the run is aborted; per-video failures are
// reported in the summary.
func (p *Pipeline) Run(ctx context.Context, reference string) (*domain.RunSummary, error) {
	p.mu.Lock()
	if p.state != domain.RunIdle && !p.state.IsTerminal() {
		p.mu.Unlock()
		return nil, fmt.Errorf("run already in progress (state %s)", p.state)
	}
	p.state = domain.RunResolvingChannel
	p.mu.Unlock()

	runID := uuid.New().String()
	log := logger.ForRun(p.logger, runID, reference)

	info, err := p.catalog.ResolveChannel(ctx, reference)
	if err != nil {
		if errors.Is(err, domain.ErrChannelNotFound) {
			log.Info(fmt.Sprintf("Channel Id or Username '%s' not found...", reference))
		} else {
			log.Error("Failed to resolve channel", zap.Error(err))
		}
		return nil, p.abort(err)
	}
	log.Info(fmt.Sprintf("Found channel '%s' !", info.Title))

	p.setState(domain.RunListingVideos)
	log.Info("Parse playlist to fetch all videos...")

	videos, err := p.catalog.ListUploads(ctx, info.UploadsListID)
	if err != nil {
		log.Error("Failed to list channel videos",
			zap.String("uploads_list_id", info.UploadsListID),
			zap.Error(err))
		return nil, p.abort(err)
	}
	if len(videos) == 0 {
		log.Info("No video found on this channel")
		return nil, p.abort(domain.ErrEmptyChannel)
	}
	log.Info(fmt.Sprintf("Found %d videos on this channel.", len(videos)))

	dir := domain.ChannelDir(p.config.OutputDir, info.Title)
	if err := createChannelDir(dir); err != nil {
		log.Error(fmt.Sprintf("Cannot create '%s' directory (maybe already existing).", dir), zap.Error(err))
		return nil, p.abort(fmt.Errorf("%w: %w", domain.ErrDirectoryConflict, err))
	}

	p.setState(domain.RunProcessingQueue)
	log.Info("Start downloading videos.", zap.String("dir", dir))

	summary := &domain.RunSummary{
		RunID:   runID,
		Channel: *info,
		Results: make([]domain.JobResult, 0, len(videos)),
	}

	for i, ref := range videos {
		if err := ctx.Err(); err != nil {
			log.Warn("Run cancelled",
				zap.Int("processed", i),
				zap.Int("total", len(videos)))
			return summary, p.abort(err)
		}
		summary.Results = append(summary.Results, p.processVideo(ctx, log, runID, i, len(videos), ref, dir))
	}

	p.setState(domain.RunFinished)
	log.Info("Finish downloading all videos!!",
		zap.Int("completed", summary.Completed()),
		zap.Int("failed", summary.Failed()))
	p.notifier.NotifyRunFinished(info.Title, summary.Completed(), summary.Failed())

	return summary, nil
}

func (p *Pipeline) abort(err error) error {
	p.setState(domain.RunAborted)
	return err
}

// createChannelDir creates dir under an existing or new root. An existing dir
// is an error so earlier downloads are never overwritten.
func createChannelDir(dir string) error {
	if err := os.MkdirAll(filepath.Dir(dir), 0755); err != nil {
		return err
	}
	return os.Mkdir(dir, 0755)
}

// processVideo runs one job to completion and reports its outcome
func (p *Pipeline) processVideo(ctx context.Context, log *zap.Logger, runID string, index, total int, ref domain.VideoReference, dir string) domain.JobResult {
	job := domain.NewDownloadJob(runID, index, ref)
	p.record(log, job, true)

	log.Info(fmt.Sprintf("[%d/%d] %s", index+1, total, ref.Title), zap.String("url", ref.URL))

	job.MarkAcquiring()
	p.record(log, job, false)

	videoFile, audioFile, err := p.acquireTracks(ctx, ref, dir)
	if err != nil {
		return p.fail(log, job, total, dir, err)
	}

	job.MarkMerging(videoFile, audioFile)
	p.record(log, job, false)

	output, err := uniqueOutputPath(dir, ref.Title)
	if err != nil {
		return p.fail(log, job, total, dir, err)
	}
	if err := p.remuxer.Merge(ctx, videoFile, audioFile, output); err != nil {
		// output did not exist before this merge, so whatever is there is partial
		removeQuietly(log, output)
		return p.fail(log, job, total, dir, err)
	}

	removeQuietly(log, videoFile)
	removeQuietly(log, audioFile)

	job.MarkCompleted(output)
	p.record(log, job, false)
	log.Info("Video downloaded",
		zap.Int("index", index+1),
		zap.String("title", ref.Title),
		zap.String("output", output))

	return domain.JobResult{Index: index, Reference: ref, OutputFile: output}
}

// acquireTracks fetches the video track then the audio track, or both at
// once when parallel tracks are enabled. The merge never starts unless both
// succeeded.
func (p *Pipeline) acquireTracks(ctx context.Context, ref domain.VideoReference, dir string) (string, string, error) {
	if !p.config.ParallelTracks {
		videoFile, err := p.acquirer.Acquire(ctx, domain.TrackVideo, ref, dir)
		if err != nil {
			return "", "", err
		}
		audioFile, err := p.acquirer.Acquire(ctx, domain.TrackAudio, ref, dir)
		if err != nil {
			return "", "", err
		}
		return videoFile, audioFile, nil
	}

	var videoFile, audioFile string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		videoFile, err = p.acquirer.Acquire(gctx, domain.TrackVideo, ref, dir)
		return err
	})
	g.Go(func() error {
		var err error
		audioFile, err = p.acquirer.Acquire(gctx, domain.TrackAudio, ref, dir)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return videoFile, audioFile, nil
}

// fail records the failure and removes whatever intermediates were written
func (p *Pipeline) fail(log *zap.Logger, job *domain.DownloadJob, total int, dir string, err error) domain.JobResult {
	removeQuietly(log, filepath.Join(dir, domain.TrackVideo.IntermediateName(job.Title)))
	removeQuietly(log, filepath.Join(dir, domain.TrackAudio.IntermediateName(job.Title)))

	job.MarkFailed(err)
	p.record(log, job, false)

	log.Error("Failed to download video",
		zap.Int("index", job.Index+1),
		zap.Int("total", total),
		zap.String("title", job.Title),
		zap.String("url", job.URL),
		zap.Error(err))
	p.notifier.NotifyVideoFailed(job.Index+1, total, job.Title)

	return domain.JobResult{Index: job.Index, Reference: job.Reference(), Err: err}
}

// record writes the job to the journal. Journal errors never fail a job.
func (p *Pipeline) record(log *zap.Logger, job *domain.DownloadJob, create bool) {
	if p.repo == nil {
		return
	}
	var err error
	if create {
		err = p.repo.Create(job)
	} else {
		err = p.repo.Update(job)
	}
	if err != nil {
		log.Warn("Failed to record job",
			zap.String("job_id", job.ID),
			zap.String("status", string(job.Status)),
			zap.Error(err))
	}
}

// uniqueOutputPath returns the first free name among "<title>.mp4",
// "<title> (2).mp4", "<title> (3).mp4" and so on. Channels often reuse a
// title, and ffmpeg refuses to overwrite an earlier video's output.
func uniqueOutputPath(dir, title string) (string, error) {
	name := domain.OutputName(title)
	for n := 2; ; n++ {
		path := filepath.Join(dir, name)
		_, err := os.Lstat(path)
		if errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check output %s: %w", path, err)
		}
		name = domain.NumberedOutputName(title, n)
	}
}

func removeQuietly(log *zap.Logger, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("Failed to remove file", zap.String("path", path), zap.Error(err))
	}
}
