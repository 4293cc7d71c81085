package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourusername/ytchannel-go/internal/app"
	"github.com/yourusername/ytchannel-go/internal/domain"
	"github.com/yourusername/ytchannel-go/internal/infrastructure"
	"github.com/yourusername/ytchannel-go/pkg/logger"
	"github.com/yourusername/ytchannel-go/pkg/progress"
)

const usage = "Usage: ytchannel <channel id or username>"

var (
	configPath     string
	outputDir      string
	apiKey         string
	parallelTracks bool
	showSummary    bool
	saveConfigPath string
	exitCode       int

	rootCmd = &cobra.Command{
		Use:   "ytchannel [channel-id-or-username]",
		Short: "Download every video of a YouTube channel",
		Long: `Lists all uploads of a channel and downloads each one as a video-only and an
audio-only stream, merged into <output>/<channel title>/<video title>.mp4 with ffmpeg.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			exitCode = run(cmd, args)
		},
	}
)

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Root directory for channel folders")
	rootCmd.Flags().StringVar(&apiKey, "api-key", "", "YouTube Data API key")
	rootCmd.Flags().BoolVar(&parallelTracks, "parallel-tracks", false, "Fetch the video and audio tracks of a video concurrently")
	rootCmd.Flags().BoolVar(&showSummary, "summary", false, "Print a table of every job when the run ends")
	rootCmd.Flags().StringVar(&saveConfigPath, "save-config", "", "Write the effective configuration to this path and exit")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

func run(cmd *cobra.Command, args []string) int {
	if len(args) == 0 && saveConfigPath == "" {
		fmt.Println(usage)
		return 0
	}

	config, err := app.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	applyFlags(cmd, config)

	if saveConfigPath != "" {
		if err := app.SaveConfig(config, saveConfigPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Configuration saved to %s\n", saveConfigPath)
		return 0
	}

	reporter := progress.NewTerminal(os.Stdout, config.Progress.Interval)
	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
		Console:    reporter,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := infrastructure.NewYouTubeCatalog(ctx, &config.Catalog, log)
	if err != nil {
		log.Error("Failed to initialize catalog client", zap.Error(err))
		return 1
	}

	repo, err := infrastructure.NewSQLiteJobRepository(infrastructure.InMemoryDSN)
	if err != nil {
		log.Error("Failed to initialize job journal", zap.Error(err))
		return 1
	}
	defer repo.Close()

	pipeline := app.NewPipeline(
		catalog,
		infrastructure.NewYouTubeStreamAcquirer(infrastructure.NewStreamClient(), reporter, log),
		infrastructure.NewFFmpegRemuxer(&config.Remux, log),
		repo,
		infrastructure.NewNotificationService(&config.Notification, log),
		&config.Download,
		log,
	)

	summary, err := pipeline.Run(ctx, args[0])
	if summary != nil && showSummary {
		if err := printSummary(os.Stdout, repo, summary); err != nil {
			log.Warn("Failed to print summary", zap.Error(err))
		}
	}

	return exitCodeFor(err)
}

// applyFlags overrides config values with flags set on the command line
func applyFlags(cmd *cobra.Command, config *domain.Config) {
	if cmd.Flags().Changed("output") {
		config.Download.OutputDir = outputDir
	}
	if cmd.Flags().Changed("api-key") {
		config.Catalog.APIKey = apiKey
	}
	if cmd.Flags().Changed("parallel-tracks") {
		config.Download.ParallelTracks = parallelTracks
	}
}

// exitCodeFor maps a run outcome to a process exit code. A channel that does
// not exist or has no videos is an informational outcome.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrChannelNotFound), errors.Is(err, domain.ErrEmptyChannel):
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}
