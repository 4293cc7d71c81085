package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config represents logger configuration
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputPath string // stdout, stderr, or file path

	// Console receives entries meant for the terminal. The CLI passes the
	// progress reporter so a log line never lands in the middle of a
	// progress line. Nil means os.Stdout.
	Console io.Writer
}

// New builds the run logger. Entries go to the console unless OutputPath
// names stderr or a file.
func New(config Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(config.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	sink, toConsole, err := openSink(config)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(newEncoder(config.Format, toConsole), sink, level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// openSink resolves OutputPath. toConsole reports whether entries are
// shown to a person rather than stored.
func openSink(config Config) (sink zapcore.WriteSyncer, toConsole bool, err error) {
	switch config.OutputPath {
	case "stdout", "":
		return consoleSink(config.Console), true, nil
	case "stderr":
		return zapcore.Lock(os.Stderr), true, nil
	}

	file, err := os.OpenFile(config.OutputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, false, err
	}
	return zapcore.AddSync(file), false, nil
}

// consoleSink wraps w, which is usually the progress reporter. The reporter
// serializes its own writes and exposes Sync.
func consoleSink(w io.Writer) zapcore.WriteSyncer {
	if w == nil {
		return zapcore.Lock(os.Stdout)
	}
	return zapcore.AddSync(w)
}

// newEncoder returns a JSON encoder for "json" and a human readable one
// otherwise. Level colors are kept off files.
func newEncoder(format string, toConsole bool) zapcore.Encoder {
	if format == "json" {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "timestamp"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(cfg)
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if toConsole {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(cfg)
}

// ForRun returns a child logger tagging every entry with the run and channel
func ForRun(base *zap.Logger, runID, channel string) *zap.Logger {
	return base.With(zap.String("run_id", runID), zap.String("channel", channel))
}
