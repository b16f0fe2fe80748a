// Package logging builds the process logger from configuration
package logging

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/andrescamacho/mbes-planner/internal/application/common"
	"github.com/andrescamacho/mbes-planner/internal/infrastructure/config"
)

// New creates a logrus logger for cfg. The returned closer releases the log
// file when output is "file" and is a no-op otherwise.
func New(cfg config.LoggingConfig) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	logger := log.New()
	logger.SetLevel(level)
	logger.SetReportCaller(cfg.IncludeCaller)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	var closer io.Closer = nopCloser{}
	switch cfg.Output {
	case "stdout":
		logger.SetOutput(os.Stdout)
	case "file":
		w, err := fileWriter(cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.SetOutput(w)
		closer = w
	default:
		logger.SetOutput(os.Stderr)
	}

	return logger, closer, nil
}

func fileWriter(cfg config.LoggingConfig) (io.WriteCloser, error) {
	if cfg.Rotates() {
		return &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.Rotation.MaxSize, // MB
			MaxBackups: cfg.Rotation.MaxBackups,
			MaxAge:     cfg.Rotation.MaxAge,
			Compress:   cfg.Rotation.Compress,
		}, nil
	}

	f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Adapter exposes a logrus logger through the application Logger port
type Adapter struct {
	entry *log.Entry
}

// NewAdapter wraps logger, attaching fields to every entry
func NewAdapter(logger *log.Logger, fields log.Fields) *Adapter {
	return &Adapter{entry: logger.WithFields(fields)}
}

// Log implements common.Logger
func (a *Adapter) Log(level, message string, fields map[string]interface{}) {
	entry := a.entry
	if len(fields) > 0 {
		entry = entry.WithFields(log.Fields(fields))
	}
	entry.Log(toLogrusLevel(level), message)
}

func toLogrusLevel(level string) log.Level {
	switch level {
	case common.LevelDebug:
		return log.DebugLevel
	case common.LevelWarn:
		return log.WarnLevel
	case common.LevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
