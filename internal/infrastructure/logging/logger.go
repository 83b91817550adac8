package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	applogging "github.com/andrescamacho/chainplanner/internal/application/logging"
	"github.com/andrescamacho/chainplanner/internal/domain/shared"
	"github.com/andrescamacho/chainplanner/internal/infrastructure/config"
)

// portLevels maps application log levels onto zerolog levels
var portLevels = map[string]zerolog.Level{
	applogging.LevelDebug: zerolog.DebugLevel,
	applogging.LevelInfo:  zerolog.InfoLevel,
	applogging.LevelWarn:  zerolog.WarnLevel,
	applogging.LevelError: zerolog.ErrorLevel,
}

// ZerologLogger implements the application Logger port on top of zerolog
type ZerologLogger struct {
	logger        zerolog.Logger
	includeCaller bool
	clock         shared.Clock
}

// NewZerologLogger creates a logger writing to w.
// level is one of debug, info, warn, error; format is json or text.
func NewZerologLogger(w io.Writer, level, format string, includeCaller bool) *ZerologLogger {
	minimum, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || minimum == zerolog.NoLevel {
		minimum = zerolog.InfoLevel
	}

	if format != "json" {
		w = zerolog.ConsoleWriter{
			Out:          w,
			NoColor:      true,
			TimeFormat:   time.RFC3339,
			TimeLocation: time.UTC,
		}
	}

	return &ZerologLogger{
		logger:        zerolog.New(w).Level(minimum),
		includeCaller: includeCaller,
		clock:         shared.RealClock{},
	}
}

// NewFromConfig creates a logger for cfg. The returned closer releases the log file, if any.
func NewFromConfig(cfg config.LoggingConfig) (*ZerologLogger, io.Closer, error) {
	var w io.Writer
	var closer io.Closer = nopCloser{}

	switch cfg.Output {
	case "stdout":
		w = os.Stdout
	case "stderr", "":
		w = os.Stderr
	case "file":
		if dir := filepath.Dir(cfg.FilePath); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f
	default:
		return nil, nil, fmt.Errorf("unsupported log output: %s", cfg.Output)
	}

	return NewZerologLogger(w, cfg.Level, cfg.Format, cfg.IncludeCaller), closer, nil
}

// Enabled reports whether messages at level are written.
// Levels outside the application set are always written.
func (l *ZerologLogger) Enabled(level string) bool {
	mapped, ok := portLevels[level]
	if !ok {
		return true
	}
	return mapped >= l.logger.GetLevel()
}

// Log writes message at level with optional metadata
func (l *ZerologLogger) Log(level, message string, metadata map[string]interface{}) {
	if !l.Enabled(level) {
		return
	}

	var event *zerolog.Event
	if mapped, ok := portLevels[level]; ok {
		event = l.logger.WithLevel(mapped)
	} else {
		event = l.logger.Log().Str(zerolog.LevelFieldName, strings.ToLower(level))
	}

	event = event.Time(zerolog.TimestampFieldName, l.clock.Now().UTC())
	if l.includeCaller {
		event = event.Caller(1)
	}
	event.Fields(metadata).Msg(message)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
