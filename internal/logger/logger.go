// Package logger provides structured JSON logging and run metrics for statscrape.
//
// Log entries go to stderr as JSON lines so that standard output carries
// nothing but result rows. Levels are DEBUG, INFO, WARN and ERROR; entries
// below the configured level are dropped.
//
// Example usage:
//
//	logger.Info("table selected", logger.Fields{
//	    "url":   url,
//	    "score": score,
//	})
//
//	logger.Warn("HTML scrape failed, using CSV fallback", nil)
//	logger.RecordTiming("fetch.duration", time.Since(start))
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// ParseLevel accepts level names in any case
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToUpper(strings.TrimSpace(s))); l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return l, nil
	default:
		return "", fmt.Errorf("unknown log level: %q", s)
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Fields represents structured log fields
type Fields map[string]interface{}

// Logger writes structured entries through a slog JSON handler
type Logger struct {
	minLevel Level
	slog     *slog.Logger
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = New(LevelWarn, os.Stderr)
)

// New creates a logger writing JSON lines to output.
// Messages below level are discarded.
func New(level Level, output io.Writer) *Logger {
	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{
		Level: level.slogLevel(),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				a.Key = "timestamp"
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339))
			case slog.MessageKey:
				a.Key = "message"
			}
			return a
		},
	})

	return &Logger{
		minLevel: level,
		slog:     slog.New(handler),
	}
}

// SetDefault replaces the logger used by the package-level functions
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

func current() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// Level returns the minimum level this logger writes
func (l *Logger) Level() Level {
	return l.minLevel
}

// Enabled reports whether entries at level would be written
func (l *Logger) Enabled(level Level) bool {
	return l.slog.Enabled(context.Background(), level.slogLevel())
}

func (l *Logger) log(level Level, message string, fields Fields, err error) {
	if !l.Enabled(level) {
		return
	}

	attrs := make([]slog.Attr, 0, 2)
	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		group := make([]any, 0, len(keys))
		for _, k := range keys {
			group = append(group, slog.Any(k, fields[k]))
		}
		attrs = append(attrs, slog.Group("fields", group...))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	l.slog.LogAttrs(context.Background(), level.slogLevel(), message, attrs...)
}

// Debug logs detailed diagnostic information
func (l *Logger) Debug(message string, fields Fields) {
	l.log(LevelDebug, message, fields, nil)
}

// Info logs general operational information
func (l *Logger) Info(message string, fields Fields) {
	l.log(LevelInfo, message, fields, nil)
}

// Warn logs a recoverable problem
func (l *Logger) Warn(message string, fields Fields) {
	l.log(LevelWarn, message, fields, nil)
}

// Error logs a failure together with its error
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// Package-level convenience functions using the default logger

func Debug(message string, fields Fields) {
	current().Debug(message, fields)
}

func Info(message string, fields Fields) {
	current().Info(message, fields)
}

func Warn(message string, fields Fields) {
	current().Warn(message, fields)
}

func Error(message string, fields Fields, err error) {
	current().Error(message, fields, err)
}
