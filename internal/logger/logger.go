package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type runIDKey struct{}

type implLogger struct {
	logger *logrus.Logger
	level  string
}

// Options configures the logrus backend
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// New creates a new Logger instance writing text lines to stdout
func New(level string) Logger {
	return NewWithOptions(Options{Level: level})
}

// NewWithOptions creates a Logger with an explicit format and sink.
// Each entry is written with a single Write call, so concurrent runs never split a line.
func NewWithOptions(opts Options) Logger {
	l := logrus.New()
	if opts.Output != nil {
		l.SetOutput(opts.Output)
	} else {
		l.SetOutput(os.Stdout)
	}

	if strings.ToLower(opts.Format) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	}

	level := strings.ToLower(opts.Level)
	parsed, err := logrus.ParseLevel(level)
	if err != nil || parsed > logrus.DebugLevel {
		parsed = logrus.InfoLevel // default to info
		level = "info"
	}
	l.SetLevel(parsed)

	return &implLogger{
		logger: l,
		level:  level,
	}
}

// OpenSink opens path for appending and returns a writer that tees to stdout
func OpenSink(path string) (io.Writer, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return io.MultiWriter(os.Stdout, f), f, nil
}

// WithRunID tags every line logged with ctx by the given run identifier
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

// RunID returns the run identifier stored in ctx, if any
func RunID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

func (l *implLogger) shouldLog(level string) bool {
	target, err := logrus.ParseLevel(level)
	if err != nil {
		return true
	}
	return l.logger.IsLevelEnabled(target)
}

func (l *implLogger) entry(ctx context.Context) *logrus.Entry {
	e := logrus.NewEntry(l.logger)
	if id := RunID(ctx); id != "" {
		e = e.WithField("run", id)
	}
	return e
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("debug") {
		l.entry(ctx).Debugf(msg, args...)
	}
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("info") {
		l.entry(ctx).Infof(msg, args...)
	}
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("warn") {
		l.entry(ctx).Warnf(msg, args...)
	}
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("error") {
		l.entry(ctx).Errorf(msg, args...)
	}
}
