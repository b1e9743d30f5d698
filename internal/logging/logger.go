package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	filePrefix      = "aoc-"
	fileSuffix      = ".log"
	defaultMaxFiles = 10
)

// Option configures RuntimeLogger creation.
type Option func(*newOptions)

type newOptions struct {
	dir      string
	runID    string
	level    log.Level
	maxFiles int
	now      func() time.Time
}

// WithDir writes log files into dir instead of ~/.aoc/logs.
func WithDir(dir string) Option {
	return func(opts *newOptions) {
		opts.dir = strings.TrimSpace(dir)
	}
}

// WithRunID configures the run_id field used in emitted log records.
func WithRunID(runID string) Option {
	return func(opts *newOptions) {
		opts.runID = strings.TrimSpace(runID)
	}
}

// WithLevel sets the minimum level from a config string such as "debug".
func WithLevel(level string) Option {
	return func(opts *newOptions) {
		if parsed, err := log.ParseLevel(strings.TrimSpace(level)); err == nil {
			opts.level = parsed
		}
	}
}

// WithMaxFiles caps how many log files are kept in the log directory.
func WithMaxFiles(maxFiles int) Option {
	return func(opts *newOptions) {
		if maxFiles > 0 {
			opts.maxFiles = maxFiles
		}
	}
}

// RuntimeLogger writes structured JSON logs to disk.
type RuntimeLogger struct {
	Logger *log.Logger
	file   *os.File
	path   string
	runID  string
}

// New initializes logging under ~/.aoc/logs without writing to stdout, which
// is reserved for the solve report.
func New(ctx context.Context, options ...Option) (*RuntimeLogger, error) {
	resolved := resolveOptions(options)
	if resolved.dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		resolved.dir = filepath.Join(homeDir, ".aoc", "logs")
	}
	if err := os.MkdirAll(resolved.dir, 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	timestamp := resolved.now().UTC().Format("20060102-150405")
	fileName := fmt.Sprintf("%s%s-%s%s", filePrefix, timestamp, shortID(resolved.runID), fileSuffix)
	filePath := filepath.Join(resolved.dir, fileName)
	// #nosec G304 -- filePath is constructed from trusted local paths.
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(file, log.Options{
		Level:           resolved.level,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	logger.SetFormatter(log.JSONFormatter)

	runtimeLogger := &RuntimeLogger{
		Logger: logger.With("run_id", resolved.runID),
		file:   file,
		path:   filePath,
		runID:  resolved.runID,
	}

	removed, pruneErr := prune(resolved.dir, filePath, resolved.maxFiles)
	if pruneErr != nil {
		runtimeLogger.Logger.Warn("log pruning failed", "err", pruneErr)
	}
	runtimeLogger.Logger.With("log_file", filePath, "pruned", removed).Debug("logger initialized")

	_ = ctx
	return runtimeLogger, nil
}

// RunID returns the identifier attached to every record of this run.
func (r *RuntimeLogger) RunID() string {
	if r == nil {
		return ""
	}
	return r.runID
}

// Close flushes and closes the log file.
func (r *RuntimeLogger) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	return r.file.Close()
}

// Path returns the current log file path.
func (r *RuntimeLogger) Path() string {
	if r == nil {
		return ""
	}
	return r.path
}

func resolveOptions(options []Option) newOptions {
	resolved := newOptions{
		level:    log.InfoLevel,
		maxFiles: defaultMaxFiles,
		now:      time.Now,
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		option(&resolved)
	}
	if resolved.runID == "" {
		resolved.runID = uuid.NewString()
	}
	return resolved
}

func shortID(runID string) string {
	cleaned := strings.ReplaceAll(runID, "-", "")
	if len(cleaned) > 8 {
		return cleaned[:8]
	}
	return cleaned
}

// prune removes the oldest aoc log files so at most maxFiles remain. The file
// currently in use is never removed.
func prune(dir, current string, maxFiles int) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read log directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		names = append(names, name)
	}
	if len(names) <= maxFiles {
		return 0, nil
	}

	// Timestamped names sort chronologically.
	sort.Strings(names)
	removed := 0
	for _, name := range names[:len(names)-maxFiles] {
		path := filepath.Join(dir, name)
		if path == current {
			continue
		}
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("remove old log %q: %w", name, err)
		}
		removed++
	}
	return removed, nil
}
