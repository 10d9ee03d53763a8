// Package applog resolves and appends to the game's log file.
package applog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileName is the log file created inside the log directory
const FileName = "ultimate-snake.log"

// Log appends lines to one file. It is safe for concurrent use.
type Log struct {
	dir string
	mu  sync.Mutex
}

// New creates a log rooted at dir. The directory is created on first write.
func New(dir string) *Log {
	return &Log{dir: dir}
}

// DefaultDir returns the per-user directory used when none is configured.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(base, "ultimate-snake"), nil
}

// Path returns the full path of the log file
func (l *Log) Path() string {
	return filepath.Join(l.dir, FileName)
}

// Open returns the log file opened for appending. The caller closes it.
func (l *Log) Open() (*os.File, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create_dir_all: %w", err)
	}
	f, err := os.OpenFile(l.Path(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}

// Append writes each line followed by a newline.
func (l *Log) Append(lines []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := l.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	for _, line := range lines {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return fmt.Errorf("write log: %w", err)
		}
	}
	return nil
}
