package journal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oshokin/titan-hub/internal/config"
)

// TimestampLayout is the ctime-style layout prefixed to every record.
const TimestampLayout = time.ANSIC

// errPathRequired is returned when a journal is created without a destination.
var errPathRequired = errors.New("journal path must be provided")

// FileJournal appends timestamped records to a text file.
type FileJournal struct {
	// path is the filesystem location of the journal.
	path string
	// now is the clock used for record timestamps.
	now func() time.Time
	// mu keeps concurrent appends from interleaving.
	mu sync.Mutex
}

// Option configures a FileJournal.
type Option func(*FileJournal)

// WithClock overrides the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(j *FileJournal) {
		if now != nil {
			j.now = now
		}
	}
}

// NewFileJournal creates a journal that appends to the provided path.
func NewFileJournal(path string, opts ...Option) (*FileJournal, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errPathRequired
	}

	j := &FileJournal{
		path: filepath.Clean(path),
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(j)
	}

	return j, nil
}

// Path returns the journal destination.
func (j *FileJournal) Path() string {
	return j.path
}

// Append writes a single record. Newlines inside the message are flattened
// so one call always produces one line.
func (j *FileJournal) Append(_ context.Context, message string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	record := FormatRecord(j.now(), message)

	file, err := os.OpenFile(j.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, config.DefaultFilePermissions)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}

	if _, err = file.WriteString(record); err != nil {
		_ = file.Close()

		return fmt.Errorf("write journal: %w", err)
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("close journal: %w", err)
	}

	return nil
}

// FormatRecord renders one journal line, including the trailing newline.
func FormatRecord(at time.Time, message string) string {
	message = strings.ReplaceAll(message, "\n", " ")

	return at.Local().Format(TimestampLayout) + " - " + message + "\n"
}
