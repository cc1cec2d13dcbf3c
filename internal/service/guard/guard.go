package guard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/titan-hub/internal/config"
	"github.com/oshokin/titan-hub/internal/logger"
)

// MarkerSuffix is appended to the log path to build the marker path.
const MarkerSuffix = ".lock"

var (
	// ErrAlreadyRunning is returned when another live process owns the marker.
	ErrAlreadyRunning = errors.New("another titan-hub instance owns the log destination")
	// errLogPathRequired is returned when the guard is built without a log path.
	errLogPathRequired = errors.New("log path is required")
)

// ProcessFinder looks up a process by PID. It returns nil, nil when no such process exists.
type ProcessFinder func(pid int) (ps.Process, error)

// Guard owns the marker file of a single log destination.
type Guard struct {
	// markerPath is the file that records the owner PID.
	markerPath string
	// pid is the PID written to the marker.
	pid int
	// executable is the process name that counts as a competing instance.
	executable string
	// findProcess inspects the process table.
	findProcess ProcessFinder
	// acquired reports whether this guard wrote the marker.
	acquired bool
}

// Option configures a Guard.
type Option func(*Guard)

// WithProcessFinder replaces the process table lookup.
func WithProcessFinder(finder ProcessFinder) Option {
	return func(g *Guard) {
		g.findProcess = finder
	}
}

// WithPID overrides the PID recorded in the marker.
func WithPID(pid int) Option {
	return func(g *Guard) {
		g.pid = pid
	}
}

// WithExecutable overrides the executable name that identifies a competing instance.
func WithExecutable(name string) Option {
	return func(g *Guard) {
		g.executable = name
	}
}

// New creates a guard for the given journal path.
func New(logPath string, opts ...Option) (*Guard, error) {
	if strings.TrimSpace(logPath) == "" {
		return nil, errLogPathRequired
	}

	g := &Guard{
		markerPath:  MarkerPath(logPath),
		pid:         os.Getpid(),
		findProcess: ps.FindProcess,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// MarkerPath returns the marker location for a journal path.
func MarkerPath(logPath string) string {
	return logPath + MarkerSuffix
}

// Path returns the marker location.
func (g *Guard) Path() string {
	return g.markerPath
}

// Acquire claims the log destination or returns ErrAlreadyRunning.
func (g *Guard) Acquire(ctx context.Context) error {
	ctx = logger.WithName(ctx, "guard")

	ownerPID, err := g.readOwner()

	switch {
	case errors.Is(err, os.ErrNotExist):
		// Free destination.
	case err != nil:
		logger.WarnKV(ctx, "Unreadable instance marker, taking over", "marker", g.markerPath, "error", err)
	case ownerPID == g.pid:
		g.acquired = true

		return nil
	default:
		running, lookupErr := g.isCompetitor(ownerPID)
		if lookupErr != nil {
			return fmt.Errorf("inspect process %d: %w", ownerPID, lookupErr)
		}

		if running {
			return fmt.Errorf("%w (pid %d, marker %s)", ErrAlreadyRunning, ownerPID, g.markerPath)
		}

		logger.InfoKV(ctx, "Stale instance marker found, taking over", "marker", g.markerPath, "stale_pid", ownerPID)
	}

	if err = g.writeMarker(); err != nil {
		return fmt.Errorf("write instance marker: %w", err)
	}

	g.acquired = true

	logger.DebugKV(ctx, "Instance marker acquired", "marker", g.markerPath, "pid", g.pid)

	return nil
}

// Release removes the marker if this guard acquired it.
func (g *Guard) Release(ctx context.Context) error {
	if !g.acquired {
		return nil
	}

	g.acquired = false

	if err := os.Remove(g.markerPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove instance marker: %w", err)
	}

	logger.DebugKV(logger.WithName(ctx, "guard"), "Instance marker released", "marker", g.markerPath)

	return nil
}

// readOwner parses the PID stored in the marker.
func (g *Guard) readOwner() (int, error) {
	content, err := os.ReadFile(g.markerPath)
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		return 0, fmt.Errorf("parse pid: %w", err)
	}

	return pid, nil
}

// isCompetitor reports whether pid is alive and runs the same executable.
func (g *Guard) isCompetitor(pid int) (bool, error) {
	process, err := g.findProcess(pid)
	if err != nil {
		return false, err
	}

	if process == nil {
		return false, nil
	}

	return process.Executable() == g.ownExecutable(), nil
}

// ownExecutable resolves the executable name of this process.
func (g *Guard) ownExecutable() string {
	if g.executable != "" {
		return g.executable
	}

	if self, err := g.findProcess(g.pid); err == nil && self != nil {
		g.executable = self.Executable()

		return g.executable
	}

	g.executable = filepath.Base(os.Args[0])

	return g.executable
}

// writeMarker records this process as the owner.
func (g *Guard) writeMarker() error {
	return os.WriteFile(g.markerPath, []byte(strconv.Itoa(g.pid)+"\n"), config.DefaultFilePermissions)
}
