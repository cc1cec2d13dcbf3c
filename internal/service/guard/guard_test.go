package guard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/require"
)

// fakeProcess is a process table entry.
type fakeProcess struct {
	pid        int
	executable string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 1 }
func (p fakeProcess) Executable() string { return p.executable }

// table returns a finder over the given processes.
func table(processes ...fakeProcess) ProcessFinder {
	return func(pid int) (ps.Process, error) {
		for _, p := range processes {
			if p.pid == pid {
				return p, nil
			}
		}

		return nil, nil
	}
}

// newGuard builds a guard for a journal inside a temp dir.
func newGuard(t *testing.T, opts ...Option) (*Guard, string) {
	t.Helper()

	logPath := filepath.Join(t.TempDir(), "system_log.txt")

	g, err := New(logPath, append([]Option{WithPID(100)}, opts...)...)
	require.NoError(t, err)

	return g, logPath
}

// TestNew_RequiresPath rejects an empty log path.
func TestNew_RequiresPath(t *testing.T) {
	t.Parallel()

	_, err := New("  ")
	require.ErrorIs(t, err, errLogPathRequired)
}

// TestAcquire_FreeDestination writes the marker and removes it on release.
func TestAcquire_FreeDestination(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g, logPath := newGuard(t, WithProcessFinder(table(fakeProcess{pid: 100, executable: "titan-hub"})))

	require.Equal(t, logPath+".lock", g.Path())
	require.NoError(t, g.Acquire(ctx))

	content, err := os.ReadFile(g.Path())
	require.NoError(t, err)
	require.Equal(t, "100\n", string(content))

	require.NoError(t, g.Release(ctx))
	require.NoFileExists(t, g.Path())

	// Second release is a no-op.
	require.NoError(t, g.Release(ctx))
}

// TestAcquire_LiveCompetitor refuses to start when the owner is another titan-hub.
func TestAcquire_LiveCompetitor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g, _ := newGuard(t, WithProcessFinder(table(
		fakeProcess{pid: 100, executable: "titan-hub"},
		fakeProcess{pid: 42, executable: "titan-hub"},
	)))

	require.NoError(t, os.WriteFile(g.Path(), []byte("42\n"), 0o600))

	err := g.Acquire(ctx)
	require.ErrorIs(t, err, ErrAlreadyRunning)
	require.Contains(t, err.Error(), "pid 42")

	// Release must not remove a marker this guard does not own.
	require.NoError(t, g.Release(ctx))
	require.FileExists(t, g.Path())
}

// TestAcquire_StaleMarkers takes over markers that no longer reflect a competitor.
func TestAcquire_StaleMarkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "dead process", content: "7\n"},
		{name: "pid reused by another executable", content: "42"},
		{name: "garbage", content: "not a pid"},
		{name: "own pid", content: "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g, _ := newGuard(t, WithProcessFinder(table(
				fakeProcess{pid: 100, executable: "titan-hub"},
				fakeProcess{pid: 42, executable: "bash"},
			)))

			require.NoError(t, os.WriteFile(g.Path(), []byte(tt.content), 0o600))
			require.NoError(t, g.Acquire(context.Background()))

			content, err := os.ReadFile(g.Path())
			require.NoError(t, err)
			require.Contains(t, string(content), "100")
		})
	}
}

// TestAcquire_LookupFailure surfaces process table errors.
func TestAcquire_LookupFailure(t *testing.T) {
	t.Parallel()

	errTable := errors.New("process table unavailable")

	g, _ := newGuard(t,
		WithExecutable("titan-hub"),
		WithProcessFinder(func(int) (ps.Process, error) { return nil, errTable }),
	)

	require.NoError(t, os.WriteFile(g.Path(), []byte("42"), 0o600))
	require.ErrorIs(t, g.Acquire(context.Background()), errTable)
}
