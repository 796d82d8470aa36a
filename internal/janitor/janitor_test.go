package janitor

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func touch(t *testing.T, path string, mod time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestSweep(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 6, 25, 12, 0, 0, 0, time.UTC)

	touch(t, filepath.Join(dir, "old.jpg"), now.Add(-2*time.Hour))
	touch(t, filepath.Join(dir, "fresh.jpg"), now.Add(-time.Minute))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	j := New(dir, time.Hour, discard)
	j.now = func() time.Time { return now }

	n, err := j.Sweep()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = os.Stat(filepath.Join(dir, "old.jpg"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "fresh.jpg"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "nested"))
	assert.NoError(t, err)
}

func TestSweepMissingDir(t *testing.T) {
	n, err := New(filepath.Join(t.TempDir(), "absent"), time.Hour, discard).Sweep()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	j := New(t.TempDir(), time.Hour, discard)
	require.Error(t, j.Start("not a schedule"))
	j.Stop(context.Background())
}

func TestStartStop(t *testing.T) {
	j := New(t.TempDir(), time.Hour, discard)
	require.NoError(t, j.Start("@every 1h"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	j.Stop(ctx)
	assert.NoError(t, ctx.Err())
}
