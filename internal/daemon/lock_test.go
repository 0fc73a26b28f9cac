package daemon

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type countingRestarter struct {
	calls int
	err   error
}

func (r *countingRestarter) Restart(context.Context) error {
	r.calls++
	return r.err
}

func TestLockedRestarter_RestartsAndReleases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docker.lock")
	inner := &countingRestarter{}
	l := NewLockedRestarter(inner, path, nil)

	require.NoError(t, l.Restart(context.Background()))
	require.NoError(t, l.Restart(context.Background()))
	assert.Equal(t, 2, inner.calls)

	// The lock is free again after each restart.
	other := flock.New(path)
	ok, err := other.TryLock()
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, other.Unlock())
}

func TestLockedRestarter_PropagatesRestartError(t *testing.T) {
	inner := &countingRestarter{err: errors.New("systemctl failed")}
	l := NewLockedRestarter(inner, filepath.Join(t.TempDir(), "docker.lock"), nil)

	assert.EqualError(t, l.Restart(context.Background()), "systemctl failed")
}

func TestLockedRestarter_WaitsForHolder(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "docker.lock")
	holder := flock.New(path)
	ok, err := holder.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	t.Cleanup(func() { _ = holder.Unlock() })

	inner := &countingRestarter{}
	l := NewLockedRestarter(inner, path, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err = l.Restart(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, inner.calls)
}

func TestLockedRestarter_UnusableLockPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "docker.lock")
	inner := &countingRestarter{}
	l := NewLockedRestarter(inner, path, nil)

	require.NoError(t, l.Restart(context.Background()))
	assert.Equal(t, 1, inner.calls)
}

func TestLockPath(t *testing.T) {
	assert.Equal(t, "compose-menu-docker.lock", filepath.Base(LockPath("docker")))
}
