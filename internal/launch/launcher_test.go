package launch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shinji-kodama/compose-menu/internal/daemon"
	"github.com/shinji-kodama/compose-menu/internal/model"
)

// flakyDaemon fails failures probes before reporting active.
type flakyDaemon struct {
	failures int
	probes   int
	restarts int
}

func (d *flakyDaemon) Probe(context.Context) (bool, error) {
	d.probes++
	return d.probes > d.failures, nil
}

func (d *flakyDaemon) Restart(context.Context) error {
	d.restarts++
	return nil
}

// recordingCompose records Up calls, and the daemon state at the time.
type recordingCompose struct {
	daemon     *flakyDaemon
	files      []string
	probesSeen []int
	err        error
}

func (c *recordingCompose) Up(file string) error {
	c.files = append(c.files, file)
	if c.daemon != nil {
		c.probesSeen = append(c.probesSeen, c.daemon.probes)
	}
	return c.err
}

func newTestLauncher(d *flakyDaemon, c *recordingCompose, out *bytes.Buffer) *Launcher {
	return &Launcher{
		Daemon:  daemon.NewWaiter(d, d, daemon.Backoff{}, zap.NewNop()),
		Compose: c,
		Out:     out,
		Logger:  zap.NewNop(),
	}
}

// TestLaunch_DaemonAlreadyActive verifies no restart and one compose run.
func TestLaunch_DaemonAlreadyActive(t *testing.T) {
	d := &flakyDaemon{}
	c := &recordingCompose{daemon: d}
	var out bytes.Buffer

	err := newTestLauncher(d, c, &out).Launch(context.Background(), model.NewEntry("composers/web.yml", false))
	require.NoError(t, err)

	assert.Equal(t, 0, d.restarts)
	assert.Equal(t, []string{"composers/web.yml"}, c.files)
	assert.Equal(t, "composers/web.yml\n", out.String())
}

// TestLaunch_DaemonRecovers verifies N restarts for N failed probes and
// that compose only starts after the successful probe.
func TestLaunch_DaemonRecovers(t *testing.T) {
	for _, n := range []int{1, 3} {
		d := &flakyDaemon{failures: n}
		c := &recordingCompose{daemon: d}
		var out bytes.Buffer

		err := newTestLauncher(d, c, &out).Launch(context.Background(), model.NewEntry("composers/db.yml", false))
		require.NoError(t, err)

		assert.Equal(t, n, d.restarts)
		assert.Equal(t, []string{"composers/db.yml"}, c.files)
		assert.Equal(t, []int{n + 1}, c.probesSeen)
	}
}

// TestLaunch_DaemonNeverComesUp verifies compose is not started and nothing
// is echoed when the wait fails.
func TestLaunch_DaemonNeverComesUp(t *testing.T) {
	d := &flakyDaemon{failures: 1000}
	c := &recordingCompose{}
	var out bytes.Buffer

	l := newTestLauncher(d, c, &out)
	l.Daemon = daemon.NewWaiter(d, d, daemon.Backoff{MaxAttempts: 4}, nil)

	err := l.Launch(context.Background(), model.NewEntry("composers/db.yml", false))
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitDaemonUnavailable, cliErr.Code)
	assert.Empty(t, c.files)
	assert.Empty(t, out.String())
}

// TestLaunch_ComposeFails verifies spawn errors are returned as-is.
func TestLaunch_ComposeFails(t *testing.T) {
	cause := model.NewCLIError(model.ExitCommandFailed, "failed to start")
	d := &flakyDaemon{}
	c := &recordingCompose{err: cause}
	var out bytes.Buffer

	err := newTestLauncher(d, c, &out).Launch(context.Background(), model.NewEntry("composers/db.yml", false))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "composers/db.yml\n", out.String(), "path is echoed before the spawn")
}

// TestLaunch_Validate verifies an invalid file is rejected before the
// daemon is probed.
func TestLaunch_Validate(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "notes.txt")
	good := filepath.Join(dir, "web.yml")
	require.NoError(t, os.WriteFile(bad, []byte("just some notes\n"), 0o644))
	require.NoError(t, os.WriteFile(good, []byte("services:\n  web:\n    image: nginx\n"), 0o644))

	d := &flakyDaemon{}
	c := &recordingCompose{}
	var out bytes.Buffer
	l := newTestLauncher(d, c, &out)
	l.Validate = true

	err := l.Launch(context.Background(), model.NewEntry(bad, false))
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitInvalidCompose, cliErr.Code)
	assert.Equal(t, 0, d.probes)
	assert.Empty(t, c.files)

	require.NoError(t, l.Launch(context.Background(), model.NewEntry(good, false)))
	assert.Equal(t, []string{good}, c.files)
}
