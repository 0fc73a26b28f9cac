// Package launch brings a selected compose file up once the daemon is ready.
package launch

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/shinji-kodama/compose-menu/internal/composer"
	"github.com/shinji-kodama/compose-menu/internal/daemon"
	"github.com/shinji-kodama/compose-menu/internal/model"
)

// ReadyWaiter blocks until the daemon is active. *daemon.Waiter implements it.
type ReadyWaiter interface {
	WaitReady(ctx context.Context) (daemon.Report, error)
}

// ComposeStarter spawns the orchestration command. *docker.Compose
// implements it.
type ComposeStarter interface {
	Up(composeFile string) error
}

// Launcher waits for the daemon, echoes the chosen path and starts compose.
type Launcher struct {
	Daemon  ReadyWaiter
	Compose ComposeStarter

	// Out receives the echoed path.
	Out io.Writer

	// Validate, when set, rejects entries that are not compose files with
	// at least one service before the daemon is touched.
	Validate bool

	Logger *zap.Logger
}

// Launch runs the launch sequence for entry:
//
//  1. optional validation of the compose file
//  2. wait for the daemon (probe, restart, probe ...)
//  3. print entry.Path on its own line
//  4. start "<compose> -f <path> up" in the background and return
//
// The compose process is not waited on and its exit status is never seen.
func (l *Launcher) Launch(ctx context.Context, entry model.Entry) error {
	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if l.Validate {
		if err := composer.Validate(entry); err != nil {
			return err
		}
	}

	rep, err := l.Daemon.WaitReady(ctx)
	if err != nil {
		return err
	}
	logger.Debug("daemon ready",
		zap.Int("probes", rep.Probes),
		zap.Int("restarts", rep.Restarts))

	if _, err := fmt.Fprintln(l.Out, entry.Path); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to write output", err)
	}

	if err := l.Compose.Up(entry.Path); err != nil {
		return err
	}
	logger.Debug("compose started", zap.String("file", entry.Path))
	return nil
}
