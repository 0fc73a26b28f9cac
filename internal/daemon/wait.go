// Package daemon makes sure the container runtime is up before anything is
// launched against it.
//
// A Prober answers "is the daemon active?" and a Restarter kicks it when it
// is not. Waiter alternates the two with exponential backoff until the probe
// succeeds or the attempt budget runs out.
package daemon

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shinji-kodama/compose-menu/internal/model"
)

// Defaults for the readiness loop.
const (
	DefaultMaxAttempts      = 10
	DefaultRetryInterval    = time.Second
	DefaultMaxRetryInterval = 15 * time.Second
)

// Prober reports whether the daemon is active. An error means the probe
// itself could not run and aborts the wait.
type Prober interface {
	Probe(ctx context.Context) (bool, error)
}

// Restarter asks the service manager to restart the daemon. An error means
// the restart command could not run; a restart that ran but failed is not
// an error.
type Restarter interface {
	Restart(ctx context.Context) error
}

// Backoff bounds the readiness loop.
type Backoff struct {
	// MaxAttempts is the maximum number of probes. Zero means unlimited.
	MaxAttempts int

	// Interval is the delay after the first restart. It doubles after each
	// further restart up to MaxInterval. Zero means no delay.
	Interval time.Duration

	// MaxInterval caps the delay. Zero means uncapped.
	MaxInterval time.Duration
}

// DefaultBackoff returns the backoff used when nothing is configured.
func DefaultBackoff() Backoff {
	return Backoff{
		MaxAttempts: DefaultMaxAttempts,
		Interval:    DefaultRetryInterval,
		MaxInterval: DefaultMaxRetryInterval,
	}
}

// next returns the delay that follows d.
func (b Backoff) next(d time.Duration) time.Duration {
	d *= 2
	if b.MaxInterval > 0 && d > b.MaxInterval {
		return b.MaxInterval
	}
	return d
}

// Report summarizes a finished wait.
type Report struct {
	// Probes is the number of probes that were run.
	Probes int

	// Restarts is the number of restarts that were issued.
	Restarts int
}

// Waiter drives the probe/restart loop.
type Waiter struct {
	Prober    Prober
	Restarter Restarter
	Backoff   Backoff
	Logger    *zap.Logger

	// sleep waits for d or until ctx is done. Tests replace it.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewWaiter creates a Waiter.
func NewWaiter(p Prober, r Restarter, b Backoff, logger *zap.Logger) *Waiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Waiter{
		Prober:    p,
		Restarter: r,
		Backoff:   b,
		Logger:    logger,
		sleep:     sleepContext,
	}
}

// WaitReady probes the daemon until it reports active.
//
// After each failed probe, a restart is issued and the daemon is probed
// again after the current backoff delay. A daemon that fails N probes
// before the (N+1)-th succeeds therefore sees exactly N restarts. No restart
// follows the final probe when the attempt budget is exhausted; in that
// case a CLIError with ExitDaemonUnavailable is returned.
//
// Errors from the Prober or Restarter (commands that could not run) and
// context cancellation end the wait immediately.
func (w *Waiter) WaitReady(ctx context.Context) (Report, error) {
	var rep Report
	delay := w.Backoff.Interval
	logger := w.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	for {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		active, err := w.Prober.Probe(ctx)
		rep.Probes++
		if err != nil {
			return rep, err
		}
		if active {
			logger.Debug("daemon is active",
				zap.Int("probes", rep.Probes),
				zap.Int("restarts", rep.Restarts))
			return rep, nil
		}

		if w.Backoff.MaxAttempts > 0 && rep.Probes >= w.Backoff.MaxAttempts {
			return rep, model.NewCLIError(
				model.ExitDaemonUnavailable,
				fmt.Sprintf("daemon still inactive after %d probes and %d restarts", rep.Probes, rep.Restarts),
			)
		}

		logger.Info("daemon is not active, restarting", zap.Int("attempt", rep.Probes))
		if err := w.Restarter.Restart(ctx); err != nil {
			return rep, err
		}
		rep.Restarts++

		if delay > 0 {
			if err := w.sleeper()(ctx, delay); err != nil {
				return rep, err
			}
			delay = w.Backoff.next(delay)
		}
	}
}

func (w *Waiter) sleeper() func(context.Context, time.Duration) error {
	if w.sleep == nil {
		return sleepContext
	}
	return w.sleep
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
