package daemon

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

// lockRetryDelay is how often a blocked restart re-checks the lock.
const lockRetryDelay = 250 * time.Millisecond

// LockPath returns the per-service restart lock file in the temp directory.
func LockPath(service string) string {
	return filepath.Join(os.TempDir(), "compose-menu-"+service+".lock")
}

// LockedRestarter serializes restarts of one service across processes, so
// two menus started together do not restart the daemon on top of each other.
// A second caller waits for the first restart to finish, then restarts too.
type LockedRestarter struct {
	Restarter Restarter
	Logger    *zap.Logger

	lock *flock.Flock
}

// NewLockedRestarter wraps r with a file lock at path.
func NewLockedRestarter(r Restarter, path string, logger *zap.Logger) *LockedRestarter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LockedRestarter{
		Restarter: r,
		Logger:    logger,
		lock:      flock.New(path),
	}
}

// Restart takes the lock, restarts, and releases the lock. If the lock file
// cannot be created at all the restart proceeds unlocked. A cancelled ctx
// while waiting returns ctx.Err() without restarting.
func (l *LockedRestarter) Restart(ctx context.Context) error {
	locked, err := l.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		l.Logger.Warn("restart lock unavailable, restarting without it",
			zap.String("lock", l.lock.Path()), zap.Error(err))
		return l.Restarter.Restart(ctx)
	}
	if !locked {
		return ctx.Err()
	}
	defer func() {
		if err := l.lock.Unlock(); err != nil {
			l.Logger.Warn("failed to release restart lock", zap.String("lock", l.lock.Path()), zap.Error(err))
		}
	}()

	l.Logger.Debug("restart lock acquired", zap.String("lock", l.lock.Path()))
	return l.Restarter.Restart(ctx)
}
