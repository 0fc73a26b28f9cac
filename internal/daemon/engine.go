package daemon

import (
	"context"

	"go.uber.org/zap"

	"github.com/shinji-kodama/compose-menu/internal/docker"
)

// pinger is the part of docker.Client the engine probe needs.
type pinger interface {
	Ping(ctx context.Context) error
	Close() error
}

// EngineProber reports the daemon as active when the Docker Engine API
// answers a ping. A missing socket or a failed ping both count as "not
// active", never as an error: the daemon being down is the condition the
// readiness loop exists to handle.
type EngineProber struct {
	// connect builds a fresh client per probe. The socket may appear only
	// after a restart, so a client is never cached across probes.
	connect func() (pinger, error)

	Logger *zap.Logger
}

// NewEngineProber creates an EngineProber backed by docker.NewClient.
func NewEngineProber(logger *zap.Logger) *EngineProber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EngineProber{
		connect: func() (pinger, error) { return docker.NewClient() },
		Logger:  logger,
	}
}

// Probe implements Prober.
func (p *EngineProber) Probe(ctx context.Context) (bool, error) {
	c, err := p.connect()
	if err != nil {
		p.Logger.Debug("docker socket unavailable", zap.Error(err))
		return false, nil
	}
	defer func() { _ = c.Close() }()

	if err := c.Ping(ctx); err != nil {
		// A cancelled context is the caller giving up, not a down daemon.
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		p.Logger.Debug("docker ping failed", zap.Error(err))
		return false, nil
	}
	return true, nil
}
