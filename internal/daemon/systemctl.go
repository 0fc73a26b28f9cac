package daemon

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/shinji-kodama/compose-menu/internal/execx"
	"github.com/shinji-kodama/compose-menu/internal/model"
)

// DefaultService is the unit that backs the container runtime.
const DefaultService = "docker"

// Systemctl queries and restarts a service through systemctl, optionally
// behind sudo. It is both a Prober and a Restarter.
type Systemctl struct {
	// Service is the unit name, with or without the ".service" suffix.
	Service string

	// UseSudo indicates whether to prefix commands with SudoCommand.
	UseSudo bool

	// SudoCommand is the sudo command to use (default "sudo").
	SudoCommand string

	// SystemctlPath is the systemctl binary (default "systemctl").
	SystemctlPath string

	// Runner executes the commands.
	Runner execx.Runner

	// Logger receives debug output about each invocation.
	Logger *zap.Logger
}

// NewSystemctl creates a Systemctl for service. When useSudo is nil, sudo is
// used unless the process already runs as root.
func NewSystemctl(service string, useSudo *bool, logger *zap.Logger) *Systemctl {
	sudo := os.Geteuid() != 0
	if useSudo != nil {
		sudo = *useSudo
	}
	if service == "" {
		service = DefaultService
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Systemctl{
		Service:       service,
		UseSudo:       sudo,
		SudoCommand:   "sudo",
		SystemctlPath: "systemctl",
		Runner:        execx.NewSystem(),
		Logger:        logger,
	}
}

// Probe runs "systemctl status <service>". A zero exit status means the
// unit is active; any other exit status means it is not.
//
// An error is returned only when systemctl could not be executed at all,
// as a CLIError with ExitCommandFailed.
func (s *Systemctl) Probe(ctx context.Context) (bool, error) {
	res, err := s.exec(ctx, "status")
	if err != nil {
		return false, err
	}
	return res.Success(), nil
}

// Restart runs "systemctl restart <service>". The exit status is logged but
// not acted on: the next Probe decides whether the restart helped.
//
// An error is returned only when systemctl could not be executed at all.
func (s *Systemctl) Restart(ctx context.Context) error {
	res, err := s.exec(ctx, "restart")
	if err != nil {
		return err
	}
	if !res.Success() {
		s.logger().Debug("restart command reported failure",
			zap.String("service", s.Service),
			zap.Int("code", res.Code),
			zap.String("stderr", res.Stderr))
	}
	return nil
}

// Args returns the full command line (binary first) for a systemctl verb.
func (s *Systemctl) Args(verb string) []string {
	systemctl := s.SystemctlPath
	if systemctl == "" {
		systemctl = "systemctl"
	}
	args := make([]string, 0, 4)
	if s.UseSudo {
		sudo := s.SudoCommand
		if sudo == "" {
			sudo = "sudo"
		}
		args = append(args, sudo)
	}
	return append(args, systemctl, verb, s.Service)
}

func (s *Systemctl) exec(ctx context.Context, verb string) (execx.Result, error) {
	args := s.Args(verb)
	line := execx.CommandLine(args[0], args[1:]...)
	s.logger().Debug("running service command", zap.String("cmd", line))

	res := s.Runner.Run(ctx, args[0], args[1:]...)
	if !res.Executed() {
		return res, model.WrapCLIError(
			model.ExitCommandFailed,
			fmt.Sprintf("failed to execute %q", line),
			res.Err,
		)
	}
	return res, nil
}

func (s *Systemctl) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
