// compose.go starts a compose stack in the foreground of the user's
// terminal while this process goes away.
//
// The stack is brought up with "<compose> -f <file> up" (no -d): compose keeps
// streaming service logs to the terminal it inherited, and its lifetime is
// independent of compose-menu once spawned.
package docker

import (
	"fmt"

	"github.com/shinji-kodama/compose-menu/internal/execx"
	"github.com/shinji-kodama/compose-menu/internal/model"
)

// DefaultComposeCommand is the legacy standalone compose binary. The plugin
// form is configured as []string{"docker", "compose"}.
var DefaultComposeCommand = []string{"docker-compose"}

// Compose spawns compose commands through an execx.Runner.
type Compose struct {
	// Command is the compose executable followed by any fixed leading
	// arguments, e.g. ["docker-compose"] or ["docker", "compose"].
	Command []string

	// UseSudo prefixes the command with SudoCommand.
	UseSudo bool

	// SudoCommand is the privilege escalation binary (default "sudo").
	SudoCommand string

	// Runner executes the command. Tests replace it with a fake.
	Runner execx.Runner
}

// NewCompose creates a Compose using the real process runner.
func NewCompose(command []string, useSudo bool) *Compose {
	if len(command) == 0 {
		command = DefaultComposeCommand
	}
	return &Compose{
		Command:     command,
		UseSudo:     useSudo,
		SudoCommand: "sudo",
		Runner:      execx.NewSystem(),
	}
}

// UpArgs returns the full command line (binary first) that Up would run
// for composeFile.
func (c *Compose) UpArgs(composeFile string) []string {
	command := c.Command
	if len(command) == 0 {
		command = DefaultComposeCommand
	}
	args := make([]string, 0, len(command)+4)
	if c.UseSudo {
		args = append(args, c.sudo())
	}
	args = append(args, command...)
	args = append(args, "-f", composeFile, "up")
	return args
}

// Up starts "<compose> -f composeFile up" without waiting for it.
// The exit status of compose is never observed.
//
// Returns a CLIError with ExitCommandFailed if the process cannot be
// started at all (binary not found, permission denied).
func (c *Compose) Up(composeFile string) error {
	args := c.UpArgs(composeFile)
	if err := c.Runner.Start(args[0], args[1:]...); err != nil {
		return model.WrapCLIError(
			model.ExitCommandFailed,
			fmt.Sprintf("failed to start %q", execx.CommandLine(args[0], args[1:]...)),
			err,
		)
	}
	return nil
}

func (c *Compose) sudo() string {
	if c.SudoCommand == "" {
		return "sudo"
	}
	return c.SudoCommand
}
