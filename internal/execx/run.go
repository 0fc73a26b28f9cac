// Package execx runs the external commands compose-menu depends on.
//
// Two shapes are supported: Run executes a command to completion and reports
// how it exited, and Start spawns a command that outlives this process.
// Both go through the Runner interface so callers can be tested without
// spawning real processes.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Result describes a finished command.
type Result struct {
	// Code is the process exit code, or -1 if the command never ran or was
	// terminated by a signal.
	Code int

	// Stderr holds whatever the command wrote to standard error.
	Stderr string

	// Err is nil for exit code 0, an *exec.ExitError for other exit codes,
	// and some other error when the command could not be executed at all.
	Err error
}

// Success reports whether the command ran and exited with code 0.
func (r Result) Success() bool {
	return r.Err == nil && r.Code == 0
}

// Executed reports whether the command ran to an exit code, whatever that
// code was. It is false when the binary was missing or could not be started.
func (r Result) Executed() bool {
	return r.Code >= 0
}

// Runner runs external commands.
type Runner interface {
	// Run executes the command and waits for it to finish. Standard output
	// is discarded, standard input is empty.
	Run(ctx context.Context, name string, args ...string) Result

	// Start spawns the command with the given stdio and returns as soon as
	// it is running. The child is not waited on and keeps running after
	// this process exits.
	Start(name string, args ...string) error
}

// System is the Runner backed by os/exec.
type System struct {
	// Stdin, Stdout and Stderr are handed to processes created by Start.
	// Nil values fall back to the corresponding os.Std* stream.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewSystem returns a System wired to the process's own stdio.
func NewSystem() *System {
	return &System{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run implements Runner.
func (s *System) Run(ctx context.Context, name string, args ...string) Result {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Code: 0, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.Code = exitErr.ExitCode()
		} else {
			res.Code = -1
		}
	}
	return res
}

// Start implements Runner.
func (s *System) Start(name string, args ...string) error {
	// exec.Command rather than CommandContext: a context would kill the
	// child when it is cancelled, and the child must outlive us.
	cmd := exec.Command(name, args...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if s.Stdin != nil {
		cmd.Stdin = s.Stdin
	}
	if s.Stdout != nil {
		cmd.Stdout = s.Stdout
	}
	if s.Stderr != nil {
		cmd.Stderr = s.Stderr
	}

	if err := cmd.Start(); err != nil {
		return err
	}
	// Drop our handle on the child. Nothing waits on it from here on.
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("failed to release %s: %w", name, err)
	}
	return nil
}

// CommandLine renders name and args the way a shell user would type them,
// for log and error messages.
func CommandLine(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
