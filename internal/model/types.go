// Package model defines the domain types for the compose-menu CLI.
//
// All entities in this package are transient: they are built once from a
// directory scan at startup and discarded when the process exits. Nothing
// is persisted.
package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Entry is one selectable compose definition discovered in the composers
// directory. Entries are immutable after the initial scan.
type Entry struct {
	// Path is the path of the directory child, joined with the scanned
	// directory (relative if the directory was given relatively).
	Path string `json:"path"`

	// IsDir reports whether the child is a directory. Directories are
	// listed like any other child; the flag is informational only.
	IsDir bool `json:"isDir,omitempty"`
}

// NewEntry creates an Entry for the given path.
func NewEntry(path string, isDir bool) Entry {
	return Entry{Path: path, IsDir: isDir}
}

// DisplayName returns the file stem of the entry: the final path element
// without its last extension. A name that starts with a dot and contains no
// other dot (e.g. ".env") is returned unchanged.
//
// The second return value is false when the path has no file-name
// component at all (empty path, ".", "..", or a filesystem root).
func (e Entry) DisplayName() (string, bool) {
	name := fileName(e.Path)
	if name == "" {
		return "", false
	}

	// LastIndex <= 0 covers both "no dot" and "only a leading dot".
	idx := strings.LastIndex(name, ".")
	if idx <= 0 {
		return name, true
	}
	return name[:idx], true
}

// fileName returns the final element of path, or "" when path does not end
// in a normal file name.
func fileName(path string) string {
	if path == "" {
		return ""
	}
	// Trailing separators are ignored, so "dir/" still names "dir".
	trimmed := strings.TrimRight(path, string(filepath.Separator)+"/")
	if trimmed == "" {
		return ""
	}
	base := filepath.Base(trimmed)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return ""
	}
	return base
}

// ProbeMode selects how daemon readiness is determined.
type ProbeMode string

const (
	// ProbeSystemctl asks the service manager for the unit status
	// ("systemctl status <service>") and restarts the unit when it is down.
	ProbeSystemctl ProbeMode = "systemctl"

	// ProbeEngine pings the Docker Engine API directly. Restarts still go
	// through the service manager.
	ProbeEngine ProbeMode = "engine"
)

// String returns the string representation of ProbeMode.
func (m ProbeMode) String() string {
	return string(m)
}

// IsValid checks whether the ProbeMode value is one of the predefined modes.
func (m ProbeMode) IsValid() bool {
	switch m {
	case ProbeSystemctl, ProbeEngine:
		return true
	default:
		return false
	}
}

// ParseProbeMode converts a string to a ProbeMode.
// Returns an error if the string does not match any valid mode.
func ParseProbeMode(s string) (ProbeMode, error) {
	mode := ProbeMode(strings.ToLower(strings.TrimSpace(s)))
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid probe mode: %q (valid: systemctl, engine)", s)
	}
	return mode, nil
}

// ExitCode defines the process exit codes of the CLI.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully, including
	// the user quitting the menu.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitDirectoryUnreadable indicates the composers directory (or one of
	// its entries) could not be read.
	ExitDirectoryUnreadable ExitCode = 2

	// ExitDaemonUnavailable indicates the daemon did not become active
	// within the configured number of probes.
	ExitDaemonUnavailable ExitCode = 3

	// ExitCommandFailed indicates an external command (probe, restart or
	// compose) could not be executed at all.
	ExitCommandFailed ExitCode = 4

	// ExitInputFailed indicates standard input failed for a reason other
	// than end of input.
	ExitInputFailed ExitCode = 5

	// ExitInvalidCompose indicates the selected file is not a usable
	// compose document (only checked with --validate).
	ExitInvalidCompose ExitCode = 6

	// ExitConfigError indicates the configuration file or flags are invalid.
	ExitConfigError ExitCode = 7
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
