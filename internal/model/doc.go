// Package model defines the domain types and value objects for the
// compose-menu CLI.
//
// This package contains pure data structures with no external dependencies.
// Entries are built from a single directory scan and never mutated.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
