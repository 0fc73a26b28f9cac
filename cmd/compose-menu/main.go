// Package main is the entry point for the compose-menu CLI.
//
// compose-menu shows the compose files in ./composers as a numbered menu,
// makes sure the container daemon is running, and starts the chosen file
// with docker-compose. All functionality lives in the internal/cli package.
//
// Build-time variables (version, commit, date) are injected via ldflags.
// During development, they default to "dev", "none", and "unknown".
package main

import (
	"github.com/shinji-kodama/compose-menu/internal/cli"
)

// version, commit, and date are set at build time via
// -ldflags "-X main.version=...". They feed the --version output.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Version info must be injected before the root command is built,
	// since cobra formats it at construction time.
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
