// Package cli implements the cobra-based CLI commands for compose-menu.
//
// Running the root command without a subcommand starts the interactive menu.
// The list and check subcommands expose the two halves of that flow on
// their own. This file defines the root command, the global flags and the
// error-to-exit-code mapping.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/compose-menu/internal/composer"
	"github.com/shinji-kodama/compose-menu/internal/model"
	"github.com/shinji-kodama/compose-menu/internal/prompt"
)

// Global flag variables shared across all subcommands.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// Only the list command and error reporting honor it; the interactive
	// menu is always text.
	jsonOutput bool

	// verbose enables debug logging on stderr.
	verbose bool
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
func NewRootCommand() *cobra.Command {
	flags := &settingsFlags{}

	rootCmd := &cobra.Command{
		Use:   "compose-menu",
		Short: "Pick a compose file from a menu and bring it up",
		Long: `compose-menu lists the compose files in a directory (./composers by
default), asks which one to start, makes sure the container daemon is
running (restarting it through the service manager if needed), and then
runs "docker-compose -f <file> up" in the background.

Type the number of an entry to launch it, or :quit to leave.`,

		Args: cobra.NoArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors lets Execute format errors (text or JSON).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(verbose)
			if err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "failed to initialize logging", err)
			}
			logger = l
			return nil
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := flags.resolve(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, welcomeBanner)

			entries, err := composer.ListEntries(settings.Dir)
			if err != nil {
				return err
			}
			VerboseLog("Found %d entries in %s", len(entries), settings.Dir)

			l := newLauncher(settings, out)
			return runMenu(cmd.Context(), entries, prompt.NewReader(cmd.InOrStdin(), out), out, l)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	flags.register(rootCmd)

	rootCmd.AddCommand(NewListCommand(flags))
	rootCmd.AddCommand(NewCheckCommand(flags))

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// CLIError types carry their own exit codes; other errors exit with 1.
func Execute(rootCmd *cobra.Command) {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode; stdout is for results.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}
