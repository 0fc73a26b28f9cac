// Package cli — check.go implements the "compose-menu check" command.
//
// check runs only the daemon readiness step: probe, restart if needed, probe
// again, within the configured retry budget. Nothing is launched. It is
// handy in scripts that want the daemon up before doing their own thing.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/compose-menu/internal/daemon"
)

// readyWaiter is implemented by *daemon.Waiter.
type readyWaiter interface {
	WaitReady(ctx context.Context) (daemon.Report, error)
}

// NewCheckCommand creates the "check" cobra command.
func NewCheckCommand(flags *settingsFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Ensure the container daemon is active",
		Long: `Probe the container daemon and restart it through the service manager
until it reports active or the retry budget is used up.

Exit code 3 means the daemon never became active.

Examples:
  compose-menu check
  compose-menu check --probe engine --max-attempts 5`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			waiter, _ := newWaiter(settings)
			return runCheck(cmd.Context(), cmd.OutOrStdout(), waiter, settings.Service)
		},
	}

	return cmd
}

// runCheck waits for the daemon and reports how many probes and restarts
// it took.
func runCheck(ctx context.Context, out io.Writer, w readyWaiter, service string) error {
	rep, err := w.WaitReady(ctx)
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]interface{}{
			"service":  service,
			"active":   true,
			"probes":   rep.Probes,
			"restarts": rep.Restarts,
		}, "", "  ")
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "%s is active (probes: %d, restarts: %d)\n", service, rep.Probes, rep.Restarts)
	return nil
}
