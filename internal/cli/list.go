// Package cli — list.go implements the "compose-menu list" command.
//
// The list command prints the same numbered menu the interactive mode shows,
// without prompting or touching the daemon. With --json it also reports the
// service names found in each compose file, and with --long it prints them
// as a table.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/compose-menu/internal/composer"
	"github.com/shinji-kodama/compose-menu/internal/model"
)

// NewListCommand creates the "list" cobra command.
func NewListCommand(flags *settingsFlags) *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available compose files",
		Long: `List the compose files in the composers directory, numbered the same
way as the interactive menu.

Examples:
  compose-menu list
  compose-menu list --dir ./stacks
  compose-menu list --long
  compose-menu list --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return runList(cmd.OutOrStdout(), settings.Dir, long)
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "Show entry kind and compose services in a table")

	return cmd
}

// runList lists dir and prints the result as JSON, a table (long) or the
// plain numbered menu.
func runList(out io.Writer, dir string, long bool) error {
	entries, err := composer.ListEntries(dir)
	if err != nil {
		return err
	}
	VerboseLog("Found %d entries in %s", len(entries), dir)

	if IsJSONOutput() {
		return printListResultJSON(out, entries)
	}
	if long {
		printListResultTable(out, entries)
		return nil
	}
	printListResultText(out, entries)
	return nil
}

// listEntryJSON is the JSON output structure for a single menu entry.
type listEntryJSON struct {
	Index    int      `json:"index"`
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	IsDir    bool     `json:"isDir"`
	Services []string `json:"services"`
}

// buildListEntries converts entries to their JSON form. Service names are
// read best-effort: a file that is not valid compose YAML lists none.
func buildListEntries(entries []model.Entry) []listEntryJSON {
	result := make([]listEntryJSON, 0, len(entries))
	for i, e := range entries {
		name, _ := e.DisplayName()
		item := listEntryJSON{
			Index:    i + 1,
			Name:     name,
			Path:     e.Path,
			IsDir:    e.IsDir,
			Services: []string{},
		}
		if !e.IsDir {
			services, err := composer.LoadServices(e.Path)
			if err != nil {
				VerboseLog("Skipping services of %s: %v", e.Path, err)
			} else {
				item.Services = services
			}
		}
		result = append(result, item)
	}
	return result
}

// printListResultJSON writes {"entries": [...]} to out.
func printListResultJSON(out io.Writer, entries []model.Entry) error {
	result := struct {
		Entries []listEntryJSON `json:"entries"`
	}{
		Entries: buildListEntries(entries),
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to encode list output", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}

// printListResultText writes the numbered menu to out.
func printListResultText(out io.Writer, entries []model.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No compose files found.")
		return
	}
	fmt.Fprint(out, composer.RenderMenu(entries))
}

// printListResultTable writes one table row per entry with its kind and
// services. Directories and unparseable files show "-" for services.
func printListResultTable(out io.Writer, entries []model.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No compose files found.")
		return
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range buildListEntries(entries) {
		kind := "file"
		if e.IsDir {
			kind = "dir"
		}
		services := "-"
		if len(e.Services) > 0 {
			services = strings.Join(e.Services, ", ")
		}
		rows = append(rows, []string{strconv.Itoa(e.Index), e.Name, kind, services})
	}

	fmt.Fprintln(out, renderTable(
		[]string{"#", "Name", "Kind", "Services"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	))
}
