// Package cli — menu.go implements the interactive selection loop that runs
// when compose-menu is invoked without a subcommand.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/shinji-kodama/compose-menu/internal/composer"
	"github.com/shinji-kodama/compose-menu/internal/model"
	"github.com/shinji-kodama/compose-menu/internal/prompt"
)

// quitSentinel is the input that leaves the menu without launching anything.
const quitSentinel = ":quit"

const (
	welcomeBanner  = "\nHi, Welcome\n\n"
	menuHeader     = "Select from the list of composers: "
	menuQuestion   = "Which do you want to compose? "
	invalidMessage = "\nInvalid Option!"
	goodbyeMessage = "Goodbye!"
)

// lineReader is implemented by *prompt.Reader.
type lineReader interface {
	ReadLine(question string) (string, error)
}

// entryLauncher is implemented by *launch.Launcher.
type entryLauncher interface {
	Launch(ctx context.Context, entry model.Entry) error
}

// runMenu shows the menu for entries and prompts until the user quits or
// picks a valid entry. A valid pick launches that entry once and ends the
// loop; there is no second round.
//
// Invalid input (not a number, zero, negative, out of range) is reported
// and re-prompted. End of input is treated like the quit sentinel.
func runMenu(ctx context.Context, entries []model.Entry, in lineReader, out io.Writer, l entryLauncher) error {
	fmt.Fprintln(out, menuHeader)
	fmt.Fprintln(out, composer.RenderMenu(entries))

	for {
		input, err := in.ReadLine(menuQuestion)
		if errors.Is(err, prompt.ErrInputClosed) {
			// The prompt line is still open; finish it before saying goodbye.
			fmt.Fprintln(out)
			fmt.Fprintln(out, goodbyeMessage)
			return nil
		}
		if err != nil {
			return model.WrapCLIError(model.ExitInputFailed, "failed to read selection", err)
		}

		if input == quitSentinel {
			fmt.Fprintln(out, goodbyeMessage)
			return nil
		}

		entry, ok := composer.Select(entries, input)
		if !ok {
			VerboseLog("rejected selection %q (%d entries)", input, len(entries))
			fmt.Fprintln(out, invalidMessage)
			continue
		}

		fmt.Fprintln(out)
		VerboseLog("selected %s", entry.Path)
		return l.Launch(ctx, entry)
	}
}
