// lister.go implements the directory scan that produces the menu entries.
package composer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/shinji-kodama/compose-menu/internal/model"
)

// DefaultDir is the composers directory used when no other directory is
// configured. It is resolved relative to the working directory.
const DefaultDir = "./composers"

// ListEntries returns the immediate children of dir as Entries, sorted in
// ascending lexicographic order of their full path.
//
// Every child is included: regular files, directories, symlinks and dotfiles
// alike. The scan does not recurse.
//
// Returns a CLIError with ExitDirectoryUnreadable if the directory cannot be
// read or if any child cannot be resolved.
func ListEntries(dir string) ([]model.Entry, error) {
	// os.ReadDir already sorts by file name, but the ordering contract is on
	// the joined path, so the result is sorted again below.
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitDirectoryUnreadable,
			fmt.Sprintf("failed to read composers directory %q", dir),
			err,
		)
	}

	entries := make([]model.Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		// Info() lstat's the child. A child removed between ReadDir and here,
		// or one we are not allowed to stat, fails the whole scan.
		info, err := de.Info()
		if err != nil {
			return nil, model.WrapCLIError(
				model.ExitDirectoryUnreadable,
				fmt.Sprintf("failed to resolve entry %q in %q", de.Name(), dir),
				err,
			)
		}
		entries = append(entries, model.NewEntry(filepath.Join(dir, de.Name()), info.IsDir()))
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	return entries, nil
}
