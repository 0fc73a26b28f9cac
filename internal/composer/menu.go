// menu.go renders the numbered menu shown to the user.
package composer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shinji-kodama/compose-menu/internal/model"
)

// RenderMenu formats entries as a 1-indexed list, one entry per line:
//
//	1: db
//	2: web
//
// Every line, including the last, ends in "\n". An empty slice renders as
// the empty string.
//
// RenderMenu panics if an entry has no file-name component. ListEntries never
// produces such an entry, so this indicates a caller bug rather than bad input.
func RenderMenu(entries []model.Entry) string {
	var b strings.Builder
	for i, e := range entries {
		name, ok := e.DisplayName()
		if !ok {
			panic(fmt.Sprintf("composer: entry %d has no file name: %q", i+1, e.Path))
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(": ")
		b.WriteString(name)
		b.WriteByte('\n')
	}
	return b.String()
}

// Select maps a 1-based menu choice onto entries. It reports false for
// anything that is not a decimal integer in [1, len(entries)].
func Select(entries []model.Entry, choice string) (model.Entry, bool) {
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(entries) {
		return model.Entry{}, false
	}
	return entries[n-1], true
}
