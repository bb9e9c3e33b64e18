package layout

import "github.com/mattn/go-runewidth"

// displayWidth measures the terminal column width of s using the same
// East-Asian-width table a terminal renderer would, so the best-fit
// decision accounts for wide characters instead of treating every rune
// as one column.
func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}
