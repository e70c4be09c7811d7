package display

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// Width is the terminal width the panels are laid out for.
const Width = 80

// Wrap word-wraps text to the panel width. Shorter lines pass through
// untouched.
func Wrap(text string) string {
	return wordwrap.String(text, Width)
}

// Capitalize uppercases the first character of s, for greeting players
// whose account names are stored lowercase.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
