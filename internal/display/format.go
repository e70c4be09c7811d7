package display

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatNumber renders a coin or experience count with digit grouping.
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatMillis renders a millisecond quantity as whole seconds, the
// way buff timers are shown.
func FormatMillis(ms int64) string {
	secs := (ms + 999) / 1000
	return fmt.Sprintf("%ds", secs)
}

// FormatDuration renders a duration as whole seconds.
func FormatDuration(d time.Duration) string {
	return FormatMillis(d.Milliseconds())
}
