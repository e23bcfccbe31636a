package listing

import "time"

const (
	fullLayout   = "Monday January, 2, 2006 at 3:04PM"
	mediumLayout = "Mon 01, 02, 2006 3:04PM"
)

// FormatDateTime renders t in UTC for templates. format is "full" or
// "medium"; anything else is used as a time layout.
func FormatDateTime(t time.Time, format string) string {
	layout := format
	switch format {
	case "full", "":
		layout = fullLayout
	case "medium":
		layout = mediumLayout
	}
	return t.UTC().Format(layout)
}
