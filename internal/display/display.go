// Package display holds presentation helpers shared by the CLI and the desktop UI.
package display

import (
	"time"

	"taskdesk/pkg/task"
)

// DueLabel renders a due date relative to today: "Today", "Tomorrow" or a
// short date. Anything that isn't YYYY-MM-DD is returned unchanged.
func DueLabel(due, today string) string {
	d, err := time.Parse(task.DateLayout, due)
	if err != nil {
		return due
	}
	if due == today {
		return "Today"
	}
	if td, err := time.Parse(task.DateLayout, today); err == nil && d.Equal(td.AddDate(0, 0, 1)) {
		return "Tomorrow"
	}
	return d.Format("Jan 2, 2006")
}
