package task

import (
	"io"
	"strings"
	"time"
)

const csvHeader = "Title,Priority,Due Date,Category,Status,Completed"

// CSV renders tasks in the given order. The title is always quoted; the
// other columns are written as-is.
func CSV(tasks []Task) string {
	rows := make([]string, 0, len(tasks)+1)
	rows = append(rows, csvHeader)
	for _, t := range tasks {
		completed := "No"
		if t.Completed {
			completed = "Yes"
		}
		rows = append(rows, strings.Join([]string{
			`"` + strings.ReplaceAll(t.Title, `"`, `""`) + `"`,
			string(t.Priority),
			t.DueDate,
			t.Category,
			string(t.Status),
			completed,
		}, ","))
	}
	return strings.Join(rows, "\n")
}

// WriteCSV writes CSV(tasks) to w.
func WriteCSV(w io.Writer, tasks []Task) error {
	_, err := io.WriteString(w, CSV(tasks))
	return err
}

// ExportFilename is the default file name for an export made at now.
func ExportFilename(now time.Time) string {
	return "professional-todo-tasks-" + Today(now) + ".csv"
}
