package main

import (
	"encoding/json"
	"fmt"
	"io"

	"taskdesk/internal/display"
	"taskdesk/pkg/task"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func truncStr(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

func printShortTasks(w io.Writer, tasks []task.Task, today string) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found")
		return
	}
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		due := display.DueLabel(t.DueDate, today)
		if t.IsOverdue(today) {
			due += " !"
		}
		fmt.Fprintf(w, "[%s] %-4d  %-6s  %-14s  %-10s  %-11s  %s\n",
			mark, t.ID, t.Priority, due, truncStr(t.Category, 10), t.Status, truncStr(t.Title, 60))
	}
}
