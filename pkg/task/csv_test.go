package task

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV(t *testing.T) {
	tasks := []Task{
		{Title: `Fix "login", then deploy`, Priority: High, DueDate: "2025-08-15", Category: "Work", Status: Pending},
		{Title: "Gym", Priority: Low, DueDate: "2025-08-16", Category: "Personal", Status: Completed, Completed: true},
	}

	want := "Title,Priority,Due Date,Category,Status,Completed\n" +
		`"Fix ""login"", then deploy",High,2025-08-15,Work,Pending,No` + "\n" +
		`"Gym",Low,2025-08-16,Personal,Completed,Yes`
	assert.Equal(t, want, CSV(tasks))
}

func TestCSV_EmptyIsHeaderOnly(t *testing.T) {
	assert.Equal(t, "Title,Priority,Due Date,Category,Status,Completed", CSV(nil))
}

func TestCSV_InProgress(t *testing.T) {
	got := CSV([]Task{{Title: "x", Priority: Medium, DueDate: "2025-08-12", Category: "Work", Status: InProgress}})
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"x",Medium,2025-08-12,Work,In Progress,No`, lines[1])
}

func TestWriteCSV(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, Seed(fixedNow())))
	assert.Equal(t, CSV(Seed(fixedNow())), sb.String())
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2025, 8, 3, 23, 59, 0, 0, time.Local)
	assert.Equal(t, "professional-todo-tasks-2025-08-03.csv", ExportFilename(now))
}
