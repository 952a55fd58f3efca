package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdesk/pkg/task"
)

func testNow() time.Time {
	return time.Date(2025, 8, 12, 10, 0, 0, 0, time.Local)
}

// run executes one CLI invocation against a file store under a temp HOME.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&app{now: testNow})
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func setup(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TASKDESK_STORE_BACKEND", "")
	t.Setenv("TASKDESK_EXPORT_DIR", "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(home))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return home
}

func TestAddThenList(t *testing.T) {
	setup(t)

	out, err := run(t, "add", "Buy milk", "-p", "low", "-c", "Personal")
	require.NoError(t, err)
	var added task.Task
	require.NoError(t, json.Unmarshal([]byte(out), &added))
	assert.Equal(t, 6, added.ID)
	assert.Equal(t, task.Low, added.Priority)
	assert.Equal(t, "2025-08-12", added.DueDate, "due defaults to today")

	out, err = run(t, "list", "--format", "json", "--filter", "today")
	require.NoError(t, err)
	var listed []task.Task
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	var got []int
	for _, tk := range listed {
		got = append(got, tk.ID)
	}
	assert.Equal(t, []int{6, 2}, got, "date ties keep newest-first order")
}

func TestAdd_Validation(t *testing.T) {
	setup(t)

	_, err := run(t, "add", "  ")
	assert.ErrorIs(t, err, task.ErrValidation)

	_, err = run(t, "add", "x", "-p", "urgent")
	assert.ErrorIs(t, err, task.ErrValidation)
}

func TestEditAndToggle(t *testing.T) {
	setup(t)

	out, err := run(t, "edit", "3", "--status", "completed")
	require.NoError(t, err)
	assert.Contains(t, out, `"completed": true`)

	out, err = run(t, "toggle", "3")
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "Pending"`)

	_, err = run(t, "edit", "3")
	assert.ErrorContains(t, err, "no updates specified")

	_, err = run(t, "edit", "abc", "--title", "x")
	assert.ErrorContains(t, err, `invalid task id "abc"`)
}

func TestRemove(t *testing.T) {
	setup(t)

	out, err := run(t, "rm", "1")
	require.NoError(t, err)
	assert.Equal(t, "removed task 1\n", out)

	_, err = run(t, "delete", "1")
	assert.ErrorIs(t, err, task.ErrNotFound)
}

func TestListShort(t *testing.T) {
	setup(t)

	out, err := run(t, "list", "--filter", "overdue")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Schedule team performance reviews")
	assert.Contains(t, lines[0], "Aug 10, 2025 !")

	out, err = run(t, "list", "-s", "nothing matches")
	require.NoError(t, err)
	assert.Equal(t, "No tasks found\n", out)
}

func TestExport(t *testing.T) {
	home := setup(t)

	out, err := run(t, "export")
	require.NoError(t, err)
	assert.Contains(t, out, "exported 5 tasks")

	b, err := os.ReadFile(filepath.Join(home, "professional-todo-tasks-2025-08-12.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "Title,Priority,Due Date,Category,Status,Completed\n"))

	out, err = run(t, "export", "-o", "-")
	require.NoError(t, err)
	assert.Equal(t, string(b)+"\n", out)
}

func TestStats(t *testing.T) {
	setup(t)

	out, err := run(t, "stats", "--json")
	require.NoError(t, err)
	var s task.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, task.Stats{Total: 5, Pending: 5, Overdue: 1}, s)
}

func TestMemoryStoreDoesNotPersist(t *testing.T) {
	setup(t)

	_, err := run(t, "--store", "memory", "rm", "1")
	require.NoError(t, err)

	out, err := run(t, "--store", "memory", "stats", "-j")
	require.NoError(t, err)
	assert.Contains(t, out, `"total": 5`)
}

func TestConfigInit(t *testing.T) {
	home := setup(t)
	path := filepath.Join(home, "c.yaml")

	out, err := run(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = run(t, "config", "init", "--config", path)
	assert.Error(t, err, "existing file is not overwritten")
}

func TestTruncStr(t *testing.T) {
	assert.Equal(t, "héll", truncStr("héllo", 4))
	assert.Equal(t, "ok", truncStr("ok", 4))
}
