package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	tasks := []Task{
		{ID: 1, DueDate: "2025-08-01", Status: Pending},
		{ID: 2, DueDate: "2025-08-01", Status: Completed, Completed: true},
		{ID: 3, DueDate: "2025-08-30", Status: InProgress},
	}
	assert.Equal(t, Stats{Total: 3, Pending: 2, Completed: 1, Overdue: 1, Progress: 33}, Summarize(tasks, today))
}

func TestSummarize_ProgressRounding(t *testing.T) {
	two := []Task{{Status: Completed, Completed: true}, {Status: Completed, Completed: true}, {Status: Pending}}
	assert.Equal(t, 67, Summarize(two, today).Progress)

	half := []Task{{Status: Completed, Completed: true}, {Status: Pending}}
	assert.Equal(t, 50, Summarize(half, today).Progress)

	eighth := make([]Task, 8)
	eighth[0].Completed = true
	assert.Equal(t, 13, Summarize(eighth, today).Progress, "12.5 rounds up")
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, Summarize(nil, today))
}
