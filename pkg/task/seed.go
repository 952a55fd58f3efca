package task

import "time"

// Seed returns the sample tasks used on first run or when stored data is
// unusable. The counter continues at 6.
func Seed(now time.Time) []Task {
	tasks := []Task{
		{ID: 1, Title: "Prepare Q3 financial presentation", Priority: High, DueDate: "2025-08-15", Status: Pending, Category: "Work"},
		{ID: 2, Title: "Review client proposal documents", Priority: Medium, DueDate: "2025-08-12", Status: InProgress, Category: "Work"},
		{ID: 3, Title: "Schedule team performance reviews", Priority: High, DueDate: "2025-08-10", Status: Pending, Category: "Meeting"},
		{ID: 4, Title: "Update project documentation", Priority: Low, DueDate: "2025-08-20", Status: Pending, Category: "Project"},
		{ID: 5, Title: "Conduct market research analysis", Priority: Medium, DueDate: "2025-08-14", Status: Pending, Category: "Work"},
	}
	for i := range tasks {
		tasks[i].CreatedAt = now
		tasks[i].sync()
	}
	return tasks
}
