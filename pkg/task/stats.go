package task

// Stats are the header counters shown by the UIs.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
	Progress  int `json:"progress"` // percent complete, rounded
}

// Summarize counts tasks relative to today.
func Summarize(tasks []Task, today string) Stats {
	var s Stats
	for _, t := range tasks {
		s.Total++
		if t.Completed {
			s.Completed++
			continue
		}
		s.Pending++
		if t.IsOverdue(today) {
			s.Overdue++
		}
	}
	if s.Total > 0 {
		s.Progress = (s.Completed*200 + s.Total) / (2 * s.Total)
	}
	return s
}
