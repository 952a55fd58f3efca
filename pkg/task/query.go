package task

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filter narrows the task view.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterHigh      Filter = "high"
	FilterToday     Filter = "today"
	FilterOverdue   Filter = "overdue"
	FilterCompleted Filter = "completed"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterHigh, FilterToday, FilterOverdue, FilterCompleted}

// SortKey orders the task view.
type SortKey string

const (
	SortDate     SortKey = "date"
	SortPriority SortKey = "priority"
	SortStatus   SortKey = "status"
	SortCategory SortKey = "category"
)

// SortKeys lists every sort key in display order.
var SortKeys = []SortKey{SortDate, SortPriority, SortStatus, SortCategory}

// Query holds the view parameters. The zero value means all tasks sorted by date.
type Query struct {
	Search string
	Filter Filter
	Sort   SortKey
}

// Today formats now as a due-date string.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// Apply runs search, filter and sort, in that order, over a copy of tasks.
// today is the YYYY-MM-DD date the "today" and "overdue" filters compare
// against. The input slice is never modified.
func Apply(tasks []Task, q Query, today string) []Task {
	out := make([]Task, 0, len(tasks))
	term := strings.ToLower(q.Search)
	for _, t := range tasks {
		if term != "" && !matches(t, term) {
			continue
		}
		if !keep(t, q.Filter, today) {
			continue
		}
		out = append(out, t)
	}
	sortTasks(out, q.Sort)
	return out
}

func matches(t Task, term string) bool {
	return strings.Contains(strings.ToLower(t.Title), term) ||
		strings.Contains(strings.ToLower(t.Category), term) ||
		strings.Contains(strings.ToLower(string(t.Status)), term)
}

func keep(t Task, f Filter, today string) bool {
	switch f {
	case FilterHigh:
		return t.Priority == High
	case FilterToday:
		return t.DueDate == today
	case FilterOverdue:
		return t.IsOverdue(today)
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

func sortTasks(tasks []Task, key SortKey) {
	var less func(a, b Task) bool
	switch key {
	case SortPriority:
		less = func(a, b Task) bool { return a.Priority.Weight() > b.Priority.Weight() }
	case SortStatus:
		less = func(a, b Task) bool { return a.Status.Weight() > b.Status.Weight() }
	case SortCategory:
		// collate.Collator keeps internal buffers, so one per sort call.
		c := collate.New(language.English)
		less = func(a, b Task) bool { return c.CompareString(a.Category, b.Category) < 0 }
	default:
		less = func(a, b Task) bool { return a.DueDate < b.DueDate }
	}
	sort.SliceStable(tasks, func(i, j int) bool { return less(tasks[i], tasks[j]) })
}
