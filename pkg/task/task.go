package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for due dates.
const DateLayout = "2006-01-02"

var (
	ErrValidation = errors.New("invalid task")
	ErrNotFound   = errors.New("task not found")
)

// Priority ranks how urgent a task is.
type Priority string

const (
	High   Priority = "High"
	Medium Priority = "Medium"
	Low    Priority = "Low"
)

// Weight orders priorities for sorting. Unknown values weigh 0.
func (p Priority) Weight() int {
	switch p {
	case High:
		return 3
	case Medium:
		return 2
	case Low:
		return 1
	}
	return 0
}

// ParsePriority accepts any letter case and returns the canonical value.
func ParsePriority(s string) (Priority, error) {
	for _, p := range []Priority{High, Medium, Low} {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown priority %q", ErrValidation, s)
}

// Status is the workflow state of a task.
type Status string

const (
	Pending    Status = "Pending"
	InProgress Status = "In Progress"
	Completed  Status = "Completed"
)

// Weight orders statuses for sorting: Pending first, Completed last.
func (s Status) Weight() int {
	switch s {
	case Pending:
		return 3
	case InProgress:
		return 2
	case Completed:
		return 1
	}
	return 0
}

// ParseStatus accepts any letter case, and "in-progress"/"in_progress"
// for the middle state.
func ParseStatus(s string) (Status, error) {
	norm := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(s))
	for _, st := range []Status{Pending, InProgress, Completed} {
		if strings.EqualFold(norm, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
}

// Categories are the suggestions offered by the UIs. Category itself is free-form.
var Categories = []string{"Work", "Personal", "Meeting", "Project", "Other"}

// Task is one to-do item. The JSON names are the stored wire format.
type Task struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Priority  Priority  `json:"priority"`
	DueDate   string    `json:"dueDate"`   // YYYY-MM-DD
	Status    Status    `json:"status"`
	Category  string    `json:"category"`
	Completed bool      `json:"completed"` // mirrors Status == Completed
	CreatedAt time.Time `json:"createdAt"`
}

// IsComplete derives completion from the status.
func (t Task) IsComplete() bool {
	return t.Status == Completed
}

// IsOverdue reports whether an open task is due before today.
func (t Task) IsOverdue(today string) bool {
	return !t.Completed && t.DueDate < today
}

func (t *Task) sync() {
	t.Completed = t.IsComplete()
}

// Draft is the input for a new task.
type Draft struct {
	Title    string
	Priority Priority
	DueDate  string
	Category string
}

// Patch is a partial update. A nil field means "no change".
type Patch struct {
	Title    *string
	Priority *Priority
	DueDate  *string
	Category *string
	Status   *Status
}

// New builds a validated task. The title is stored trimmed.
func New(id int, d Draft, status Status, now time.Time) (Task, error) {
	t := Task{
		ID:        id,
		Title:     strings.TrimSpace(d.Title),
		Priority:  d.Priority,
		DueDate:   d.DueDate,
		Status:    status,
		Category:  d.Category,
		CreatedAt: now,
	}
	if err := t.validate(); err != nil {
		return Task{}, err
	}
	t.sync()
	return t, nil
}

func (t Task) validate() error {
	if err := checkTitle(t.Title); err != nil {
		return err
	}
	if err := checkPriority(t.Priority); err != nil {
		return err
	}
	if err := checkStatus(t.Status); err != nil {
		return err
	}
	return checkDate(t.DueDate)
}

func checkTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	return nil
}

func checkPriority(p Priority) error {
	if p.Weight() == 0 {
		return fmt.Errorf("%w: unknown priority %q", ErrValidation, p)
	}
	return nil
}

func checkStatus(s Status) error {
	if s.Weight() == 0 {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, s)
	}
	return nil
}

func checkDate(d string) error {
	if _, err := time.Parse(DateLayout, d); err != nil {
		return fmt.Errorf("%w: due date %q is not YYYY-MM-DD", ErrValidation, d)
	}
	return nil
}

// apply returns a copy of t with p applied and re-synced. Only the fields
// present in p are validated; the rest were checked on create or load.
func (t Task) apply(p Patch) (Task, error) {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
		if err := checkTitle(t.Title); err != nil {
			return Task{}, err
		}
	}
	if p.Priority != nil {
		if err := checkPriority(*p.Priority); err != nil {
			return Task{}, err
		}
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		if err := checkDate(*p.DueDate); err != nil {
			return Task{}, err
		}
		t.DueDate = *p.DueDate
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Status != nil {
		if err := checkStatus(*p.Status); err != nil {
			return Task{}, err
		}
		t.Status = *p.Status
	}
	t.sync()
	return t, nil
}
