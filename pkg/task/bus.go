package task

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Change kinds published after a mutation is applied and saved.
const (
	KindAdded   = "task.added"
	KindEdited  = "task.edited"
	KindRemoved = "task.removed"
	KindToggled = "task.toggled"
	KindSeeded  = "task.seeded"
)

// Change describes one applied mutation.
type Change struct {
	ID     string    `json:"id"`      // UUID v7 (time-ordered)
	Kind   string    `json:"kind"`
	TaskID int       `json:"task_id"` // 0 for task.seeded
	At     time.Time `json:"at"`
}

// Bus fans changes out to in-process subscribers.
type Bus struct {
	mu   sync.RWMutex
	subs map[chan Change]struct{}
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[chan Change]struct{})}
}

// Publish sends a change to every subscriber without blocking.
func (b *Bus) Publish(kind string, taskID int, at time.Time) Change {
	c := Change{
		ID:     uuid.Must(uuid.NewV7()).String(),
		Kind:   kind,
		TaskID: taskID,
		At:     at,
	}

	b.mu.RLock()
	for ch := range b.subs {
		select {
		case ch <- c:
		default:
			// subscriber is behind; drop to avoid blocking the mutation
		}
	}
	b.mu.RUnlock()

	return c
}

// Subscribe returns a buffered channel that receives all new changes.
func (b *Bus) Subscribe() chan Change {
	ch := make(chan Change, 64)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Bus) Unsubscribe(ch chan Change) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
	close(ch)
}
