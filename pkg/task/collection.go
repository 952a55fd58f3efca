// Package task is the task collection engine: the task record, the
// search/filter/sort query pipeline, the mutations that keep the collection
// consistent, and the persistence and CSV export contracts.
package task

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Collection owns the authoritative, newest-first task list and the id
// counter. Every mutation runs validate, mutate, save, publish under one lock.
type Collection struct {
	mu         sync.Mutex
	tasks      []Task
	nextID     int
	repo       *Repository
	bus        *Bus
	now        func() time.Time
	persistErr error
}

// Option configures a Collection.
type Option func(*Collection)

// WithClock replaces time.Now for createdAt stamps and "today".
func WithClock(now func() time.Time) Option {
	return func(c *Collection) { c.now = now }
}

// WithBus publishes a Change after every mutation.
func WithBus(b *Bus) Option {
	return func(c *Collection) { c.bus = b }
}

// Open loads the collection from repo. When the store had nothing usable the
// sample tasks are written back straight away.
func Open(ctx context.Context, repo *Repository, opts ...Option) *Collection {
	c := &Collection{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}

	tasks, seeded := repo.Load(ctx, c.now())
	c.tasks = tasks
	c.nextID = NextID(tasks)
	if seeded {
		c.save(ctx)
		c.publish(KindSeeded, 0)
	}
	return c
}

// Add creates a Pending task at the front of the collection.
func (c *Collection) Add(ctx context.Context, d Draft) (Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := New(c.nextID, d, Pending, c.now())
	if err != nil {
		return Task{}, err
	}
	c.nextID++
	c.tasks = append([]Task{t}, c.tasks...)

	c.save(ctx)
	c.publish(KindAdded, t.ID)
	return t, nil
}

// Edit applies the non-nil fields of p to task id.
func (c *Collection) Edit(ctx context.Context, id int, p Patch) (Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return Task{}, fmt.Errorf("edit task %d: %w", id, ErrNotFound)
	}
	t, err := c.tasks[i].apply(p)
	if err != nil {
		return Task{}, fmt.Errorf("edit task %d: %w", id, err)
	}
	c.tasks[i] = t

	c.save(ctx)
	c.publish(KindEdited, id)
	return t, nil
}

// Remove deletes task id. An unknown id is ErrNotFound and nothing is saved.
func (c *Collection) Remove(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return fmt.Errorf("remove task %d: %w", id, ErrNotFound)
	}
	c.tasks = append(c.tasks[:i:i], c.tasks[i+1:]...)

	c.save(ctx)
	c.publish(KindRemoved, id)
	return nil
}

// ToggleComplete flips completion. Un-completing always lands on Pending,
// even if the task was In Progress before it was completed.
func (c *Collection) ToggleComplete(ctx context.Context, id int) (Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return Task{}, fmt.Errorf("toggle task %d: %w", id, ErrNotFound)
	}
	t := &c.tasks[i]
	if t.Completed {
		t.Status = Pending
	} else {
		t.Status = Completed
	}
	t.sync()

	c.save(ctx)
	c.publish(KindToggled, id)
	return *t, nil
}

// Get returns a copy of task id.
func (c *Collection) Get(id int) (Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return Task{}, fmt.Errorf("get task %d: %w", id, ErrNotFound)
	}
	return c.tasks[i], nil
}

// All returns a copy of the collection in storage order.
func (c *Collection) All() []Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Task(nil), c.tasks...)
}

// Query runs the pipeline with today taken from the collection clock.
func (c *Collection) Query(q Query) []Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Apply(c.tasks, q, Today(c.now()))
}

// Stats summarizes the whole collection.
func (c *Collection) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Summarize(c.tasks, Today(c.now()))
}

// CSV exports the whole collection in storage order.
func (c *Collection) CSV() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CSV(c.tasks)
}

// Now reads the collection clock.
func (c *Collection) Now() time.Time {
	return c.now()
}

// Today is the collection clock's current date.
func (c *Collection) Today() string {
	return Today(c.now())
}

// PersistErr is the error from the most recent save, or nil.
func (c *Collection) PersistErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.persistErr
}

func (c *Collection) index(id int) int {
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// save is best-effort: the in-memory list stays authoritative.
func (c *Collection) save(ctx context.Context) {
	c.persistErr = c.repo.Save(ctx, c.tasks)
	if c.persistErr != nil {
		log.Printf("store: %v", c.persistErr)
	}
}

func (c *Collection) publish(kind string, id int) {
	if c.bus != nil {
		c.bus.Publish(kind, id, c.now())
	}
}
