package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"taskdesk/pkg/storage"
)

// DefaultKey is the store key that holds the whole collection.
const DefaultKey = "professionalTodoTasks"

// Repository loads and saves the full collection as one JSON array.
type Repository struct {
	kv  storage.KV
	key string
}

// NewRepository creates a Repository over kv. An empty key uses DefaultKey.
func NewRepository(kv storage.KV, key string) *Repository {
	if key == "" {
		key = DefaultKey
	}
	return &Repository{kv: kv, key: key}
}

// Load returns the stored tasks. When the key is absent, unreadable, not a
// JSON array of tasks, empty, holds duplicate ids, or holds a record that
// fails validation, it returns Seed(now) and seeded=true instead. Load never fails.
func (r *Repository) Load(ctx context.Context, now time.Time) (tasks []Task, seeded bool) {
	tasks, err := r.read(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("store: load %s: %v; using sample tasks", r.key, err)
		}
		return Seed(now), true
	}
	return tasks, false
}

func (r *Repository) read(ctx context.Context) ([]Task, error) {
	b, err := r.kv.Get(ctx, r.key)
	if err != nil {
		return nil, err
	}
	var tasks []Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(tasks) == 0 {
		return nil, errors.New("no tasks stored")
	}
	seen := make(map[int]bool, len(tasks))
	for i := range tasks {
		if seen[tasks[i].ID] {
			return nil, fmt.Errorf("duplicate id %d", tasks[i].ID)
		}
		seen[tasks[i].ID] = true
		if err := tasks[i].validate(); err != nil {
			return nil, fmt.Errorf("task %d: %w", tasks[i].ID, err)
		}
		tasks[i].sync()
	}
	return tasks, nil
}

// Save overwrites the stored collection with tasks.
func (r *Repository) Save(ctx context.Context, tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := r.kv.Put(ctx, r.key, b); err != nil {
		return fmt.Errorf("save %s: %w", r.key, err)
	}
	return nil
}

// NextID returns max(id)+1, or 1 when tasks is empty.
func NextID(tasks []Task) int {
	hi := 0
	for _, t := range tasks {
		if t.ID > hi {
			hi = t.ID
		}
	}
	return hi + 1
}
