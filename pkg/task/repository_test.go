package task

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdesk/pkg/storage"
)

func TestRepository_LoadFallsBackToSeed(t *testing.T) {
	cases := map[string][]byte{
		"corrupt":          []byte("{not json"),
		"not an array":     []byte(`{"id":1}`),
		"empty array":      []byte(`[]`),
		"null":             []byte(`null`),
		"duplicate ids":    []byte(`[` + validRecord(1, "a") + `,` + validRecord(1, "b") + `]`),
		"blank title":      []byte(`[` + validRecord(1, "a") + `,` + validRecord(7, "   ") + `]`),
		"unknown priority": []byte(`[{"id":7,"title":"x","priority":"Urgent","dueDate":"2025-08-01","status":"Pending","category":"Work"}]`),
		"unknown status":   []byte(`[{"id":7,"title":"x","priority":"Low","dueDate":"2025-08-01","status":"Done","category":"Work"}]`),
		"bad due date":     []byte(`[{"id":7,"title":"x","priority":"Low","dueDate":"08/01/2025","status":"Pending","category":"Work"}]`),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			kv := storage.NewMemoryStore()
			require.NoError(t, kv.Put(context.Background(), DefaultKey, raw))

			tasks, seeded := NewRepository(kv, "").Load(context.Background(), fixedNow())
			assert.True(t, seeded)
			assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(tasks))
		})
	}
}

func TestRepository_LoadAbsentKey(t *testing.T) {
	tasks, seeded := NewRepository(storage.NewMemoryStore(), "other").Load(context.Background(), fixedNow())
	assert.True(t, seeded)
	assert.Len(t, tasks, 5)
	assert.Equal(t, 6, NextID(tasks))
}

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(storage.NewMemoryStore(), "k")

	in := []Task{
		{ID: 9, Title: `say "hi"`, Priority: High, DueDate: "2025-08-01", Status: Completed, Category: "Personal", Completed: true, CreatedAt: fixedNow()},
		{ID: 4, Title: "b", Priority: Low, DueDate: "2025-08-02", Status: InProgress, Category: "Work", CreatedAt: fixedNow().Add(time.Minute)},
	}
	require.NoError(t, repo.Save(ctx, in))

	out, seeded := repo.Load(ctx, fixedNow())
	assert.False(t, seeded)
	require.Len(t, out, len(in))
	for i := range out {
		assert.True(t, in[i].CreatedAt.Equal(out[i].CreatedAt), "task %d createdAt", in[i].ID)
		// JSON decoding drops the location; compare the instant above and the rest below.
		out[i].CreatedAt = in[i].CreatedAt
	}
	assert.Equal(t, in, out)
	assert.Equal(t, 10, NextID(out))
}

func TestRepository_LoadResyncsCompleted(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	raw := `[{"id":1,"title":"a","priority":"Low","dueDate":"2025-08-01","status":"Completed","category":"Work","completed":false}]`
	require.NoError(t, kv.Put(ctx, DefaultKey, []byte(raw)))

	out, seeded := NewRepository(kv, "").Load(ctx, fixedNow())
	require.False(t, seeded)
	assert.True(t, out[0].Completed)
}

func TestRepository_SaveNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	require.NoError(t, NewRepository(kv, "").Save(ctx, nil))

	b, err := kv.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func validRecord(id int, title string) string {
	return fmt.Sprintf(`{"id":%d,"title":%q,"priority":"Medium","dueDate":"2025-08-01","status":"Pending","category":"Work"}`, id, title)
}

func TestNextID(t *testing.T) {
	assert.Equal(t, 1, NextID(nil))
	assert.Equal(t, 13, NextID([]Task{{ID: 3}, {ID: 12}, {ID: 7}}))
}
