package task

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishSubscribe(t *testing.T) {
	b := NewBus()
	ch := b.Subscribe()

	c := b.Publish(KindAdded, 6, fixedNow())
	got := <-ch
	assert.Equal(t, c, got)
	assert.Equal(t, 6, got.TaskID)

	id, err := uuid.Parse(got.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	b.Unsubscribe(ch)
	_, open := <-ch
	assert.False(t, open)
}

func TestBus_SlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewBus()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	for i := 0; i < cap(ch)+10; i++ {
		b.Publish(KindEdited, i, fixedNow())
	}
	assert.Len(t, ch, cap(ch))
}
