package core

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_FIFOAndClose(t *testing.T) {
	t.Parallel()

	q := NewQueue[int]()
	for i := range 100 {
		require.NoError(t, q.Push(i))
	}
	q.Close()
	assert.ErrorIs(t, q.Push(100), ErrQueueClosed)

	got := make([]int, 0, 100)
	for v := range q.Out() {
		got = append(got, v)
	}

	require.Len(t, got, 100)
	for i, v := range got {
		if v != i {
			t.Fatalf("expected %d at position %d, got %d", i, i, v)
		}
	}
}

func TestQueue_PushNeverBlocks(t *testing.T) {
	t.Parallel()

	q := NewQueue[int]()
	defer q.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := range 10_000 {
			_ = q.Push(i)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("push blocked with no consumer")
	}
	assert.GreaterOrEqual(t, q.Len(), 9_999)
}

func TestQueue_StopDropsPending(t *testing.T) {
	t.Parallel()

	q := NewQueue[string]()
	require.NoError(t, q.Push("a"))
	require.NoError(t, q.Push("b"))
	q.Stop()
	q.Stop()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-q.Out():
			if !ok {
				assert.ErrorIs(t, q.Push("c"), ErrQueueClosed)
				return
			}
		case <-deadline:
			t.Fatalf("out was not closed after Stop")
		}
	}
}

func TestQueue_ConcurrentProducers(t *testing.T) {
	t.Parallel()

	q := NewQueue[int]()
	var wg sync.WaitGroup
	for p := range 4 {
		wg.Go(func() {
			for i := range 250 {
				_ = q.Push(p*1000 + i)
			}
		})
	}
	wg.Wait()
	q.Close()

	count := 0
	for range q.Out() {
		count++
	}
	assert.Equal(t, 1000, count)
}
