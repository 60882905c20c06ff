package collection

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue[[]byte]()
	assert.True(t, q.Empty())

	q.Push([]byte("a"))
	q.Push([]byte("b"))
	assert.Equal(t, 2, q.Size())
	assert.Equal(t, []byte("a"), q.Peek())
	assert.Equal(t, []byte("a"), q.Pop())
	assert.Equal(t, []byte("b"), q.Pop())
	assert.Nil(t, q.Pop())
	assert.True(t, q.Empty())
}

func TestConcurrentMap(t *testing.T) {
	m := NewConcurrentMap[string, int]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Set(string(rune('a'+i%26)), i)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 26, m.Len())
	assert.True(t, m.Has("a"))
	m.Delete("a")
	assert.False(t, m.Has("a"))

	keys := m.Keys()
	sort.Strings(keys)
	assert.Equal(t, "b", keys[0])
	assert.Len(t, m.Values(), 25)
}

func TestBlockingQueuePopWaits(t *testing.T) {
	q := NewBlockingQueue[string]()
	got := make(chan string, 1)

	go func() {
		v, ok := q.Pop()
		if ok {
			got <- v
		}
	}()

	time.Sleep(10 * time.Millisecond)
	require.True(t, q.Push("hello"))

	select {
	case v := <-got:
		assert.Equal(t, "hello", v)
	case <-time.After(time.Second):
		t.Fatal("pop did not return")
	}
}

func TestBlockingQueueShutdownWithDrained(t *testing.T) {
	q := NewBlockingQueue[int]()
	for i := 0; i < 5; i++ {
		q.Push(i)
	}

	var popped []int
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			v, ok := q.Pop()
			if !ok {
				return
			}
			popped = append(popped, v)
		}
	}()

	q.ShutdownWithDrained()
	<-done

	assert.Equal(t, []int{0, 1, 2, 3, 4}, popped)
	assert.False(t, q.Push(5))
}
