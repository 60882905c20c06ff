package workerpool

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRunsTasks(t *testing.T) {
	pool := NewWorkerPool(1, 4, 16)
	require.NoError(t, pool.Start())

	var count atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, pool.Submit(func() {
			count.Add(1)
		}))
	}

	pool.ShutdownWait(true)
	assert.Equal(t, int32(10), count.Load())
	assert.Equal(t, 0, pool.WorkerCount())
}

func TestSubmitAfterShutdown(t *testing.T) {
	pool := NewWorkerPool(1, 1, 1)
	require.NoError(t, pool.Start())
	pool.ShutdownWait(true)

	assert.ErrorIs(t, pool.Submit(func() {}), ErrPoolShutdown)
	assert.ErrorIs(t, pool.Start(), ErrPoolStateInvalid)
}

func TestAbortPolicyQueueFull(t *testing.T) {
	pool := NewWorkerPool(1, 1, 1)
	require.NoError(t, pool.Start())
	defer pool.ShutdownWait(false)

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.Submit(func() {
		close(started)
		<-block
	}))
	<-started

	require.NoError(t, pool.Submit(func() {}))
	assert.ErrorIs(t, pool.Submit(func() {}), ErrTaskQueueFull)
	close(block)
}

func TestCallerRunsPolicy(t *testing.T) {
	pool := NewWorkerPool(1, 1, 1, WithRejectPolicy(CallerRunsPolicy()))
	require.NoError(t, pool.Start())
	defer pool.ShutdownWait(true)

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.Submit(func() {
		close(started)
		<-block
	}))
	<-started
	require.NoError(t, pool.Submit(func() {}))

	ran := false
	require.NoError(t, pool.Submit(func() { ran = true }))
	assert.True(t, ran)
	close(block)
}

func TestPanicHandler(t *testing.T) {
	recovered := make(chan any, 1)
	pool := NewWorkerPool(1, 1, 4, WithPanicHandler(func(r any, stack []byte) {
		recovered <- r
	}))
	require.NoError(t, pool.Start())
	defer pool.ShutdownWait(true)

	require.NoError(t, pool.Submit(func() { panic("boom") }))

	select {
	case r := <-recovered:
		assert.Equal(t, "boom", r)
	case <-time.After(time.Second):
		t.Fatal("panic was not recovered")
	}
}
