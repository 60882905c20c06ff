package sync

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolNew(t *testing.T) {
	p := NewPool[*[]byte](func() *[]byte {
		b := make([]byte, 0, 16)
		return &b
	})

	b := p.Get()
	assert.NotNil(t, b)
	assert.Equal(t, 16, cap(*b))
	p.Put(b)
}

func TestWaitGroupGo(t *testing.T) {
	var (
		wg    WaitGroup
		count atomic.Int32
	)

	for i := 0; i < 10; i++ {
		wg.Go(func() {
			count.Add(1)
		})
	}
	wg.Wait()

	assert.Equal(t, int32(10), count.Load())
}
