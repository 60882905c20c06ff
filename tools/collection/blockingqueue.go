package collection

import (
	"sync"
)

type blockingQueue[T any] struct {
	queue    Queue[T]
	cond     *sync.Cond
	shutdown bool
}

func NewBlockingQueue[T any]() BlockingQueue[T] {
	return NewBlockingQueueWithConfig[T](NewQueue[T]())
}

func NewBlockingQueueWithConfig[T any](queue Queue[T]) BlockingQueue[T] {
	return &blockingQueue[T]{
		queue: queue,
		cond:  sync.NewCond(&sync.Mutex{}),
	}
}

// Push 队列关闭后返回false, 元素被丢弃
func (b *blockingQueue[T]) Push(e T) bool {
	b.cond.L.Lock()
	defer b.cond.L.Unlock()
	if b.shutdown {
		return false
	}

	b.queue.Push(e)
	b.cond.Broadcast()
	return true
}

func (b *blockingQueue[T]) Pop() (T, bool) {
	b.cond.L.Lock()
	defer b.cond.L.Unlock()
	for b.queue.Empty() && !b.shutdown {
		b.cond.Wait()
	}

	if b.queue.Empty() {
		return *new(T), false
	}

	item := b.queue.Pop()
	if b.queue.Empty() {
		// 唤醒 ShutdownWithDrained
		b.cond.Broadcast()
	}

	return item, true
}

func (b *blockingQueue[T]) Size() int {
	b.cond.L.Lock()
	defer b.cond.L.Unlock()
	return b.queue.Size()
}

func (b *blockingQueue[T]) Empty() bool {
	b.cond.L.Lock()
	defer b.cond.L.Unlock()
	return b.queue.Empty()
}

func (b *blockingQueue[T]) Shutdown() {
	b.cond.L.Lock()
	defer b.cond.L.Unlock()
	b.shutdown = true
	b.cond.Broadcast()
}

// ShutdownWithDrained 关闭队列并等待消费者取完剩余元素
func (b *blockingQueue[T]) ShutdownWithDrained() {
	b.cond.L.Lock()
	defer b.cond.L.Unlock()
	b.shutdown = true
	b.cond.Broadcast()
	for !b.queue.Empty() {
		b.cond.Wait()
	}
}
