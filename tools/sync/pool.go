package sync

import "sync"

// Pool 泛型版本的 sync.Pool
type Pool[T any] struct {
	p sync.Pool
}

func NewPool[T any](newFn func() T) *Pool[T] {
	return &Pool[T]{
		p: sync.Pool{
			New: func() any {
				return newFn()
			},
		},
	}
}

func (p *Pool[T]) Get() T {
	v := p.p.Get()
	if v == nil {
		return *new(T)
	}

	return v.(T)
}

func (p *Pool[T]) Put(v T) {
	p.p.Put(v)
}
