package collection

import "reflect"

type queue[T any] struct {
	elems []T
	// 元素包含引用时, 出队后清零以便垃圾回收
	holdsRef bool
}

func NewQueue[T any]() Queue[T] {
	return &queue[T]{
		holdsRef: holdsReference(reflect.TypeFor[T]()),
	}
}

func holdsReference(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface, reflect.Chan, reflect.Func, reflect.String:
		return true
	}

	return false
}

func (q *queue[T]) Push(e T) {
	q.elems = append(q.elems, e)
}

func (q *queue[T]) Pop() T {
	if len(q.elems) == 0 {
		return *new(T)
	}

	e := q.elems[0]
	if q.holdsRef {
		q.elems[0] = *new(T)
	}
	q.elems = q.elems[1:]

	return e
}

func (q *queue[T]) Peek() T {
	if len(q.elems) == 0 {
		return *new(T)
	}

	return q.elems[0]
}

func (q *queue[T]) Size() int {
	return len(q.elems)
}

func (q *queue[T]) Empty() bool {
	return len(q.elems) == 0
}

func (q *queue[T]) Clear() {
	q.elems = nil
}
