package collection

type ConcurrentMap[K comparable, V any] interface {
	Set(key K, v V)
	Get(key K) (V, bool)
	Delete(key K)
	Has(key K) bool
	Keys() []K
	Values() []V
	Len() int
}

type Queue[T any] interface {
	Push(T)
	Pop() T
	Peek() T
	Size() int
	Empty() bool
	Clear()
}

// BlockingQueue Pop在队列为空时阻塞, 直到有新元素或队列被关闭
type BlockingQueue[T any] interface {
	Push(T) bool
	// Pop 队列关闭且为空时 ok 返回 false
	Pop() (item T, ok bool)
	Size() int
	Empty() bool
	Shutdown()
	ShutdownWithDrained()
}
