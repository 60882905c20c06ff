package sync

import "sync"

// WaitGroup 在 sync.WaitGroup 基础上提供 Go 方法
type WaitGroup struct {
	wg sync.WaitGroup
}

// Go 在新的goroutine中执行fn, 并计入等待
func (w *WaitGroup) Go(fn func()) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		fn()
	}()
}

func (w *WaitGroup) Wait() {
	w.wg.Wait()
}
