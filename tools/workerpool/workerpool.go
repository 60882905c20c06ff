package workerpool

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	stdsync "sync"
	"sync/atomic"
	"time"

	"github.com/mangohow/fmpmcp/tools/sync"
)

type WorkerPool interface {
	Submit(task func()) error
	WorkerCount() int
	QueueSize() int
	Start() error
	// Shutdown drain为true时, 已入队的任务会被执行完
	Shutdown(drain bool)
	ShutdownWait(drain bool)
}

type RejectPolicy func(pool WorkerPool, task func(), submit func() error) error

var (
	// 创建新的goroutine处理
	NewProcRunsPolicy = func() RejectPolicy {
		return func(pool WorkerPool, task func(), submit func() error) error {
			p, _ := pool.(*workerPool)
			go func() {
				if p != nil {
					p.executeTask(task)
					return
				}
				task()
			}()
			return nil
		}
	}

	// 调用方处理
	CallerRunsPolicy = func() RejectPolicy {
		return func(pool WorkerPool, task func(), submit func() error) error {
			if p, ok := pool.(*workerPool); ok {
				p.executeTask(task)
				return nil
			}

			task()
			return nil
		}
	}

	// 返回错误
	AbortPolicy = func() RejectPolicy {
		return func(pool WorkerPool, task func(), submit func() error) error {
			return ErrTaskQueueFull
		}
	}

	// 休眠一段时间重试几次, 如果还不行, 则使用传入的拒绝策略
	SubmitAfterwardsPolicy = func(retries int, wait time.Duration, rejectPolicy RejectPolicy) RejectPolicy {
		return func(pool WorkerPool, task func(), submit func() error) error {
			var err error
			for i := 0; i < retries; i++ {
				time.Sleep(wait)
				err = submit()
				if errors.Is(err, ErrTaskQueueFull) {
					continue
				}

				return err
			}

			if rejectPolicy != nil {
				return rejectPolicy(pool, task, submit)
			}

			return err
		}
	}
)

const (
	stateInit = iota
	stateRunning
	stateDrain
	stateShutdown
)

var (
	ErrPoolShutdown     = errors.New("worker pool has been shutdown")
	ErrTaskQueueFull    = errors.New("task queue is full")
	ErrPoolStateInvalid = errors.New("worker pool state is invalid")
)

type workerPool struct {
	workerCount   atomic.Int32
	state         atomic.Int32
	mu            stdsync.RWMutex
	minWorker     int
	maxWorker     int
	aliveDuration time.Duration
	taskChan      chan func()
	wg            sync.WaitGroup
	rejectPolicy  RejectPolicy
	panicHandler  func(r any, stack []byte)
}

type Option func(*workerPool)

func WithAliveDuration(duration time.Duration) Option {
	return func(pool *workerPool) {
		pool.aliveDuration = duration
	}
}

func WithRejectPolicy(rejectPolicy RejectPolicy) Option {
	return func(pool *workerPool) {
		pool.rejectPolicy = rejectPolicy
	}
}

func WithPanicHandler(panicHandler func(any, []byte)) Option {
	return func(pool *workerPool) {
		pool.panicHandler = panicHandler
	}
}

func NewWorkerPool(minWorker, maxWorker, chanSize int, opts ...Option) WorkerPool {
	if minWorker < 0 || maxWorker <= 0 || minWorker > maxWorker || chanSize < 0 {
		panic("invalid parameter")
	}

	pool := &workerPool{
		minWorker: minWorker,
		maxWorker: maxWorker,
		taskChan:  make(chan func(), chanSize),
	}

	for _, opt := range opts {
		opt(pool)
	}

	if pool.rejectPolicy == nil {
		pool.rejectPolicy = AbortPolicy()
	}

	if pool.aliveDuration < 0 {
		panic("invalid aliveDuration")
	} else if pool.aliveDuration == 0 {
		pool.aliveDuration = time.Minute
	}

	return pool
}

func (w *workerPool) Submit(task func()) error {
	// 读锁保证taskChan在发送期间不会被关闭
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.state.Load() != stateRunning {
		return ErrPoolShutdown
	}

	// 队列有积压或没有worker时扩容
	if (len(w.taskChan) > 0 || w.workerCount.Load() == 0) && int(w.workerCount.Load()) < w.maxWorker {
		w.grow()
	}

	select {
	case w.taskChan <- task:
		return nil
	default:
	}

	return w.rejectPolicy(w, task, func() error {
		if w.state.Load() != stateRunning {
			return ErrPoolShutdown
		}
		select {
		case w.taskChan <- task:
			return nil
		default:
			return ErrTaskQueueFull
		}
	})
}

func (w *workerPool) grow() {
	for {
		n := w.workerCount.Load()
		if int(n) >= w.maxWorker {
			return
		}
		if w.workerCount.CompareAndSwap(n, n+1) {
			w.wg.Go(w.worker)
			return
		}
	}
}

func (w *workerPool) WorkerCount() int {
	return int(w.workerCount.Load())
}

func (w *workerPool) QueueSize() int {
	return len(w.taskChan)
}

func (w *workerPool) Start() error {
	if w.state.Load() == stateRunning {
		return nil
	}

	if !w.state.CompareAndSwap(stateInit, stateRunning) {
		return ErrPoolStateInvalid
	}

	for i := 0; i < w.minWorker; i++ {
		w.workerCount.Add(1)
		w.wg.Go(w.worker)
	}

	return nil
}

func (w *workerPool) Shutdown(drain bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.Load() != stateRunning {
		return
	}

	newState := stateShutdown
	if drain {
		newState = stateDrain
	}

	w.state.Store(int32(newState))
	close(w.taskChan)
}

func (w *workerPool) ShutdownWait(drain bool) {
	w.Shutdown(drain)
	w.wg.Wait()
}

func (w *workerPool) worker() {
	timer := time.NewTimer(w.aliveDuration)
	defer timer.Stop()

	for {
		if w.state.Load() == stateShutdown {
			w.workerCount.Add(-1)
			return
		}

		select {
		case task, valid := <-w.taskChan:
			// 通道被关闭且任务已取完
			if !valid || w.state.Load() == stateShutdown {
				w.workerCount.Add(-1)
				return
			}
			w.executeTask(task)
		case <-timer.C:
			// CAS保证并发退出时worker数不会低于minWorker
			n := w.workerCount.Load()
			if int(n) > w.minWorker && w.workerCount.CompareAndSwap(n, n-1) {
				return
			}
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(w.aliveDuration)
	}
}

func (w *workerPool) executeTask(task func()) {
	defer func() {
		if r := recover(); r != nil {
			w.handleCrash(r)
		}
	}()

	task()
}

func (w *workerPool) handleCrash(r any) {
	const size = 64 << 10
	buf := make([]byte, size)
	buf = buf[:runtime.Stack(buf, false)]

	if handler := w.panicHandler; handler != nil {
		handler(r, buf)
		return
	}

	// 打印到 stderr
	_, _ = fmt.Fprintf(os.Stderr, "worker: panic recovered: %v\n%s\n", r, buf)
}
