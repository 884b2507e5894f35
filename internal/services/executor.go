package services

import (
	"reviewreminder/internal/providers"
	"reviewreminder/internal/services/interfaces"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// SerialQueue runs dispatched work one item at a time on its own goroutine.
// A panic in a task is logged and does not stop the queue.
type SerialQueue struct {
	name   string
	tasks  chan func()
	done   chan struct{}
	closed atomic.Bool
	mu     sync.RWMutex
	logger providers.Logger
}

func NewSerialQueue(name string, capacity int, logger providers.Logger) *SerialQueue {
	q := &SerialQueue{
		name:   name,
		tasks:  make(chan func(), capacity),
		done:   make(chan struct{}),
		logger: logger,
	}
	go q.run()
	return q
}

func (q *SerialQueue) run() {
	defer close(q.done)
	for fn := range q.tasks {
		q.runSafely(fn)
	}
}

func (q *SerialQueue) runSafely(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Errorf(providers.TypeSession, "Task on %s queue panicked: %v", q.name, r)
		}
	}()
	fn()
}

// Dispatch enqueues fn. Work dispatched after Close is dropped.
func (q *SerialQueue) Dispatch(fn func()) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed.Load() {
		q.logger.Debugf(providers.TypeSession, "Dropping task on closed %s queue", q.name)
		return
	}
	q.tasks <- fn
}

// Close stops accepting work and waits for queued tasks to finish.
func (q *SerialQueue) Close() {
	q.mu.Lock()
	if q.closed.Swap(true) {
		q.mu.Unlock()
		return
	}
	close(q.tasks)
	q.mu.Unlock()
	<-q.done
}

// InlineExecutor runs work on the caller's goroutine.
type InlineExecutor struct{}

func (InlineExecutor) Dispatch(fn func()) { fn() }

// Executors pairs the evaluation worker with the context that owns presentation.
type Executors struct {
	Eval interfaces.Executor
	UI   interfaces.Executor
}

func NewExecutors(logger providers.Logger) (*Executors, func()) {
	eval := NewSerialQueue("eval", 64, logger)
	ui := NewSerialQueue("ui", 16, logger)
	return &Executors{Eval: eval, UI: ui}, func() {
		eval.Close()
		ui.Close()
	}
}

// NewInlineExecutors runs everything synchronously. Used by tests and one-shot commands.
func NewInlineExecutors() *Executors {
	return &Executors{Eval: InlineExecutor{}, UI: InlineExecutor{}}
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func NewSystemClock() interfaces.Clock {
	return SystemClock{}
}
