// Package workerpool drains a bounded MPSC task queue with a fixed set of
// worker goroutines, in the fire-and-forget style of
// ejyy-femto_go's message_bus.go distributor loop generalized from a single
// hardcoded event switch to an arbitrary Task.
package workerpool

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/luxfi/log"

	"github.com/luxfeed/hftcore/pkg/ring"
)

// Task is a unit of work submitted to the pool.
type Task func()

// Pool is a fixed set of worker goroutines draining a shared bounded MPSC
// queue of Tasks. Submit never blocks and never grows the queue; it fails
// when the queue is full.
type Pool struct {
	queue   *ring.MPSC[Task]
	workers int
	logger  log.Logger

	stopped atomic.Bool
	wg      sync.WaitGroup
	errors  atomic.Uint64
}

// New constructs and starts a Pool with numWorkers goroutines draining a
// queue of the given capacity.
func New(numWorkers, queueCapacity int, logger log.Logger) *Pool {
	if logger == nil {
		logger = log.Root().New("module", "workerpool")
	}
	p := &Pool{
		queue:   ring.NewMPSC[Task](queueCapacity),
		workers: numWorkers,
		logger:  logger,
	}
	p.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go p.run(i)
	}
	return p
}

func (p *Pool) run(id int) {
	defer p.wg.Done()
	for {
		if p.stopped.Load() {
			return
		}
		task, ok := p.queue.Pop()
		if !ok {
			time.Sleep(50 * time.Microsecond) // yield when the queue is empty
			continue
		}
		p.execute(task)
	}
}

func (p *Pool) execute(task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.errors.Add(1)
			p.logger.Error("worker task panicked", "recovered", r)
		}
	}()
	task()
}

// Submit enqueues task. It fails only when the queue is full; the caller
// owns retry policy.
func (p *Pool) Submit(task Task) bool {
	return p.queue.Push(task)
}

// ErrorCount returns the number of tasks that panicked.
func (p *Pool) ErrorCount() uint64 {
	return p.errors.Load()
}

// Stop sets the stop flag and waits for workers to observe it between
// tasks. Tasks already in flight complete; tasks still queued are
// abandoned.
func (p *Pool) Stop() {
	if p.stopped.CompareAndSwap(false, true) {
		p.wg.Wait()
	}
}
