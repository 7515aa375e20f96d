package queue

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// ErrPoolStopped is returned by Do once the pool's context has been cancelled.
var ErrPoolStopped = errors.New("worker pool stopped")

// ErrJobPanicked is returned by Do when the job panicked instead of returning.
var ErrJobPanicked = errors.New("worker job panicked")

type task struct {
	fn   func()
	done chan struct{}
	// err is written by the worker before done is closed.
	err error
}

// Pool runs CPU-bound jobs on a fixed number of workers so that a burst of
// requests cannot occupy more cores than configured.
type Pool struct {
	tasks   chan *task
	size    int
	depth   prometheus.Gauge
	log     zerolog.Logger
	stopped chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// NewPool creates a Pool with size workers. If size <= 0, runtime.NumCPU()
// is used. depth may be nil.
func NewPool(size int, depth prometheus.Gauge, log zerolog.Logger) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	return &Pool{
		tasks:   make(chan *task),
		size:    size,
		depth:   depth,
		log:     log,
		stopped: make(chan struct{}),
	}
}

// Size reports the number of workers.
func (p *Pool) Size() int { return p.size }

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.runWorker(ctx, i)
	}
	go func() {
		<-ctx.Done()
		p.once.Do(func() { close(p.stopped) })
	}()
}

// Wait blocks until every worker has returned.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Do hands fn to a free worker and blocks until it has run. Cancelling ctx
// only aborts the wait for a worker; a job that has started runs to the end.
// A job that panics yields ErrJobPanicked.
func (p *Pool) Do(ctx context.Context, fn func()) error {
	t := &task{fn: fn, done: make(chan struct{})}

	if p.depth != nil {
		p.depth.Inc()
	}
	select {
	case p.tasks <- t:
		if p.depth != nil {
			p.depth.Dec()
		}
	case <-ctx.Done():
		if p.depth != nil {
			p.depth.Dec()
		}
		return ctx.Err()
	case <-p.stopped:
		if p.depth != nil {
			p.depth.Dec()
		}
		return ErrPoolStopped
	}

	<-t.done
	return t.err
}

func (p *Pool) runWorker(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-p.tasks:
			p.run(id, t)
		}
	}
}

func (p *Pool) run(id int, t *task) {
	defer close(t.done)
	defer func() {
		if r := recover(); r != nil {
			t.err = fmt.Errorf("%w: %v", ErrJobPanicked, r)
			p.log.Error().Interface("panic", r).Int("worker_id", id).Msg("worker job panicked")
		}
	}()
	t.fn()
}
