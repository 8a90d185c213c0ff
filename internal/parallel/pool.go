// Package parallel runs batches of independent jobs on a fixed set of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Pool is a fixed set of worker goroutines fed from one queue.
//
// Pool is safe for concurrent use.
type Pool struct {
	workers int
	jobs    chan func()

	// mu guards closed; Run holds it shared while queueing so Close never
	// closes jobs under a sender.
	mu     sync.RWMutex
	closed bool

	wg sync.WaitGroup
}

// NewPool starts a pool with the given number of workers. If workers is 0
// or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers: workers,
		jobs:    make(chan func(), max(workers*4, 8)),
	}
	p.wg.Add(workers)
	for range workers {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
			}
		}()
	}
	return p
}

// Run executes every job and waits for all of them to finish. After Close
// the jobs run on the calling goroutine.
func (p *Pool) Run(jobs []func()) {
	if len(jobs) == 0 {
		return
	}

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		for _, job := range jobs {
			job()
		}
		return
	}

	var done sync.WaitGroup
	done.Add(len(jobs))
	for _, job := range jobs {
		p.jobs <- func() {
			defer done.Done()
			job()
		}
	}
	p.mu.RUnlock()
	done.Wait()
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// Close stops the workers after the queued jobs have run. It is safe to
// call more than once.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
