package qsweep

import (
	"context"
	"runtime"
	"sync"

	"github.com/theapemachine/errnie"
)

/*
Pool is a fixed set of worker goroutines sharing memory with the caller.
Run is a single fan-out/fan-in barrier: every worker gets one contiguous slice
of the range and Run returns only after all of them are done.
*/
type Pool struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	runMu   sync.Mutex // serializes Run and Close, guards closed
	closed  bool
	workers []*Worker
}

// NewPool starts workers goroutines. workers <= 0 means GOMAXPROCS.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pool{
		ctx:     ctx,
		cancel:  cancel,
		workers: make([]*Worker, 0, workers),
	}

	for rank := 0; rank < workers; rank++ {
		p.startWorker(rank)
	}

	// Cancelling the parent closes the pool once any running sweep is done.
	go func() {
		<-ctx.Done()
		p.Close()
	}()

	errnie.Info("started pool with %d workers", workers)
	return p
}

func (p *Pool) startWorker(rank int) {
	worker := &Worker{
		pool: p,
		rank: rank,
		jobs: make(chan Job, 1),
	}
	p.workers = append(p.workers, worker)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		worker.run()
	}()
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

/*
Run partitions [0, total) into contiguous slices, at most one per worker, calls
fn for each slice on its worker, and waits for all of them. Calls on the same
pool are serialized. A closed pool returns ErrPoolClosed without calling fn.
*/
func (p *Pool) Run(total uint64, fn func(rank int, lo, hi uint64)) error {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	if p.closed || p.ctx.Err() != nil {
		return ErrPoolClosed
	}

	var done sync.WaitGroup
	for rank, s := range split(total, len(p.workers)) {
		done.Add(1)
		p.workers[rank].jobs <- Job{Rank: rank, Lo: s[0], Hi: s[1], Fn: fn, done: &done}
	}
	done.Wait()

	return nil
}

// Close stops the workers and waits for them to exit.
func (p *Pool) Close() {
	if p == nil {
		return
	}

	p.runMu.Lock()
	defer p.runMu.Unlock()

	if p.closed {
		return
	}
	p.closed = true

	for _, worker := range p.workers {
		close(worker.jobs)
	}
	p.wg.Wait()
	p.cancel()

	errnie.Info("closed pool with %d workers", len(p.workers))
}
