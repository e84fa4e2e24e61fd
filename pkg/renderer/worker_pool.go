package renderer

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// PassFunc renders the share of one pass owned by a worker
type PassFunc func(worker, pass int) error

// WorkerPool is a fixed set of goroutines that live for a whole render. Each pass is
// started by signalling every worker and ends when all of them report back.
type WorkerPool struct {
	numWorkers int
	work       PassFunc

	triggers []chan int
	done     chan struct{}
	g        *errgroup.Group
	ctx      context.Context
	stopOnce sync.Once
	started  bool
	stopped  bool
}

// NewWorkerPool creates a pool of numWorkers workers running work
func NewWorkerPool(numWorkers int, work PassFunc) (*WorkerPool, error) {
	if numWorkers <= 0 {
		return nil, fmt.Errorf("worker pool needs at least one worker, got %d", numWorkers)
	}
	if work == nil {
		return nil, fmt.Errorf("worker pool needs a pass function")
	}
	return &WorkerPool{numWorkers: numWorkers, work: work}, nil
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Start launches the workers. They idle until RunPass.
func (wp *WorkerPool) Start() {
	if wp.started {
		return
	}
	wp.started = true

	// Workers are stopped by Stop or by a failing worker, never mid-pass by the caller
	wp.g, wp.ctx = errgroup.WithContext(context.Background())
	wp.done = make(chan struct{}, wp.numWorkers)
	wp.triggers = make([]chan int, wp.numWorkers)

	for i := range wp.triggers {
		trigger := make(chan int)
		wp.triggers[i] = trigger
		worker := i
		wp.g.Go(func() error {
			return wp.run(worker, trigger)
		})
	}
}

// run is the main worker loop
func (wp *WorkerPool) run(worker int, trigger <-chan int) error {
	for {
		select {
		case pass, ok := <-trigger:
			if !ok {
				return nil
			}
			if err := wp.runPass(worker, pass); err != nil {
				return err
			}
			wp.done <- struct{}{}
		case <-wp.ctx.Done():
			return nil
		}
	}
}

func (wp *WorkerPool) runPass(worker, pass int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker %d panicked in pass %d: %v", worker, pass, r)
		}
	}()
	return wp.work(worker, pass)
}

// RunPass runs one pass on every worker and blocks until all have finished
func (wp *WorkerPool) RunPass(pass int) error {
	if !wp.started {
		return fmt.Errorf("worker pool not started")
	}
	if wp.stopped {
		return fmt.Errorf("worker pool stopped")
	}

	for _, trigger := range wp.triggers {
		select {
		case trigger <- pass:
		case <-wp.ctx.Done():
			return wp.failure()
		}
	}

	for completed := 0; completed < wp.numWorkers; completed++ {
		select {
		case <-wp.done:
		case <-wp.ctx.Done():
			return wp.failure()
		}
	}
	return nil
}

// failure returns the error of the worker that stopped the pool
func (wp *WorkerPool) failure() error {
	if err := wp.Stop(); err != nil {
		return err
	}
	return fmt.Errorf("worker pool stopped")
}

// Stop shuts the workers down and returns the first worker error, if any. A stopped
// pool cannot run further passes.
func (wp *WorkerPool) Stop() error {
	if !wp.started {
		return nil
	}
	wp.stopped = true
	wp.stopOnce.Do(func() {
		for _, trigger := range wp.triggers {
			close(trigger)
		}
	})
	return wp.g.Wait()
}
