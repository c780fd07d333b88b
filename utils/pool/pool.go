package pool

import (
	"sync"
)

// Pool runs a job for every value read from a channel, with at most a
// fixed number of jobs running at the same time.
type Pool[T any] struct {
	workerQ chan struct{}
	f       func(input T)
	wg      sync.WaitGroup
}

// NewPool creates a new worker pool with a goroutine limit
// and a job function to execute on the incoming data.
func NewPool[T any](routines int, job func(input T)) *Pool[T] {
	if routines < 1 {
		routines = 1
	}
	q := make(chan struct{}, routines)
	for i := 0; i < routines; i++ {
		q <- struct{}{}
	}
	return &Pool[T]{
		workerQ: q,
		f:       job,
	}
}

// Work is a blocking call that starts the
// pool working on a data input channel.
func (p *Pool[T]) Work(c <-chan T) {
	for v := range c {
		<-p.workerQ
		p.wg.Add(1)
		go func(input T) {
			defer p.wg.Done()
			p.f(input)
			p.workerQ <- struct{}{}
		}(v)
	}
}

// Wait waits until the pool is finished.
func (p *Pool[T]) Wait() {
	p.wg.Wait()
}
