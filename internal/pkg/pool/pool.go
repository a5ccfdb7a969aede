package pool

import "sync"

// Pool runs submitted funcs on a fixed set of workers. Submit after Close is
// a no-op.
type Pool struct {
	jobs      chan func()
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeCh   chan struct{}
}

func New(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{
		jobs:    make(chan func(), n*2),
		closeCh: make(chan struct{}),
	}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.closeCh:
			return
		case f := <-p.jobs:
			if f != nil {
				f()
			}
		}
	}
}

func (p *Pool) Submit(f func()) {
	select {
	case p.jobs <- f:
	case <-p.closeCh:
	}
}

// Close stops the workers. Jobs still queued are dropped.
func (p *Pool) Close() {
	p.closeOnce.Do(func() { close(p.closeCh) })
	p.wg.Wait()
}
