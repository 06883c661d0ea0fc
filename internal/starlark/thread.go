package starlark

import (
	"context"
	"sync"

	"go.starlark.net/starlark"
)

// ThreadPool reuses Starlark threads across story renders.
type ThreadPool struct {
	mu      sync.Mutex
	threads []*starlark.Thread
	maxSize int
}

// NewThreadPool creates a pool that keeps at most maxSize idle threads.
func NewThreadPool(maxSize int) *ThreadPool {
	if maxSize <= 0 {
		maxSize = 8
	}
	return &ThreadPool{
		threads: make([]*starlark.Thread, 0, maxSize),
		maxSize: maxSize,
	}
}

// Get retrieves a thread from the pool or creates a new one.
// The thread name shows up in Starlark backtraces.
func (p *ThreadPool) Get(name string) *starlark.Thread {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n := len(p.threads); n > 0 {
		thread := p.threads[n-1]
		p.threads = p.threads[:n-1]
		thread.Name = name
		return thread
	}
	return newThread(name)
}

// Put returns a thread to the pool. Threads beyond maxSize are dropped.
func (p *ThreadPool) Put(thread *starlark.Thread) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.threads) < p.maxSize {
		thread.Name = ""
		p.threads = append(p.threads, thread)
	}
}

// Size returns the number of idle threads.
func (p *ThreadPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.threads)
}

// Run calls fn on a pooled thread that is cancelled when ctx is done.
// A cancelled thread cannot be reused and is not returned to the pool.
func (p *ThreadPool) Run(ctx context.Context, name string, fn func(*starlark.Thread) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	thread := p.Get(name)
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})

	err := fn(thread)
	if stop() {
		p.Put(thread)
	}
	return err
}

func newThread(name string) *starlark.Thread {
	return &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, _ string) {
			// stories render HTML, print output goes nowhere
		},
	}
}
