package showcase

import (
	"context"
	"sync"

	"github.com/leapstack-labs/showcase/pkg/core"
)

// Session drives a Runtime for a long-lived viewer such as a browser tab.
// It runs loads on background goroutines and serializes every state change.
type Session struct {
	mu sync.Mutex
	rt *Runtime

	ctx      context.Context
	onChange func()
	wg       sync.WaitGroup
}

// NewSession wraps rt. onChange, if set, is called after changes the caller
// does not make itself: settled loads and export progress. ctx bounds the loads.
func NewSession(ctx context.Context, rt *Runtime, onChange func()) *Session {
	return &Session{rt: rt, ctx: ctx, onChange: onChange}
}

// Do runs fn with exclusive access to the runtime. A request fn returns is started.
func (s *Session) Do(fn func(rt *Runtime) *LoadRequest) {
	s.mu.Lock()
	req := fn(s.rt)
	s.mu.Unlock()
	s.start(req)
}

// With runs fn with exclusive access to the runtime.
func (s *Session) With(fn func(rt *Runtime)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.rt)
}

// Open is Runtime.Open with the load started in the background.
func (s *Session) Open(name string) {
	s.Do(func(rt *Runtime) *LoadRequest { return rt.Open(name) })
}

// Sync is Runtime.Sync with any refresh started in the background.
func (s *Session) Sync(reg *core.Registry, token RenderToken) {
	s.Do(func(rt *Runtime) *LoadRequest { return rt.Sync(reg, token) })
}

// View snapshots the runtime and renders the active story.
func (s *Session) View(ctx context.Context) (View, Preview) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rt.View(), s.rt.Render(ctx)
}

// Export renders under the lock, then captures without holding it so the
// viewer stays responsive. The export guard is released on every path.
func (s *Session) Export(ctx context.Context, c Capturer) (Download, error) {
	s.mu.Lock()
	job, err := s.rt.BeginExport()
	if err != nil {
		s.mu.Unlock()
		return Download{}, err
	}
	preview := s.rt.Render(ctx)
	s.mu.Unlock()
	s.notify()

	defer func() {
		s.mu.Lock()
		s.rt.EndExport()
		s.mu.Unlock()
		s.notify()
	}()
	return job.Run(ctx, c, preview)
}

// Wait blocks until every started load has settled.
func (s *Session) Wait() {
	s.wg.Wait()
}

func (s *Session) start(req *LoadRequest) {
	if req == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		res := req.Run(s.ctx)

		s.mu.Lock()
		changed := s.rt.Settle(res)
		s.mu.Unlock()
		if changed {
			s.notify()
		}
	}()
}

func (s *Session) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}
