package showcase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/showcase/pkg/core"
)

// Phase is the coarse state of the load/selection state machine.
type Phase int

// Phases of the runtime.
const (
	// PhaseIdle means no module is open.
	PhaseIdle Phase = iota
	// PhaseLoading means a module was requested and its load is in flight.
	PhaseLoading
	// PhaseOpen means a module is loaded and shown.
	PhaseOpen
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseOpen:
		return "open"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// RenderToken is the host's change signal. Only equality is meaningful.
type RenderToken uint64

// LoadRequest is an issued module load. Run it anywhere, then hand the result
// back to the Runtime that issued it through Settle.
type LoadRequest struct {
	Seq     uint64
	Module  string
	Refresh bool

	desc core.ModuleDescriptor
}

// Run invokes the module loader. It touches no runtime state. A loader panic
// settles as a rejected load.
func (r *LoadRequest) Run(ctx context.Context) (res LoadResult) {
	res = LoadResult{Seq: r.Seq, Module: r.Module}
	defer func() {
		if rec := recover(); rec != nil {
			res.Stories = nil
			res.Err = fmt.Errorf("loader panicked: %v", rec)
		}
	}()
	res.Stories, res.Err = r.desc.Load(ctx)
	return res
}

// LoadResult is the settled outcome of a LoadRequest.
type LoadResult struct {
	Seq     uint64
	Module  string
	Stories core.StoryMap
	Err     error
}

type openModule struct {
	name       string
	stories    core.StoryMap
	variantIDs []string
}

// Options configures a Runtime.
type Options struct {
	// AllowZoomExport permits exporting while zoomed; the file gets an "@x2" suffix.
	AllowZoomExport bool
	Logger          *slog.Logger
}

// Runtime is the showcase state machine. It is not safe for concurrent use.
type Runtime struct {
	registry *core.Registry
	groups   []Group
	token    RenderToken

	seq     uint64
	pending *LoadRequest
	open    *openModule
	active  string
	lastErr error

	flags     ViewFlags
	exporting bool

	toolbar  toolbarSlot
	controls map[string]string

	opts   Options
	logger *slog.Logger
}

// New creates an idle runtime over reg. token is the host's current render token.
func New(reg *core.Registry, token RenderToken, opts Options) *Runtime {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runtime{
		registry: reg,
		groups:   Index(reg),
		token:    token,
		controls: make(map[string]string),
		opts:     opts,
		logger:   logger,
	}
}

// Registry returns the registry the runtime currently indexes.
func (rt *Runtime) Registry() *core.Registry {
	return rt.registry
}

// Groups returns the indexed navigation groups.
func (rt *Runtime) Groups() []Group {
	return rt.groups
}

// Phase reports the current state. A module that is being refreshed stays open.
func (rt *Runtime) Phase() Phase {
	switch {
	case rt.open != nil:
		return PhaseOpen
	case rt.pending != nil:
		return PhaseLoading
	default:
		return PhaseIdle
	}
}

// Open handles a click on module name.
//
// Clicking the open module closes it. Otherwise any open module is dropped, the
// runtime enters PhaseLoading and the returned request must be run and settled.
// An unknown name leaves the state unchanged and returns nil.
func (rt *Runtime) Open(name string) *LoadRequest {
	if rt.open != nil && rt.open.name == name {
		rt.Close()
		return nil
	}

	desc, ok := rt.registry.Get(name)
	if !ok {
		rt.logger.Debug("open ignored, module not in registry", "module", name)
		return nil
	}

	rt.open = nil
	rt.active = ""
	rt.lastErr = nil
	rt.resetStory()
	return rt.issue(desc, false)
}

func (rt *Runtime) issue(desc core.ModuleDescriptor, refresh bool) *LoadRequest {
	rt.seq++
	req := &LoadRequest{Seq: rt.seq, Module: desc.Name, Refresh: refresh, desc: desc}
	rt.pending = req
	rt.logger.Debug("load issued", "module", desc.Name, "seq", req.Seq, "refresh", refresh)
	return req
}

// Settle commits a load result. Results of superseded or cancelled requests are
// discarded and Settle returns false; otherwise the state changed and it returns true.
func (rt *Runtime) Settle(res LoadResult) bool {
	if rt.pending == nil || res.Seq != rt.pending.Seq {
		rt.logger.Debug("discarding stale load", "module", res.Module, "seq", res.Seq)
		return false
	}
	rt.pending = nil

	if res.Err != nil {
		rt.open = nil
		rt.active = ""
		rt.resetStory()
		rt.lastErr = fmt.Errorf("load %s: %w", res.Module, res.Err)
		rt.logger.Warn("module load failed", "module", res.Module, "error", res.Err)
		return true
	}

	rt.open = &openModule{
		name:       res.Module,
		stories:    res.Stories,
		variantIDs: res.Stories.VariantIDs(),
	}
	rt.active, _ = res.Stories.DefaultVariantID()
	rt.lastErr = nil
	rt.resetStory()
	return true
}

// Close returns to PhaseIdle. Any in-flight load will be discarded when it settles.
func (rt *Runtime) Close() {
	rt.open = nil
	rt.active = ""
	rt.pending = nil
	rt.resetStory()
}

// SelectVariant activates variant id of the open module without reloading.
// It reports whether id is a variant of the open module; unknown ids change nothing.
func (rt *Runtime) SelectVariant(id string) bool {
	if rt.open == nil {
		return false
	}
	if _, ok := rt.open.stories[id]; !ok {
		rt.logger.Debug("select ignored, no such variant", "module", rt.open.name, "variant", id)
		return false
	}
	if id != rt.active {
		rt.active = id
		rt.resetStory()
	}
	return true
}

// Sync delivers the host's registry and render token.
//
// A changed registry is re-indexed. When the token differs from the last one
// seen and a module is open, its load is re-issued; the result replaces the
// stories and recomputes the default variant. Idle or loading runtimes only
// record the token. If the open module disappeared from the registry it is closed.
func (rt *Runtime) Sync(reg *core.Registry, token RenderToken) *LoadRequest {
	if reg != nil && reg != rt.registry {
		rt.registry = reg
		rt.groups = Index(reg)
	}

	if token == rt.token {
		return nil
	}
	rt.token = token

	if rt.open == nil {
		return nil
	}

	desc, ok := rt.registry.Get(rt.open.name)
	if !ok {
		rt.logger.Info("open module left the registry", "module", rt.open.name)
		rt.Close()
		return nil
	}
	return rt.issue(desc, true)
}

// Token returns the last render token seen.
func (rt *Runtime) Token() RenderToken {
	return rt.token
}

// ActiveStory returns the active variant's story, if the module has it.
func (rt *Runtime) ActiveStory() (core.Story, bool) {
	if rt.open == nil || rt.active == "" {
		return core.Story{}, false
	}
	s, ok := rt.open.stories[rt.active]
	return s, ok
}

// HasActiveVariant reports whether an existing variant is active.
func (rt *Runtime) HasActiveVariant() bool {
	_, ok := rt.ActiveStory()
	return ok
}

// resetStory drops per-story state: the toolbar slot and control values.
func (rt *Runtime) resetStory() {
	rt.toolbar.reset()
	rt.controls = make(map[string]string)
}
