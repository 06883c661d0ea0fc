package showcase

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/showcase/pkg/core"
)

// Preview is the rendered output of the active story.
type Preview struct {
	Module  string
	Variant string
	// HTML of the story; empty when Missing or Err is set
	HTML string
	// Toolbar holds the HTML of the controls the story put in the toolbar slot
	Toolbar string
	Dark    bool
	Flags   ViewFlags
	// Missing is set when Variant is not a variant of the module
	Missing bool
	// Err is a render failure of the story itself
	Err error
}

// Empty reports whether there is nothing to show.
func (p Preview) Empty() bool {
	return p.Module == ""
}

// Message returns the explanatory text shown instead of the story, if any.
func (p Preview) Message() string {
	switch {
	case p.Missing:
		return "No such variant: " + p.Variant
	case p.Err != nil:
		return "Render failed: " + p.Err.Error()
	default:
		return ""
	}
}

// Render draws the active story and the toolbar slot it fills.
// Story failures are reported in the Preview rather than returned.
func (rt *Runtime) Render(ctx context.Context) Preview {
	if rt.open == nil {
		return Preview{}
	}
	p := Preview{Module: rt.open.name, Variant: rt.active, Flags: rt.flags}

	story, ok := rt.ActiveStory()
	if !ok {
		p.Missing = true
		return p
	}
	p.Dark = story.Dark

	rt.toolbar.controls = nil
	controls := make(map[string]string, len(rt.controls))
	for k, v := range rt.controls {
		controls[k] = v
	}
	opts := core.RenderOptions{
		HasZoom:  rt.flags.ZoomActive,
		Toolbar:  rt.toolbar.writer(),
		Controls: controls,
	}

	var buf bytes.Buffer
	if err := safeRender(ctx, story.Render, &buf, opts); err != nil {
		rt.logger.Warn("story render failed", "module", p.Module, "variant", p.Variant, "error", err)
		p.Err = err
		return p
	}
	p.HTML = buf.String()

	var tb bytes.Buffer
	for _, c := range rt.toolbar.controls {
		if err := safeRender(ctx, c, &tb, opts); err != nil {
			rt.logger.Warn("toolbar control render failed", "module", p.Module, "error", err)
		}
	}
	p.Toolbar = tb.String()
	return p
}

// safeRender keeps a panicking story from taking the host down.
func safeRender(ctx context.Context, r core.Renderable, w io.Writer, opts core.RenderOptions) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("story panicked: %v", rec)
		}
	}()
	if r == nil {
		return fmt.Errorf("nothing to render")
	}
	return r.Render(ctx, w, opts)
}

// Component adapts a templ component constructor to a story renderable.
func Component(fn func(hasZoom bool) templ.Component) core.Renderable {
	return core.RenderFunc(func(ctx context.Context, w io.Writer, opts core.RenderOptions) error {
		return fn(opts.HasZoom).Render(ctx, w)
	})
}
