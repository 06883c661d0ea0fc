package starlark

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/leapstack-labs/showcase/pkg/core"
	"github.com/leapstack-labs/showcase/pkg/showcase"
)

// RenderContext is the "ctx" argument of a story render function.
//
// Accessible as:
//
//	ctx.has_zoom                      zoom toggle of the viewer
//	ctx.controls                      dict of toolbar control values
//	ctx.toolbar(*html)                puts raw HTML controls in the toolbar
//	ctx.select(name, options, default=, label=)
//	                                  puts a select in the toolbar, returns its value
type RenderContext struct {
	opts    core.RenderOptions
	toolbar []core.Renderable
}

// NewRenderContext wraps the options of one render call.
func NewRenderContext(opts core.RenderOptions) *RenderContext {
	return &RenderContext{opts: opts}
}

// ToStarlark builds the ctx struct.
func (rc *RenderContext) ToStarlark() (starlark.Value, error) {
	controls, err := GoToStarlark(rc.controls())
	if err != nil {
		return nil, fmt.Errorf("controls: %w", err)
	}
	return starlarkstruct.FromStringDict(starlark.String("ctx"), starlark.StringDict{
		"has_zoom": starlark.Bool(rc.opts.HasZoom),
		"controls": controls,
		"toolbar":  starlark.NewBuiltin("toolbar", rc.toolbarBuiltin),
		"select":   starlark.NewBuiltin("select", rc.selectBuiltin),
	}), nil
}

// Flush hands the collected toolbar controls to the runtime's slot.
func (rc *RenderContext) Flush() {
	if len(rc.toolbar) == 0 || rc.opts.Toolbar == nil {
		return
	}
	rc.opts.Toolbar.Set(rc.toolbar...)
}

// Toolbar returns the controls collected so far.
func (rc *RenderContext) Toolbar() []core.Renderable {
	return rc.toolbar
}

func (rc *RenderContext) controls() map[string]string {
	if rc.opts.Controls == nil {
		return map[string]string{}
	}
	return rc.opts.Controls
}

func (rc *RenderContext) toolbarBuiltin(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
	}
	for i, arg := range args {
		s, ok := starlark.AsString(arg)
		if !ok {
			return nil, fmt.Errorf("%s: argument %d: want string, got %s", b.Name(), i+1, arg.Type())
		}
		rc.toolbar = append(rc.toolbar, core.HTML(s))
	}
	return starlark.None, nil
}

func (rc *RenderContext) selectBuiltin(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		name, def, label string
		list             starlark.Indexable
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"name", &name, "options", &list, "default?", &def, "label?", &label); err != nil {
		return nil, err
	}

	options := make([]string, list.Len())
	for i := range options {
		s, ok := starlark.AsString(list.Index(i))
		if !ok {
			return nil, fmt.Errorf("%s: option %d: want string, got %s", b.Name(), i, list.Index(i).Type())
		}
		options[i] = s
	}
	if def == "" && len(options) > 0 {
		def = options[0]
	}
	if label == "" {
		label = name
	}

	value, control := showcase.UseSelect(rc.opts, name, label, options, def)
	rc.toolbar = append(rc.toolbar, control)
	return starlark.String(value), nil
}
