// Package starlark runs *.stories.star scripts and adapts their stories to the
// showcase data model.
package starlark

import (
	"context"
	"fmt"
	"io"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/leapstack-labs/showcase/pkg/core"
)

// StoriesGlobal is the top-level name a script assigns its variants to.
const StoriesGlobal = "stories"

// Script is an executed story script.
type Script struct {
	path    string
	globals starlark.StringDict
	pool    *ThreadPool
}

// Exec runs a story script's top level. pool may be nil.
func Exec(ctx context.Context, path string, src []byte, pool *ThreadPool) (*Script, error) {
	if pool == nil {
		pool = NewThreadPool(0)
	}
	s := &Script{path: path, pool: pool}

	err := pool.Run(ctx, "load:"+path, func(thread *starlark.Thread) error {
		globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, path, src, Predeclared())
		if err != nil {
			return err
		}
		s.globals = globals
		return nil
	})
	if err != nil {
		return nil, &EvalError{File: path, Message: errorMessage(err), Err: err}
	}
	return s, nil
}

// Stories converts the script's stories dict into a raw story map.
//
// A variant is an HTML string, a render function taking ctx (or nothing), or a
// dict with title, description, dark and render keys.
func (s *Script) Stories() (core.RawStoryMap, error) {
	v, ok := s.globals[StoriesGlobal]
	if !ok {
		return nil, &EvalError{File: s.path, Message: "no top-level \"stories\" dict"}
	}
	dict, ok := v.(*starlark.Dict)
	if !ok {
		return nil, &EvalError{File: s.path, Message: fmt.Sprintf("\"stories\" must be a dict, got %s", v.Type())}
	}

	raw := make(core.RawStoryMap, dict.Len())
	for _, item := range dict.Items() {
		id, ok := starlark.AsString(item[0])
		if !ok {
			return nil, &EvalError{File: s.path, Message: fmt.Sprintf("variant id must be a string, got %s", item[0].Type())}
		}
		entry, err := s.entry(id, item[1])
		if err != nil {
			return nil, &EvalError{File: s.path, Variant: id, Message: err.Error()}
		}
		raw[id] = entry
	}
	return raw, nil
}

func (s *Script) entry(id string, v starlark.Value) (core.Entry, error) {
	switch val := v.(type) {
	case starlark.String:
		return string(val), nil
	case starlark.Callable:
		return s.renderer(id, val), nil
	case *starlark.Dict:
		return s.record(id, val)
	default:
		return nil, fmt.Errorf("unsupported story value %s", v.Type())
	}
}

func (s *Script) record(id string, dict *starlark.Dict) (core.Story, error) {
	fields, err := ToGo(dict)
	if err != nil {
		return core.Story{}, err
	}

	var story core.Story
	for key, value := range fields.(map[string]any) {
		switch key {
		case "title":
			story.Title, err = asString(key, value)
		case "description":
			story.Description, err = asString(key, value)
		case "dark":
			b, ok := value.(bool)
			if !ok {
				err = fmt.Errorf("dark must be a bool, got %T", value)
			}
			story.Dark = b
		case "render":
			switch r := value.(type) {
			case string:
				story.Render = core.HTML(r)
			case starlark.Callable:
				story.Render = s.renderer(id, r)
			default:
				err = fmt.Errorf("render must be a function or string, got %T", value)
			}
		default:
			err = fmt.Errorf("unknown story field %q", key)
		}
		if err != nil {
			return core.Story{}, err
		}
	}
	return story, nil
}

func (s *Script) renderer(id string, fn starlark.Callable) core.RenderFunc {
	return func(ctx context.Context, w io.Writer, opts core.RenderOptions) error {
		rc := NewRenderContext(opts)
		var out string

		err := s.pool.Run(ctx, s.path+":"+id, func(thread *starlark.Thread) error {
			args := starlark.Tuple{}
			if f, ok := fn.(*starlark.Function); !ok || f.NumParams() > 0 {
				sctx, err := rc.ToStarlark()
				if err != nil {
					return err
				}
				args = starlark.Tuple{sctx}
			}
			v, err := starlark.Call(thread, fn, args, nil)
			if err != nil {
				return err
			}
			str, ok := starlark.AsString(v)
			if !ok {
				return fmt.Errorf("render returned %s, want string", v.Type())
			}
			out = str
			return nil
		})
		if err != nil {
			return &EvalError{File: s.path, Variant: id, Message: errorMessage(err), Err: err}
		}

		rc.Flush()
		_, err = io.WriteString(w, out)
		return err
	}
}

func asString(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, v)
	}
	return s, nil
}

// errorMessage keeps the Starlark backtrace, which carries file:line positions.
func errorMessage(err error) string {
	if evalErr, ok := err.(*starlark.EvalError); ok {
		return evalErr.Backtrace()
	}
	return err.Error()
}

// EvalError reports a failure executing a story script.
type EvalError struct {
	File    string
	Variant string
	Message string
	Err     error
}

func (e *EvalError) Unwrap() error { return e.Err }

func (e *EvalError) Error() string {
	if e.Variant != "" {
		return fmt.Sprintf("%s: variant %q: %s", e.File, e.Variant, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}
