package starlark

import (
	"fmt"
	"html"
	"strings"

	"go.starlark.net/lib/json"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// Predeclared returns the globals every story script sees:
//   - struct(**kw): immutable record, handy for shared props
//   - escape(s): HTML-escapes s
//   - classes(*names): joins the non-empty class names with spaces
//   - json: the Starlark json module
func Predeclared() starlark.StringDict {
	return starlark.StringDict{
		"struct":  starlark.NewBuiltin("struct", starlarkstruct.Make),
		"escape":  starlark.NewBuiltin("escape", escapeBuiltin),
		"classes": starlark.NewBuiltin("classes", classesBuiltin),
		"json":    json.Module,
	}
}

func escapeBuiltin(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var s string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &s); err != nil {
		return nil, err
	}
	return starlark.String(html.EscapeString(s)), nil
}

func classesBuiltin(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
	}
	names := make([]string, 0, len(args))
	for _, arg := range args {
		if !arg.Truth() {
			continue
		}
		s, ok := starlark.AsString(arg)
		if !ok {
			return nil, fmt.Errorf("%s: want string, got %s", b.Name(), arg.Type())
		}
		names = append(names, s)
	}
	return starlark.String(strings.Join(names, " ")), nil
}
