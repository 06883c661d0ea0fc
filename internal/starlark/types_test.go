package starlark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"
)

func TestGoToStarlark_RoundTrip(t *testing.T) {
	in := map[string]any{
		"name":  "button",
		"count": int64(3),
		"ratio": 1.5,
		"ok":    true,
		"tags":  []any{"a", "b"},
		"none":  nil,
	}
	sv, err := GoToStarlark(in)
	require.NoError(t, err)

	out, err := ToGo(sv)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestGoToStarlark_Unsupported(t *testing.T) {
	_, err := GoToStarlark(struct{}{})
	assert.Error(t, err)
}

func TestToGo_KeepsCallables(t *testing.T) {
	fn := starlark.NewBuiltin("f", nil)
	out, err := ToGo(fn)
	require.NoError(t, err)
	assert.Same(t, fn, out)

	dict := starlark.NewDict(1)
	require.NoError(t, dict.SetKey(starlark.MakeInt(1), starlark.None))
	_, err = ToGo(dict)
	assert.Error(t, err)
}
