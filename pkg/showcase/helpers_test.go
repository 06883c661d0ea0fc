package showcase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/showcase/pkg/core"
)

func staticLoader(raw core.RawStoryMap) core.Loader {
	return func(context.Context) (core.RawStoryMap, error) {
		return raw, nil
	}
}

func failingLoader(msg string) core.Loader {
	return func(context.Context) (core.RawStoryMap, error) {
		return nil, errors.New(msg)
	}
}

func testRegistry(t *testing.T) *core.Registry {
	t.Helper()
	reg, err := core.NewRegistry(
		core.ModuleDescriptor{Group: "atoms", Name: "Button", Loader: staticLoader(core.RawStoryMap{
			"default": "<button>ok</button>",
			"primary": core.Story{Title: "Primary", Dark: true, Render: core.HTML("<button class=primary>ok</button>")},
		})},
		core.ModuleDescriptor{Group: "atoms", Name: "Badge", Loader: staticLoader(core.RawStoryMap{
			"b": "<span>b</span>",
			"a": "<span>a</span>",
		})},
		core.ModuleDescriptor{Group: "pages", Name: "Broken", Loader: failingLoader("syntax error")},
	)
	require.NoError(t, err)
	return reg
}

// openSync opens name and settles the load synchronously.
func openSync(t *testing.T, rt *Runtime, name string) {
	t.Helper()
	req := rt.Open(name)
	require.NotNil(t, req)
	require.True(t, rt.Settle(req.Run(context.Background())))
}
