package showcase

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/showcase/pkg/core"
)

func TestSession_OpenInBackground(t *testing.T) {
	var changes atomic.Int32
	s := NewSession(context.Background(), New(testRegistry(t), 0, Options{}), func() { changes.Add(1) })

	s.Open("Button")
	s.Wait()

	v, p := s.View(context.Background())
	assert.Equal(t, PhaseOpen, v.Phase)
	assert.Equal(t, "<button>ok</button>", p.HTML)
	assert.Equal(t, int32(1), changes.Load())
}

func TestSession_SlowLoadSuperseded(t *testing.T) {
	release := make(chan struct{})
	reg := core.MustRegistry(
		core.ModuleDescriptor{Group: "atoms", Name: "Slow", Loader: func(context.Context) (core.RawStoryMap, error) {
			<-release
			return core.RawStoryMap{"slow": "slow"}, nil
		}},
		core.ModuleDescriptor{Group: "atoms", Name: "Fast", Loader: staticLoader(core.RawStoryMap{"fast": "fast"})},
	)
	s := NewSession(context.Background(), New(reg, 0, Options{}), nil)

	s.Open("Slow")
	s.Open("Fast")
	close(release)
	s.Wait()

	v, _ := s.View(context.Background())
	assert.Equal(t, "Fast", v.Module)
	assert.Equal(t, "fast", v.Active)
}

func TestSession_ExportReleasesGuard(t *testing.T) {
	s := NewSession(context.Background(), New(testRegistry(t), 0, Options{}), nil)
	s.Open("Badge")
	s.Wait()

	dl, err := s.Export(context.Background(), CaptureFunc(func(_ context.Context, p Preview, _ int) ([]byte, error) {
		assert.Equal(t, "<span>a</span>", p.HTML)
		return []byte("x"), nil
	}))
	require.NoError(t, err)
	assert.Equal(t, "Badge__a.png", dl.Filename)

	s.With(func(rt *Runtime) {
		assert.False(t, rt.Exporting())
	})
}

func TestSession_SyncRefreshes(t *testing.T) {
	var loads atomic.Int32
	reg := core.MustRegistry(core.ModuleDescriptor{Group: "atoms", Name: "M", Loader: func(context.Context) (core.RawStoryMap, error) {
		loads.Add(1)
		return core.RawStoryMap{"default": "d"}, nil
	}})
	s := NewSession(context.Background(), New(reg, 1, Options{}), nil)
	s.Open("M")
	s.Wait()

	s.Sync(reg, 1)
	s.Wait()
	assert.Equal(t, int32(1), loads.Load())

	s.Sync(reg, 2)
	s.Wait()
	assert.Equal(t, int32(2), loads.Load())
}

func TestSession_LoaderPanicRejectsLoad(t *testing.T) {
	var changes atomic.Int32
	reg := core.MustRegistry(core.ModuleDescriptor{Group: "atoms", Name: "Crashy", Loader: func(context.Context) (core.RawStoryMap, error) {
		var m map[string]int
		m["boom"] = 1
		return nil, nil
	}})
	s := NewSession(context.Background(), New(reg, 0, Options{}), func() { changes.Add(1) })

	s.Open("Crashy")
	s.Wait()

	v, p := s.View(context.Background())
	assert.Equal(t, PhaseIdle, v.Phase)
	assert.Contains(t, v.Error, "Crashy")
	assert.Contains(t, v.Error, "loader panicked")
	assert.True(t, p.Empty())
	assert.Equal(t, int32(1), changes.Load())
}
