package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/showcase/pkg/core"
	"github.com/leapstack-labs/showcase/pkg/showcase"
)

func static(raw core.RawStoryMap) core.Loader {
	return func(context.Context) (core.RawStoryMap, error) { return raw, nil }
}

func testRegistry(t *testing.T) *core.Registry {
	t.Helper()
	reg, err := core.NewRegistry(
		core.ModuleDescriptor{Group: "atoms", Name: "Button", Loader: static(core.RawStoryMap{
			"default": "<button>Press</button>",
			"primary": core.Story{Title: "Primary", Render: core.HTML("<button>Primary</button>")},
		})},
		core.ModuleDescriptor{Group: "atoms", Name: "Badge", Loader: static(core.RawStoryMap{
			"new": "<span>New</span>",
		})},
		core.ModuleDescriptor{Group: "pages", Name: "Broken", Loader: func(context.Context) (core.RawStoryMap, error) {
			return nil, errors.New("syntax error")
		}},
	)
	require.NoError(t, err)
	return reg
}

// helper to create a model over the test registry.
func newTestModel(t *testing.T, c showcase.Capturer) Model {
	t.Helper()
	ascii := termenv.Ascii
	m := New(context.Background(), Config{
		Runtime:  showcase.New(testRegistry(t), 1, showcase.Options{}),
		Capturer: c,
		OutDir:   t.TempDir(),
		Profile:  &ascii,
	})
	t.Cleanup(m.zones.Close)
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

// helper to send a message through Update and return the updated model.
func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

// run executes cmd and feeds its message back, as the program loop would.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = update(m, cmd())
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEnterOpensModuleAndListsVariants(t *testing.T) {
	m := newTestModel(t, nil)

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, showcase.PhaseLoading, m.rt.Phase())

	m = run(t, m, cmd)
	v := m.rt.View()
	assert.Equal(t, showcase.PhaseOpen, v.Phase)
	assert.Equal(t, "Button", v.Module)
	assert.Equal(t, "default", v.Active)

	assert.Equal(t, []item{
		{module: "Button"},
		{module: "Button", variant: "default"},
		{module: "Button", variant: "primary"},
		{module: "Badge"},
		{module: "Broken"},
	}, m.items())
	assert.Contains(t, m.viewport.View(), "Press")
}

func TestEnterOnOpenModuleCloses(t *testing.T) {
	m := newTestModel(t, nil)
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	m, cmd = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, showcase.PhaseIdle, m.rt.Phase())
	assert.Len(t, m.items(), 3)
}

func TestEnterOnVariantRowSelectsIt(t *testing.T) {
	m := newTestModel(t, nil)
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "primary", m.rt.View().Active)
	assert.Contains(t, m.viewport.View(), "Primary")
}

func TestArrowKeysCycleVariants(t *testing.T) {
	m := newTestModel(t, nil)
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "primary", m.rt.View().Active)
	assert.Equal(t, item{module: "Button", variant: "primary"}, m.items()[m.cursor])

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "default", m.rt.View().Active, "wraps around")

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "primary", m.rt.View().Active)
}

func TestCursorStaysInBounds(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)

	for range 10 {
		m, _ = update(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 2, m.cursor)
}

func TestFlagKeysToggle(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(m, keyRunes("b"))
	m, _ = update(m, keyRunes("z"))
	m, _ = update(m, keyRunes("s"))
	m, _ = update(m, keyRunes("z"))

	assert.Equal(t, showcase.ViewFlags{ShowBackground: true, ShadowBoxActive: true}, m.rt.Flags())
}

func TestLoadFailureShowsError(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	assert.Equal(t, showcase.PhaseIdle, m.rt.Phase())
	assert.True(t, m.statusErr)
	assert.Contains(t, m.View(), "syntax error")
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	m := newTestModel(t, nil)
	m, first := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyDown})
	m, second := update(m, tea.KeyMsg{Type: tea.KeyEnter})

	m = run(t, m, second)
	m = run(t, m, first)
	assert.Equal(t, "Badge", m.rt.View().Module)
}

func TestExportWritesFile(t *testing.T) {
	var gotScale int
	c := showcase.CaptureFunc(func(_ context.Context, p showcase.Preview, scale int) ([]byte, error) {
		gotScale = scale
		return []byte("png:" + p.HTML), nil
	})
	m := newTestModel(t, c)
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	m, cmd = update(m, keyRunes("e"))
	require.NotNil(t, cmd)
	assert.True(t, m.rt.Exporting())
	assert.Equal(t, "exporting Button__default.png…", m.status)
	assert.Contains(t, m.View(), "exporting Button__default.png")

	m = run(t, m, cmd)
	assert.False(t, m.rt.Exporting())
	assert.False(t, m.statusErr, m.status)
	assert.Equal(t, 1, gotScale)

	data, err := os.ReadFile(filepath.Join(m.outDir, "Button__default.png"))
	require.NoError(t, err)
	assert.Equal(t, "png:<button>Press</button>", string(data))
}

func TestExportFailureReleasesGuard(t *testing.T) {
	c := showcase.CaptureFunc(func(context.Context, showcase.Preview, int) ([]byte, error) {
		return nil, errors.New("no display")
	})
	m := newTestModel(t, c)
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	m, cmd = update(m, keyRunes("e"))
	m = run(t, m, cmd)
	assert.False(t, m.rt.Exporting())
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "no display")
}

func TestExportWithoutVariant(t *testing.T) {
	c := showcase.CaptureFunc(func(context.Context, showcase.Preview, int) ([]byte, error) {
		t.Fatal("capture must not run")
		return nil, nil
	})
	m := newTestModel(t, c)

	m, cmd := update(m, keyRunes("e"))
	assert.Nil(t, cmd)
	assert.True(t, m.statusErr)
	assert.False(t, m.rt.Exporting())
}

func TestUpdateRefreshesOpenModule(t *testing.T) {
	updates := make(chan Update, 1)
	ascii := termenv.Ascii
	reg := testRegistry(t)
	m := New(context.Background(), Config{
		Runtime: showcase.New(reg, 1, showcase.Options{}),
		Updates: updates,
		Profile: &ascii,
	})
	t.Cleanup(m.zones.Close)

	init := m.Init()
	require.NotNil(t, init)

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = run(t, m, cmd)

	updates <- Update{Registry: reg, Token: 2}
	m, cmd = update(m, init())
	require.NotNil(t, cmd)
	v := m.rt.View()
	assert.True(t, v.Refreshing)
	assert.Equal(t, showcase.PhaseOpen, v.Phase, "module stays open while refreshing")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := update(m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewShowsSidebarAndFlags(t *testing.T) {
	m := newTestModel(t, nil)
	out := m.View()
	assert.Contains(t, out, "ATOMS")
	assert.Contains(t, out, "Button")
	assert.Contains(t, out, "Select a component")
	assert.Contains(t, out, "○ zoom")

	m, _ = update(m, keyRunes("z"))
	assert.Contains(t, m.View(), "● zoom")
}
