// Package tui is a terminal front end for the showcase runtime.
//
// The bubbletea loop owns the Runtime: module loads and exports run as
// commands and their results come back as messages, so the runtime is only
// ever touched from Update.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"

	"github.com/leapstack-labs/showcase/internal/capture"
	"github.com/leapstack-labs/showcase/pkg/core"
	"github.com/leapstack-labs/showcase/pkg/showcase"
)

// Update is a registry change pushed by a watcher.
type Update struct {
	Registry *core.Registry
	Token    showcase.RenderToken
}

// Config configures the terminal browser.
type Config struct {
	Runtime  *showcase.Runtime
	Capturer showcase.Capturer
	// OutDir receives exported PNG files
	OutDir string
	// Updates, if set, delivers registry changes
	Updates <-chan Update
	// Profile overrides the detected color profile
	Profile *termenv.Profile
	Logger  *slog.Logger
}

type loadedMsg struct{ res showcase.LoadResult }

type updateMsg struct{ u Update }

type exportedMsg struct {
	path string
	err  error
}

// item is one selectable sidebar row: a module, or a variant of the open module.
type item struct {
	module  string
	variant string
}

func (i item) zoneID() string {
	if i.variant == "" {
		return "mod:" + i.module
	}
	return "var:" + i.module + ":" + i.variant
}

// Model is the bubbletea model of the terminal browser.
type Model struct {
	ctx      context.Context
	rt       *showcase.Runtime
	capturer showcase.Capturer
	outDir   string
	updates  <-chan Update
	logger   *slog.Logger

	keys     keyMap
	help     help.Model
	styles   styles
	zones    *zone.Manager
	viewport viewport.Model

	cursor    int
	width     int
	height    int
	status    string
	statusErr bool
}

// New creates the model. ctx bounds loads and exports.
func New(ctx context.Context, cfg Config) Model {
	if cfg.Profile != nil {
		lipgloss.SetColorProfile(*cfg.Profile)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "."
	}
	return Model{
		ctx:      ctx,
		rt:       cfg.Runtime,
		capturer: cfg.Capturer,
		outDir:   outDir,
		updates:  cfg.Updates,
		logger:   logger,
		keys:     defaultKeyMap(),
		help:     help.New(),
		styles:   defaultStyles(),
		zones:    zone.New(),
		viewport: viewport.New(80, 20),
	}
}

// Run starts the program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, cfg Config) error {
	m := New(ctx, cfg)
	defer m.zones.Close()

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run terminal browser: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.waitForUpdate()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case loadedMsg:
		if m.rt.Settle(msg.res) {
			if msg.res.Err != nil {
				m.setError(msg.res.Err)
			}
			m.follow(item{module: msg.res.Module})
			m.refresh()
		}
		return m, nil

	case updateMsg:
		req := m.rt.Sync(msg.u.Registry, msg.u.Token)
		m.clampCursor()
		m.refresh()
		return m, tea.Batch(m.load(req), m.waitForUpdate())

	case exportedMsg:
		m.rt.EndExport()
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setStatus("exported " + msg.path)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Open):
		items := m.items()
		if m.cursor >= len(items) {
			return m, nil
		}
		return m.activate(items[m.cursor])

	case key.Matches(msg, m.keys.PrevVar):
		m.stepVariant(-1)

	case key.Matches(msg, m.keys.NextVar):
		m.stepVariant(1)

	case key.Matches(msg, m.keys.Background):
		m.rt.Toggle(showcase.FlagBackground)
		m.refresh()

	case key.Matches(msg, m.keys.Zoom):
		m.rt.Toggle(showcase.FlagZoom)
		m.refresh()

	case key.Matches(msg, m.keys.Shadow):
		m.rt.Toggle(showcase.FlagShadow)
		m.refresh()

	case key.Matches(msg, m.keys.Export):
		cmd := m.export()
		return m, cmd

	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height/2)

	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height/2)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	for i, it := range m.items() {
		if m.zones.Get(it.zoneID()).InBounds(msg) {
			m.cursor = i
			return m.activate(it)
		}
	}
	return m, nil
}

// activate opens or closes a module row, or selects a variant row.
func (m Model) activate(it item) (tea.Model, tea.Cmd) {
	m.status = ""
	if it.variant != "" {
		m.rt.SelectVariant(it.variant)
		m.refresh()
		return m, nil
	}
	req := m.rt.Open(it.module)
	m.follow(it)
	m.refresh()
	return m, m.load(req)
}

func (m *Model) stepVariant(delta int) {
	v := m.rt.View()
	if v.Phase != showcase.PhaseOpen || len(v.VariantIDs) == 0 {
		return
	}
	i := 0
	for j, id := range v.VariantIDs {
		if id == v.Active {
			i = j
			break
		}
	}
	i = (i + delta + len(v.VariantIDs)) % len(v.VariantIDs)
	m.rt.SelectVariant(v.VariantIDs[i])
	m.follow(item{module: v.Module, variant: v.VariantIDs[i]})
	m.refresh()
}

// export starts a capture of the active variant. The guard taken here is
// released when exportedMsg arrives, whatever the outcome.
func (m *Model) export() tea.Cmd {
	if m.capturer == nil {
		m.setError(errors.New("export is not available"))
		return nil
	}
	job, err := m.rt.BeginExport()
	if err != nil {
		m.setError(err)
		return nil
	}
	preview := m.rt.Render(m.ctx)
	m.setStatus("exporting " + job.Filename + "…")

	ctx, c, dir := m.ctx, m.capturer, m.outDir
	return func() tea.Msg {
		dl, err := job.Run(ctx, c, preview)
		if err != nil {
			return exportedMsg{err: err}
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportedMsg{err: fmt.Errorf("create output dir: %w", err)}
		}
		path := filepath.Join(dir, dl.Filename)
		if err := os.WriteFile(path, dl.Data, 0o644); err != nil {
			return exportedMsg{err: fmt.Errorf("write export: %w", err)}
		}
		return exportedMsg{path: path}
	}
}

func (m Model) load(req *showcase.LoadRequest) tea.Cmd {
	if req == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return loadedMsg{res: req.Run(ctx)}
	}
}

func (m Model) waitForUpdate() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	updates := m.updates
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return nil
		}
		return updateMsg{u: u}
	}
}

// items lists the selectable sidebar rows in display order.
func (m Model) items() []item {
	v := m.rt.View()
	var out []item
	for _, g := range v.Groups {
		for _, d := range g.Modules {
			out = append(out, item{module: d.Name})
			if v.IsOpen(d.Name) {
				for _, id := range v.VariantIDs {
					out = append(out, item{module: d.Name, variant: id})
				}
			}
		}
	}
	return out
}

// follow moves the cursor to it when it is listed.
func (m *Model) follow(it item) {
	for i, cur := range m.items() {
		if cur == it {
			m.cursor = i
			return
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.items())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(err error) {
	m.logger.Debug("terminal browser error", "error", err)
	m.status, m.statusErr = err.Error(), true
}

// layout sizes the preview viewport from the window size.
func (m *Model) layout() {
	w := m.width - sidebarWidth - 4
	h := m.height - headerHeight - 2
	m.viewport.Width = max(w, 20)
	m.viewport.Height = max(h, 5)
}

// refresh re-renders the active story into the viewport.
func (m *Model) refresh() {
	p := m.rt.Render(m.ctx)
	if p.Empty() {
		m.viewport.SetContent("")
		return
	}
	text, err := capture.Text(p)
	if err != nil {
		text = "Render failed: " + err.Error()
	}
	m.viewport.SetContent(m.stage(text, p))
	m.viewport.GotoTop()
}
