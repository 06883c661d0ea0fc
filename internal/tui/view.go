package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/showcase/pkg/showcase"
)

// headerHeight is the number of lines above the preview.
const headerHeight = 4

// View implements tea.Model.
func (m Model) View() string {
	v := m.rt.View()

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.sidebar.Height(max(m.height-2, 1)).Render(m.sidebar(v)),
		lipgloss.JoinVertical(lipgloss.Left, m.header(v), m.viewport.View()),
	)
	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, body, m.footer()))
}

func (m Model) sidebar(v showcase.View) string {
	var b strings.Builder
	row := 0
	line := func(it item, text string, style lipgloss.Style) {
		if row == m.cursor {
			text = m.styles.cursor.Render(text)
		}
		b.WriteString(m.zones.Mark(it.zoneID(), style.Render(text)))
		b.WriteByte('\n')
		row++
	}

	for _, g := range v.Groups {
		b.WriteString(m.styles.group.Render(strings.ToUpper(g.Name)))
		b.WriteByte('\n')
		for _, d := range g.Modules {
			label := showcase.ModuleLabel(d.Name)
			style := m.styles.module
			switch {
			case v.IsOpen(d.Name):
				label = "▾ " + label
				style = m.styles.openMod
			case v.Loading == d.Name:
				label = "… " + label
			default:
				label = "▸ " + label
			}
			line(item{module: d.Name}, label, style)

			if !v.IsOpen(d.Name) {
				continue
			}
			for _, id := range v.VariantIDs {
				style := m.styles.variant
				if id == v.Active {
					style = m.styles.activeVar
				}
				line(item{module: d.Name, variant: id}, id, style)
			}
		}
	}
	if len(v.Groups) == 0 {
		b.WriteString(m.styles.dim.Render("no stories found"))
	}
	return b.String()
}

func (m Model) header(v showcase.View) string {
	lines := make([]string, 0, headerHeight)
	switch {
	case v.Phase == showcase.PhaseLoading:
		lines = append(lines, m.styles.dim.Render("Loading "+showcase.ModuleLabel(v.Loading)+"…"))
	case v.Phase == showcase.PhaseIdle:
		lines = append(lines, m.styles.dim.Render("Select a component"))
	default:
		title := showcase.ModuleLabel(v.Module)
		if v.Title != "" {
			title += " · " + v.Title
		} else if v.Active != "" {
			title += " · " + v.Active
		}
		lines = append(lines, m.styles.title.Render(title))
	}

	lines = append(lines, m.styles.dim.Render(v.Description))
	lines = append(lines, m.flags(v))
	if v.Error != "" {
		lines = append(lines, m.styles.errText.Render(v.Error))
	} else {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) flags(v showcase.View) string {
	flag := func(label string, on bool) string {
		if on {
			return m.styles.flagOn.Render("● " + label)
		}
		return m.styles.flagOff.Render("○ " + label)
	}
	parts := []string{
		flag("background", v.Flags.ShowBackground),
		flag("zoom", v.Flags.ZoomActive),
		flag("shadow", v.Flags.ShadowBoxActive),
	}
	if v.Dark {
		parts = append(parts, m.styles.dim.Render("dark"))
	}
	switch {
	case v.Exporting:
		parts = append(parts, m.styles.dim.Render("exporting…"))
	case v.ExportDisabled != "":
		parts = append(parts, m.styles.dim.Render("export: "+v.ExportDisabled))
	}
	return strings.Join(parts, "  ")
}

// stage frames the preview text the way the browser stage draws the story.
func (m Model) stage(text string, p showcase.Preview) string {
	style := m.styles.stage
	if p.Dark {
		style = m.styles.stageDark
	}
	if p.Flags.ShowBackground {
		style = style.Margin(1, 2).MarginBackground(lipgloss.Color("#EEEEEE"))
	}
	if p.Flags.ZoomActive {
		style = style.Padding(1, 4)
	}
	out := style.Render(text)
	if p.Flags.ShadowBoxActive {
		out = m.styles.shadow.Render(out)
	}
	return out
}

func (m Model) footer() string {
	status := ""
	if m.status != "" {
		if m.statusErr {
			status = m.styles.errText.Render(m.status)
		} else {
			status = m.styles.okText.Render(m.status)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, m.help.View(m.keys))
}
