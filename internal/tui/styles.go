package tui

import "github.com/charmbracelet/lipgloss"

const sidebarWidth = 32

var (
	accent = lipgloss.Color("#7C3AED")
	muted  = lipgloss.Color("#6B7280")
	danger = lipgloss.Color("#DC2626")
	ok     = lipgloss.Color("#16A34A")
)

type styles struct {
	sidebar   lipgloss.Style
	group     lipgloss.Style
	module    lipgloss.Style
	openMod   lipgloss.Style
	variant   lipgloss.Style
	activeVar lipgloss.Style
	cursor    lipgloss.Style
	title     lipgloss.Style
	dim       lipgloss.Style
	flagOn    lipgloss.Style
	flagOff   lipgloss.Style
	stage     lipgloss.Style
	stageDark lipgloss.Style
	shadow    lipgloss.Style
	errText   lipgloss.Style
	okText    lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		sidebar: lipgloss.NewStyle().
			Width(sidebarWidth).
			PaddingRight(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(muted),
		group:     lipgloss.NewStyle().Bold(true).Foreground(muted),
		module:    lipgloss.NewStyle().PaddingLeft(1),
		openMod:   lipgloss.NewStyle().PaddingLeft(1).Bold(true).Foreground(accent),
		variant:   lipgloss.NewStyle().PaddingLeft(3),
		activeVar: lipgloss.NewStyle().PaddingLeft(3).Underline(true),
		cursor:    lipgloss.NewStyle().Reverse(true),
		title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		dim:       lipgloss.NewStyle().Foreground(muted),
		flagOn:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		flagOff:   lipgloss.NewStyle().Foreground(muted),
		stage:     lipgloss.NewStyle().Padding(0, 1),
		stageDark: lipgloss.NewStyle().Padding(0, 1).
			Background(lipgloss.Color("#1E1E24")).
			Foreground(lipgloss.Color("#E6E6E6")),
		shadow: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(muted),
		errText: lipgloss.NewStyle().Foreground(danger),
		okText:  lipgloss.NewStyle().Foreground(ok),
	}
}
