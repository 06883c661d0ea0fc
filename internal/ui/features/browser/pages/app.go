package pages

import (
	"fmt"
	"net/url"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/showcase/internal/ui/resources"
	"github.com/leapstack-labs/showcase/pkg/showcase"
)

// AppID is the element the SSE stream patches.
const AppID = "showcase-app"

// AppData is everything the app shell renders.
type AppData struct {
	View    showcase.View
	Preview showcase.Preview
}

var groupTitle = cases.Title(language.English)

func apiPath(parts ...string) string {
	p := showcase.Route + "/api"
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}

func post(parts ...string) string {
	return fmt.Sprintf("@post('%s')", apiPath(parts...))
}

// Page is the full showcase document.
func Page(title string, isDev bool, data AppData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title + " - Showcase")
		h.raw(`</title><link rel="stylesheet"`)
		h.attr("href", resources.StaticPath(resources.StylesheetAsset))
		h.raw(`><script type="module"`)
		h.attr("src", resources.DatastarScript)
		h.raw(`></script><script defer`)
		h.attr("src", resources.StaticPath(resources.ScriptAsset))
		h.raw(`></script></head><body class="showcase">`)

		h.raw(`<div`)
		h.attr("data-init", fmt.Sprintf("@get('%s/sse', {openWhenHidden: true})", showcase.Route))
		h.raw(`></div>`)
		if isDev {
			h.raw(`<div`)
			h.attr("data-init", fmt.Sprintf("@get('%s/reload', {retryMaxCount: 1000, retryInterval: 20, retryMaxWaitMs: 200})", showcase.Route))
			h.raw(`></div>`)
		}

		h.component(AppShell(data))
		h.raw(`</body></html>`)
	})
}

// AppShell is the patchable root of the UI.
func AppShell(data AppData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="showcase showcase-app"`)
		h.attr("id", AppID)
		h.raw(`>`)
		h.component(Sidebar(data.View))
		h.raw(`<main class="showcase-main">`)
		h.component(Toolbar(data))
		h.component(Stage(data))
		h.raw(`</main></div>`)
	})
}

// Sidebar lists the groups, their modules and the variants of the open module.
func Sidebar(v showcase.View) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<nav class="showcase-sidebar" aria-label="Components">`)
		if len(v.Groups) == 0 {
			h.raw(`<p class="showcase-message">No stories found.</p>`)
		}
		for _, g := range v.Groups {
			h.raw(`<section class="showcase-group"><h2 class="showcase-group-title">`)
			h.text(groupTitle.String(g.Name))
			h.raw(`</h2>`)
			for _, m := range g.Modules {
				h.raw(`<button type="button" class="showcase-module"`)
				h.attr("data-module", m.Name)
				h.attr("data-on:click", post("modules", m.Name))
				h.flag("aria-expanded", v.IsOpen(m.Name))
				h.flag("aria-busy", v.Loading == m.Name)
				h.raw(`>`)
				h.text(showcase.ModuleLabel(m.Name))
				h.raw(`</button>`)
				if v.IsOpen(m.Name) {
					h.component(variantList(v))
				}
			}
			h.raw(`</section>`)
		}
		h.raw(`</nav>`)
	})
}

func variantList(v showcase.View) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<ul class="showcase-variants">`)
		for _, id := range v.VariantIDs {
			h.raw(`<li><button type="button" class="showcase-variant"`)
			h.attr("data-variant", id)
			h.attr("data-on:click", post("variants", id))
			h.flag("aria-current", id == v.Active)
			h.raw(`>`)
			h.text(id)
			h.raw(`</button></li>`)
		}
		h.raw(`</ul>`)
	})
}

// Toolbar holds the view toggles, export, and the story's own controls.
func Toolbar(data AppData) templ.Component {
	v := data.View
	return component(func(h *htmlWriter) {
		h.raw(`<div class="showcase-toolbar" role="toolbar">`)
		for _, t := range []struct {
			flag  showcase.Flag
			label string
			on    bool
		}{
			{showcase.FlagBackground, "Background", v.Flags.ShowBackground},
			{showcase.FlagZoom, "Zoom", v.Flags.ZoomActive},
			{showcase.FlagShadow, "Shadow", v.Flags.ShadowBoxActive},
		} {
			h.raw(`<button type="button" class="showcase-toggle"`)
			h.attr("data-flag", string(t.flag))
			h.attr("data-on:click", post("toggle", string(t.flag)))
			h.flag("aria-pressed", t.on)
			h.raw(`>`)
			h.text(t.label)
			h.raw(`</button>`)
		}

		switch {
		case v.Exporting:
			h.raw(`<button type="button" class="showcase-export" disabled>Exporting…</button>`)
		case v.ExportDisabled != "":
			h.raw(`<button type="button" class="showcase-export" disabled`)
			h.attr("title", v.ExportDisabled)
			h.raw(`>Export PNG</button>`)
		default:
			h.raw(`<a class="showcase-export" download`)
			h.attr("href", apiPath("export"))
			h.raw(`>Export PNG</a>`)
		}

		if v.Phase == showcase.PhaseOpen {
			h.raw(`<button type="button" class="showcase-close"`)
			h.attr("data-on:click", post("close"))
			h.raw(`>Close</button>`)
		}

		h.raw(`<div class="showcase-toolbar-slot">`)
		h.raw(data.Preview.Toolbar)
		h.raw(`</div></div>`)
	})
}

// Stage renders the active story.
func Stage(data AppData) templ.Component {
	v, p := data.View, data.Preview
	return component(func(h *htmlWriter) {
		h.raw(`<section`)
		h.attr("class", classes("showcase-stage", when(p.Dark, "dark"), when(v.Flags.ShowBackground, "checkered")))
		h.raw(`>`)

		if v.Error != "" {
			h.raw(`<p class="showcase-error" role="alert">`)
			h.text(v.Error)
			h.raw(`</p>`)
		}

		switch {
		case v.Phase == showcase.PhaseLoading:
			h.raw(`<p class="showcase-message">Loading `)
			h.text(showcase.ModuleLabel(v.Loading))
			h.raw(`…</p>`)
		case v.Phase == showcase.PhaseIdle:
			h.raw(`<p class="showcase-message">Select a component to preview it.</p>`)
		case len(v.VariantIDs) == 0:
			h.raw(`<p class="showcase-message">This module has no stories.</p>`)
		case p.Message() != "":
			h.raw(`<p class="showcase-message">`)
			h.text(p.Message())
			h.raw(`</p>`)
		default:
			h.raw(`<header class="showcase-header"><h1>`)
			h.text(v.Title)
			h.raw(`</h1>`)
			if v.Description != "" {
				h.raw(`<p>`)
				h.text(v.Description)
				h.raw(`</p>`)
			}
			h.raw(`</header><div`)
			h.attr("class", classes("showcase-preview", when(v.Flags.ZoomActive, "zoom"), when(v.Flags.ShadowBoxActive, "shadow")))
			h.attr("data-preview", p.Module+"/"+p.Variant)
			h.raw(`>`)
			h.component(templ.Raw(p.HTML))
			h.raw(`</div>`)
		}
		h.raw(`</section>`)
	})
}
