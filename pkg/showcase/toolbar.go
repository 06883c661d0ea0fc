package showcase

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/showcase/pkg/core"
)

// toolbarSlot is the single mount point stories write controls into.
// Each story activation gets a new owner id; writers holding an older id are ignored.
type toolbarSlot struct {
	owner    uint64
	controls []core.Renderable
}

func (s *toolbarSlot) reset() {
	s.owner++
	s.controls = nil
}

func (s *toolbarSlot) writer() core.Toolbar {
	return &toolbarWriter{slot: s, owner: s.owner}
}

type toolbarWriter struct {
	slot  *toolbarSlot
	owner uint64
}

// Set replaces the slot contents if the writer's story is still active.
func (w *toolbarWriter) Set(controls ...core.Renderable) {
	if w.slot.owner != w.owner {
		return
	}
	w.slot.controls = controls
}

// Select is a labelled drop-down stories put in the toolbar to switch a prop.
// Its value is kept by the runtime under Name and reset when the story changes.
type Select struct {
	Name    string
	Label   string
	Options []string
	Value   string
}

// Render writes the select markup. The data-showcase-control attribute is how
// the page script finds controls and reports their changes.
func (s Select) Render(ctx context.Context, w io.Writer, _ core.RenderOptions) error {
	return selectComponent(s).Render(ctx, w)
}

func selectComponent(s Select) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		id := "showcase-control-" + templ.EscapeString(s.Name)
		b.WriteString(`<div class="showcase showcase-select-wrapper">`)
		if s.Label != "" {
			b.WriteString(`<label class="showcase-select-label" for="` + id + `">`)
			b.WriteString(templ.EscapeString(s.Label))
			b.WriteString(`</label>`)
		}
		b.WriteString(`<select class="showcase-select" id="` + id + `" name="` + templ.EscapeString(s.Name) +
			`" data-showcase-control="` + templ.EscapeString(s.Name) + `">`)
		for _, o := range s.Options {
			b.WriteString(`<option value="` + templ.EscapeString(o) + `"`)
			if o == s.Value {
				b.WriteString(` selected`)
			}
			b.WriteString(`>` + templ.EscapeString(o) + `</option>`)
		}
		b.WriteString(`</select></div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// UseSelect returns the current value of the select control name together with
// the control to place in the toolbar. The value falls back to defaultValue
// until the user picks one of options.
func UseSelect(opts core.RenderOptions, name, label string, options []string, defaultValue string) (string, Select) {
	value := defaultValue
	if v, ok := opts.Controls[name]; ok {
		for _, o := range options {
			if o == v {
				value = v
				break
			}
		}
	}
	return value, Select{Name: name, Label: label, Options: options, Value: value}
}
