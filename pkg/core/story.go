package core

import (
	"context"
	"fmt"
	"io"
	"sort"
)

// DefaultVariant is the reserved variant id that is selected first when present.
const DefaultVariant = "default"

// RenderOptions are the inputs a story receives when it is drawn.
type RenderOptions struct {
	// HasZoom is true while the preview is zoomed
	HasZoom bool
	// Toolbar is the shared slot the active story may write controls into.
	// Never nil during a render driven by the showcase runtime.
	Toolbar Toolbar
	// Controls holds the current values of the story's toolbar controls, keyed by control name
	Controls map[string]string
}

// Renderable is anything that can draw itself as an HTML fragment.
type Renderable interface {
	Render(ctx context.Context, w io.Writer, opts RenderOptions) error
}

// RenderFunc adapts a function to Renderable.
type RenderFunc func(ctx context.Context, w io.Writer, opts RenderOptions) error

// Render calls f.
func (f RenderFunc) Render(ctx context.Context, w io.Writer, opts RenderOptions) error {
	return f(ctx, w, opts)
}

// HTML is a static fragment that ignores its options.
type HTML string

// Render writes the fragment verbatim.
func (h HTML) Render(_ context.Context, w io.Writer, _ RenderOptions) error {
	_, err := io.WriteString(w, string(h))
	return err
}

// Toolbar is the extension point stories use to inject controls.
// Set replaces the slot contents; the last writer wins.
type Toolbar interface {
	Set(controls ...Renderable)
}

// NopToolbar discards every write. Used when a story is rendered outside the runtime.
type NopToolbar struct{}

// Set does nothing.
func (NopToolbar) Set(...Renderable) {}

// Story is the normalized shape of a story entry.
type Story struct {
	Title       string
	Description string
	Dark        bool
	Render      Renderable
}

// Entry is one value of a raw story map: either a bare Renderable or a Story record.
type Entry any

// RawStoryMap is what a module loader returns, before normalization.
type RawStoryMap map[string]Entry

// StoryMap maps variant ids to normalized stories.
type StoryMap map[string]Story

// VariantIDs returns the ids of m sorted ordinally.
func (m StoryMap) VariantIDs() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DefaultVariantID returns "default" if present, otherwise the first sorted id.
// The second result is false for an empty map.
func (m StoryMap) DefaultVariantID() (string, bool) {
	if _, ok := m[DefaultVariant]; ok {
		return DefaultVariant, true
	}
	ids := m.VariantIDs()
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// Normalize converts every entry of raw into a Story, filling defaults.
// A nil raw map is not a usable story map; an empty one is.
func Normalize(raw RawStoryMap) (StoryMap, error) {
	if raw == nil {
		return nil, fmt.Errorf("loader returned no story map")
	}
	out := make(StoryMap, len(raw))
	for id, entry := range raw {
		story, err := normalizeEntry(id, entry)
		if err != nil {
			return nil, err
		}
		out[id] = story
	}
	return out, nil
}

func normalizeEntry(id string, entry Entry) (Story, error) {
	var story Story
	switch e := entry.(type) {
	case Story:
		story = e
	case *Story:
		if e == nil {
			return Story{}, fmt.Errorf("variant %q: nil story", id)
		}
		story = *e
	case Renderable:
		story = Story{Render: e}
	case func(context.Context, io.Writer, RenderOptions) error:
		story = Story{Render: RenderFunc(e)}
	case string:
		story = Story{Render: HTML(e)}
	default:
		return Story{}, fmt.Errorf("variant %q: unsupported story entry %T", id, entry)
	}

	if story.Render == nil {
		return Story{}, fmt.Errorf("variant %q: story has no render", id)
	}
	if story.Title == "" {
		story.Title = id
	}
	return story, nil
}
