package browser

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/showcase/internal/ui/features/browser/pages"
	"github.com/leapstack-labs/showcase/pkg/showcase"
)

// Handlers provides HTTP handlers for the browser feature.
type Handlers struct {
	viewers  *Viewers
	capturer showcase.Capturer
	isDev    bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(viewers *Viewers, capturer showcase.Capturer, isDev bool) *Handlers {
	return &Handlers{viewers: viewers, capturer: capturer, isDev: isDev}
}

// ShowcasePage renders the full page with the viewer's current state.
func (h *Handlers) ShowcasePage(w http.ResponseWriter, r *http.Request) {
	v, err := h.viewers.get(w, r, true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.sync(v)

	title := "Components"
	data := h.appData(r.Context(), v)
	if data.View.Module != "" {
		title = showcase.ModuleLabel(data.View.Module)
	}
	if err := pages.Page(title, h.isDev, data).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ShowcaseUpdates is the long-lived SSE endpoint. It pushes the app shell
// whenever the viewer's session changes or the stories are reloaded.
// Initial state is rendered by ShowcasePage.
func (h *Handlers) ShowcaseUpdates(w http.ResponseWriter, r *http.Request) {
	v, err := h.viewers.get(w, r, false)
	if err != nil || v == nil {
		http.Error(w, "no showcase session, reload the page", http.StatusBadRequest)
		return
	}

	sse := datastar.NewSSE(w, r)

	own, releaseOwn := v.notifier.Subscribe()
	defer releaseOwn()
	reloads, releaseReloads := h.viewers.library.Notifier().Subscribe()
	defer releaseReloads()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-own:
			if !ok {
				return
			}
		case _, ok := <-reloads:
			if !ok {
				return
			}
			h.sync(v)
		}
		if err := h.sendApp(ctx, sse, v); err != nil {
			_ = sse.ConsoleError(err)
		}
	}
}

// OpenModule opens, or when already open closes, a module.
func (h *Handlers) OpenModule(w http.ResponseWriter, r *http.Request) {
	name, ok := h.identify(w, "module", "name", chi.URLParam(r, "name"))
	if !ok {
		return
	}
	h.act(w, r, func(v *viewer) {
		v.session.Open(name)
	})
}

// CloseModule returns to the idle state.
func (h *Handlers) CloseModule(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(v *viewer) {
		v.session.Do(func(rt *showcase.Runtime) *showcase.LoadRequest {
			rt.Close()
			return nil
		})
	})
}

// SelectVariant activates a variant of the open module.
func (h *Handlers) SelectVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identify(w, "variant", "id", chi.URLParam(r, "id"))
	if !ok {
		return
	}
	h.act(w, r, func(v *viewer) {
		v.session.With(func(rt *showcase.Runtime) {
			rt.SelectVariant(id)
		})
	})
}

// ToggleFlag flips one of the view toggles.
func (h *Handlers) ToggleFlag(w http.ResponseWriter, r *http.Request) {
	flag, err := showcase.ParseFlag(chi.URLParam(r, "flag"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.act(w, r, func(v *viewer) {
		v.session.With(func(rt *showcase.Runtime) {
			rt.Toggle(flag)
		})
	})
}

// controlSignals is the body posted when a toolbar control changes.
type controlSignals struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SetControl records a toolbar control value. The SSE stream re-renders.
func (h *Handlers) SetControl(w http.ResponseWriter, r *http.Request) {
	var signals controlSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	name, ok := h.identify(w, "control", "name", signals.Name)
	if !ok {
		return
	}

	v, err := h.viewers.get(w, r, true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	var accepted bool
	v.session.With(func(rt *showcase.Runtime) {
		accepted = rt.SetControl(name, signals.Value)
	})
	if !accepted {
		http.Error(w, "no active story", http.StatusConflict)
		return
	}
	v.notifier.Broadcast()
	w.WriteHeader(http.StatusNoContent)
}

// Export captures the active variant and serves it as a PNG download.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	v, err := h.viewers.get(w, r, true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	dl, err := v.session.Export(ctx, h.capturer)
	switch {
	case errors.Is(err, showcase.ErrExportInProgress):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case errors.Is(err, showcase.ErrNothingToExport), errors.Is(err, showcase.ErrZoomExport):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dl.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(dl.Data)
}

// act applies a change to the caller's session and answers with the new app shell.
func (h *Handlers) act(w http.ResponseWriter, r *http.Request, fn func(v *viewer)) {
	v, err := h.viewers.get(w, r, true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	fn(v)

	sse := datastar.NewSSE(w, r)
	if err := h.sendApp(r.Context(), sse, v); err != nil {
		_ = sse.ConsoleError(err)
	}
	// other tabs of the same session
	v.notifier.Broadcast()
}

// identify enforces that a UI control carried its target. A missing target
// is a broken page: in dev it panics (and surfaces through Recoverer),
// otherwise the request is rejected.
func (h *Handlers) identify(w http.ResponseWriter, control, attribute, value string) (string, bool) {
	if h.isDev {
		return showcase.MustIdentify(control, attribute, value), true
	}
	if value == "" {
		err := &showcase.ContractError{Control: control, Attribute: attribute}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return value, true
}

// sync brings the viewer up to date with the library.
func (h *Handlers) sync(v *viewer) {
	reg, token := h.viewers.library.Current()
	v.session.Sync(reg, token)
}

func (h *Handlers) appData(ctx context.Context, v *viewer) pages.AppData {
	view, preview := v.session.View(ctx)
	return pages.AppData{View: view, Preview: preview}
}

func (h *Handlers) sendApp(ctx context.Context, sse *datastar.ServerSentEventGenerator, v *viewer) error {
	return sse.PatchElementTempl(pages.AppShell(h.appData(ctx, v)))
}
