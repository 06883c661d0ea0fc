// Package router sets up HTTP routes for the UI server.
package router

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	browserFeature "github.com/leapstack-labs/showcase/internal/ui/features/browser"
	"github.com/leapstack-labs/showcase/internal/ui/resources"
	"github.com/leapstack-labs/showcase/pkg/showcase"
)

// SetupRoutes configures all routes for the UI server. Everything the page
// needs lives below showcase.Route so a host app can mount the handler as is.
func SetupRoutes(
	router chi.Router,
	viewers *browserFeature.Viewers,
	capturer showcase.Capturer,
	isDev bool,
) error {
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, showcase.Route, http.StatusFound)
	})

	router.Route(showcase.Route, func(r chi.Router) {
		// Hot reload endpoint for dev mode
		if isDev {
			setupReload(r)
		}
		r.Handle("/static/*", resources.Handler())
		browserFeature.Mount(r, viewers, capturer, isDev)
	})
	return nil
}

// setupReload serves reload, a stream the page keeps open in dev mode, and
// hotreload, which a rebuild hook calls to make every open page reload.
func setupReload(router chi.Router) {
	reloadChan := make(chan struct{}, 1)
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-reloadChan:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		select {
		case reloadChan <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
