// Package browser provides the component browser feature of the UI.
package browser

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/showcase/pkg/showcase"
)

// SetupRoutes configures routes for the browser feature under showcase.Route.
func SetupRoutes(router chi.Router, viewers *Viewers, capturer showcase.Capturer, isDev bool) error {
	router.Route(showcase.Route, func(r chi.Router) {
		Mount(r, viewers, capturer, isDev)
	})
	return nil
}

// Mount registers the feature on a router already scoped to showcase.Route.
func Mount(r chi.Router, viewers *Viewers, capturer showcase.Capturer, isDev bool) {
	handlers := NewHandlers(viewers, capturer, isDev)

	r.Get("/", handlers.ShowcasePage)
	r.Get("/sse", handlers.ShowcaseUpdates)

	r.Route("/api", func(r chi.Router) {
		r.Post("/modules/{name}", handlers.OpenModule)
		r.Post("/modules/", handlers.OpenModule)
		r.Post("/close", handlers.CloseModule)
		r.Post("/variants/{id}", handlers.SelectVariant)
		r.Post("/variants/", handlers.SelectVariant)
		r.Post("/toggle/{flag}", handlers.ToggleFlag)
		r.Post("/controls", handlers.SetControl)
		r.Get("/export", handlers.Export)
	})
}
