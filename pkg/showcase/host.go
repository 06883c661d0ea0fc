package showcase

import (
	"net/http"
	"strings"
)

// Route is the reserved path the showcase is mounted at.
const Route = "/_showcase"

// IsShowcaseRoute reports whether path is the showcase route or below it.
func IsShowcaseRoute(path string) bool {
	path = strings.TrimSuffix(path, "/")
	return path == Route || strings.HasPrefix(path, Route+"/")
}

// Page marks the handler that serves the showcase. Host apps use it to
// recognize the showcase and skip their own shell.
type Page interface {
	http.Handler
	ShowcasePage()
}

// IsShowcasePage reports whether h is the showcase page.
func IsShowcasePage(h http.Handler) bool {
	_, ok := h.(Page)
	return ok
}

// Wrapper decorates the handler picked for a request. isShowcasePage tells
// the host whether it is about to serve the showcase.
type Wrapper func(isShowcasePage bool, next http.Handler) http.Handler

// HostOption configures WithShowcase.
type HostOption func(*hostConfig)

type hostConfig struct {
	wrapper Wrapper
	enabled func(r *http.Request) bool
}

// WithWrapper sets the wrapper applied to both the app and the showcase.
func WithWrapper(w Wrapper) HostOption {
	return func(c *hostConfig) { c.wrapper = w }
}

// WithEnabled gates the showcase per request, e.g. to dev builds only.
// When it returns false the request goes to the app.
func WithEnabled(fn func(r *http.Request) bool) HostOption {
	return func(c *hostConfig) { c.enabled = fn }
}

// WithShowcase routes requests under Route to page and everything else to app.
// The wrapper learns through IsShowcasePage whether page is the showcase
// itself or some other handler the host put there.
func WithShowcase(app, page http.Handler, opts ...HostOption) http.Handler {
	cfg := hostConfig{
		wrapper: func(_ bool, next http.Handler) http.Handler { return next },
		enabled: func(*http.Request) bool { return true },
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	wrappedApp := cfg.wrapper(false, app)
	wrappedPage := cfg.wrapper(IsShowcasePage(page), page)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsShowcaseRoute(r.URL.Path) && cfg.enabled(r) {
			wrappedPage.ServeHTTP(w, r)
			return
		}
		wrappedApp.ServeHTTP(w, r)
	})
}
