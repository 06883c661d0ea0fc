package showcase

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePage struct{}

func (fakePage) ServeHTTP(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("showcase")) }
func (fakePage) ShowcasePage()                                    {}

func TestIsShowcaseRoute(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/_showcase", true},
		{"/_showcase/", true},
		{"/_showcase/sse", true},
		{"/_showcasex", false},
		{"/", false},
		{"/app/_showcase", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsShowcaseRoute(tt.path))
		})
	}
}

func TestWithShowcase(t *testing.T) {
	app := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("app")) })
	assert.True(t, IsShowcasePage(fakePage{}))
	assert.False(t, IsShowcasePage(app))

	var seen []bool
	h := WithShowcase(app, fakePage{},
		WithWrapper(func(isPage bool, next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = append(seen, isPage)
				next.ServeHTTP(w, r)
			})
		}),
		WithEnabled(func(r *http.Request) bool { return r.Header.Get("X-Prod") == "" }),
	)

	get := func(path string, prod bool) string {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if prod {
			req.Header.Set("X-Prod", "1")
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Body.String()
	}

	assert.Equal(t, "showcase", get("/_showcase", false))
	assert.Equal(t, "app", get("/home", false))
	assert.Equal(t, "app", get("/_showcase", true))
	assert.Equal(t, []bool{true, false, false}, seen)
}

func TestWithShowcase_PlainHandlerIsNotThePage(t *testing.T) {
	app := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("app")) })
	other := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("other")) })

	var seen []bool
	h := WithShowcase(app, other, WithWrapper(func(isPage bool, next http.Handler) http.Handler {
		seen = append(seen, isPage)
		return next
	}))
	assert.Equal(t, []bool{false, false}, seen)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, Route, nil))
	assert.Equal(t, "other", rec.Body.String())
}
