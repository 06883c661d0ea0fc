//go:build !dev

package resources

import (
	"bytes"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

//go:embed static/*
var staticFS embed.FS

var (
	minifiedMu sync.Mutex
	minified   = map[string][]byte{}
	startedAt  = time.Now()
)

// Handler returns an HTTP handler for serving static files.
// In production mode, files are embedded in the binary and minified on first use.
func Handler() http.Handler {
	fsys, _ := fs.Sub(staticFS, "static")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, StaticPrefix)
		data, err := load(fsys, name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		// Embedded assets never change within a build
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		http.ServeContent(w, r, name, startedAt, bytes.NewReader(data))
	})
}

func load(fsys fs.FS, name string) ([]byte, error) {
	minifiedMu.Lock()
	defer minifiedMu.Unlock()

	if data, ok := minified[name]; ok {
		return data, nil
	}
	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	data, err := Minify(name, src)
	if err != nil {
		slog.Warn("serving unminified asset", "name", name, "error", err)
		data = src
	}
	minified[name] = data
	return data, nil
}
