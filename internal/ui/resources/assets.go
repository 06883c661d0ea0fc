// Package resources provides static asset handling for the UI server.
package resources

import (
	"fmt"
	"path"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/leapstack-labs/showcase/pkg/showcase"
)

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// Assets the showcase page links.
const (
	StylesheetAsset = "showcase.css"
	ScriptAsset     = "showcase.js"
)

// DatastarScript is the Datastar client bundle the page loads.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// StaticPrefix is the URL prefix static assets are served under.
const StaticPrefix = showcase.Route + "/static/"

// StaticPath returns the URL path for a static asset.
func StaticPath(name string) string {
	return StaticPrefix + name
}

// Minify shrinks a CSS or JS asset with esbuild. Other files are returned as-is.
func Minify(name string, src []byte) ([]byte, error) {
	var loader api.Loader
	switch strings.ToLower(path.Ext(name)) {
	case ".css":
		loader = api.LoaderCSS
	case ".js":
		loader = api.LoaderJS
	default:
		return src, nil
	}

	result := api.Transform(string(src), api.TransformOptions{
		Loader:            loader,
		Sourcefile:        name,
		Target:            api.ES2020,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		LogLevel:          api.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		var errMsg string
		for _, err := range result.Errors {
			line, col := 0, 0
			if err.Location != nil {
				line, col = err.Location.Line, err.Location.Column
			}
			errMsg += fmt.Sprintf("%s:%d:%d: %s\n", name, line, col, err.Text)
		}
		return nil, fmt.Errorf("esbuild errors:\n%s", errMsg)
	}
	return result.Code, nil
}
