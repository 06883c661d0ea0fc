// Package config loads the showcase CLI configuration.
//
// Values are layered with koanf: built-in defaults, then showcase.yaml, then
// SHOWCASE_* environment variables, then flags the user actually set.
package config

// Config holds all CLI configuration options.
type Config struct {
	StoriesDir   string         `koanf:"stories_dir"`
	Patterns     []string       `koanf:"patterns"`
	Verbose      bool           `koanf:"verbose"`
	OutputFormat string         `koanf:"output"`
	UI           UIConfig       `koanf:"ui"`
	Export       ExportConfig   `koanf:"export"`
	Generate     GenerateConfig `koanf:"generate"`

	// ProjectRoot anchors relative paths; it is not read from the file.
	ProjectRoot string `koanf:"-"`
}

// UIConfig holds configuration for the browser UI server.
type UIConfig struct {
	Port          int    `koanf:"port"`
	AutoOpen      bool   `koanf:"auto_open"`
	Watch         bool   `koanf:"watch"`
	SessionSecret string `koanf:"session_secret"`
}

// ExportConfig holds PNG export settings.
type ExportConfig struct {
	AllowZoom bool   `koanf:"allow_zoom"`
	OutDir    string `koanf:"out_dir"`
}

// GenerateConfig holds settings of the generate command.
type GenerateConfig struct {
	// Out is the generated file; empty means inside the stories directory
	Out     string `koanf:"out"`
	Package string `koanf:"package"`
}

// Default configuration values.
const (
	DefaultStoriesDir    = "src"
	DefaultPort          = 8765
	DefaultOutput        = "auto" // TTY=text, otherwise markdown
	DefaultExportDir     = "showcase-exports"
	DefaultSessionSecret = "showcase-dev-secret-change-me" //nolint:gosec
)

// ConfigFileNames are searched, in order, in the project root.
var ConfigFileNames = []string{"showcase.yaml", "showcase.yml"}

func defaults() map[string]any {
	return map[string]any{
		"stories_dir":       DefaultStoriesDir,
		"patterns":          []string{},
		"verbose":           false,
		"output":            DefaultOutput,
		"ui.port":           DefaultPort,
		"ui.auto_open":      true,
		"ui.watch":          true,
		"ui.session_secret": DefaultSessionSecret,
		"export.allow_zoom": false,
		"export.out_dir":    DefaultExportDir,
		"generate.out":      "",
		"generate.package":  "showcase",
	}
}
