// Package stories loads story files from disk.
//
// Supported sources:
//   - *.stories.star  Starlark scripts with a top-level "stories" dict
//   - *.stories.yaml  static HTML variants (also *.stories.yml)
//   - *.stories.toml  static HTML variants
//
// Every load re-reads the file, so a module refreshed after an edit picks up
// the new content.
package stories

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/showcase/internal/starlark"
	"github.com/leapstack-labs/showcase/pkg/core"
)

// Story file extensions.
const (
	ExtStarlark = ".stories.star"
	ExtYAML     = ".stories.yaml"
	ExtYML      = ".stories.yml"
	ExtTOML     = ".stories.toml"
)

// Extensions lists every recognized story file extension.
func Extensions() []string {
	return []string{ExtStarlark, ExtYAML, ExtYML, ExtTOML}
}

var threads = starlark.NewThreadPool(16)

// IsStoryFile reports whether path has a story file extension.
func IsStoryFile(path string) bool {
	return Ext(path) != ""
}

// Ext returns the story extension of path, or "" when it is not a story file.
func Ext(path string) string {
	base := strings.ToLower(filepath.Base(path))
	for _, ext := range Extensions() {
		if strings.HasSuffix(base, ext) && len(base) > len(ext) {
			return ext
		}
	}
	return ""
}

// Stem returns the file name without its story extension ("Button.stories.yaml" -> "Button").
func Stem(path string) string {
	base := filepath.Base(path)
	ext := Ext(path)
	if ext == "" {
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base[:len(base)-len(ext)]
}

// FileLoader returns a module loader for the story file at path.
func FileLoader(path string) core.Loader {
	return func(ctx context.Context) (core.RawStoryMap, error) {
		return Load(ctx, path)
	}
}

// Load reads and decodes the story file at path.
func Load(ctx context.Context, path string) (core.RawStoryMap, error) {
	ext := Ext(path)
	if ext == "" {
		return nil, &LoadError{File: path, Message: "not a story file"}
	}

	content, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the catalog scan
	if err != nil {
		return nil, &LoadError{File: path, Message: fmt.Sprintf("failed to read file: %v", err), Err: err}
	}
	return Decode(ctx, path, content)
}

// Decode turns story file content into a raw story map; path selects the format.
func Decode(ctx context.Context, path string, content []byte) (core.RawStoryMap, error) {
	var (
		raw core.RawStoryMap
		err error
	)
	switch Ext(path) {
	case ExtStarlark:
		raw, err = decodeStarlark(ctx, path, content)
	case ExtYAML, ExtYML:
		raw, err = decodeYAML(content)
	case ExtTOML:
		raw, err = decodeTOML(content)
	default:
		return nil, &LoadError{File: path, Message: "not a story file"}
	}
	if err != nil {
		return nil, &LoadError{File: path, Message: err.Error(), Err: err}
	}
	return raw, nil
}

func decodeStarlark(ctx context.Context, path string, content []byte) (core.RawStoryMap, error) {
	script, err := starlark.Exec(ctx, path, content, threads)
	if err != nil {
		return nil, err
	}
	return script.Stories()
}

// LoadError represents a failure to load a story file.
type LoadError struct {
	File    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("stories/%s: %s", filepath.Base(e.File), e.Message)
}

func (e *LoadError) Unwrap() error { return e.Err }
