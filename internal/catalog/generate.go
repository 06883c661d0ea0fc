package catalog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"golang.org/x/tools/imports"
)

// Generate defaults.
const (
	DefaultGenerateOut     = "showcase_catalog_gen.go"
	DefaultGeneratePackage = "showcase"
)

// GenerateOptions configures Generate.
type GenerateOptions struct {
	// Package of the generated file
	Package string
	// Filename is used for import resolution and error messages
	Filename string
}

var genTemplate = template.Must(template.New("catalog").Parse(`// Code generated by showcase generate. DO NOT EDIT.

package {{ .Package }}

import (
	"github.com/leapstack-labs/showcase/pkg/core"
	"github.com/leapstack-labs/showcase/pkg/stories"
)

// Registry returns the story modules found under {{ printf "%q" .Root }}.
// Story files are read on demand, relative to the working directory.
func Registry() *core.Registry {
	return core.MustRegistry(
{{- range .Modules }}
		core.ModuleDescriptor{
			Group:  {{ printf "%q" .Group }},
			Name:   {{ printf "%q" .Name }},
			Loader: stories.FileLoader({{ printf "%q" .File }}),
			Source: {{ printf "%q" .File }},
		},
{{- end }}
	)
}
`))

type genModule struct {
	Group, Name, File string
}

// Generate renders a Go file declaring Registry() for the catalog.
func Generate(cat *Catalog, opts GenerateOptions) ([]byte, error) {
	if opts.Package == "" {
		opts.Package = DefaultGeneratePackage
	}
	if opts.Filename == "" {
		opts.Filename = DefaultGenerateOut
	}

	data := struct {
		Package string
		Root    string
		Modules []genModule
	}{Package: opts.Package, Root: filepath.ToSlash(cat.Root)}
	for _, e := range cat.Entries {
		data.Modules = append(data.Modules, genModule{
			Group: e.Group,
			Name:  e.Name,
			File:  filepath.ToSlash(cat.Abs(e)),
		})
	}

	var buf bytes.Buffer
	if err := genTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render catalog: %w", err)
	}

	out, err := imports.Process(opts.Filename, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to format catalog: %w", err)
	}
	return out, nil
}

// WriteFile generates the catalog into path, creating parent directories.
func WriteFile(path string, cat *Catalog, opts GenerateOptions) error {
	if opts.Filename == "" {
		opts.Filename = path
	}
	src, err := Generate(cat, opts)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, src, 0o644) //nolint:gosec // G306: generated source is meant to be readable
}
