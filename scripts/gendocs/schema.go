package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/leapstack-labs/showcase/internal/cli/config"
)

// generateSchemaDocs generates the configuration file reference.
func generateSchemaDocs(outDir string) error {
	log.Printf("Generating schema docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := generateConfigurationDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")

	return nil
}

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
	Category    string // "project", "ui", "export", "generate"
}

// getConfigSchema returns the configuration schema definition.
// This follows internal/cli/config/types.go.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		{Name: "stories_dir", Type: "string", Default: config.DefaultStoriesDir, Description: "Directory scanned for story files", Category: "project"},
		{Name: "patterns", Type: "[]string", Description: "Glob patterns of story files; empty means every supported extension", Category: "project"},
		{Name: "output", Type: "string", Default: config.DefaultOutput, Description: "Output format: auto, text, markdown, json", Category: "project"},
		{Name: "verbose", Type: "bool", Default: "false", Description: "Enable debug logging", Category: "project"},

		{Name: "port", Type: "int", Default: strconv.Itoa(config.DefaultPort), Description: "Port of the browser UI", Category: "ui"},
		{Name: "auto_open", Type: "bool", Default: "true", Description: "Open the browser when the server starts", Category: "ui"},
		{Name: "watch", Type: "bool", Default: "true", Description: "Rebuild the catalog when story files change", Category: "ui"},
		{Name: "session_secret", Type: "string", Description: "Secret used to sign session cookies", Category: "ui"},

		{Name: "allow_zoom", Type: "bool", Default: "false", Description: "Allow PNG export while zoom is active", Category: "export"},
		{Name: "out_dir", Type: "string", Default: config.DefaultExportDir, Description: "Directory receiving exported PNG files", Category: "export"},

		{Name: "out", Type: "string", Description: "Generated catalog file; defaults to the stories directory", Category: "generate"},
		{Name: "package", Type: "string", Default: "showcase", Description: "Package name of the generated catalog", Category: "generate"},
	}
}

// generateConfigurationDoc generates the configuration reference page.
func generateConfigurationDoc(outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "showcase configuration reference")

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("showcase is configured via %s in your project root. The file is optional.",
		code(config.ConfigFileNames[0])))

	sections := []struct {
		category string
		title    string
		intro    string
	}{
		{"project", "Project Settings", "Top-level keys:"},
		{"ui", "Browser UI", "Keys under `ui`:"},
		{"export", "Export", "Keys under `export`:"},
		{"generate", "Catalog Generation", "Keys under `generate`:"},
	}

	fields := getConfigSchema()
	for _, sec := range sections {
		w.Header(2, sec.title)
		w.Paragraph(sec.intro)

		var rows [][]string
		for _, f := range fields {
			if f.Category != sec.category {
				continue
			}
			defVal := f.Default
			if defVal == "" {
				defVal = "-"
			}
			rows = append(rows, []string{code(f.Name), f.Type, code(defVal), f.Description})
		}
		w.Table([]string{"Field", "Type", "Default", "Description"}, rows)
	}

	w.Header(2, "Full Configuration Example")
	w.CodeBlock("yaml", `# showcase.yaml
stories_dir: src
patterns:
  - "*.stories.star"
  - "*.stories.yaml"

ui:
  port: 8765
  auto_open: true
  watch: true

export:
  allow_zoom: false
  out_dir: showcase-exports

generate:
  package: showcase`)

	w.Header(2, "Environment Variables")
	w.Paragraph("Any key can be overridden with a `SHOWCASE_` variable, for example:")
	w.CodeBlock("bash", `SHOWCASE_UI_PORT=9000 showcase serve`)

	filename := filepath.Join(outDir, "configuration.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}
