package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/showcase/pkg/stories"
)

// storyFormat documents one story file flavour. Sample is a complete file that
// must decode with stories.Decode.
type storyFormat struct {
	Name       string
	Extensions []string
	Lang       string
	Intro      string
	Sample     string
}

func storyFormats() []storyFormat {
	return []storyFormat{
		{
			Name:       "Starlark",
			Extensions: []string{stories.ExtStarlark},
			Lang:       "python",
			Intro: "A Starlark file assigns a `stories` dict. A value is an HTML string, a " +
				"`render(ctx)` function, or a record with `title`, `description`, `dark` and `render`. " +
				"`ctx.select` adds a toolbar control and returns its current value; `ctx.toolbar` " +
				"appends raw HTML to the toolbar. The `struct`, `escape` and `classes` builtins are predeclared.",
			Sample: `def sized(ctx):
    size = ctx.select("size", ["sm", "md", "lg"], default = "md", label = "Size")
    return '<button class="%s">Go</button>' % classes("btn", "btn-" + size)

stories = {
    "default": "<button>Default</button>",
    "sized": sized,
    "dark": {"title": "Dark", "dark": True, "render": "<button>Night</button>"},
}`,
		},
		{
			Name:       "YAML",
			Extensions: []string{stories.ExtYAML, stories.ExtYML},
			Lang:       "yaml",
			Intro: "Static variants. A value is an HTML string or a record with `title`, " +
				"`description`, `dark` and `html`. Variants may sit under a top-level `stories` key.",
			Sample: `default: <button>Default</button>
dark:
  title: Dark
  dark: true
  html: <button>Night</button>`,
		},
		{
			Name:       "TOML",
			Extensions: []string{stories.ExtTOML},
			Lang:       "toml",
			Intro:      "Same shape as YAML, written as TOML tables.",
			Sample: `default = "<button>Default</button>"

[dark]
title = "Dark"
dark = true
html = "<button>Night</button>"`,
		},
	}
}

// generateStoriesDocs writes story-files.md, the story file format reference.
func generateStoriesDocs(outDir string) error {
	log.Printf("Generating story format docs to %s", outDir)
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Story Files", "Story file formats understood by showcase")
	w.Header(1, "Story Files")
	w.Paragraph("A story file sits next to the component it shows. Its name without the " +
		"extension is the module name; a directory under the stories root becomes the group, " +
		"so `atoms/Button.stories.star` lists as `atoms__Button`. The variant named `default` " +
		"opens first, otherwise the first variant in sorted order.")

	var rows [][]string
	for _, f := range storyFormats() {
		exts := make([]string, len(f.Extensions))
		for i, e := range f.Extensions {
			exts[i] = code(e)
		}
		rows = append(rows, []string{f.Name, strings.Join(exts, ", ")})
	}
	w.Table([]string{"Format", "Extensions"}, rows)

	for _, f := range storyFormats() {
		if _, err := stories.Decode(context.Background(), "Button"+f.Extensions[0], []byte(f.Sample)); err != nil {
			return fmt.Errorf("%s sample: %w", f.Name, err)
		}
		w.Header(2, f.Name)
		w.Paragraph(f.Intro)
		w.CodeBlock(f.Lang, f.Sample)
	}

	if err := os.WriteFile(filepath.Join(outDir, "story-files.md"), w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated story-files.md")
	return nil
}
