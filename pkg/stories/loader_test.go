package stories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/showcase/pkg/core"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtAndStem(t *testing.T) {
	tests := []struct {
		path     string
		wantExt  string
		wantStem string
	}{
		{"src/atoms/Button.stories.star", ExtStarlark, "Button"},
		{"Card.stories.yaml", ExtYAML, "Card"},
		{"Card.Stories.YML", ExtYML, "Card"},
		{"x/Badge.stories.toml", ExtTOML, "Badge"},
		{"main.go", "", "main"},
		{".stories.yaml", "", ".stories"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.wantExt, Ext(tt.path))
			assert.Equal(t, tt.wantExt != "", IsStoryFile(tt.path))
			assert.Equal(t, tt.wantStem, Stem(tt.path))
		})
	}
}

func TestLoad_Formats(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"Badge.stories.yaml": `
default: <span class="badge">new</span>
warning:
  title: Warning
  dark: true
  html: <span class="badge warn">!</span>
`,
		"Badge.stories.toml": `
default = '<span class="badge">new</span>'

[warning]
title = "Warning"
dark = true
html = '<span class="badge warn">!</span>'
`,
		"Badge.stories.star": `
stories = {
    "default": '<span class="badge">new</span>',
    "warning": {"title": "Warning", "dark": True, "render": '<span class="badge warn">!</span>'},
}
`,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			desc := core.ModuleDescriptor{Name: "Badge", Loader: FileLoader(writeFile(t, dir, name, content))}
			stories, err := desc.Load(context.Background())
			require.NoError(t, err)

			assert.Equal(t, []string{"default", "warning"}, stories.VariantIDs())
			assert.Equal(t, "default", stories["default"].Title)
			assert.Equal(t, core.HTML(`<span class="badge">new</span>`), stories["default"].Render)

			warn := stories["warning"]
			assert.Equal(t, "Warning", warn.Title)
			assert.True(t, warn.Dark)
			assert.Equal(t, core.HTML(`<span class="badge warn">!</span>`), warn.Render)
		})
	}
}

func TestLoad_RereadsFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "A.stories.yaml", "one: <p>1</p>\n")
	loader := FileLoader(path)

	raw, err := loader(context.Background())
	require.NoError(t, err)
	assert.Len(t, raw, 1)

	writeFile(t, dir, "A.stories.yaml", "one: <p>1</p>\ntwo: <p>2</p>\n")
	raw, err = loader(context.Background())
	require.NoError(t, err)
	assert.Len(t, raw, 2)
}

func TestLoad_NestedStoriesTable(t *testing.T) {
	raw, err := Decode(context.Background(), "x.stories.toml", []byte(`
[stories]
a = "<b>a</b>"
`))
	require.NoError(t, err)
	assert.Equal(t, core.RawStoryMap{"a": "<b>a</b>"}, raw)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{name: "bad yaml", file: "a.stories.yaml", content: "a: [", wantErr: "invalid YAML"},
		{name: "bad toml", file: "a.stories.toml", content: "a = ", wantErr: "invalid TOML"},
		{name: "unknown field", file: "a.stories.yaml", content: "a:\n  colour: red\n", wantErr: "colour"},
		{name: "bad value", file: "a.stories.yaml", content: "a: 3\n", wantErr: `variant "a"`},
		{name: "bad script", file: "a.stories.star", content: "stories = 1", wantErr: "must be a dict"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(context.Background(), tt.file, []byte(tt.content))
			require.Error(t, err)

			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, tt.file, loadErr.File)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "Gone.stories.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(context.Background(), "main.go")
	assert.Error(t, err)
}

func TestLoad_RecordWithoutHTMLRejected(t *testing.T) {
	desc := core.ModuleDescriptor{Name: "A", Loader: func(ctx context.Context) (core.RawStoryMap, error) {
		return Decode(ctx, "a.stories.yaml", []byte("a:\n  title: Only a title\n"))
	}}
	_, err := desc.Load(context.Background())
	assert.Error(t, err)
}

func TestLoad_EmptyFile(t *testing.T) {
	raw, err := Decode(context.Background(), "a.stories.yaml", nil)
	require.NoError(t, err)
	assert.Empty(t, raw)
	assert.NotNil(t, raw)
}
