package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/showcase/pkg/core"
	"github.com/leapstack-labs/showcase/pkg/stories"
)

func TestGenerateCLIDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "# CLI Reference")
	assert.Contains(t, string(index), "[`export`](/cli/export)")
	assert.Contains(t, string(index), "| `--stories-dir` | string | - | Path to the stories directory |")
	assert.Contains(t, string(index), "`SHOWCASE_*`")
	assert.NotContains(t, string(index), "[`help`]")

	export, err := os.ReadFile(filepath.Join(dir, "export.md"))
	require.NoError(t, err)
	assert.Contains(t, string(export), "# showcase export")
	assert.Contains(t, string(export), "`-f, --file`")
	assert.Contains(t, string(export), "Explicit file, with the checkered background:\n\n```bash\n"+
		"showcase export atoms__Button dark --background -f button-dark.png\n```")
}

func TestSplitExamples(t *testing.T) {
	got := splitExamples(`  # First
  showcase list

  showcase list --variants
  # Two lines
  showcase serve
  showcase generate`)

	assert.Equal(t, []example{
		{title: "First", command: "showcase list"},
		{command: "showcase list --variants"},
		{title: "Two lines", command: "showcase serve\nshowcase generate"},
	}, got)
}

func TestGenerateSchemaDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateSchemaDocs(dir))

	data, err := os.ReadFile(filepath.Join(dir, "configuration.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "`showcase.yaml`")
	assert.Contains(t, string(data), "| `allow_zoom` | bool | `false` |")
}

func TestStoryFormats_CoverEveryExtension(t *testing.T) {
	var covered []string
	for _, f := range storyFormats() {
		covered = append(covered, f.Extensions...)
	}
	assert.ElementsMatch(t, stories.Extensions(), covered)
}

func TestStoryFormats_SamplesDecode(t *testing.T) {
	for _, f := range storyFormats() {
		for _, ext := range f.Extensions {
			t.Run(f.Name+ext, func(t *testing.T) {
				raw, err := stories.Decode(context.Background(), "Button"+ext, []byte(f.Sample))
				require.NoError(t, err)
				assert.Contains(t, raw, core.DefaultVariant)
				assert.Contains(t, raw, "dark")
			})
		}
	}
}

func TestGenerateStoriesDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateStoriesDocs(dir))

	data, err := os.ReadFile(filepath.Join(dir, "story-files.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Story Files")
	assert.Contains(t, string(data), "| YAML | `.stories.yaml`, `.stories.yml` |")
	assert.Contains(t, string(data), "```toml\ndefault = \"<button>Default</button>\"")
}

func TestMarkdownTableEscapesPipes(t *testing.T) {
	w := NewMarkdownWriter()
	w.Table([]string{"A"}, [][]string{{"x|y"}})
	assert.Equal(t, "| A |\n| --- |\n| x\\|y |\n\n", string(w.Bytes()))
}
