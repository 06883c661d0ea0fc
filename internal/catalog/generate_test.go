package catalog

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	cat := &Catalog{Root: "src", Entries: []Entry{
		NewEntry("atoms/Button/Button.stories.star"),
		NewEntry("Card.stories.yaml"),
	}}

	src, err := Generate(cat, GenerateOptions{Package: "devshowcase"})
	require.NoError(t, err)

	out := string(src)
	assert.Contains(t, out, "// Code generated by showcase generate. DO NOT EDIT.")
	assert.Contains(t, out, "package devshowcase")
	assert.Contains(t, out, `Name:   "atoms__Button",`)
	assert.Contains(t, out, `Loader: stories.FileLoader("src/atoms/Button/Button.stories.star"),`)
	assert.Contains(t, out, `Group:  "components",`)

	f, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, parser.ParseComments)
	require.NoError(t, err)
	assert.Equal(t, "devshowcase", f.Name.Name)
}

func TestWriteFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "internal", "showcase", DefaultGenerateOut)
	cat := &Catalog{Root: "src", Entries: []Entry{NewEntry("Card.stories.yaml")}}

	require.NoError(t, WriteFile(out, cat, GenerateOptions{}))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "package showcase")
}
