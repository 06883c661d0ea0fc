package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/showcase/internal/testutil"
)

func TestNewEntry(t *testing.T) {
	tests := []struct {
		rel       string
		wantName  string
		wantGroup string
	}{
		{"atoms/Button/Button.stories.star", "atoms__Button", "atoms"},
		{"atoms/Button/Primary.stories.yaml", "atoms__Button__Primary", "atoms"},
		{"Card.stories.toml", "Card", "components"},
		{"forms/Input.stories.yaml", "forms__Input", "forms"},
		{"ui/molecules/Search/Search.stories.star", "ui__molecules__Search", "molecules"},
		{"Pages/Atoms/Home/Home.stories.star", "Pages__Atoms__Home", "atoms"},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			e := NewEntry(tt.rel)
			assert.Equal(t, tt.wantName, e.Name)
			assert.Equal(t, tt.wantGroup, e.Group)
			assert.Equal(t, tt.rel, e.Path)
		})
	}
}

func TestScan(t *testing.T) {
	root := testutil.StoryTree(t, map[string]string{
		"pages/Home/Home.stories.yaml":     "default: <main>home</main>\n",
		"atoms/Button/Button.stories.star": testutil.ButtonStories,
		"atoms/Badge.stories.toml":         "default = '<b>b</b>'\n",
		"atoms/Button/Button.go":           "package button\n",
		".hidden/Secret.stories.yaml":      "default: x\n",
		"node_modules/x/X.stories.yaml":    "default: x\n",
	})

	cat, err := Scan(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"atoms__Badge", "atoms__Button", "pages__Home"}, cat.Names())
	assert.Equal(t, filepath.Join(root, "atoms", "Badge.stories.toml"), cat.Abs(cat.Entries[0]))

	reg, err := cat.Registry()
	require.NoError(t, err)
	assert.Equal(t, 3, reg.Len())

	desc, ok := reg.Get("atoms__Button")
	require.True(t, ok)
	stories, err := desc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"dark", "default", "sized"}, stories.VariantIDs())
}

func TestScan_Patterns(t *testing.T) {
	root := testutil.StoryTree(t, map[string]string{
		"A.stories.yaml": "default: a\n",
		"B.stories.star": "stories = {}\n",
	})

	cat, err := Scan(root, []string{"*.stories.star"})
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, cat.Names())

	_, err = Scan(root, []string{"["})
	assert.Error(t, err)
}

func TestScan_Errors(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)

	root := testutil.StoryTree(t, map[string]string{
		"Button/Button.stories.yaml": "default: a\n",
		"Button/Button.stories.star": "stories = {}\n",
	})
	_, err = Scan(root, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `module "Button" defined twice`)

	file := testutil.WriteStory(t, t.TempDir(), "file.txt", "x")
	_, err = Scan(file, nil)
	assert.Error(t, err)
}

func TestSuggest(t *testing.T) {
	names := []string{"atoms__Button", "atoms__Badge", "pages__Home", "molecules__Search"}

	assert.Equal(t, []string{"atoms__Button"}, Suggest(names, "atoms__Buton", 1))
	assert.Equal(t, []string{"atoms__Badge", "atoms__Button"}, Suggest(names, "atoms__B", 3))
	assert.Equal(t, []string{"pages__Home"}, Suggest(names, "PAGES__HOME", 3))
	assert.Empty(t, Suggest(names, "zzzzzzzz", 3))
	assert.Len(t, Suggest(names, "atoms", 1), 1)
}
