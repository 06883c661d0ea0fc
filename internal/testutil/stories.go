package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// StoryTree writes files (slash-separated relative path -> content) under a
// fresh temporary directory and returns the directory.
func StoryTree(t testing.TB, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		WriteStory(t, root, rel, content)
	}
	return root
}

// WriteStory creates or replaces one file below root.
func WriteStory(t testing.TB, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
	return p
}

// ButtonStories is a small Starlark story file with a toolbar control.
const ButtonStories = `
def sized(ctx):
    size = ctx.select("size", ["sm", "md", "lg"], default = "md", label = "Size")
    return '<button class="btn btn-%s">Go</button>' % size

stories = {
    "default": "<button>Default</button>",
    "sized": sized,
    "dark": {"title": "Dark", "dark": True, "render": "<button>Night</button>"},
}
`
