package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/showcase/internal/cli/config"
	"github.com/leapstack-labs/showcase/internal/cli/testutil"
	"github.com/leapstack-labs/showcase/pkg/showcase"
)

// execute runs the root command with args and captures its output.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func project(t *testing.T) (string, string) {
	t.Helper()
	dir := testutil.SetupTestProject(t)
	return dir, filepath.Join(dir, "showcase.yaml")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "showcase v"+Version)
}

func TestRootCommandMetadata(t *testing.T) {
	root := NewRootCmd()
	assert.Equal(t, "showcase", root.Use)

	for _, name := range []string{"serve", "tui", "list", "render", "export", "generate", "version", "completion"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
		assert.NotEmpty(t, cmd.Short, name)
	}

	ui, _, err := root.Find([]string{"ui"})
	require.NoError(t, err)
	assert.Equal(t, "serve", ui.Name(), "ui is an alias of serve")

	for _, flag := range []string{"config", "stories-dir", "pattern", "verbose", "output"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestList_Markdown(t *testing.T) {
	_, cfg := project(t)

	out, _, err := execute(t, "--config", cfg, "list")
	require.NoError(t, err)

	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "# Stories (3 modules)")
	assert.Contains(t, out, "| atoms__Button | atoms | atoms/Button.stories.star |")
	assert.Contains(t, out, "| pages__Broken | pages | pages/Broken.stories.star |")
}

func TestList_VariantsJSON(t *testing.T) {
	_, cfg := project(t)

	out, _, err := execute(t, "--config", cfg, "list", "--variants", "--output", "json")
	require.NoError(t, err)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)

	byName := make(map[string]map[string]string)
	for _, r := range rows {
		byName[r["module"]] = r
	}
	assert.Equal(t, "dark, default, sized", byName["atoms__Button"]["variants"])
	assert.Equal(t, "new, sale", byName["atoms__Badge"]["variants"])
	assert.Contains(t, byName["pages__Broken"]["variants"], "error:")
}

func TestList_Group(t *testing.T) {
	_, cfg := project(t)

	out, _, err := execute(t, "--config", cfg, "list", "--group", "pages")
	require.NoError(t, err)
	assert.Contains(t, out, "pages__Broken")
	assert.NotContains(t, out, "atoms__Button")
}

func TestList_MissingStoriesDir(t *testing.T) {
	_, cfg := project(t)

	_, _, err := execute(t, "--config", cfg, "--stories-dir", filepath.Join(t.TempDir(), "nope"), "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stories directory does not exist")
}

func TestRender(t *testing.T) {
	_, cfg := project(t)

	t.Run("default variant as markdown", func(t *testing.T) {
		out, _, err := execute(t, "--config", cfg, "render", "atoms__Button")
		require.NoError(t, err)
		assert.Contains(t, out, "Default")
	})

	t.Run("control value as html", func(t *testing.T) {
		out, _, err := execute(t, "--config", cfg, "render", "atoms__Button", "sized", "--format", "html", "--control", "size=lg")
		require.NoError(t, err)
		assert.Contains(t, out, `class="btn btn-lg"`)
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := execute(t, "--config", cfg, "-o", "json", "render", "atoms__Button", "dark")
		require.NoError(t, err)
		var res map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, "atoms__Button", res["module"])
		assert.Equal(t, "dark", res["variant"])
		assert.Equal(t, "Dark", res["title"])
		assert.Equal(t, true, res["dark"])
	})

	t.Run("case-insensitive module", func(t *testing.T) {
		out, _, err := execute(t, "--config", cfg, "render", "ATOMS__BADGE", "sale")
		require.NoError(t, err)
		assert.Contains(t, out, "Sale")
	})
}

func TestRender_Errors(t *testing.T) {
	_, cfg := project(t)

	_, _, err := execute(t, "--config", cfg, "render", "atoms__Buton")
	require.ErrorIs(t, err, showcase.ErrUnknownModule)
	assert.Contains(t, err.Error(), "did you mean atoms__Button")

	_, _, err = execute(t, "--config", cfg, "render", "atoms__Button", "huge")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no such variant "huge"`)

	_, _, err = execute(t, "--config", cfg, "render", "pages__Broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load pages__Broken")

	_, _, err = execute(t, "--config", cfg, "render", "atoms__Button", "--format", "pdf")
	require.Error(t, err)
}

func TestExport(t *testing.T) {
	dir, cfg := project(t)

	out, _, err := execute(t, "--config", cfg, "export", "atoms__Button")
	require.NoError(t, err)

	want := filepath.Join(dir, "exports", "atoms__Button__default.png")
	assert.Contains(t, out, want)
	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])
}

func TestExport_File(t *testing.T) {
	_, cfg := project(t)
	target := filepath.Join(t.TempDir(), "shots", "badge.png")

	_, _, err := execute(t, "--config", cfg, "export", "atoms__Badge", "new", "--background", "--shadow", "-f", target)
	require.NoError(t, err)
	assert.FileExists(t, target)
}

func TestExport_HelpNamesFileFlag(t *testing.T) {
	out, _, err := execute(t, "export", "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "unless\n--file is given")
	assert.Contains(t, out, "-f button-dark.png")
	assert.NotContains(t, out, "-o button-dark.png")
	assert.Contains(t, out, "-f, --file string")
}

func TestExport_Zoom(t *testing.T) {
	dir, cfg := project(t)

	_, _, err := execute(t, "--config", cfg, "export", "atoms__Button", "--zoom")
	require.ErrorIs(t, err, showcase.ErrZoomExport)

	_, _, err = execute(t, "--config", cfg, "export", "atoms__Button", "--zoom", "--allow-zoom")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "exports", "atoms__Button__default@x2.png"))
}

func TestGenerate(t *testing.T) {
	dir, cfg := project(t)

	_, errOut, err := execute(t, "--config", cfg, "generate", "--package", "stories")
	require.NoError(t, err)

	path := filepath.Join(dir, "src", "showcase_catalog_gen.go")
	assert.Contains(t, errOut, "wrote "+path)

	src, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(src), "package stories")
	assert.Contains(t, string(src), `"atoms__Button"`)
	assert.Contains(t, string(src), "func Registry() *core.Registry")
}

func TestGenerate_Quiet(t *testing.T) {
	dir, cfg := project(t)
	out := filepath.Join(dir, "gen", "catalog.go")

	_, errOut, err := execute(t, "--config", cfg, "generate", "--out", out, "-q")
	require.NoError(t, err)
	assert.Empty(t, errOut)
	assert.FileExists(t, out)
}

func TestCompletion(t *testing.T) {
	out, _, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "showcase")

	_, _, err = execute(t, "completion", "tcsh")
	require.Error(t, err)
}

func TestInvalidOutputMode(t *testing.T) {
	_, cfg := project(t)

	_, _, err := execute(t, "--config", cfg, "-o", "yaml", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
