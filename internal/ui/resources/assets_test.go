package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinify(t *testing.T) {
	css, err := Minify("a.css", []byte(".a {\n  color: red;\n}\n"))
	require.NoError(t, err)
	assert.Equal(t, ".a{color:red}\n", string(css))

	js, err := Minify("a.js", []byte("function add(first, second) {\n  return first + second;\n}\n"))
	require.NoError(t, err)
	assert.NotContains(t, string(js), "\n  ")

	raw := []byte("<svg/>")
	out, err := Minify("a.svg", raw)
	require.NoError(t, err)
	assert.Equal(t, raw, out)

	_, err = Minify("bad.js", []byte("function ("))
	assert.Error(t, err)
}

func TestStaticPath(t *testing.T) {
	assert.Equal(t, "/_showcase/static/showcase.css", StaticPath(StylesheetAsset))
}
