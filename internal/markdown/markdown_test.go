package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Basic(t *testing.T) {
	out, err := Render("Some **bold** text.")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestRender_GFMTable(t *testing.T) {
	out, err := Render("| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
}

func TestRender_StripsScript(t *testing.T) {
	out, err := Render("hello <script>alert('xss')</script> world")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "hello")
}

func TestRender_StripsEventHandlers(t *testing.T) {
	out, err := Render(`<a href="https://example.com" onclick="evil()">link</a>`)
	require.NoError(t, err)
	assert.NotContains(t, out, "onclick")
	assert.Contains(t, out, "example.com")
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "nice post", SanitizeText("nice post"))
	assert.Equal(t, "nice post", SanitizeText("<b>nice</b> <script>x</script>post"))
}
