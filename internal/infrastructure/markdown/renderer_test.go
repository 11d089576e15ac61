package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	r := NewRenderer()

	html, err := r.RenderHTML("# Summary\n\nThe site **exceeds** expectations.")
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>Summary</h1>")
	assert.Contains(t, html, "<strong>exceeds</strong>")
}

func TestRenderHTMLStripsScripts(t *testing.T) {
	r := NewRenderer()

	html, err := r.RenderHTML("safe text\n\n<script>alert(1)</script>")
	require.NoError(t, err)

	assert.Contains(t, html, "safe text")
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "alert(1)")
}

func TestRenderHTMLStripsEventAttributes(t *testing.T) {
	r := NewRenderer()

	html, err := r.RenderHTML(`<img src="x" onerror="alert(1)">`)
	require.NoError(t, err)

	assert.NotContains(t, html, "onerror")
}
