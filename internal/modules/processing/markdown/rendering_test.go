package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderParagraphsAndEmphasis(t *testing.T) {
	html := Render("Lord, *hear* my prayer.\n\n\n\nAmen.")
	assert.Equal(t, "<p>Lord, <em>hear</em> my prayer.</p>\n<p>Amen.</p>", html)
}

func TestRenderDropsRawHTML(t *testing.T) {
	html := Render("Peace <script>alert(1)</script> be with you")
	assert.NotContains(t, html, "<script>")
}

func TestRenderQuotesScriptureLine(t *testing.T) {
	html := Render(`"Peace I leave with you" - John 14:27`)
	assert.Contains(t, html, "<blockquote>")
	assert.Contains(t, html, "John 14:27")
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "", Render("   "))
}
