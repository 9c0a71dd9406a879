// Package markdown renders generated text to HTML for clients that display
// formatted prayers.
package markdown

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

// Raw HTML in model output is never passed through: goldmark omits it
// unless WithUnsafe is set.
var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.Strikethrough,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

var (
	blankLinesPattern = regexp.MustCompile(`\n{3,}`)
	scriptureQuote    = regexp.MustCompile(`(?m)^\s*[“"](.+)[”"]\s*[-–—]\s*(.+)$`)
)

// Render converts markdown to an HTML fragment. On a renderer error the
// escaped text is returned.
func Render(markdownText string) string {
	text := normalize(markdownText)
	if text == "" {
		return ""
	}

	var out bytes.Buffer
	if err := markdownEngine.Convert([]byte(text), &out); err != nil {
		return "<p>" + template.HTMLEscapeString(text) + "</p>"
	}
	return strings.TrimSpace(out.String())
}

// normalize collapses long blank runs and turns a trailing `"quote" - Book 1:2`
// line into a block quote.
func normalize(text string) string {
	text = strings.ReplaceAll(strings.TrimSpace(text), "\r\n", "\n")
	text = blankLinesPattern.ReplaceAllString(text, "\n\n")
	return scriptureQuote.ReplaceAllString(text, "> $1\n>\n> $2")
}
