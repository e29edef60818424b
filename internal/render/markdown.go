package render

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// MarkdownRenderer converts editor-authored markdown body fields to
// sanitized HTML. Everything that reaches a template as rich text flows
// through here first, so templates only ever see policy-filtered markup.
type MarkdownRenderer struct {
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

// NewMarkdownRenderer constructs the shared markdown pipeline.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts markdown source to sanitized HTML. Empty input renders to
// empty output; conversion failures degrade to the escaped source text
// rather than failing the section.
func (r *MarkdownRenderer) Render(source string) template.HTML {
	if source == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(source), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(source) + "</p>")
	}
	return template.HTML(r.policy.Sanitize(buf.String()))
}
