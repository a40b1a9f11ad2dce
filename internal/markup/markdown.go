// Package markup converts the markdown written in content files to HTML that
// is safe to drop into the page.
package markup

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// raw HTML is allowed through and cleaned by the policy below
			html.WithUnsafe(),
		),
	)

	policy = newPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span", "img", "a")
	p.AllowAttrs("target").Matching(bluemonday.Paragraph).OnElements("a")
	// page templates use #{root} inside asset URLs
	p.AllowRelativeURLs(true)
	return p
}

// MarkdownToHTML converts md to sanitized HTML
func MarkdownToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return policy.Sanitize(buf.String()), nil
}

// InlineMarkdownToHTML converts a single paragraph of markdown and drops the
// surrounding <p> element, so the result can be embedded in an existing block.
func InlineMarkdownToHTML(md string) (string, error) {
	out, err := MarkdownToHTML(md)
	if err != nil {
		return "", err
	}

	out = strings.TrimSpace(out)
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return out, nil
}
