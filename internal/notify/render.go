// Package notify renders notification templates and normalizes recipient
// phone numbers. Rendering is pure string substitution; transports and
// persistence live in the services layer.
package notify

import (
	"log"
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{\{([a-zA-Z0-9_]+)\}\}`)

// Render substitutes every known {{token}} in body with its context value.
// Unknown tokens are left verbatim and logged so a typo in a template shows
// up in the send log instead of silently disappearing. Trailing whitespace is
// stripped per line to avoid quoted-printable =20 artifacts in mails.
func Render(body string, ctx RenderContext) string {
	values := ctx.Values()

	result := placeholderPattern.ReplaceAllStringFunc(body, func(token string) string {
		key := token[2 : len(token)-2]
		if value, ok := values[key]; ok {
			return value
		}
		log.Printf("[Render] unknown placeholder %s left verbatim", token)
		return token
	})

	lines := strings.Split(result, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// StripHTML reduces an HTML body to the plain-text alternative part.
func StripHTML(html string) string {
	text := htmlTagPattern.ReplaceAllString(html, "")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
