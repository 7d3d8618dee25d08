package compose

import (
	"bytes"
	"regexp"
	"strings"

	"charm.land/glamour/v2"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/mark3labs/mirrorbook/internal/catalog"
	"github.com/mark3labs/mirrorbook/internal/locale"
	"github.com/mark3labs/mirrorbook/internal/session"
)

var boldRun = regexp.MustCompile(`\*([^*\n]+)\*`)

// Markdown converts the WhatsApp flavoured message into Markdown: *x* becomes
// **x** and bullets become list items.
func Markdown(message string) string {
	lines := strings.Split(message, "\n")
	for i, l := range lines {
		l = boldRun.ReplaceAllString(l, "**$1**")
		if rest, ok := strings.CutPrefix(l, "• "); ok {
			l = "- " + rest
		}
		lines[i] = l
	}
	return strings.Join(lines, "\n")
}

// RenderTerminal renders the message through glamour for the review pane.
// Falls back to the raw text if rendering fails.
func RenderTerminal(message string, width int) string {
	if width > 100 {
		width = 100
	}
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return message
	}
	out, err := r.Render(Markdown(message))
	if err != nil {
		return message
	}
	return strings.Trim(out, "\n")
}

// Highlight colours the message for a 256-colour terminal with chroma.
func Highlight(message string) (string, error) {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, Markdown(message), "markdown", "terminal256", "monokai"); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Preview is the composed message as Markdown, for the review pane.
func Preview(sel session.Selection, contact session.ContactForm, cat *catalog.Catalog, lang locale.Language) string {
	return Markdown(Compose(sel, contact, cat, lang))
}
