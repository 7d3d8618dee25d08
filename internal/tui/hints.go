package tui

import (
	"strings"

	"github.com/mark3labs/mirrorbook/internal/tui/theme"
)

// renderHintBar renders key/description pairs separated by bullets.
// An odd number of arguments renders nothing.
func renderHintBar(s *theme.Styles, pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	var b strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(" " + s.HintSeparator.Render("•") + " ")
		}
		b.WriteString(s.HintKey.Render(pairs[i]) + " " + s.HintDesc.Render(pairs[i+1]))
	}
	return b.String()
}
