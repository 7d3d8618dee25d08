package tui

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	"github.com/mark3labs/mirrorbook/internal/catalog"
	"github.com/mark3labs/mirrorbook/internal/compose"
	"github.com/mark3labs/mirrorbook/internal/locale"
	"github.com/mark3labs/mirrorbook/internal/lookup"
	"github.com/mark3labs/mirrorbook/internal/session"
	"github.com/mark3labs/mirrorbook/internal/tui/theme"
)

// renderSummary draws the "your selection" panel. highlight is set briefly
// after a mount is picked.
func renderSummary(s *theme.Styles, sess *session.Session, cat *catalog.Catalog, highlight bool, width int) string {
	lang := sess.Lang
	var b strings.Builder
	b.WriteString(s.Title.Render(locale.T(lang).YourSelection))
	for _, c := range catalog.Categories {
		b.WriteString("\n")
		b.WriteString(s.Label.Render(categoryLabel(c, lang)+": ") +
			s.Text.Render(compose.OptionName(cat, c, sess.Selection.Get(c), lang)))
	}

	style := s.Panel
	if highlight {
		style = s.PanelFocused
	}
	return style.Width(width).Render(b.String())
}

// renderSuggestions draws the geocoder suggestions under the location field.
func renderSuggestions(s *theme.Styles, snap lookup.Snapshot, cursor int, sp spinner.Model, lang locale.Language) string {
	if snap.Loading {
		return "   " + sp.View() + " " + s.Muted.Render(locale.T(lang).Searching)
	}
	if !snap.SuggestionsVisible || len(snap.Results) == 0 {
		return ""
	}
	lines := make([]string, 0, len(snap.Results))
	for i, p := range snap.Results {
		if i == cursor {
			lines = append(lines, "   "+s.SuggestionCursor.Render("› "+p.DisplayName))
		} else {
			lines = append(lines, "     "+s.Suggestion.Render(p.DisplayName))
		}
	}
	return strings.Join(lines, "\n")
}
