package tui

import (
	"strings"

	"github.com/mark3labs/mirrorbook/internal/catalog"
	"github.com/mark3labs/mirrorbook/internal/locale"
	"github.com/mark3labs/mirrorbook/internal/tui/theme"
)

// categoryLabel is the localized heading for a category.
func categoryLabel(c catalog.Category, lang locale.Language) string {
	t := locale.T(lang)
	switch c {
	case catalog.Frame:
		return t.Frame
	case catalog.Rope:
		return t.Rope
	case catalog.Carpet:
		return t.Carpet
	case catalog.Mount:
		return t.Mount
	}
	return string(c)
}

// optionList is the picker for one catalog category.
type optionList struct {
	category catalog.Category
	options  []catalog.Option
	cursor   int
}

// newOptionList builds a picker with the cursor on the current choice.
func newOptionList(cat *catalog.Catalog, c catalog.Category, selected string) *optionList {
	l := &optionList{category: c, options: cat.Options(c)}
	for i, opt := range l.options {
		if opt.ID == selected {
			l.cursor = i
		}
	}
	return l
}

func (l *optionList) move(delta int) {
	if len(l.options) == 0 {
		return
	}
	l.cursor += delta
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.cursor >= len(l.options) {
		l.cursor = len(l.options) - 1
	}
}

// current returns the option under the cursor.
func (l *optionList) current() (catalog.Option, bool) {
	if l.cursor < 0 || l.cursor >= len(l.options) {
		return catalog.Option{}, false
	}
	return l.options[l.cursor], true
}

func (l *optionList) view(s *theme.Styles, lang locale.Language, selectedID string, focused bool) string {
	var b strings.Builder

	heading := categoryLabel(l.category, lang)
	if focused {
		b.WriteString(s.Title.Render(heading))
	} else {
		b.WriteString(s.Label.Render(heading))
	}
	b.WriteString("\n")

	for i, opt := range l.options {
		mark := "○"
		if opt.ID == selectedID {
			mark = "●"
		}
		line := mark + " " + opt.Name.Get(lang)

		switch {
		case focused && i == l.cursor:
			line = s.OptionCursor.Render("› " + line)
		case opt.ID == selectedID:
			line = s.OptionSelected.Render("  " + line)
		default:
			line = s.Option.Render("  " + line)
		}
		b.WriteString(line)

		if desc := opt.Description.Get(lang); desc != "" && focused && i == l.cursor {
			b.WriteString("\n    " + s.Muted.Render(desc))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
