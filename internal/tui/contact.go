package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/mirrorbook/internal/locale"
	"github.com/mark3labs/mirrorbook/internal/session"
	"github.com/mark3labs/mirrorbook/internal/tui/theme"
)

// formFields is the contact form in display order.
var formFields = []session.Field{
	session.FieldName,
	session.FieldEmail,
	session.FieldPhone,
	session.FieldEventType,
	session.FieldCustomEventType,
	session.FieldDate,
	session.FieldLocation,
	session.FieldNotes,
}

func requiredField(f session.Field) bool {
	return f == session.FieldName || f == session.FieldEmail || f == session.FieldDate
}

func fieldLabel(f session.Field, lang locale.Language) string {
	t := locale.T(lang)
	switch f {
	case session.FieldName:
		return t.Name
	case session.FieldEmail:
		return t.Email
	case session.FieldPhone:
		return t.Phone
	case session.FieldEventType:
		return t.EventType
	case session.FieldCustomEventType:
		return t.CustomEventType
	case session.FieldDate:
		return t.Date
	case session.FieldLocation:
		return t.Location
	case session.FieldNotes:
		return t.Notes
	}
	return string(f)
}

func inputStyles(th *theme.Theme) textinput.Styles {
	c := lipgloss.Color
	return textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(c(th.FgBright)),
			Placeholder: lipgloss.NewStyle().Foreground(c(th.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(c(th.Primary)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(c(th.FgBase)),
			Placeholder: lipgloss.NewStyle().Foreground(c(th.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(c(th.FgMuted)),
		},
		Cursor: textinput.CursorStyle{
			Color: c(th.Accent),
			Shape: tea.CursorBar,
			Blink: true,
		},
	}
}

// contactForm holds one text input per free-text contact field. The event
// type is not an input; it cycles through the fixed list.
type contactForm struct {
	inputs map[session.Field]*textinput.Model
	focus  int // index into visible()
}

func newContactForm(th *theme.Theme, contact session.ContactForm, lang locale.Language) *contactForm {
	f := &contactForm{inputs: make(map[session.Field]*textinput.Model)}
	for _, field := range formFields {
		if field == session.FieldEventType {
			continue
		}
		in := textinput.New()
		in.Prompt = "› "
		in.SetStyles(inputStyles(th))
		in.SetWidth(40)
		value, _ := contact.Get(field)
		in.SetValue(value)
		f.inputs[field] = &in
	}
	f.setLanguage(lang)
	return f
}

// setLanguage refreshes the placeholders.
func (f *contactForm) setLanguage(lang locale.Language) {
	t := locale.T(lang)
	f.inputs[session.FieldDate].Placeholder = "YYYY-MM-DD"
	f.inputs[session.FieldNotes].Placeholder = t.NotesPlaceholder
	f.inputs[session.FieldCustomEventType].Placeholder = t.CustomEventType
	f.inputs[session.FieldLocation].Placeholder = t.Location
}

// visible lists the fields shown for the event type; the custom text only
// appears for Other.
func (f *contactForm) visible(et session.EventType) []session.Field {
	out := make([]session.Field, 0, len(formFields))
	for _, field := range formFields {
		if field == session.FieldCustomEventType && et != session.Other {
			continue
		}
		out = append(out, field)
	}
	return out
}

// focused returns the field with focus.
func (f *contactForm) focused(et session.EventType) session.Field {
	fields := f.visible(et)
	if f.focus >= len(fields) {
		f.focus = len(fields) - 1
	}
	return fields[f.focus]
}

// setFocus moves focus to index i (wrapping) and focuses its input.
func (f *contactForm) setFocus(i int, et session.EventType) tea.Cmd {
	fields := f.visible(et)
	f.focus = ((i % len(fields)) + len(fields)) % len(fields)
	for _, in := range f.inputs {
		in.Blur()
	}
	if in, ok := f.inputs[fields[f.focus]]; ok {
		return in.Focus()
	}
	return nil
}

// focusField moves focus to field if it is visible.
func (f *contactForm) focusField(field session.Field, et session.EventType) tea.Cmd {
	for i, v := range f.visible(et) {
		if v == field {
			return f.setFocus(i, et)
		}
	}
	return nil
}

func (f *contactForm) value(field session.Field) string {
	if in, ok := f.inputs[field]; ok {
		return in.Value()
	}
	return ""
}

func (f *contactForm) setValue(field session.Field, v string) {
	if in, ok := f.inputs[field]; ok && in.Value() != v {
		in.SetValue(v)
		in.CursorEnd()
	}
}

// update forwards msg to the focused input and reports whether its value
// changed.
func (f *contactForm) update(msg tea.Msg, et session.EventType) (tea.Cmd, session.Field, bool) {
	field := f.focused(et)
	in, ok := f.inputs[field]
	if !ok {
		return nil, field, false
	}
	before := in.Value()
	updated, cmd := in.Update(msg)
	*in = updated
	return cmd, field, in.Value() != before
}

func (f *contactForm) view(s *theme.Styles, contact session.ContactForm, lang locale.Language, below map[session.Field]string) string {
	var b strings.Builder
	fields := f.visible(contact.EventType)
	for i, field := range fields {
		label := fieldLabel(field, lang)
		if requiredField(field) {
			label += s.Required.Render(" *")
		}
		if i == f.focus {
			b.WriteString(s.Title.Render("▌") + s.Label.Render(label))
		} else {
			b.WriteString(" " + s.Label.Render(label))
		}
		b.WriteString("\n")

		if field == session.FieldEventType {
			value := contact.EventType.Label(lang)
			if i == f.focus {
				b.WriteString("  " + s.OptionCursor.Render(fmt.Sprintf("‹ %s ›", value)))
			} else {
				b.WriteString("  " + s.Text.Render(value))
			}
		} else {
			b.WriteString(" " + f.inputs[field].View())
		}
		b.WriteString("\n")

		if extra := below[field]; extra != "" {
			b.WriteString(extra + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
