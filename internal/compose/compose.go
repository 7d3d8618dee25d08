// Package compose turns a finished booking into the text handed to the
// messaging app. Everything here is pure: the same inputs give the same bytes.
package compose

import (
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mirrorbook/internal/catalog"
	"github.com/mark3labs/mirrorbook/internal/locale"
	"github.com/mark3labs/mirrorbook/internal/session"
)

// months is fixed so dates read the same in every language.
var months = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// FormatDate renders d as DD-Mon-YYYY. The zero time renders as "".
func FormatDate(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d-%s-%d", d.Day(), months[d.Month()-1], d.Year())
}

// EventTypeText is what the message shows for the event type: the custom text
// for Other, the localized label otherwise.
func EventTypeText(contact session.ContactForm, lang locale.Language) string {
	if contact.EventType == session.Other {
		return contact.CustomEventType
	}
	return contact.EventType.Label(lang)
}

// OptionName resolves a selected id, falling back to the localized "none"
// placeholder for empty or unknown ids.
func OptionName(cat *catalog.Catalog, c catalog.Category, id string, lang locale.Language) string {
	if id != "" && cat != nil {
		if name, ok := cat.Name(c, id, lang); ok && name != "" {
			return name
		}
	}
	return locale.T(lang).None
}

// Compose builds the handoff message.
func Compose(sel session.Selection, contact session.ContactForm, cat *catalog.Catalog, lang locale.Language) string {
	t := locale.T(lang)
	var b strings.Builder

	line := func(label, value string) {
		fmt.Fprintf(&b, "• %s: %s\n", label, value)
	}

	fmt.Fprintf(&b, "*%s* 📸✨\n\n", t.NewRequest)

	fmt.Fprintf(&b, "*%s:*\n", t.EventDetails)
	line(t.Name, contact.Name)
	line(t.Email, contact.Email)
	line(t.Phone, contact.Phone)
	line(t.EventType, EventTypeText(contact, lang))
	line(t.Date, FormatDate(contact.Date))
	line(t.Location, contact.Location)
	if contact.Notes != "" {
		line(t.Notes, contact.Notes)
	}

	fmt.Fprintf(&b, "\n*%s:*\n", t.Selections)
	line(t.Frame, OptionName(cat, catalog.Frame, sel.Frame, lang))
	line(t.Rope, OptionName(cat, catalog.Rope, sel.Rope, lang))
	line(t.Carpet, OptionName(cat, catalog.Carpet, sel.Carpet, lang))
	line(t.Mount, OptionName(cat, catalog.Mount, sel.Mount, lang))

	return strings.TrimSuffix(b.String(), "\n")
}

// ComposeSession is Compose over a session's own state and language.
func ComposeSession(s *session.Session, cat *catalog.Catalog) string {
	return Compose(s.Selection, s.Contact, cat, s.Lang)
}
