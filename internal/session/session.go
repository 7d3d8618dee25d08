// Package session holds the state of one booking: the catalog selection, the
// contact form and the wizard position. A Session is owned by a single
// wizard controller and passed by reference to every component that needs it.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mirrorbook/internal/catalog"
	"github.com/mark3labs/mirrorbook/internal/locale"
)

// ErrUnknownField is returned for a contact field name that does not exist.
var ErrUnknownField = errors.New("unknown contact field")

// Selection is the chosen option id per category. Empty means not chosen.
type Selection struct {
	Frame  string `json:"frame"`
	Rope   string `json:"rope"`
	Carpet string `json:"carpet"`
	Mount  string `json:"mount"`
}

// Get returns the id chosen for a category.
func (s Selection) Get(cat catalog.Category) string {
	switch cat {
	case catalog.Frame:
		return s.Frame
	case catalog.Rope:
		return s.Rope
	case catalog.Carpet:
		return s.Carpet
	case catalog.Mount:
		return s.Mount
	}
	return ""
}

// Set overwrites the id for a category.
func (s *Selection) Set(cat catalog.Category, id string) error {
	switch cat {
	case catalog.Frame:
		s.Frame = id
	case catalog.Rope:
		s.Rope = id
	case catalog.Carpet:
		s.Carpet = id
	case catalog.Mount:
		s.Mount = id
	default:
		return fmt.Errorf("%w: %q", catalog.ErrUnknownCategory, cat)
	}
	return nil
}

// WizardState is the wizard position. Submitted is terminal.
type WizardState struct {
	Step      int  `json:"step"`
	Submitted bool `json:"submitted"`
}

// Session is the single source of truth for one booking.
type Session struct {
	ID        string          `json:"id"`
	Lang      locale.Language `json:"lang"`
	Selection Selection       `json:"selection"`
	Contact   ContactForm     `json:"contact"`
	Wizard    WizardState     `json:"wizard"`
}

// New creates an empty session with a fresh id.
func New(lang locale.Language) *Session {
	return &Session{
		ID:      uuid.NewString(),
		Lang:    lang,
		Contact: ContactForm{EventType: Wedding},
	}
}

// Field names a contact form field.
type Field string

const (
	FieldName            Field = "name"
	FieldEmail           Field = "email"
	FieldPhone           Field = "phone"
	FieldDate            Field = "date"
	FieldLocation        Field = "location"
	FieldNotes           Field = "notes"
	FieldEventType       Field = "event_type"
	FieldCustomEventType Field = "custom_event_type"
)

// Fields lists every contact field in form order.
var Fields = []Field{
	FieldName, FieldEmail, FieldPhone, FieldEventType, FieldCustomEventType,
	FieldDate, FieldLocation, FieldNotes,
}

// ParseField accepts a field name; dashes and underscores are interchangeable.
func ParseField(s string) (Field, error) {
	f := Field(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	for _, known := range Fields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// ContactForm is the event and contact data entered on the last step.
type ContactForm struct {
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Date            time.Time `json:"date"`
	Location        string    `json:"location"`
	Notes           string    `json:"notes"`
	EventType       EventType `json:"event_type"`
	CustomEventType string    `json:"custom_event_type"`
}

// HasDate reports whether a date was entered.
func (c ContactForm) HasDate() bool { return !c.Date.IsZero() }

// Get returns a field as text. Dates use the YYYY-MM-DD input layout.
func (c ContactForm) Get(f Field) (string, error) {
	switch f {
	case FieldName:
		return c.Name, nil
	case FieldEmail:
		return c.Email, nil
	case FieldPhone:
		return c.Phone, nil
	case FieldDate:
		if !c.HasDate() {
			return "", nil
		}
		return c.Date.Format(DateLayout), nil
	case FieldLocation:
		return c.Location, nil
	case FieldNotes:
		return c.Notes, nil
	case FieldEventType:
		return c.EventType.String(), nil
	case FieldCustomEventType:
		return c.CustomEventType, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, f)
}

// Set writes a field from text. Dates and event types are parsed; a date that
// does not parse clears the field.
func (c *ContactForm) Set(f Field, value string) error {
	switch f {
	case FieldName:
		c.Name = value
	case FieldEmail:
		c.Email = value
	case FieldPhone:
		c.Phone = value
	case FieldDate:
		d, _ := ParseDate(value)
		c.Date = d
	case FieldLocation:
		c.Location = value
	case FieldNotes:
		c.Notes = value
	case FieldEventType:
		et, err := ParseEventType(value)
		if err != nil {
			return err
		}
		c.EventType = et
	case FieldCustomEventType:
		c.CustomEventType = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	return nil
}

// DateLayout is the calendar date layout accepted from input widgets.
const DateLayout = "2006-01-02"

// ParseDate parses YYYY-MM-DD or DD-Mon-YYYY. Blank input yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{DateLayout, "02-Jan-2006"} {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
}
