package testfixtures

import (
	"time"

	"github.com/mark3labs/mirrorbook/internal/catalog"
	"github.com/mark3labs/mirrorbook/internal/locale"
	"github.com/mark3labs/mirrorbook/internal/session"
	"github.com/mark3labs/mirrorbook/internal/wizard"
)

// Fixed test values for consistent output
const (
	FixedSessionID = "3f1c9a52-7d1e-4b8e-9a0c-2d5e6f708192"
	FixedName      = "Dana Levi"
	FixedEmail     = "dana@example.com"
	FixedPhone     = "050-1234567"
	FixedLocation  = "Tel Aviv-Yafo, Israel"
)

var (
	FixedDate = time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
)

// EmptySession returns a fresh session with a stable id.
func EmptySession(lang locale.Language) *session.Session {
	s := session.New(lang)
	s.ID = FixedSessionID
	return s
}

// FullSelection picks one option in every category.
func FullSelection() session.Selection {
	return session.Selection{Frame: "f1", Rope: "r1", Carpet: "c2", Mount: "m2"}
}

// FullContact fills every contact field.
func FullContact() session.ContactForm {
	return session.ContactForm{
		Name:      FixedName,
		Email:     FixedEmail,
		Phone:     FixedPhone,
		Date:      FixedDate,
		Location:  FixedLocation,
		EventType: session.Wedding,
	}
}

// ReadySession returns a session on the contact step with everything filled
// in, ready to submit.
func ReadySession(lang locale.Language) *session.Session {
	s := EmptySession(lang)
	s.Selection = FullSelection()
	s.Contact = FullContact()
	s.Wizard.Step = wizard.StepContact
	return s
}

// NewController wraps sess in a controller over the built-in catalog.
func NewController(sess *session.Session, opts ...wizard.Option) *wizard.Controller {
	return wizard.New(sess, catalog.Default(), opts...)
}
