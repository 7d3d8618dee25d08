// Package wizard sequences the booking steps over a session and gates each
// step on the data it needs.
//
// Advance and Retreat deliberately do not check validity. The presentation
// layer disables its "next" control while IsCurrentStepValid is false; the
// controller trusts that and moves whenever it is asked to.
package wizard

import (
	"fmt"
	"time"

	"github.com/mark3labs/mirrorbook/internal/catalog"
	"github.com/mark3labs/mirrorbook/internal/locale"
	"github.com/mark3labs/mirrorbook/internal/logger"
	"github.com/mark3labs/mirrorbook/internal/session"
)

// Option configures a Controller.
type Option func(*Controller)

// WithListener registers a listener at construction time.
func WithListener(l Listener) Option {
	return func(c *Controller) { c.Subscribe(l) }
}

// Controller owns the mutations of one session.
type Controller struct {
	sess      *session.Session
	cat       *catalog.Catalog
	listeners []Listener
}

// New creates a controller for sess over the given catalog.
func New(sess *session.Session, cat *catalog.Catalog, opts ...Option) *Controller {
	c := &Controller{sess: sess, cat: cat}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe adds a listener. Listeners run synchronously after each change.
func (c *Controller) Subscribe(l Listener) {
	if l != nil {
		c.listeners = append(c.listeners, l)
	}
}

func (c *Controller) emit(e Event) {
	e.Step = c.sess.Wizard.Step
	for _, l := range c.listeners {
		l(e)
	}
}

// Session returns the session being edited. Callers must treat it as read-only.
func (c *Controller) Session() *session.Session { return c.sess }

// SessionID returns the id of the session being edited.
func (c *Controller) SessionID() string { return c.sess.ID }

// Catalog returns the catalog the controller resolves ids against.
func (c *Controller) Catalog() *catalog.Catalog { return c.cat }

// Lang returns the active display language.
func (c *Controller) Lang() locale.Language { return c.sess.Lang }

// Step returns the current step index.
func (c *Controller) Step() int { return c.sess.Wizard.Step }

// CurrentStep returns the current step descriptor.
func (c *Controller) CurrentStep() Step { return steps[c.sess.Wizard.Step] }

// Submitted reports whether the booking was handed off.
func (c *Controller) Submitted() bool { return c.sess.Wizard.Submitted }

// IsCurrentStepValid reports whether the current step has what it needs.
func (c *Controller) IsCurrentStepValid() bool {
	return c.IsStepValid(c.sess.Wizard.Step)
}

// IsStepValid applies the presence rules of a step. Formats are not checked.
func (c *Controller) IsStepValid(step int) bool {
	sel := c.sess.Selection
	switch step {
	case StepFrame:
		return sel.Frame != ""
	case StepRopeCarpet:
		return sel.Rope != "" && sel.Carpet != ""
	case StepMount:
		return sel.Mount != ""
	case StepContact:
		ct := c.sess.Contact
		return ct.Name != "" && ct.Email != "" && ct.HasDate()
	}
	return false
}

// Missing names what step still needs: category names for option steps,
// field names for the contact step. It is empty for a valid step.
func (c *Controller) Missing(step int) []string {
	var missing []string
	switch step {
	case StepFrame, StepRopeCarpet, StepMount:
		for _, cat := range steps[step].Categories {
			if c.sess.Selection.Get(cat) == "" {
				missing = append(missing, string(cat))
			}
		}
	case StepContact:
		ct := c.sess.Contact
		if ct.Name == "" {
			missing = append(missing, string(session.FieldName))
		}
		if ct.Email == "" {
			missing = append(missing, string(session.FieldEmail))
		}
		if !ct.HasDate() {
			missing = append(missing, string(session.FieldDate))
		}
	}
	return missing
}

// Advance moves to the next step. It is a no-op on the last step.
func (c *Controller) Advance() {
	if c.Submitted() || c.sess.Wizard.Step >= len(steps)-1 {
		return
	}
	c.sess.Wizard.Step++
	logger.Debug("wizard advanced to step %d", c.sess.Wizard.Step)
	c.emit(Event{Kind: EventStepChanged})
}

// Retreat moves to the previous step. It is a no-op on the first step.
func (c *Controller) Retreat() {
	if c.Submitted() || c.sess.Wizard.Step <= 0 {
		return
	}
	c.sess.Wizard.Step--
	logger.Debug("wizard retreated to step %d", c.sess.Wizard.Step)
	c.emit(Event{Kind: EventStepChanged})
}

// SelectOption overwrites the choice for a category. An empty id clears it.
// Picking a mount also emits EventFocusPreview so the presentation can bring
// the preview into view.
func (c *Controller) SelectOption(cat catalog.Category, id string) error {
	if c.Submitted() {
		return nil
	}
	if id != "" && !c.cat.Has(cat, id) {
		return fmt.Errorf("%w: %s %q", catalog.ErrUnknownOption, cat, id)
	}
	if err := c.sess.Selection.Set(cat, id); err != nil {
		return err
	}
	logger.Debug("selected %s=%q", cat, id)
	c.emit(Event{Kind: EventOptionSelected, Category: cat, OptionID: id})
	if cat == catalog.Mount {
		c.emit(Event{Kind: EventFocusPreview, Category: cat, OptionID: id})
	}
	return nil
}

// SetField writes a contact field from text.
func (c *Controller) SetField(f session.Field, value string) error {
	if c.Submitted() {
		return nil
	}
	if err := c.sess.Contact.Set(f, value); err != nil {
		return err
	}
	stored, _ := c.sess.Contact.Get(f)
	c.emit(Event{Kind: EventFieldChanged, Field: f, Value: stored})
	return nil
}

// SetDate sets the event date. The zero time clears it.
func (c *Controller) SetDate(d time.Time) {
	if c.Submitted() {
		return
	}
	c.sess.Contact.Date = d
	stored, _ := c.sess.Contact.Get(session.FieldDate)
	c.emit(Event{Kind: EventFieldChanged, Field: session.FieldDate, Value: stored})
}

// SetEventType sets the event type.
func (c *Controller) SetEventType(et session.EventType) {
	if c.Submitted() {
		return
	}
	c.sess.Contact.EventType = et
	c.emit(Event{Kind: EventFieldChanged, Field: session.FieldEventType, Value: et.String()})
}

// SetLocation writes the location field. It satisfies lookup.LocationSink.
func (c *Controller) SetLocation(text string) {
	_ = c.SetField(session.FieldLocation, text)
}

// SetLanguage switches the display language. Selection, contact data and the
// wizard position are left untouched, and it stays allowed after submission.
func (c *Controller) SetLanguage(lang locale.Language) {
	if c.sess.Lang == lang {
		return
	}
	c.sess.Lang = lang
	c.emit(Event{Kind: EventLanguageChanged, Lang: lang})
}

// MarkSubmitted records the handoff. There is no way back within a session.
func (c *Controller) MarkSubmitted() {
	if c.Submitted() {
		return
	}
	c.sess.Wizard.Submitted = true
	logger.Info("session %s submitted", c.sess.ID)
	c.emit(Event{Kind: EventSubmitted})
}
