package wizard

import (
	"github.com/mark3labs/mirrorbook/internal/catalog"
	"github.com/mark3labs/mirrorbook/internal/locale"
	"github.com/mark3labs/mirrorbook/internal/session"
)

// EventKind identifies what changed.
type EventKind string

const (
	EventOptionSelected  EventKind = "option_selected"
	EventFocusPreview    EventKind = "focus_preview" // presentation should bring the preview into view
	EventStepChanged     EventKind = "step_changed"
	EventFieldChanged    EventKind = "field_changed"
	EventLanguageChanged EventKind = "language_changed"
	EventSubmitted       EventKind = "submitted"
)

// Event describes one applied change. Step is the step index after the change.
type Event struct {
	Kind     EventKind        `json:"kind"`
	Category catalog.Category `json:"category,omitempty"`
	OptionID string           `json:"option_id,omitempty"`
	Field    session.Field    `json:"field,omitempty"`
	Value    string           `json:"value,omitempty"`
	Lang     locale.Language  `json:"lang,omitempty"`
	Step     int              `json:"step"`
}

// Listener receives controller events.
type Listener func(Event)
