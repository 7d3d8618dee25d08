package session

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mirrorbook/internal/locale"
)

// EventType is the kind of event being booked.
type EventType string

const (
	Wedding    EventType = "Wedding"
	Engagement EventType = "Engagement"
	Birthday   EventType = "Birthday"
	Corporate  EventType = "Corporate"
	Other      EventType = "Other"
)

// EventTypes lists the event types in form order.
var EventTypes = []EventType{Wedding, Engagement, Birthday, Corporate, Other}

func (e EventType) String() string { return string(e) }

// ParseEventType accepts an event type name, case-insensitively.
func ParseEventType(s string) (EventType, error) {
	for _, et := range EventTypes {
		if strings.EqualFold(string(et), strings.TrimSpace(s)) {
			return et, nil
		}
	}
	return Wedding, fmt.Errorf("unknown event type %q", s)
}

// Label returns the localized label for the event type.
func (e EventType) Label(lang locale.Language) string {
	t := locale.T(lang)
	switch e {
	case Wedding:
		return t.Wedding
	case Engagement:
		return t.Engagement
	case Birthday:
		return t.Birthday
	case Corporate:
		return t.Corporate
	case Other:
		return t.Other
	}
	return string(e)
}

// Next returns the following event type, wrapping around.
func (e EventType) Next() EventType { return e.shift(1) }

// Prev returns the preceding event type, wrapping around.
func (e EventType) Prev() EventType { return e.shift(-1) }

func (e EventType) shift(by int) EventType {
	n := len(EventTypes)
	for i, et := range EventTypes {
		if et == e {
			return EventTypes[((i+by)%n+n)%n]
		}
	}
	return Wedding
}
