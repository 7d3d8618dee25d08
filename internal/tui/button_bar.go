package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/mirrorbook/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// Button represents a single button in the button bar.
type Button struct {
	Label string
	State ButtonState
}

// ButtonBar lays out the step navigation buttons.
type ButtonBar struct {
	buttons []Button
	width   int
	rtl     bool
	styles  *theme.Styles
}

// NewButtonBar creates a button bar. In right-to-left layouts the buttons are
// drawn in reverse so "back" stays on the reading-start side.
func NewButtonBar(styles *theme.Styles, buttons []Button, rtl bool) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		width:   60,
		rtl:     rtl,
		styles:  styles,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// Render draws the buttons centered in the bar's width.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(b.buttons))
	for _, btn := range b.buttons {
		switch btn.State {
		case ButtonDisabled:
			rendered = append(rendered, b.styles.ButtonDisabled.Render(btn.Label))
		case ButtonFocused:
			rendered = append(rendered, b.styles.ButtonFocused.Render(btn.Label))
		default:
			rendered = append(rendered, b.styles.ButtonNormal.Render(btn.Label))
		}
	}
	if b.rtl {
		for i, j := 0, len(rendered)-1; i < j; i, j = i+1, j-1 {
			rendered[i], rendered[j] = rendered[j], rendered[i]
		}
	}

	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, strings.Join(rendered, ""))
}

// navButtons builds the back / next-or-submit pair for a step.
func navButtons(backLabel, nextLabel string, backEnabled, nextEnabled bool) []Button {
	back := Button{Label: backLabel, State: ButtonNormal}
	if !backEnabled {
		back.State = ButtonDisabled
	}
	next := Button{Label: nextLabel, State: ButtonFocused}
	if !nextEnabled {
		next.State = ButtonDisabled
	}
	return []Button{back, next}
}
