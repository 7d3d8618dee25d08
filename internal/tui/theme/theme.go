// Package theme holds the colour palette and pre-built styles of the booking
// TUI.
package theme

import (
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	// Semantic colors
	Primary   string
	Secondary string
	Accent    string

	// Background hierarchy (dark→light)
	BgBase     string
	BgSurface0 string
	BgSurface1 string

	// Foreground hierarchy (dim→bright)
	FgMuted  string
	FgSubtle string
	FgBase   string
	FgBright string

	// Status colors
	Success string
	Warning string
	Error   string

	styles     *Styles
	stylesOnce sync.Once
}

// S returns the pre-built styles for this theme, built on first use.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	c := lipgloss.Color
	button := lipgloss.NewStyle().Padding(0, 2).MarginLeft(1).MarginRight(1)

	return &Styles{
		Title:    lipgloss.NewStyle().Foreground(c(t.Primary)).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(c(t.FgSubtle)).Italic(true),
		StepTag:  lipgloss.NewStyle().Foreground(c(t.BgBase)).Background(c(t.Secondary)).Padding(0, 1),
		Label:    lipgloss.NewStyle().Foreground(c(t.FgSubtle)),
		Text:     lipgloss.NewStyle().Foreground(c(t.FgBase)),
		Muted:    lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		Required: lipgloss.NewStyle().Foreground(c(t.Error)),

		Option:         lipgloss.NewStyle().Foreground(c(t.FgBase)),
		OptionCursor:   lipgloss.NewStyle().Foreground(c(t.BgBase)).Background(c(t.Secondary)),
		OptionSelected: lipgloss.NewStyle().Foreground(c(t.Primary)).Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.BgSurface1)).
			Padding(0, 1),
		PanelFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.Primary)).
			Padding(0, 1),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.Secondary)).
			Padding(1, 2),

		ButtonNormal:   button.Foreground(c(t.FgBase)).Background(c(t.BgSurface0)),
		ButtonDisabled: button.Foreground(c(t.FgMuted)).Background(c(t.BgBase)),
		ButtonFocused:  button.Foreground(c(t.BgBase)).Background(c(t.Primary)).Bold(true),

		HintKey:       lipgloss.NewStyle().Foreground(c(t.FgSubtle)).Bold(true),
		HintDesc:      lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		HintSeparator: lipgloss.NewStyle().Foreground(c(t.BgSurface1)),

		Suggestion:       lipgloss.NewStyle().Foreground(c(t.FgSubtle)),
		SuggestionCursor: lipgloss.NewStyle().Foreground(c(t.Primary)).Bold(true),
		Spinner:          lipgloss.NewStyle().Foreground(c(t.Primary)),
		Success:          lipgloss.NewStyle().Foreground(c(t.Success)).Bold(true),
	}
}

// NewChampagne creates the default gold-on-charcoal theme.
func NewChampagne() *Theme {
	return &Theme{
		Name:   "champagne",
		IsDark: true,

		Primary:   "#d4af37", // gold
		Secondary: "#e8d8b0", // champagne
		Accent:    "#b76e79", // rose gold

		BgBase:     "#1b1a17",
		BgSurface0: "#2b2925",
		BgSurface1: "#4a463e",

		FgMuted:  "#7d776b",
		FgSubtle: "#b3ab98",
		FgBase:   "#ece6d6",
		FgBright: "#fffaf0",

		Success: "#9ccc65",
		Warning: "#ffb74d",
		Error:   "#e57373",
	}
}
