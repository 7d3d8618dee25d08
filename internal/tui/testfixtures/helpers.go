package testfixtures

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

func init() {
	// only affects lipgloss.Print and friends; Style.Render output still
	// carries escapes, see Plain
	lipgloss.Writer.Profile = colorprofile.Ascii
}

// Terminal size used by every TUI test
const (
	TestTermWidth  = 120
	TestTermHeight = 40
)

// Bounds for require.Eventually around background lookups
const (
	DefaultWaitDuration  = 5 * time.Second
	DefaultCheckInterval = 10 * time.Millisecond
)

// WindowSize is the resize message for the test terminal.
func WindowSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: TestTermWidth, Height: TestTermHeight}
}

// Plain strips escape sequences from rendered output.
func Plain(rendered string) string {
	return ansi.Strip(rendered)
}

// Screen draws content onto a test-sized screen buffer and returns the text
// the terminal would show, without styling.
func Screen(content string) string {
	canvas := uv.NewScreenBuffer(TestTermWidth, TestTermHeight)
	uv.NewStyledString(content).Draw(canvas, canvas.Bounds())
	return ansi.Strip(canvas.Render())
}

// Key builds a key press whose String() is name, e.g. "tab" or "ctrl+n".
func Key(name string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Text: name}
}

// Type builds one key press per rune of s.
func Type(s string) []tea.KeyPressMsg {
	msgs := make([]tea.KeyPressMsg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return msgs
}
