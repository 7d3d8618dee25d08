// Package tui is the interactive booking wizard.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/editor"
	"github.com/mark3labs/mirrorbook/internal/catalog"
	"github.com/mark3labs/mirrorbook/internal/compose"
	"github.com/mark3labs/mirrorbook/internal/handoff"
	"github.com/mark3labs/mirrorbook/internal/locale"
	"github.com/mark3labs/mirrorbook/internal/logger"
	"github.com/mark3labs/mirrorbook/internal/lookup"
	"github.com/mark3labs/mirrorbook/internal/session"
	"github.com/mark3labs/mirrorbook/internal/tui/theme"
	"github.com/mark3labs/mirrorbook/internal/wizard"
)

// highlightDuration is how long the summary stays highlighted after a mount
// is picked.
const highlightDuration = 1500 * time.Millisecond

const summaryWidth = 36

// Options configures the booking TUI.
type Options struct {
	Controller *wizard.Controller

	// NewController starts a fresh session after a submission. Nil hides the
	// start-over action.
	NewController func() *wizard.Controller

	Lookup     *lookup.Service     // optional location suggestions
	Dispatcher *handoff.Dispatcher // nil builds the URL without opening it
	Theme      *theme.Theme
}

type lookupChangedMsg struct{}

type highlightDoneMsg struct{ seq int }

type notesEditedMsg struct{ notes string }

// Model is the Bubble Tea model for one or more consecutive booking sessions.
type Model struct {
	ctx    context.Context
	opts   Options
	ctrl   *wizard.Controller
	th     *theme.Theme
	width  int
	height int

	lists     map[catalog.Category]*optionList
	listFocus int
	form      *contactForm

	// lookupCh is signalled by the lookup service; Update reads a fresh
	// snapshot instead of trusting what the signal carried.
	lookupCh   chan struct{}
	snap       lookup.Snapshot
	suggestion int
	spinner    spinner.Model
	spinning   bool

	highlight bool
	flashSeq  int

	reviewing bool
	review    viewport.Model

	url      string
	lastURL  string
	notice   string
	quitting bool

	// commands queued by controller listeners during the current Update
	pending []tea.Cmd
}

// New creates the model. opts.Controller is required.
func New(opts Options) *Model {
	m := &Model{
		ctx:    context.Background(),
		opts:   opts,
		th:     opts.Theme,
		width:  100,
		height: 32,
	}
	if m.th == nil {
		m.th = theme.NewChampagne()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = m.th.S().Spinner
	m.spinner = s

	m.review = viewport.New(viewport.WithWidth(m.width-6), viewport.WithHeight(m.height-8))

	if opts.Lookup != nil {
		m.lookupCh = make(chan struct{}, 1)
		ch := m.lookupCh
		opts.Lookup.OnChange(func(lookup.Snapshot) {
			select {
			case ch <- struct{}{}:
			default:
			}
		})
	}

	m.attach(opts.Controller)
	return m
}

// attach switches the model to ctrl, resetting all per-session view state.
func (m *Model) attach(ctrl *wizard.Controller) {
	m.ctrl = ctrl
	ctrl.Subscribe(m.onEvent)

	sess := ctrl.Session()
	m.lists = make(map[catalog.Category]*optionList, len(catalog.Categories))
	for _, c := range catalog.Categories {
		m.lists[c] = newOptionList(ctrl.Catalog(), c, sess.Selection.Get(c))
	}
	m.listFocus = 0
	m.form = newContactForm(m.th, sess.Contact, sess.Lang)
	m.highlight = false
	m.reviewing = false
	m.url = ""
	m.notice = ""
	m.suggestion = 0

	if m.opts.Lookup != nil {
		m.opts.Lookup.SetSink(ctrl)
		m.opts.Lookup.Input("")
		m.snap = m.opts.Lookup.Snapshot()
	}
}

// onEvent runs synchronously inside Update, via the controller.
func (m *Model) onEvent(e wizard.Event) {
	switch e.Kind {
	case wizard.EventFocusPreview:
		m.highlight = true
		m.flashSeq++
		seq := m.flashSeq
		m.pending = append(m.pending, tea.Tick(highlightDuration, func(time.Time) tea.Msg {
			return highlightDoneMsg{seq: seq}
		}))
	case wizard.EventLanguageChanged:
		m.form.setLanguage(e.Lang)
	case wizard.EventFieldChanged:
		if e.Field == session.FieldLocation {
			m.form.setValue(session.FieldLocation, m.ctrl.Session().Contact.Location)
		}
	}
}

// Controller returns the controller of the current session.
func (m *Model) Controller() *wizard.Controller { return m.ctrl }

// URL returns the handoff URL of the last submission, if any.
func (m *Model) URL() string { return m.url }

// Init focuses the current step and starts listening for lookup changes.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitLookup(), m.enterStep())
}

func (m *Model) waitLookup() tea.Cmd {
	if m.lookupCh == nil {
		return nil
	}
	ch := m.lookupCh
	return func() tea.Msg {
		<-ch
		return lookupChangedMsg{}
	}
}

// Update handles messages for the wizard.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.pending = nil
	cmd := m.update(msg)
	cmds := append(m.pending, cmd)
	m.pending = nil
	return m, tea.Batch(cmds...)
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.review.SetWidth(max(m.width-6, 20))
		m.review.SetHeight(max(m.height-8, 5))
		if m.reviewing {
			m.refreshReview()
		}
		return nil

	case lookupChangedMsg:
		m.snap = m.opts.Lookup.Snapshot()
		if m.suggestion >= len(m.snap.Results) {
			m.suggestion = 0
		}
		cmds := []tea.Cmd{m.waitLookup()}
		if m.snap.Loading && !m.spinning {
			m.spinning = true
			cmds = append(cmds, m.spinner.Tick)
		}
		return tea.Batch(cmds...)

	case spinner.TickMsg:
		if !m.snap.Loading {
			m.spinning = false
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case highlightDoneMsg:
		if msg.seq == m.flashSeq {
			m.highlight = false
		}
		return nil

	case notesEditedMsg:
		m.form.setValue(session.FieldNotes, msg.notes)
		if err := m.ctrl.SetField(session.FieldNotes, msg.notes); err != nil {
			logger.Warn("saving notes: %v", err)
		}
		return nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	if m.ctrl.Step() == wizard.StepContact && !m.ctrl.Submitted() {
		cmd, _, _ := m.form.update(msg, m.ctrl.Session().Contact.EventType)
		return cmd
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "ctrl+c":
		m.quitting = true
		return tea.Quit
	case "ctrl+l":
		m.ctrl.SetLanguage(m.ctrl.Lang().Next())
		if m.reviewing {
			m.refreshReview()
		}
		return nil
	}

	if m.ctrl.Submitted() {
		return m.handleSuccessKey(key)
	}
	if m.reviewing {
		return m.handleReviewKey(msg)
	}

	switch key {
	case "ctrl+r":
		m.reviewing = true
		m.refreshReview()
		return nil
	case "ctrl+n":
		return m.primary()
	case "ctrl+p", "esc":
		return m.back()
	case "ctrl+s":
		return m.submit()
	}

	if m.ctrl.Step() == wizard.StepContact {
		return m.handleContactKey(msg)
	}
	m.handleOptionKey(key)
	return nil
}

func (m *Model) handleOptionKey(key string) {
	cats := m.ctrl.CurrentStep().Categories
	if len(cats) == 0 {
		return
	}
	if m.listFocus >= len(cats) {
		m.listFocus = 0
	}
	list := m.lists[cats[m.listFocus]]

	switch key {
	case "tab", "right":
		m.listFocus = (m.listFocus + 1) % len(cats)
	case "shift+tab", "left":
		m.listFocus = (m.listFocus - 1 + len(cats)) % len(cats)
	case "up", "k":
		list.move(-1)
	case "down", "j":
		list.move(1)
	case "enter", "space", " ":
		opt, ok := list.current()
		if !ok {
			return
		}
		if err := m.ctrl.SelectOption(list.category, opt.ID); err != nil {
			logger.Warn("selecting %s: %v", list.category, err)
			return
		}
		m.notice = ""
	}
}

func (m *Model) handleContactKey(msg tea.KeyPressMsg) tea.Cmd {
	et := m.ctrl.Session().Contact.EventType
	field := m.form.focused(et)
	key := msg.String()
	suggestionsOpen := field == session.FieldLocation && m.snap.SuggestionsVisible && len(m.snap.Results) > 0

	switch key {
	case "tab":
		return m.focusContact(m.form.focus + 1)
	case "shift+tab":
		return m.focusContact(m.form.focus - 1)
	case "up":
		if suggestionsOpen {
			if m.suggestion > 0 {
				m.suggestion--
			}
			return nil
		}
		return m.focusContact(m.form.focus - 1)
	case "down":
		if suggestionsOpen {
			if m.suggestion < len(m.snap.Results)-1 {
				m.suggestion++
			}
			return nil
		}
		return m.focusContact(m.form.focus + 1)
	case "enter":
		if suggestionsOpen {
			if err := m.opts.Lookup.SelectIndex(m.suggestion); err != nil {
				logger.Debug("suggestion %d: %v", m.suggestion, err)
			}
			m.suggestion = 0
			return nil
		}
		return m.focusContact(m.form.focus + 1)
	case "ctrl+e":
		if field == session.FieldNotes {
			return m.editNotes()
		}
		return nil
	}

	if field == session.FieldEventType {
		switch key {
		case "left", "h":
			m.ctrl.SetEventType(et.Prev())
		case "right", "l", "space", " ":
			m.ctrl.SetEventType(et.Next())
		}
		return nil
	}

	cmd, f, changed := m.form.update(msg, et)
	if !changed {
		return cmd
	}
	value := m.form.value(f)
	if err := m.ctrl.SetField(f, value); err != nil {
		logger.Warn("setting %s: %v", f, err)
	}
	if f == session.FieldLocation && m.opts.Lookup != nil {
		m.suggestion = 0
		m.opts.Lookup.Input(value)
	}
	return cmd
}

// focusContact moves form focus to index i and keeps the lookup service's
// focus state in step with the location field.
func (m *Model) focusContact(i int) tea.Cmd {
	et := m.ctrl.Session().Contact.EventType
	prev := m.form.focused(et)
	cmd := m.form.setFocus(i, et)
	now := m.form.focused(et)

	if m.opts.Lookup != nil {
		switch {
		case now == session.FieldLocation:
			m.opts.Lookup.Focus()
		case prev == session.FieldLocation:
			m.opts.Lookup.Blur()
		}
	}
	return cmd
}

// enterStep prepares focus for the step just entered.
func (m *Model) enterStep() tea.Cmd {
	m.notice = ""
	m.listFocus = 0
	if m.ctrl.Submitted() {
		return nil
	}
	if m.ctrl.Step() != wizard.StepContact {
		if m.opts.Lookup != nil {
			m.opts.Lookup.Blur()
		}
		return nil
	}
	return m.focusContact(m.form.focus)
}

// primary is the "next" button: advance, or submit on the last step.
func (m *Model) primary() tea.Cmd {
	if m.ctrl.Step() == wizard.StepCount()-1 {
		return m.submit()
	}
	if !m.ctrl.IsCurrentStepValid() {
		m.notice = m.missingNotice(m.ctrl.Step())
		return nil
	}
	m.ctrl.Advance()
	return m.enterStep()
}

func (m *Model) back() tea.Cmd {
	if m.ctrl.Step() == 0 {
		return nil
	}
	m.ctrl.Retreat()
	return m.enterStep()
}

// submit hands the booking off once every step is complete.
func (m *Model) submit() tea.Cmd {
	if m.ctrl.Step() != wizard.StepContact {
		return nil
	}
	for step := 0; step < wizard.StepCount(); step++ {
		if !m.ctrl.IsStepValid(step) {
			m.notice = m.missingNotice(step)
			return nil
		}
	}

	message := compose.ComposeSession(m.ctrl.Session(), m.ctrl.Catalog())
	if m.opts.Dispatcher != nil {
		m.url = m.opts.Dispatcher.Submit(m.ctx, m.ctrl, message)
	} else {
		m.url = handoff.BuildURL(handoff.DefaultConfig(), message)
		m.ctrl.MarkSubmitted()
	}
	m.lastURL = m.url
	m.notice = ""
	m.reviewing = false
	if m.opts.Lookup != nil {
		m.opts.Lookup.Blur()
	}
	return nil
}

func (m *Model) missingNotice(step int) string {
	lang := m.ctrl.Lang()
	missing := m.ctrl.Missing(step)
	labels := make([]string, 0, len(missing))
	for _, name := range missing {
		if c, err := catalog.ParseCategory(name); err == nil {
			labels = append(labels, categoryLabel(c, lang))
			continue
		}
		labels = append(labels, fieldLabel(session.Field(name), lang))
	}
	return fmt.Sprintf("%s: %s", locale.T(lang).Required, strings.Join(labels, ", "))
}

func (m *Model) handleSuccessKey(key string) tea.Cmd {
	switch key {
	case "enter":
		if m.opts.NewController == nil {
			return nil
		}
		m.attach(m.opts.NewController())
		return m.enterStep()
	case "q", "esc":
		m.quitting = true
		return tea.Quit
	}
	return nil
}

func (m *Model) handleReviewKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "ctrl+r", "q":
		m.reviewing = false
		return nil
	case "ctrl+s":
		return m.submit()
	}
	var cmd tea.Cmd
	m.review, cmd = m.review.Update(msg)
	return cmd
}

func (m *Model) refreshReview() {
	message := compose.ComposeSession(m.ctrl.Session(), m.ctrl.Catalog())
	m.review.SetContent(compose.RenderTerminal(message, m.width-8))
	m.review.GotoTop()
}

// editNotes opens $EDITOR on the notes field.
func (m *Model) editNotes() tea.Cmd {
	tmpfile, err := os.CreateTemp("", "mirrorbook_notes_*.txt")
	if err != nil {
		logger.Warn("notes editor: %v", err)
		return nil
	}
	if _, err := tmpfile.WriteString(m.ctrl.Session().Contact.Notes); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpfile.Name())
		return nil
	}
	_ = tmpfile.Close()

	cmd, err := editor.Command("mirrorbook", tmpfile.Name())
	if err != nil {
		_ = os.Remove(tmpfile.Name())
		return nil
	}

	path := tmpfile.Name()
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer func() { _ = os.Remove(path) }()
		if err != nil {
			logger.Warn("notes editor exited: %v", err)
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		return notesEditedMsg{notes: strings.TrimRight(string(content), "\n")}
	})
}

// View renders the wizard full-screen.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.quitting {
		view.AltScreen = false
		view.Content = lipgloss.NewLayer("")
		return view
	}

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(m.render()).Draw(canvas, canvas.Bounds())
	view.Content = lipgloss.NewLayer(canvas.Render())
	view.BackgroundColor = lipgloss.Color(m.th.BgBase)
	return view
}

// render lays the current screen out as text.
func (m *Model) render() string {
	var body string
	switch {
	case m.ctrl.Submitted():
		body = m.renderSuccess()
	case m.reviewing:
		body = m.renderReview()
	default:
		body = m.renderStep()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.align(m.renderHeader()), "", body)
}

// align right-aligns block for right-to-left languages.
func (m *Model) align(block string) string {
	if !m.ctrl.Lang().IsRTL() {
		return block
	}
	return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Right).Render(block)
}

func (m *Model) renderHeader() string {
	s := m.th.S()
	lang := m.ctrl.Lang()
	title := locale.T(lang).PremiumExperience
	if lang.IsRTL() {
		title = s.Title.Render(title)
	} else {
		title = theme.ApplyGradient(title, m.th.Primary, m.th.Accent)
	}
	return title + "  " + s.Muted.Render(strings.ToUpper(lang.String()))
}

func (m *Model) renderStep() string {
	s := m.th.S()
	sess := m.ctrl.Session()
	lang := sess.Lang
	t := locale.T(lang)
	step := m.ctrl.CurrentStep()

	heading := s.StepTag.Render(fmt.Sprintf("%d/%d", step.Index+1, wizard.StepCount())) + " " +
		s.Title.Render(step.Title.Get(lang))
	subtitle := s.Subtitle.Render(step.Subtitle.Get(lang))

	var main string
	if step.Index == wizard.StepContact {
		below := map[session.Field]string{}
		if m.opts.Lookup != nil && m.form.focused(sess.Contact.EventType) == session.FieldLocation {
			below[session.FieldLocation] = renderSuggestions(s, m.snap, m.suggestion, m.spinner, lang)
		}
		main = m.form.view(s, sess.Contact, lang, below)
	} else {
		cols := make([]string, 0, len(step.Categories))
		for i, c := range step.Categories {
			col := m.lists[c].view(s, lang, sess.Selection.Get(c), i == m.listFocus)
			cols = append(cols, lipgloss.NewStyle().PaddingRight(4).Render(col))
		}
		if lang.IsRTL() {
			reverse(cols)
		}
		main = lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	}

	summary := renderSummary(s, sess, m.ctrl.Catalog(), m.highlight, summaryWidth)
	parts := []string{main, "    ", summary}
	if lang.IsRTL() {
		reverse(parts)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, parts...)

	backLabel, nextLabel := "← "+t.PrevStep, t.NextStep+" →"
	if lang.IsRTL() {
		backLabel, nextLabel = t.PrevStep+" →", "← "+t.NextStep
	}
	if step.Index == wizard.StepCount()-1 {
		nextLabel = t.SubmitRequest
	}
	bar := NewButtonBar(s, navButtons(backLabel, nextLabel, step.Index > 0, m.ctrl.IsCurrentStepValid()), lang.IsRTL())
	bar.SetWidth(m.width)

	lines := []string{m.align(heading), m.align(subtitle), "", m.align(row), "", bar.Render()}
	if m.notice != "" {
		lines = append(lines, m.align(s.Required.Render(m.notice)))
	}
	lines = append(lines, "", m.align(m.stepHints()))
	return strings.Join(lines, "\n")
}

func (m *Model) stepHints() string {
	s := m.th.S()
	if m.ctrl.Step() != wizard.StepContact {
		return renderHintBar(s,
			"tab", "switch list",
			"↑↓", "move",
			"enter", "choose",
			"ctrl+n", "next",
			"ctrl+p", "back",
			"ctrl+r", "review",
			"ctrl+l", "language",
			"ctrl+c", "quit",
		)
	}
	pairs := []string{"tab", "next field", "ctrl+s", "send", "ctrl+p", "back", "ctrl+r", "review", "ctrl+l", "language"}
	switch m.form.focused(m.ctrl.Session().Contact.EventType) {
	case session.FieldNotes:
		pairs = append([]string{"ctrl+e", "editor"}, pairs...)
	case session.FieldEventType:
		pairs = append([]string{"←→", "change"}, pairs...)
	case session.FieldLocation:
		pairs = append([]string{"↑↓", "suggestions"}, pairs...)
	}
	return renderHintBar(s, pairs...)
}

func (m *Model) renderReview() string {
	s := m.th.S()
	t := locale.T(m.ctrl.Lang())
	return strings.Join([]string{
		m.align(s.Title.Render(t.NewRequest)),
		"",
		s.Panel.Render(m.review.View()),
		"",
		m.align(renderHintBar(s, "↑↓", "scroll", "ctrl+s", "send", "esc", "close")),
	}, "\n")
}

func (m *Model) renderSuccess() string {
	s := m.th.S()
	t := locale.T(m.ctrl.Lang())
	pairs := []string{"q", "quit"}
	if m.opts.NewController != nil {
		pairs = append([]string{"enter", t.StartOver}, pairs...)
	}
	content := strings.Join([]string{
		s.Success.Render("✓ " + t.SuccessTitle),
		"",
		s.Text.Render(t.SuccessMessage),
		"",
		s.Muted.Render(m.url),
	}, "\n")
	return strings.Join([]string{
		m.align(s.Modal.Width(min(m.width, 80)).Render(content)),
		"",
		m.align(renderHintBar(s, pairs...)),
	}, "\n")
}

func reverse(items []string) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}

// Run shows the wizard until the user quits and returns the URL of the last
// submission, if any.
func Run(ctx context.Context, opts Options) (string, error) {
	m := New(opts)
	m.ctx = ctx

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return m.lastURL, fmt.Errorf("booking wizard failed: %w", err)
	}
	return m.lastURL, nil
}
