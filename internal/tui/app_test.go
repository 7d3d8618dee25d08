package tui

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/mirrorbook/internal/geocode"
	"github.com/mark3labs/mirrorbook/internal/handoff"
	"github.com/mark3labs/mirrorbook/internal/locale"
	"github.com/mark3labs/mirrorbook/internal/lookup"
	"github.com/mark3labs/mirrorbook/internal/session"
	"github.com/mark3labs/mirrorbook/internal/tui/testfixtures"
	"github.com/mark3labs/mirrorbook/internal/wizard"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T, sess *session.Session, opts Options) *Model {
	t.Helper()
	opts.Controller = testfixtures.NewController(sess)
	m := New(opts)
	m.Init()
	m.Update(testfixtures.WindowSize())
	return m
}

func send(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(testfixtures.Key(k))
	}
}

func typeText(m *Model, s string) {
	for _, k := range testfixtures.Type(s) {
		m.Update(k)
	}
}

func contactSession() *session.Session {
	s := testfixtures.EmptySession(locale.English)
	s.Wizard.Step = wizard.StepContact
	return s
}

func TestNextIsGatedOnValidity(t *testing.T) {
	m := newModel(t, testfixtures.EmptySession(locale.English), Options{})

	press(m, "ctrl+n")
	require.Equal(t, wizard.StepFrame, m.Controller().Step())
	require.Contains(t, testfixtures.Plain(m.render()), "required: Frame")

	press(m, "down", "enter")
	require.Equal(t, "f2", m.Controller().Session().Selection.Frame)

	press(m, "ctrl+n")
	require.Equal(t, wizard.StepRopeCarpet, m.Controller().Step())
	require.NotContains(t, testfixtures.Plain(m.render()), "required:")
}

func TestRopeAndCarpetLists(t *testing.T) {
	sess := testfixtures.EmptySession(locale.English)
	sess.Wizard.Step = wizard.StepRopeCarpet
	m := newModel(t, sess, Options{})

	press(m, "enter")
	press(m, "ctrl+n")
	require.Equal(t, wizard.StepRopeCarpet, m.Controller().Step(), "carpet still missing")
	require.Contains(t, testfixtures.Plain(m.render()), "required: Carpet")

	press(m, "tab", "down", "enter", "ctrl+n")
	sel := m.Controller().Session().Selection
	require.Equal(t, "r1", sel.Rope)
	require.Equal(t, "c2", sel.Carpet)
	require.Equal(t, wizard.StepMount, m.Controller().Step())
}

func TestBackKeepsSelections(t *testing.T) {
	m := newModel(t, testfixtures.EmptySession(locale.English), Options{})
	press(m, "enter", "ctrl+n", "esc")
	require.Equal(t, wizard.StepFrame, m.Controller().Step())
	require.Equal(t, "f1", m.Controller().Session().Selection.Frame)

	press(m, "esc")
	require.Equal(t, wizard.StepFrame, m.Controller().Step())
}

func TestMountSelectionHighlightsSummary(t *testing.T) {
	sess := testfixtures.EmptySession(locale.English)
	sess.Wizard.Step = wizard.StepMount
	m := newModel(t, sess, Options{})
	require.False(t, m.highlight)

	cmd := send(m, testfixtures.Key("enter"))
	require.True(t, m.highlight)
	require.NotNil(t, cmd)

	send(m, highlightDoneMsg{seq: m.flashSeq - 1})
	require.True(t, m.highlight, "stale timer ignored")

	send(m, highlightDoneMsg{seq: m.flashSeq})
	require.False(t, m.highlight)
}

func TestLanguageToggleKeepsState(t *testing.T) {
	m := newModel(t, testfixtures.EmptySession(locale.English), Options{})
	press(m, "enter")

	press(m, "ctrl+l")
	require.Equal(t, locale.Hebrew, m.Controller().Lang())
	require.Contains(t, testfixtures.Plain(m.render()), "מסגרת המראה")
	require.Equal(t, "f1", m.Controller().Session().Selection.Frame)

	press(m, "ctrl+l")
	require.Equal(t, locale.Arabic, m.Controller().Lang())
	require.Contains(t, testfixtures.Plain(m.render()), "إطار المرآة")

	press(m, "ctrl+l")
	require.Equal(t, locale.English, m.Controller().Lang())
}

func TestContactFormTyping(t *testing.T) {
	m := newModel(t, contactSession(), Options{})

	typeText(m, "Dana")
	press(m, "tab")
	typeText(m, "dana@example.com")
	press(m, "tab", "tab")
	press(m, "right")
	press(m, "tab")
	typeText(m, "2025-03-05")

	c := m.Controller().Session().Contact
	require.Equal(t, "Dana", c.Name)
	require.Equal(t, "dana@example.com", c.Email)
	require.Equal(t, session.Engagement, c.EventType)
	require.Equal(t, testfixtures.FixedDate, c.Date)
	require.True(t, m.Controller().IsStepValid(wizard.StepContact))
}

func TestCustomEventTypeField(t *testing.T) {
	m := newModel(t, contactSession(), Options{})
	require.NotContains(t, testfixtures.Plain(m.render()), "Describe your event")

	press(m, "tab", "tab", "tab", "left")
	require.Equal(t, session.Other, m.Controller().Session().Contact.EventType)
	require.Contains(t, testfixtures.Plain(m.render()), "Describe your event")

	press(m, "tab")
	typeText(m, "Bar Mitzvah")
	require.Equal(t, "Bar Mitzvah", m.Controller().Session().Contact.CustomEventType)
}

func TestSubmitRequiresEveryStep(t *testing.T) {
	sess := contactSession()
	sess.Contact = testfixtures.FullContact()
	m := newModel(t, sess, Options{})

	press(m, "ctrl+s")
	require.False(t, m.Controller().Submitted())
	require.Contains(t, testfixtures.Plain(m.render()), "required: Frame")
}

func TestSubmitHandsOffOnce(t *testing.T) {
	opener := testfixtures.NewMockOpener()
	d := handoff.New(handoff.DefaultConfig(), opener)
	m := newModel(t, testfixtures.ReadySession(locale.English), Options{Dispatcher: d})

	press(m, "ctrl+s")
	d.Wait()

	require.True(t, m.Controller().Submitted())
	require.Contains(t, m.URL(), "https://wa.me/972524040714?text=")
	require.Equal(t, []string{m.URL()}, opener.URLs())
	require.Contains(t, testfixtures.Plain(m.render()), "Request Sent")

	press(m, "ctrl+s", "ctrl+n")
	d.Wait()
	require.Len(t, opener.URLs(), 1)
}

func TestSubmitWithoutDispatcherStillBuildsURL(t *testing.T) {
	m := newModel(t, testfixtures.ReadySession(locale.English), Options{})
	press(m, "ctrl+n")
	require.True(t, m.Controller().Submitted())
	require.Contains(t, m.URL(), "?text=")
}

func TestStartOver(t *testing.T) {
	fresh := func() *wizard.Controller {
		return testfixtures.NewController(testfixtures.EmptySession(locale.English))
	}
	m := newModel(t, testfixtures.ReadySession(locale.English), Options{NewController: fresh})
	first := m.Controller()

	press(m, "ctrl+s")
	require.Contains(t, testfixtures.Plain(m.render()), "Start New Reservation")

	press(m, "enter")
	require.NotSame(t, first, m.Controller())
	require.False(t, m.Controller().Submitted())
	require.Equal(t, wizard.StepFrame, m.Controller().Step())
	require.Empty(t, m.URL())
	require.True(t, first.Submitted())
}

func TestNoStartOverWithoutFactory(t *testing.T) {
	m := newModel(t, testfixtures.ReadySession(locale.English), Options{})
	press(m, "ctrl+s", "enter")
	require.True(t, m.Controller().Submitted())
	require.NotContains(t, testfixtures.Plain(m.render()), "Start New Reservation")
}

func TestReviewPane(t *testing.T) {
	m := newModel(t, testfixtures.ReadySession(locale.English), Options{})

	press(m, "ctrl+r")
	require.True(t, m.reviewing)
	require.Contains(t, testfixtures.Plain(m.render()), testfixtures.FixedName)

	press(m, "esc")
	require.False(t, m.reviewing)
	require.Equal(t, wizard.StepContact, m.Controller().Step())
}

func TestLocationSuggestions(t *testing.T) {
	places := []geocode.Place{
		{DisplayName: "Tel Aviv-Yafo, Israel"},
		{DisplayName: "Tel Mond, Israel"},
	}
	searcher := testfixtures.NewMockSearcher(places...)
	svc := lookup.New(searcher, lookup.WithDebounce(time.Millisecond))
	t.Cleanup(svc.Close)

	m := newModel(t, contactSession(), Options{Lookup: svc})
	press(m, "tab", "tab", "tab", "tab", "tab")
	require.Equal(t, session.FieldLocation, m.form.focused(session.Wedding))

	typeText(m, "Tel")
	require.Eventually(t, func() bool {
		return svc.Snapshot().State == lookup.Resolved
	}, testfixtures.DefaultWaitDuration, testfixtures.DefaultCheckInterval)

	send(m, lookupChangedMsg{})
	require.Contains(t, testfixtures.Plain(m.render()), "Tel Mond, Israel")

	press(m, "down", "enter")
	require.Equal(t, "Tel Mond, Israel", m.Controller().Session().Contact.Location)
	require.Equal(t, "Tel Mond, Israel", m.form.value(session.FieldLocation))
	require.Equal(t, []string{"Tel"}, searcher.Calls())
}

func TestQuit(t *testing.T) {
	m := newModel(t, testfixtures.EmptySession(locale.English), Options{})
	require.True(t, m.View().AltScreen)

	cmd := send(m, testfixtures.Key("ctrl+c"))
	require.NotNil(t, cmd)
	require.False(t, m.View().AltScreen)
}

func TestScreenShowsHeaderAndSummary(t *testing.T) {
	m := newModel(t, testfixtures.EmptySession(locale.English), Options{})
	press(m, "enter")

	screen := testfixtures.Screen(m.render())
	require.Contains(t, screen, "Premium Photo Mirror Experience")
	require.Contains(t, screen, "Your Selection")
	require.Contains(t, screen, "Royal Gold")
}
