package journal

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mirrorbook/internal/catalog"
	"github.com/mark3labs/mirrorbook/internal/locale"
	mbnats "github.com/mark3labs/mirrorbook/internal/nats"
	"github.com/mark3labs/mirrorbook/internal/session"
	"github.com/mark3labs/mirrorbook/internal/wizard"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"
)

func openJournal(t *testing.T) *Journal {
	t.Helper()
	bus, err := mbnats.Open(context.Background(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = bus.Close() })
	return New(bus.JS, bus.Stream)
}

func TestReplayReproducesSession(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t)

	sess := session.New(locale.Hebrew)
	require.NoError(t, j.Begin(ctx, sess))
	c := wizard.New(sess, catalog.Default(), wizard.WithListener(j.Listener(ctx, sess.ID)))

	require.NoError(t, c.SelectOption(catalog.Frame, "f2"))
	c.Advance()
	require.NoError(t, c.SelectOption(catalog.Rope, "r3"))
	require.NoError(t, c.SelectOption(catalog.Carpet, "c1"))
	c.Advance()
	require.NoError(t, c.SelectOption(catalog.Mount, "m1"))
	c.Advance()
	require.NoError(t, c.SetField(session.FieldName, "Dana"))
	require.NoError(t, c.SetField(session.FieldEmail, "dana@example.com"))
	c.SetDate(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))
	c.SetEventType(session.Other)
	require.NoError(t, c.SetField(session.FieldCustomEventType, "Bar Mitzvah"))
	c.SetLocation("Haifa, Israel")
	c.SetLanguage(locale.Arabic)
	c.MarkSubmitted()

	replayed, n, err := j.Replay(ctx, sess.ID)
	require.NoError(t, err)
	require.Greater(t, n, 10)
	require.Equal(t, sess.ID, replayed.ID)
	require.Equal(t, sess.Lang, replayed.Lang)
	require.Equal(t, sess.Selection, replayed.Selection)
	require.Equal(t, sess.Contact, replayed.Contact)
	require.Equal(t, sess.Wizard, replayed.Wizard)
}

func TestReplayIsolatesSessions(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t)

	a := session.New(locale.English)
	b := session.New(locale.English)
	ca := wizard.New(a, catalog.Default(), wizard.WithListener(j.Listener(ctx, a.ID)))
	cb := wizard.New(b, catalog.Default(), wizard.WithListener(j.Listener(ctx, b.ID)))

	require.NoError(t, ca.SelectOption(catalog.Frame, "f1"))
	require.NoError(t, cb.SelectOption(catalog.Frame, "f4"))

	ra, n, err := j.Replay(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "f1", ra.Selection.Frame)
}

func TestEntriesOrderAndSequence(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t)

	require.NoError(t, j.Record(ctx, "s1", wizard.Event{Kind: wizard.EventStepChanged, Step: 1}))
	require.NoError(t, j.Record(ctx, "s1", wizard.Event{Kind: wizard.EventStepChanged, Step: 2}))

	entries, err := j.Entries(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, 1, entries[0].Event.Step)
	require.Equal(t, 2, entries[1].Event.Step)
	require.Less(t, entries[0].Seq, entries[1].Seq)
	require.False(t, entries[0].Timestamp.IsZero())
}

func TestReplayUnknownSession(t *testing.T) {
	j := openJournal(t)
	sess, n, err := j.Replay(context.Background(), "nobody")
	require.NoError(t, err)
	require.Zero(t, n)
	require.Equal(t, "nobody", sess.ID)
	require.Equal(t, session.Selection{}, sess.Selection)
}

func TestApplyIgnoresFocusPreview(t *testing.T) {
	sess := session.New(locale.English)
	Apply(sess, wizard.Event{Kind: wizard.EventFocusPreview, Category: catalog.Mount, OptionID: "m1", Step: 2})
	require.Empty(t, sess.Selection.Mount)
	require.Equal(t, 2, sess.Wizard.Step)
}

type stubBatch struct {
	err error
}

func (b stubBatch) Messages() <-chan jetstream.Msg {
	ch := make(chan jetstream.Msg)
	close(ch)
	return ch
}

func (b stubBatch) Error() error { return b.err }

type stubFetcher struct {
	batch jetstream.MessageBatch
	err   error
}

func (f stubFetcher) FetchNoWait(int) (jetstream.MessageBatch, error) {
	return f.batch, f.err
}

func TestDrainReturnsFetchError(t *testing.T) {
	entries, err := drain(stubFetcher{err: nats.ErrConnectionClosed})
	require.ErrorIs(t, err, nats.ErrConnectionClosed)
	require.Nil(t, entries)
}

func TestDrainReturnsBatchError(t *testing.T) {
	entries, err := drain(stubFetcher{batch: stubBatch{err: jetstream.ErrConsumerDeleted}})
	require.ErrorIs(t, err, jetstream.ErrConsumerDeleted)
	require.Nil(t, entries)
}

func TestDrainTreatsNoMessagesAsEnd(t *testing.T) {
	entries, err := drain(stubFetcher{batch: stubBatch{err: jetstream.ErrNoMessages}})
	require.NoError(t, err)
	require.Empty(t, entries)
}
