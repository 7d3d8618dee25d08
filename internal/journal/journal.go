// Package journal records wizard events for a session on JetStream and
// rebuilds a session from them.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mirrorbook/internal/locale"
	"github.com/mark3labs/mirrorbook/internal/logger"
	mbnats "github.com/mark3labs/mirrorbook/internal/nats"
	"github.com/mark3labs/mirrorbook/internal/session"
	"github.com/mark3labs/mirrorbook/internal/wizard"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventSessionStarted opens a session's journal and carries its language.
const EventSessionStarted wizard.EventKind = "session_started"

// Entry is one journaled event.
type Entry struct {
	Seq       uint64       `json:"-"`
	Timestamp time.Time    `json:"timestamp"`
	Event     wizard.Event `json:"event"`
}

// Journal publishes and replays session events.
type Journal struct {
	js     jetstream.JetStream
	stream jetstream.Stream
}

// New creates a Journal over an existing stream.
func New(js jetstream.JetStream, stream jetstream.Stream) *Journal {
	return &Journal{js: js, stream: stream}
}

// Begin records the start of sess.
func (j *Journal) Begin(ctx context.Context, sess *session.Session) error {
	return j.Record(ctx, sess.ID, wizard.Event{Kind: EventSessionStarted, Lang: sess.Lang})
}

// Record appends an event to the session's journal.
func (j *Journal) Record(ctx context.Context, sessionID string, e wizard.Event) error {
	data, err := json.Marshal(Entry{Timestamp: time.Now().UTC(), Event: e})
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	if _, err := j.js.Publish(ctx, mbnats.SubjectForEvent(sessionID, string(e.Kind)), data); err != nil {
		return fmt.Errorf("publishing event: %w", err)
	}
	return nil
}

// Listener adapts Record to a wizard listener. Errors are logged.
func (j *Journal) Listener(ctx context.Context, sessionID string) wizard.Listener {
	return func(e wizard.Event) {
		if err := j.Record(ctx, sessionID, e); err != nil {
			logger.Warn("journal: %v", err)
		}
	}
}

// Entries reads a session's journal in order. Malformed entries are skipped.
func (j *Journal) Entries(ctx context.Context, sessionID string) ([]Entry, error) {
	consumer, err := mbnats.SessionConsumer(ctx, j.stream, sessionID)
	if err != nil {
		return nil, fmt.Errorf("creating consumer: %w", err)
	}
	defer func() {
		name := consumer.CachedInfo().Name
		if err := j.stream.DeleteConsumer(context.Background(), name); err != nil {
			logger.Debug("journal: deleting consumer %s: %v", name, err)
		}
	}()

	return drain(consumer)
}

// batchFetcher is the part of jetstream.Consumer that drain reads from.
type batchFetcher interface {
	FetchNoWait(batch int) (jetstream.MessageBatch, error)
}

const batchSize = 500

// drain reads every pending entry. A fetch failure before anything was read
// is returned; after that the entries read so far are kept.
func drain(consumer batchFetcher) ([]Entry, error) {
	var entries []Entry
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			if len(entries) == 0 {
				return nil, fmt.Errorf("fetching journal: %w", err)
			}
			logger.Debug("journal: fetch stopped after %d entries: %v", len(entries), err)
			break
		}

		count := 0
		for msg := range msgs.Messages() {
			count++
			var entry Entry
			if err := json.Unmarshal(msg.Data(), &entry); err != nil {
				logger.Warn("journal: skipping malformed entry on %s: %v", msg.Subject(), err)
				_ = msg.Ack()
				continue
			}
			if meta, err := msg.Metadata(); err == nil {
				entry.Seq = meta.Sequence.Stream
			}
			entries = append(entries, entry)
			_ = msg.Ack()
		}
		if err := msgs.Error(); err != nil && !endOfBatch(err) {
			if len(entries) == 0 {
				return nil, fmt.Errorf("reading journal: %w", err)
			}
			logger.Debug("journal: batch ended after %d entries: %v", len(entries), err)
			break
		}
		if count < batchSize {
			break
		}
	}
	return entries, nil
}

// endOfBatch reports whether err only means there was nothing more to read.
func endOfBatch(err error) bool {
	return errors.Is(err, jetstream.ErrNoMessages) || errors.Is(err, nats.ErrTimeout)
}

// Replay rebuilds a session from its journal and returns it with the number
// of events applied.
func (j *Journal) Replay(ctx context.Context, sessionID string) (*session.Session, int, error) {
	entries, err := j.Entries(ctx, sessionID)
	if err != nil {
		return nil, 0, err
	}
	sess := session.New(locale.English)
	sess.ID = sessionID
	for _, entry := range entries {
		Apply(sess, entry.Event)
	}
	return sess, len(entries), nil
}

// Apply reduces one event into sess.
func Apply(sess *session.Session, e wizard.Event) {
	switch e.Kind {
	case EventSessionStarted, wizard.EventLanguageChanged:
		if e.Lang != "" {
			sess.Lang = e.Lang
		}
	case wizard.EventOptionSelected:
		if err := sess.Selection.Set(e.Category, e.OptionID); err != nil {
			logger.Warn("journal: %v", err)
		}
	case wizard.EventFieldChanged:
		if err := sess.Contact.Set(e.Field, e.Value); err != nil {
			logger.Warn("journal: %v", err)
		}
	case wizard.EventSubmitted:
		sess.Wizard.Submitted = true
	}
	sess.Wizard.Step = e.Step
}
