package nats

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
)

// StreamName is the JetStream stream holding every session's journal.
const StreamName = "mirrorbook_journal"

// SubjectForSession returns the wildcard subject for all events of a session.
// Example: "mirrorbook.<id>.>"
func SubjectForSession(session string) string {
	return fmt.Sprintf("mirrorbook.%s.>", session)
}

// SubjectForEvent returns the subject for one event kind in a session.
// Example: "mirrorbook.<id>.option_selected"
func SubjectForEvent(session, kind string) string {
	return fmt.Sprintf("mirrorbook.%s.%s", session, kind)
}

// SetupStream creates or updates the in-memory journal stream.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: []string{"mirrorbook.>"},
		Storage:  jetstream.MemoryStorage,
	})
}

// SessionConsumer creates an ephemeral consumer that reads one session's
// events from the beginning.
func SessionConsumer(ctx context.Context, stream jetstream.Stream, session string) (jetstream.Consumer, error) {
	return stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject: SubjectForSession(session),
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
}
