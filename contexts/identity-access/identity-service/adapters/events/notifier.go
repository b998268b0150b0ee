package eventsadapter

import (
	"context"
	"time"

	"ratehub/contexts/identity-access/identity-service/ports"
	"ratehub/internal/shared/events"

	"github.com/google/uuid"
)

// TopicCodeIssued carries confirmation-code deliveries to the mail dispatcher.
const TopicCodeIssued = "identity.confirmation-code"

const eventTypeCodeIssued = "identity.confirmation_code_issued"

// Publisher is the slice of the platform bus this adapter needs.
type Publisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

// Notifier implements ports.Notifier by publishing to the in-process bus.
// Publication is non-blocking for the request path; downstream delivery
// failures never reach the registration flow.
type Notifier struct {
	Publisher Publisher
	Source    string
}

func (n Notifier) NotifyCodeIssued(ctx context.Context, notification ports.CodeNotification) error {
	return n.Publisher.Publish(ctx, TopicCodeIssued, events.Envelope{
		EventID:        uuid.NewString(),
		EventType:      eventTypeCodeIssued,
		SourceService:  n.Source,
		OccurredAtUTC:  time.Now().UTC(),
		EntityType:     "user",
		EntityID:       notification.Username,
		PayloadVersion: 1,
		Payload:        notification,
	})
}
