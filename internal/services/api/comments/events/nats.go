package events

import (
	"context"
	"strings"
)

// publisher is satisfied by *natsconn.Conn
type publisher interface {
	Publish(ctx context.Context, subject string, data []byte, msgID string) error
}

// NATS publishes JSON envelopes to a JetStream subject, deduplicated by event id
type NATS struct {
	pub     publisher
	subject string
}

// NewNATS returns a JetStream sink; an empty subject uses DefaultSubject
func NewNATS(pub publisher, subject string) *NATS {
	if strings.TrimSpace(subject) == "" {
		subject = DefaultSubject
	}
	return &NATS{pub: pub, subject: subject}
}

func (n *NATS) Name() string { return "nats" }

func (n *NATS) Deliver(ctx context.Context, env Envelope) error {
	data, err := encode(env)
	if err != nil {
		return err
	}
	return n.pub.Publish(ctx, n.subject, data, env.ID)
}
