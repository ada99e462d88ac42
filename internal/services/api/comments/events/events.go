// Package events delivers comment_flagged events.
// Every sink is best effort: failures are logged and never reach the edit.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"commentedit/internal/platform/logger"
	"commentedit/internal/services/api/comments/domain"
)

const (
	// Type names the event on every sink
	Type = "comment_flagged"
	// DefaultSubject is the NATS subject for comment_flagged
	DefaultSubject = "comments.flagged"
	// DefaultStream holds DefaultSubject
	DefaultStream = "COMMENTS"
	// DefaultTable is the ClickHouse table for flag events
	DefaultTable = "comment_flag_events"

	deliverTimeout = 3 * time.Second
)

// Envelope is the wire form of a comment_flagged event
type Envelope struct {
	ID        string                `json:"id"`
	Type      string                `json:"type"`
	At        time.Time             `json:"at"`
	CommentID int64                 `json:"comment_id"`
	FlagID    int64                 `json:"flag_id"`
	Created   bool                  `json:"created"`
	ActorID   string                `json:"actor_id"`
	Payload   domain.CommentFlagged `json:"payload"`
}

var newID = uuid.NewString

// Wrap assigns an event id and flattens the keys sinks index on
func Wrap(ev domain.CommentFlagged) Envelope {
	at := ev.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return Envelope{
		ID:        newID(),
		Type:      Type,
		At:        at,
		CommentID: ev.Comment.ID,
		FlagID:    ev.Flag.ID,
		Created:   ev.Created,
		ActorID:   ev.Actor.ID,
		Payload:   ev,
	}
}

// Sink receives wrapped events
type Sink interface {
	Name() string
	Deliver(ctx context.Context, env Envelope) error
}

// Notifier fans one event out to every sink
type Notifier struct {
	sinks []Sink
	log   *logger.Logger
}

var _ domain.Notifier = (*Notifier)(nil)

// New returns a notifier; with no sinks events are only logged
func New(sinks ...Sink) *Notifier {
	kept := sinks[:0:0]
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &Notifier{sinks: kept, log: logger.Named("comments.events")}
}

// Sinks lists the configured sink names
func (n *Notifier) Sinks() []string {
	out := make([]string, len(n.sinks))
	for i, s := range n.sinks {
		out[i] = s.Name()
	}
	return out
}

// Publish delivers ev to every sink with a bounded detached context
func (n *Notifier) Publish(ctx context.Context, ev domain.CommentFlagged) {
	env := Wrap(ev)
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deliverTimeout)
	defer cancel()

	log := logger.C(ctx)
	if len(n.sinks) == 0 {
		log.Debug().Str("event_id", env.ID).Int64("comment_id", env.CommentID).Msg("comment_flagged (no sinks)")
		return
	}
	for _, s := range n.sinks {
		if err := s.Deliver(dctx, env); err != nil {
			log.Warn().Err(err).Str("sink", s.Name()).Str("event_id", env.ID).Int64("comment_id", env.CommentID).
				Msg("comment_flagged delivery failed")
		}
	}
}

func encode(env Envelope) ([]byte, error) { return json.Marshal(env) }
