package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Metadata keys set on every inventory event.
const (
	MetadataEventID      = "event_id"
	MetadataEventVersion = "event_version"
)

// NewJSONMessage marshals payload into a message carrying the event_id and
// event_version metadata consumers deduplicate on.
func NewJSONMessage(eventID uuid.UUID, version int, payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("events: marshal payload: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set(MetadataEventID, eventID.String())
	msg.Metadata.Set(MetadataEventVersion, strconv.Itoa(version))
	return msg, nil
}

// PublishTx writes msgs inside tx so they commit or roll back with the
// caller's ledger write. The trace in ctx is carried in message metadata.
func (q *EventBus) PublishTx(ctx context.Context, tx *sql.Tx, topic string, msgs ...*message.Message) error {
	// Topic tables already exist: the forwarder or a subscriber created them.
	pub, err := newSQLPublisher(tx, q.wlog, false)
	if err != nil {
		return fmt.Errorf("events: new tx publisher: %w", err)
	}

	var p message.Publisher = pub
	if q.forwarding {
		p = forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: forwarderTopic})
	}

	injectTrace(ctx, msgs)
	if err := p.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s in tx: %w", topic, err)
	}
	return nil
}

// Publish sends msgs outside any transaction.
func (q *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	injectTrace(ctx, msgs)
	if err := q.publisher.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

func injectTrace(ctx context.Context, msgs []*message.Message) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for _, msg := range msgs {
		for k, v := range carrier {
			msg.Metadata.Set(k, v)
		}
	}
}

func extractTrace(ctx context.Context, msg *message.Message) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(msg.Metadata))
}
