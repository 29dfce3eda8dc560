package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying, e.g. an undecodable payload.
// The message is acked so it is not redelivered, and err is still reported
// on the error channel.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(&permanentError{err: err})
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}

// Subscribe consumes topic in the background. Each message runs in its own
// consumer span under the publisher's trace and is retried with exponential
// backoff (1s, 2s) for up to three attempts before it is nacked and the
// error is sent on the returned channel. Permanent failures skip the retries
// and are acked.
//
// The channel is buffered and closed when consumption stops. Callers must
// drain it.
func (q *EventBus) Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error) {
	ch, err := q.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, errChanBuffer)

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer close(errCh)

		for msg := range ch {
			q.settle(ctx, topic, msg, q.consume(ctx, topic, msg, handler), errCh)
		}
	}()

	return errCh, nil
}

// settle acks or nacks msg according to the handler's result.
func (q *EventBus) settle(ctx context.Context, topic string, msg *message.Message, err error, errCh chan<- error) {
	switch {
	case err == nil:
		msg.Ack()
		return
	case IsPermanent(err):
		q.log.ErrorContext(ctx, "events: dropping message after permanent failure",
			"topic", topic,
			"event_id", msg.Metadata.Get(MetadataEventID),
			"error", err,
		)
		msg.Ack()
	default:
		msg.Nack()
	}
	select {
	case errCh <- err:
	default:
		q.log.ErrorContext(ctx, "events: error channel full, dropping error", "topic", topic, "error", err)
	}
}

func (q *EventBus) consume(ctx context.Context, topic string, msg *message.Message, handler func(context.Context, *message.Message) error) error {
	ctx, span := q.tracer.Start(extractTrace(ctx, msg), "consume "+topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "watermill-sql"),
			attribute.String("messaging.destination.name", topic),
			attribute.String("messaging.message.id", msg.UUID),
			attribute.String("inventory.event_id", msg.Metadata.Get(MetadataEventID)),
		),
	)
	defer span.End()

	err := retry(ctx, q.maxAttempts, q.retryDelay, func() error { return handler(ctx, msg) },
		func(err error, next time.Duration) {
			q.log.WarnContext(ctx, "events: handler failed, retrying",
				"topic", topic,
				"event_id", msg.Metadata.Get(MetadataEventID),
				"next_delay", next,
				"error", err,
			)
		})

	outcome := "ok"
	if err != nil {
		outcome = "failed"
		if IsPermanent(err) {
			outcome = "dropped"
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "handler failed")
		err = fmt.Errorf("events: %s event %s: %w", topic, msg.Metadata.Get(MetadataEventID), err)
	}
	q.consumed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("topic", topic),
		attribute.String("outcome", outcome),
	))
	return err
}

// retry runs op up to attempts times with doubling delays starting at delay.
// A Permanent error or a cancelled ctx stops it early.
func retry(ctx context.Context, attempts int, delay time.Duration, op func() error, notify func(error, time.Duration)) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = delay
	b.Multiplier = 2
	b.RandomizationFactor = 0

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, op()
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(attempts)),
		backoff.WithNotify(notify),
	)
	return err
}
