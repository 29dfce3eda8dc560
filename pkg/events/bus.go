// Package events is the inventory event bus: Watermill's SQL transport over
// the application's PostgreSQL pool.
//
// Writers publish inside their own transaction (PublishTx), so an event
// exists if and only if the ledger write that caused it committed. In the API
// process those messages land on an internal forwarder queue and a Forwarder
// daemon relays them to their topics; the worker consumes the topics.
//
// Consumers in one ConsumerGroup share the work: each message is handled by
// one worker instance. Handlers must tolerate redelivery.
package events

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/vetclinic/pkg/config"
	"github.com/ghuser/vetclinic/pkg/database"
	"github.com/ghuser/vetclinic/pkg/logger"
)

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = time.Second
	shutdownTimeout    = 30 * time.Second
	forwarderTopic     = "inventory_outbox"
	forwarderGroup     = "inventory-outbox-forwarder"
	errChanBuffer      = 100
)

// EventBus publishes and consumes inventory events. It does not own the
// database pool; Close leaves it open.
type EventBus struct {
	db         *sql.DB
	publisher  message.Publisher
	subscriber *watermillsql.Subscriber
	fwd        *forwarder.Forwarder
	wlog       watermill.LoggerAdapter
	log        logger.Logger

	forwarding  bool
	maxAttempts int
	retryDelay  time.Duration

	tracer   trace.Tracer
	consumed metric.Int64Counter

	wg sync.WaitGroup
}

// NewEventBus returns a bus whose Publish writes straight to topic tables.
// The worker uses it to consume.
func NewEventBus(db *database.Database, cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return newEventBus(db.DB(), cfg, log, false)
}

// NewEventBusWithForwarder returns a bus whose publishes go to the outbox
// queue. Call StartForwarder to relay them to their topics.
func NewEventBusWithForwarder(db *database.Database, cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return newEventBus(db.DB(), cfg, log, true)
}

func newEventBus(db *sql.DB, cfg *config.Config, log logger.Logger, forwarding bool) (*EventBus, error) {
	wlog := &logAdapter{log: log.With("component", "events")}

	pub, err := newSQLPublisher(db, wlog, true)
	if err != nil {
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}
	var publisher message.Publisher = pub
	if forwarding {
		publisher = forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: forwarderTopic})
	}

	sub, err := newSQLSubscriber(db, wlog, cfg.ServiceName+"-consumer")
	if err != nil {
		_ = pub.Close()
		return nil, fmt.Errorf("events: new subscriber: %w", err)
	}

	consumed, err := otel.Meter("vetclinic/events").Int64Counter("inventory_events_consumed_total",
		metric.WithDescription("Event deliveries handled by the worker, by topic and outcome."))
	if err != nil {
		_ = sub.Close()
		_ = pub.Close()
		return nil, fmt.Errorf("events: consumed counter: %w", err)
	}

	return &EventBus{
		db:          db,
		publisher:   publisher,
		subscriber:  sub,
		wlog:        wlog,
		log:         log,
		forwarding:  forwarding,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
		tracer:      otel.Tracer("vetclinic/events"),
		consumed:    consumed,
	}, nil
}

func newSQLPublisher(db watermillsql.ContextExecutor, wlog watermill.LoggerAdapter, initSchema bool) (*watermillsql.Publisher, error) {
	return watermillsql.NewPublisher(db, watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: initSchema,
	}, wlog)
}

func newSQLSubscriber(db *sql.DB, wlog watermill.LoggerAdapter, group string) (*watermillsql.Subscriber, error) {
	return watermillsql.NewSubscriber(db, watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    group,
	}, wlog)
}

// StartForwarder runs the outbox relay until ctx ends or Close is called.
// It returns once the relay is consuming.
func (q *EventBus) StartForwarder(ctx context.Context) error {
	if !q.forwarding {
		return fmt.Errorf("events: StartForwarder called on non-forwarder EventBus")
	}
	if q.fwd != nil {
		return fmt.Errorf("events: forwarder already started")
	}

	fwdSub, err := newSQLSubscriber(q.db, q.wlog, forwarderGroup)
	if err != nil {
		return fmt.Errorf("events: new forwarder subscriber: %w", err)
	}
	targetPub, err := newSQLPublisher(q.db, q.wlog, true)
	if err != nil {
		_ = fwdSub.Close()
		return fmt.Errorf("events: new forwarder target publisher: %w", err)
	}

	fwd, err := forwarder.NewForwarder(fwdSub, targetPub, q.wlog, forwarder.Config{ForwarderTopic: forwarderTopic})
	if err != nil {
		_ = targetPub.Close()
		_ = fwdSub.Close()
		return fmt.Errorf("events: create forwarder: %w", err)
	}
	q.fwd = fwd

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.log.InfoContext(ctx, "outbox forwarder started", "queue", forwarderTopic)
		if err := fwd.Run(ctx); err != nil {
			q.log.ErrorContext(ctx, "outbox forwarder stopped", "error", err)
			return
		}
		q.log.InfoContext(ctx, "outbox forwarder stopped")
	}()

	select {
	case <-fwd.Running():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: waiting for forwarder: %w", ctx.Err())
	}
}

// Ping satisfies httpx.HealthChecker.
func (q *EventBus) Ping(ctx context.Context) error {
	if err := q.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops consuming, waits up to 30s for in-flight handlers, then closes
// the publisher.
func (q *EventBus) Close() error {
	if err := q.subscriber.Close(); err != nil {
		return fmt.Errorf("events: close subscriber: %w", err)
	}
	if q.fwd != nil {
		if err := q.fwd.Close(); err != nil {
			return fmt.Errorf("events: close forwarder: %w", err)
		}
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		q.log.Error("events: timed out waiting for in-flight handlers")
	}

	if err := q.publisher.Close(); err != nil {
		return fmt.Errorf("events: close publisher: %w", err)
	}
	return nil
}

// logAdapter bridges logger.Logger to watermill.LoggerAdapter.
type logAdapter struct{ log logger.Logger }

func (a *logAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error(msg, append(fieldArgs(fields), "error", err)...)
}

func (a *logAdapter) Info(msg string, fields watermill.LogFields) {
	a.log.Info(msg, fieldArgs(fields)...)
}

func (a *logAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldArgs(fields)...)
}

// Trace is folded into Debug; slog has no lower level.
func (a *logAdapter) Trace(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldArgs(fields)...)
}

func (a *logAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &logAdapter{log: a.log.With(fieldArgs(fields)...)}
}

func fieldArgs(fields watermill.LogFields) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
