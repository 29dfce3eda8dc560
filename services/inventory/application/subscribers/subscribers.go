// Package subscribers handles inventory domain events in the worker process.
// Handlers must be idempotent: the event bus retries failed deliveries.
// Undecodable payloads are reported as permanent failures.
package subscribers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	pkgevents "github.com/ghuser/vetclinic/pkg/events"
	"github.com/ghuser/vetclinic/pkg/logger"
	"github.com/ghuser/vetclinic/services/inventory/domain"
	"github.com/ghuser/vetclinic/services/inventory/domain/events"
	"github.com/ghuser/vetclinic/services/inventory/domain/models"
)

// Handler processes one message from a topic.
type Handler func(context.Context, *message.Message) error

// Subscriber is satisfied by *events.EventBus.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error)
}

// ItemLoader loads an item through the read-through cache.
type ItemLoader interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Item, error)
}

// Register subscribes every inventory handler and drains subscriber errors
// in the background so the channels never block.
func Register(ctx context.Context, bus Subscriber, items ItemLoader, log logger.Logger) error {
	handlers := map[string]Handler{
		events.TopicItemRegistered:      ItemRegistered(items, log),
		events.TopicTransactionRecorded: TransactionRecorded(log),
		events.TopicStockLow:            StockLow(log),
	}

	topics := make([]string, 0, len(handlers))
	for topic, h := range handlers {
		errCh, err := bus.Subscribe(ctx, topic, h)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
		go func(topic string) {
			for err := range errCh {
				log.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic)
		topics = append(topics, topic)
	}

	log.Info("event subscribers registered", "topics", topics)
	return nil
}

// ItemRegistered warms the item cache so the first API read is a hit.
// An item deleted or missing since publication is not retried.
func ItemRegistered(items ItemLoader, log logger.Logger) Handler {
	return func(ctx context.Context, msg *message.Message) error {
		var evt events.ItemRegisteredEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return pkgevents.Permanent(fmt.Errorf("decode %s: %w", events.TopicItemRegistered, err))
		}

		if _, err := items.Get(ctx, evt.ItemID); err != nil {
			if errors.Is(err, domain.ErrItemNotFound) {
				log.WarnContext(ctx, "registered item not found, skipping cache warm", "item_id", evt.ItemID)
				return nil
			}
			return err
		}
		log.InfoContext(ctx, "cache warmed", "item_id", evt.ItemID, "sku", evt.SKU)
		return nil
	}
}

// TransactionRecorded writes one audit log line per committed ledger record.
func TransactionRecorded(log logger.Logger) Handler {
	return func(ctx context.Context, msg *message.Message) error {
		var evt events.TransactionRecordedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return pkgevents.Permanent(fmt.Errorf("decode %s: %w", events.TopicTransactionRecorded, err))
		}
		log.InfoContext(ctx, "ledger audit",
			"transaction_id", evt.TransactionID,
			"item_id", evt.ItemID,
			"type", evt.Type,
			"quantity", evt.Quantity,
			"quantity_after", evt.QuantityAfter,
			"performed_by_id", evt.PerformedByID,
			"occurred_at", evt.OccurredAt,
		)
		return nil
	}
}

// StockLow raises a reorder alert.
func StockLow(log logger.Logger) Handler {
	return func(ctx context.Context, msg *message.Message) error {
		var evt events.StockLowEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return pkgevents.Permanent(fmt.Errorf("decode %s: %w", events.TopicStockLow, err))
		}
		log.WarnContext(ctx, "reorder needed",
			"item_id", evt.ItemID,
			"sku", evt.SKU,
			"name", evt.Name,
			"quantity_on_hand", evt.QuantityOnHand,
			"reorder_level", evt.ReorderLevel,
			"reorder_quantity", evt.ReorderQuantity,
		)
		return nil
	}
}
