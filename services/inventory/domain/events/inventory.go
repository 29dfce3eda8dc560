package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the inventory context.
const (
	TopicItemRegistered      = "inventory.item.registered"
	TopicTransactionRecorded = "inventory.transaction.recorded"
	TopicStockLow            = "inventory.stock.low"
)

// ItemRegisteredEvent is published after a new item is persisted.
type ItemRegisteredEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	ItemID     uuid.UUID `json:"item_id"`
	SKU        string    `json:"sku"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// TransactionRecordedEvent is published for every committed ledger record.
type TransactionRecordedEvent struct {
	EventID       uuid.UUID `json:"event_id"`
	Version       int       `json:"version"`
	TransactionID uuid.UUID `json:"transaction_id"`
	ItemID        uuid.UUID `json:"item_id"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	QuantityAfter int       `json:"quantity_after"`
	PerformedByID uuid.UUID `json:"performed_by_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// StockLowEvent is published when a ledger write moves an item to or below
// its reorder level.
type StockLowEvent struct {
	EventID         uuid.UUID `json:"event_id"`
	Version         int       `json:"version"`
	ItemID          uuid.UUID `json:"item_id"`
	SKU             string    `json:"sku"`
	Name            string    `json:"name"`
	QuantityOnHand  int       `json:"quantity_on_hand"`
	ReorderLevel    int       `json:"reorder_level"`
	ReorderQuantity int       `json:"reorder_quantity"`
	OccurredAt      time.Time `json:"occurred_at"`
}
