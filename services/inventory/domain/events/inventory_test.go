package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/vetclinic/services/inventory/domain/events"
)

func jsonFields(t *testing.T, v any) map[string]any {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}
	return raw
}

func TestEvents_JSONFieldNames(t *testing.T) {
	now := time.Now().UTC()
	tests := []struct {
		name   string
		event  any
		fields []string
	}{
		{
			name:   "item registered",
			event:  events.ItemRegisteredEvent{EventID: uuid.New(), Version: 1, ItemID: uuid.New(), SKU: "AMX-250", Name: "Amoxicillin", OccurredAt: now},
			fields: []string{"event_id", "version", "item_id", "sku", "name", "occurred_at"},
		},
		{
			name: "transaction recorded",
			event: events.TransactionRecordedEvent{
				EventID: uuid.New(), Version: 1, TransactionID: uuid.New(), ItemID: uuid.New(),
				Type: "DISPENSED", Quantity: 3, QuantityAfter: 9, PerformedByID: uuid.New(), OccurredAt: now,
			},
			fields: []string{"event_id", "version", "transaction_id", "item_id", "type", "quantity", "quantity_after", "performed_by_id", "occurred_at"},
		},
		{
			name: "stock low",
			event: events.StockLowEvent{
				EventID: uuid.New(), Version: 1, ItemID: uuid.New(), SKU: "AMX-250", Name: "Amoxicillin",
				QuantityOnHand: 4, ReorderLevel: 5, ReorderQuantity: 50, OccurredAt: now,
			},
			fields: []string{"event_id", "version", "item_id", "sku", "name", "quantity_on_hand", "reorder_level", "reorder_quantity", "occurred_at"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := jsonFields(t, tt.event)
			for _, f := range tt.fields {
				if _, ok := raw[f]; !ok {
					t.Errorf("expected JSON field %q", f)
				}
			}
		})
	}
}

func TestTopics_Distinct(t *testing.T) {
	topics := map[string]bool{}
	for _, topic := range []string{events.TopicItemRegistered, events.TopicTransactionRecorded, events.TopicStockLow} {
		if topic == "" {
			t.Fatal("topic must not be empty")
		}
		if topics[topic] {
			t.Fatalf("duplicate topic %q", topic)
		}
		topics[topic] = true
	}
}
