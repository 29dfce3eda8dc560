package subscribers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/vetclinic/pkg/logger"
	"github.com/ghuser/vetclinic/services/inventory/domain"
	"github.com/ghuser/vetclinic/services/inventory/domain/events"
	"github.com/ghuser/vetclinic/services/inventory/domain/models"
)

type stubLoader struct {
	err   error
	calls []uuid.UUID
}

func (s *stubLoader) Get(_ context.Context, id uuid.UUID) (*models.Item, error) {
	s.calls = append(s.calls, id)
	if s.err != nil {
		return nil, s.err
	}
	return &models.Item{ID: id}, nil
}

type stubBus struct {
	mu     sync.Mutex
	topics []string
	err    error
}

func (b *stubBus) Subscribe(_ context.Context, topic string, _ func(context.Context, *message.Message) error) (<-chan error, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.mu.Lock()
	b.topics = append(b.topics, topic)
	b.mu.Unlock()
	ch := make(chan error)
	close(ch)
	return ch, nil
}

func newMessage(t *testing.T, payload any) *message.Message {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return message.NewMessage(watermill.NewUUID(), data)
}

func TestRegister_SubscribesAllTopics(t *testing.T) {
	bus := &stubBus{}
	if err := Register(context.Background(), bus, &stubLoader{}, logger.Nop()); err != nil {
		t.Fatalf("register: %v", err)
	}
	want := map[string]bool{
		events.TopicItemRegistered:      true,
		events.TopicTransactionRecorded: true,
		events.TopicStockLow:            true,
	}
	if len(bus.topics) != len(want) {
		t.Fatalf("topics = %v", bus.topics)
	}
	for _, topic := range bus.topics {
		if !want[topic] {
			t.Errorf("unexpected topic %q", topic)
		}
	}
}

func TestRegister_SubscribeError(t *testing.T) {
	bus := &stubBus{err: errors.New("db down")}
	if err := Register(context.Background(), bus, &stubLoader{}, logger.Nop()); err == nil {
		t.Fatal("expected error")
	}
}

func TestItemRegistered(t *testing.T) {
	id := uuid.New()
	evt := events.ItemRegisteredEvent{EventID: uuid.New(), Version: 1, ItemID: id, SKU: "AMX-250", OccurredAt: time.Now()}

	tests := []struct {
		name    string
		loadErr error
		wantErr bool
	}{
		{name: "warms cache"},
		{name: "missing item is skipped", loadErr: domain.ErrItemNotFound},
		{name: "storage error is retried", loadErr: errors.New("connection reset"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &stubLoader{err: tt.loadErr}
			err := ItemRegistered(loader, logger.Nop())(context.Background(), newMessage(t, evt))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if len(loader.calls) != 1 || loader.calls[0] != id {
				t.Errorf("loader calls = %v", loader.calls)
			}
		})
	}
}

func TestHandlers_RejectMalformedPayload(t *testing.T) {
	bad := message.NewMessage(watermill.NewUUID(), []byte("{not json"))
	handlers := map[string]Handler{
		"item registered":      ItemRegistered(&stubLoader{}, logger.Nop()),
		"transaction recorded": TransactionRecorded(logger.Nop()),
		"stock low":            StockLow(logger.Nop()),
	}
	for name, h := range handlers {
		t.Run(name, func(t *testing.T) {
			if err := h(context.Background(), bad); err == nil {
				t.Fatal("expected decode error")
			}
		})
	}
}

func TestStockLow_LogsReorderAlert(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "info")
	evt := events.StockLowEvent{
		EventID: uuid.New(), Version: 1, ItemID: uuid.New(), SKU: "AMX-250", Name: "Amoxicillin",
		QuantityOnHand: 4, ReorderLevel: 5, ReorderQuantity: 50, OccurredAt: time.Now(),
	}

	if err := StockLow(log)(context.Background(), newMessage(t, evt)); err != nil {
		t.Fatalf("handler: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("parse log: %v", err)
	}
	if entry["level"] != "WARN" || entry["msg"] != "reorder needed" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if entry["sku"] != "AMX-250" || entry["reorder_quantity"] != float64(50) {
		t.Errorf("unexpected fields: %v", entry)
	}
}

func TestTransactionRecorded_LogsAudit(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "info")
	evt := events.TransactionRecordedEvent{
		EventID: uuid.New(), Version: 1, TransactionID: uuid.New(), ItemID: uuid.New(),
		Type: string(models.TxDispensed), Quantity: 3, QuantityAfter: 9, OccurredAt: time.Now(),
	}

	if err := TransactionRecorded(log)(context.Background(), newMessage(t, evt)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !strings.Contains(buf.String(), `"msg":"ledger audit"`) || !strings.Contains(buf.String(), `"quantity_after":9`) {
		t.Errorf("unexpected log output: %s", buf.String())
	}
}
