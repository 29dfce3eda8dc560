package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/vetclinic/pkg/events"
	domainevents "github.com/ghuser/vetclinic/services/inventory/domain/events"
	"github.com/ghuser/vetclinic/services/inventory/domain/models"
)

const eventVersion = 1

// outbox publishes domain events through the Watermill SQL tables inside the
// caller's transaction. A nil bus disables publishing.
type outbox struct {
	bus *events.EventBus
}

func (o outbox) publish(ctx context.Context, tx *sql.Tx, topic string, eventID uuid.UUID, payload any) error {
	if o.bus == nil {
		return nil
	}
	msg, err := events.NewJSONMessage(eventID, eventVersion, payload)
	if err != nil {
		return err
	}
	if err := o.bus.PublishTx(ctx, tx, topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func (o outbox) itemRegistered(ctx context.Context, tx *sql.Tx, item *models.Item) error {
	e := domainevents.ItemRegisteredEvent{
		EventID:    uuid.New(),
		Version:    eventVersion,
		ItemID:     item.ID,
		SKU:        item.SKU.String(),
		Name:       item.Name,
		OccurredAt: item.CreatedAt,
	}
	return o.publish(ctx, tx, domainevents.TopicItemRegistered, e.EventID, e)
}

func (o outbox) transactionRecorded(ctx context.Context, tx *sql.Tx, rec *models.Transaction) error {
	e := domainevents.TransactionRecordedEvent{
		EventID:       uuid.New(),
		Version:       eventVersion,
		TransactionID: rec.ID,
		ItemID:        rec.ItemID,
		Type:          string(rec.Type),
		Quantity:      rec.Quantity,
		QuantityAfter: rec.QuantityAfter,
		PerformedByID: rec.PerformedByID,
		OccurredAt:    rec.CreatedAt,
	}
	return o.publish(ctx, tx, domainevents.TopicTransactionRecorded, e.EventID, e)
}

func (o outbox) stockLow(ctx context.Context, tx *sql.Tx, item *models.Item) error {
	e := domainevents.StockLowEvent{
		EventID:         uuid.New(),
		Version:         eventVersion,
		ItemID:          item.ID,
		SKU:             item.SKU.String(),
		Name:            item.Name,
		QuantityOnHand:  item.QuantityOnHand,
		ReorderLevel:    item.ReorderLevel,
		ReorderQuantity: item.ReorderQuantity,
		OccurredAt:      item.UpdatedAt,
	}
	return o.publish(ctx, tx, domainevents.TopicStockLow, e.EventID, e)
}
