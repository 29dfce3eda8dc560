package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ghuser/vetclinic/services/inventory/domain"
	"github.com/ghuser/vetclinic/services/inventory/domain/models"
	"github.com/ghuser/vetclinic/services/inventory/domain/repositories"
)

// DefaultExpiringDays is the look-ahead used when a caller does not pass one.
const DefaultExpiringDays = 30

// AlertService answers the low-stock and expiry questions. Results are
// computed from the current rows on every call.
type AlertService struct {
	items repositories.ItemRepository
	now   func() time.Time
}

// NewAlertService returns an AlertService reading from items.
func NewAlertService(items repositories.ItemRepository) *AlertService {
	return &AlertService{items: items, now: time.Now}
}

// LowStock returns active items at or below their reorder level, emptiest first.
func (s *AlertService) LowStock(ctx context.Context) ([]*models.Item, error) {
	items, err := s.items.LowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	return items, nil
}

// Expiring returns active items with stock that expire within days of today (UTC).
// Items already past their date are included.
func (s *AlertService) Expiring(ctx context.Context, days int) ([]*models.Item, error) {
	if days < 0 || days > MaxExpiryDays {
		return nil, fmt.Errorf("%w: days must be between 0 and %d", domain.ErrInvalidItem, MaxExpiryDays)
	}
	items, err := s.items.ExpiringBy(ctx, ExpiryCutoff(s.now(), days))
	if err != nil {
		return nil, fmt.Errorf("expiring items: %w", err)
	}
	return items, nil
}

// MaxExpiryDays bounds the expiry look-ahead to ten years.
const MaxExpiryDays = 3650

// ExpiryCutoff is the last calendar day (UTC midnight) covered by an expiry
// look-ahead of days starting at now.
func ExpiryCutoff(now time.Time, days int) time.Time {
	today := models.TruncateDate(&now)
	return today.AddDate(0, 0, days)
}
