// Package memory is an in-process implementation of the inventory
// repositories. It backs service and handler tests and honours the same
// per-item serialization contract as the Postgres repositories.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/vetclinic/services/inventory/domain"
	"github.com/ghuser/vetclinic/services/inventory/domain/models"
	"github.com/ghuser/vetclinic/services/inventory/domain/repositories"
)

// Store is an in-memory ItemRepository and LedgerRepository. Ledger
// writes on one item are serialized by a per-item mutex.
type Store struct {
	mu    sync.Mutex
	items map[uuid.UUID]*models.Item
	locks map[uuid.UUID]*sync.Mutex
	txs   map[uuid.UUID][]*models.Transaction
	keys  map[string]*models.Transaction
	seq   int64

	// ApplyErr, when set, is returned by Apply after the lock is taken.
	ApplyErr error
}

var (
	_ repositories.ItemRepository   = (*Store)(nil)
	_ repositories.LedgerRepository = (*Store)(nil)
)

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		items: make(map[uuid.UUID]*models.Item),
		locks: make(map[uuid.UUID]*sync.Mutex),
		txs:   make(map[uuid.UUID][]*models.Transaction),
		keys:  make(map[string]*models.Transaction),
	}
}

func cloneItem(i *models.Item) *models.Item {
	c := *i
	return &c
}

func (m *Store) Create(_ context.Context, item *models.Item, initial *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.SKU == item.SKU {
			return domain.ErrDuplicateSKU
		}
	}
	m.items[item.ID] = cloneItem(item)
	m.locks[item.ID] = &sync.Mutex{}
	if initial != nil {
		m.appendLocked(initial)
	}
	return nil
}

func (m *Store) appendLocked(tx *models.Transaction) {
	m.seq++
	tx.Seq = m.seq
	m.txs[tx.ItemID] = append(m.txs[tx.ItemID], tx)
	if tx.IdempotencyKey != "" {
		m.keys[tx.IdempotencyKey] = tx
	}
}

func (m *Store) GetByID(_ context.Context, id uuid.UUID) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return cloneItem(it), nil
}

func matches(it *models.Item, f repositories.ItemFilter) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(it.Name), q) &&
			!strings.Contains(strings.ToLower(it.SKU.String()), q) &&
			!strings.Contains(strings.ToLower(it.Manufacturer), q) {
			return false
		}
	}
	if f.Category != nil && it.Category != *f.Category {
		return false
	}
	if f.LowStock && !it.IsLowStock() {
		return false
	}
	if f.Active != nil && it.IsActive != *f.Active {
		return false
	}
	return true
}

func (m *Store) ListAll(_ context.Context, f repositories.ItemFilter) ([]*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Item{}
	for _, it := range m.items {
		if matches(it, f) {
			out = append(out, cloneItem(it))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Store) List(ctx context.Context, f repositories.ItemFilter, opts repositories.QueryOpts) (repositories.Page[*models.Item], error) {
	all, _ := m.ListAll(ctx, f)
	page := repositories.Page[*models.Item]{Total: len(all)}
	start := min(opts.Offset, len(all))
	end := len(all)
	if opts.Limit > 0 {
		end = min(start+opts.Limit, len(all))
	}
	page.Items = all[start:end]
	return page, nil
}

func (m *Store) Update(_ context.Context, item *models.Item) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.items[item.ID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	next := cloneItem(item)
	next.QuantityOnHand = cur.QuantityOnHand
	next.Version = cur.Version + 1
	next.IsActive = cur.IsActive
	m.items[item.ID] = next
	return cloneItem(next), nil
}

func (m *Store) Deactivate(_ context.Context, id uuid.UUID) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	if it.IsActive {
		it.IsActive = false
		it.Version++
		it.UpdatedAt = time.Now().UTC()
	}
	return cloneItem(it), nil
}

func (m *Store) LowStock(ctx context.Context) ([]*models.Item, error) {
	active := true
	out, _ := m.ListAll(ctx, repositories.ItemFilter{LowStock: true, Active: &active})
	sort.SliceStable(out, func(i, j int) bool { return out[i].QuantityOnHand < out[j].QuantityOnHand })
	return out, nil
}

func (m *Store) ExpiringBy(ctx context.Context, cutoff time.Time) ([]*models.Item, error) {
	active := true
	all, _ := m.ListAll(ctx, repositories.ItemFilter{Active: &active})
	out := []*models.Item{}
	for _, it := range all {
		if it.QuantityOnHand > 0 && it.ExpiresBy(cutoff) {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExpirationDate.Before(*out[j].ExpirationDate) })
	return out, nil
}

func (m *Store) Apply(_ context.Context, itemID uuid.UUID, key string, fn repositories.LockedApply) (*repositories.Applied, error) {
	m.mu.Lock()
	lock, ok := m.locks[itemID]
	m.mu.Unlock()
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	lock.Lock()
	defer lock.Unlock()

	if m.ApplyErr != nil {
		return nil, m.ApplyErr
	}

	m.mu.Lock()
	item := cloneItem(m.items[itemID])
	prev, replay := m.keys[key]
	m.mu.Unlock()

	if key != "" && replay {
		return &repositories.Applied{Transaction: prev, Item: item, PreviousBalance: item.QuantityOnHand, Replayed: true}, nil
	}

	rec, err := fn(item)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	before := item.QuantityOnHand
	stored := m.items[itemID]
	stored.QuantityOnHand = rec.QuantityAfter
	stored.Version++
	stored.UpdatedAt = rec.CreatedAt
	m.appendLocked(rec)
	return &repositories.Applied{Transaction: rec, Item: cloneItem(stored), PreviousBalance: before}, nil
}

func (m *Store) ListByItem(_ context.Context, itemID uuid.UUID, opts repositories.QueryOpts) (repositories.Page[*models.Transaction], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[itemID]; !ok {
		return repositories.Page[*models.Transaction]{}, domain.ErrItemNotFound
	}
	src := m.txs[itemID]
	all := make([]*models.Transaction, 0, len(src))
	for i := len(src) - 1; i >= 0; i-- {
		all = append(all, src[i])
	}
	page := repositories.Page[*models.Transaction]{Total: len(all)}
	start := min(opts.Offset, len(all))
	end := len(all)
	if opts.Limit > 0 {
		end = min(start+opts.Limit, len(all))
	}
	page.Items = all[start:end]
	return page, nil
}

func (m *Store) History(_ context.Context, itemID uuid.UUID) ([]*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Transaction(nil), m.txs[itemID]...), nil
}

// Count returns the number of ledger records for id.
func (m *Store) Count(id uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.txs[id])
}

// SetBalance overwrites an item's stored balance without touching the ledger.
func (m *Store) SetBalance(id uuid.UUID, qty int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if it, ok := m.items[id]; ok {
		it.QuantityOnHand = qty
	}
}

// AppendRaw appends tx to the ledger as-is, bypassing balance computation.
func (m *Store) AppendRaw(tx *models.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appendLocked(tx)
}
