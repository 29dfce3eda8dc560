package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ghuser/vetclinic/services/inventory/domain/models"
)

func cloneItem(i *models.Item) *models.Item {
	c := *i
	return &c
}

// memCache is an ItemCache over a map with the same version guard as Redis.
type memCache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*models.Item
	deletes int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[uuid.UUID]*models.Item)}
}

func (c *memCache) Get(_ context.Context, id uuid.UUID) (*models.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, ok := c.entries[id]
	if !ok {
		return nil, ErrCacheMiss
	}
	return cloneItem(it), nil
}

func (c *memCache) Set(_ context.Context, item *models.Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.entries[item.ID]; ok && cur.Version > item.Version {
		return nil
	}
	c.entries[item.ID] = cloneItem(item)
	return nil
}

func (c *memCache) Delete(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	c.deletes++
	return nil
}
