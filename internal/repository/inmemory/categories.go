package inmemory

import (
	"sync"
	"time"

	categoriesdomain "finance-tracker-go/internal/domain/categories"
)

// CategoriesCache keeps each owner's category list until its TTL passes.
type CategoriesCache struct {
	mu    sync.RWMutex
	items map[string]categoriesItem
	now   func() time.Time
}

type categoriesItem struct {
	value     []categoriesdomain.Category
	expiresAt time.Time
}

func NewCategoriesCache() *CategoriesCache {
	return &CategoriesCache{
		items: make(map[string]categoriesItem),
		now:   time.Now,
	}
}

func (c *CategoriesCache) GetByOwnerID(ownerID string) ([]categoriesdomain.Category, bool) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[ownerID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[ownerID]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, ownerID)
		}
		c.mu.Unlock()
		return nil, false
	}

	return cloneCategories(item.value), true
}

func (c *CategoriesCache) SetByOwnerID(ownerID string, categories []categoriesdomain.Category, ttl time.Duration) {
	if ttl <= 0 {
		c.DeleteByOwnerID(ownerID)
		return
	}

	c.mu.Lock()
	c.items[ownerID] = categoriesItem{
		value:     cloneCategories(categories),
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *CategoriesCache) DeleteByOwnerID(ownerID string) {
	c.mu.Lock()
	delete(c.items, ownerID)
	c.mu.Unlock()
}

func cloneCategories(categories []categoriesdomain.Category) []categoriesdomain.Category {
	if categories == nil {
		return nil
	}
	cloned := make([]categoriesdomain.Category, len(categories))
	copy(cloned, categories)
	return cloned
}
