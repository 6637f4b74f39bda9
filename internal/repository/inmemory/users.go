package inmemory

import (
	"sync"
	"time"

	userdomain "tiptrip-go/internal/domain/user"
)

// InMemoryUserCache keeps authenticated users keyed by token.
type InMemoryUserCache struct {
	mu    sync.RWMutex
	items map[string]userItem
}

type userItem struct {
	value     userdomain.User
	expiresAt time.Time
}

func NewInMemoryUserCache() *InMemoryUserCache {
	return &InMemoryUserCache{
		items: make(map[string]userItem),
	}
}

func (c *InMemoryUserCache) GetByToken(token string) (*userdomain.User, bool) {
	now := time.Now()

	c.mu.RLock()
	item, ok := c.items[token]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[token]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, token)
		}
		c.mu.Unlock()
		return nil, false
	}

	value := item.value
	return &value, true
}

func (c *InMemoryUserCache) SetByToken(token string, user *userdomain.User, ttl time.Duration) {
	if user == nil || ttl <= 0 {
		c.DeleteByToken(token)
		return
	}

	c.mu.Lock()
	c.items[token] = userItem{
		value:     *user,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *InMemoryUserCache) DeleteByToken(token string) {
	c.mu.Lock()
	delete(c.items, token)
	c.mu.Unlock()
}
