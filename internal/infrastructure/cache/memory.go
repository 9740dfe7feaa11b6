package cache

import (
	"sync"
	"time"
)

const defaultCleanupInterval = 5 * time.Minute

// MemoryStore is a simple in-memory key-value store with expiration. It
// stands in for Redis when no Redis server is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*memoryItem

	stopOnce sync.Once
	stop     chan struct{}
}

type memoryItem struct {
	value      []byte
	expireTime time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithCleanup(defaultCleanupInterval)
}

// NewMemoryStoreWithCleanup creates a store that sweeps expired items every
// interval
func NewMemoryStoreWithCleanup(interval time.Duration) *MemoryStore {
	if interval <= 0 {
		interval = defaultCleanupInterval
	}
	store := &MemoryStore{
		items: make(map[string]*memoryItem),
		stop:  make(chan struct{}),
	}

	// Start cleanup goroutine to remove expired items
	go store.cleanupExpired(interval)

	return store
}

// Set stores a value with expiration. A non-positive expiration never
// expires.
func (ms *MemoryStore) Set(key string, value []byte, expiration time.Duration) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	item := &memoryItem{value: append([]byte(nil), value...)}
	if expiration > 0 {
		item.expireTime = time.Now().Add(expiration)
	}
	ms.items[key] = item
}

// Get retrieves a value by key
func (ms *MemoryStore) Get(key string) ([]byte, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, exists := ms.items[key]
	if !exists || item.expired(time.Now()) {
		return nil, false
	}

	return append([]byte(nil), item.value...), true
}

// Delete removes a key
func (ms *MemoryStore) Delete(key string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, key)
}

// Len returns the number of stored items, expired or not
func (ms *MemoryStore) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.items)
}

// Stop ends the cleanup goroutine
func (ms *MemoryStore) Stop() {
	ms.stopOnce.Do(func() { close(ms.stop) })
}

func (i *memoryItem) expired(now time.Time) bool {
	return !i.expireTime.IsZero() && now.After(i.expireTime)
}

// cleanupExpired periodically removes expired items
func (ms *MemoryStore) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ms.stop:
			return
		case <-ticker.C:
		}

		ms.mu.Lock()
		now := time.Now()
		for key, item := range ms.items {
			if item.expired(now) {
				delete(ms.items, key)
			}
		}
		ms.mu.Unlock()
	}
}
