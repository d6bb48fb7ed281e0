package sessionstore

import (
	"context"
	"sync"
	"time"
)

// MemoryBackend keeps sessions in process memory. Records are deep-copied on
// the way in and out, so concurrent requests never share maps.
type MemoryBackend struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
	ticker  *time.Ticker
	done    chan struct{}
	once    sync.Once
}

type memoryRecord struct {
	data      map[string]any
	expiresAt time.Time
}

func (r memoryRecord) expired(now time.Time) bool {
	return !r.expiresAt.IsZero() && now.After(r.expiresAt)
}

// NewMemoryBackend creates an in-memory backend. A positive cleanupInterval
// starts a goroutine sweeping expired records; stop it with Close.
func NewMemoryBackend(cleanupInterval time.Duration) *MemoryBackend {
	b := &MemoryBackend{
		records: make(map[string]memoryRecord),
		done:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		b.ticker = time.NewTicker(cleanupInterval)
		go b.cleanupLoop()
	}

	return b
}

func (b *MemoryBackend) Load(_ context.Context, token string) (map[string]any, error) {
	b.mu.RLock()
	rec, ok := b.records[token]
	b.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if rec.expired(time.Now()) {
		b.mu.Lock()
		delete(b.records, token)
		b.mu.Unlock()
		return nil, ErrSessionNotFound
	}

	return cloneData(rec.data), nil
}

func (b *MemoryBackend) Save(_ context.Context, token string, data map[string]any, ttl time.Duration) error {
	rec := memoryRecord{data: cloneData(data)}
	if rec.data == nil {
		rec.data = make(map[string]any)
	}
	if ttl > 0 {
		rec.expiresAt = time.Now().Add(ttl)
	}

	b.mu.Lock()
	b.records[token] = rec
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, token string) error {
	b.mu.Lock()
	delete(b.records, token)
	b.mu.Unlock()
	return nil
}

// DeleteExpired removes all expired records
func (b *MemoryBackend) DeleteExpired(_ context.Context) error {
	now := time.Now()

	b.mu.Lock()
	defer b.mu.Unlock()

	for token, rec := range b.records {
		if rec.expired(now) {
			delete(b.records, token)
		}
	}
	return nil
}

// Len returns the number of stored records, expired ones included
func (b *MemoryBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.records)
}

// Close stops the cleanup goroutine
func (b *MemoryBackend) Close() error {
	b.once.Do(func() {
		if b.ticker != nil {
			b.ticker.Stop()
		}
		close(b.done)
	})
	return nil
}

func (b *MemoryBackend) cleanupLoop() {
	for {
		select {
		case <-b.ticker.C:
			_ = b.DeleteExpired(context.Background())
		case <-b.done:
			return
		}
	}
}
