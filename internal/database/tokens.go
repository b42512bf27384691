package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type tokenEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryTokens is an in-process stand-in for the redis token store. It
// answers with the same command types so callers can not tell them apart.
type MemoryTokens struct {
	mu      sync.Mutex
	entries map[string]tokenEntry
	now     func() time.Time
}

func NewMemoryTokens() *MemoryTokens {
	return &MemoryTokens{
		entries: make(map[string]tokenEntry),
		now:     time.Now,
	}
}

func (m *MemoryTokens) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := tokenEntry{value: fmt.Sprint(value)}
	if expiration > 0 {
		entry.expiresAt = m.now().Add(expiration)
	}
	m.entries[key] = entry

	return redis.NewStatusResult("OK", nil)
}

func (m *MemoryTokens) Get(_ context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if ok && !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		delete(m.entries, key)
		ok = false
	}
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}

	return redis.NewStringResult(entry.value, nil)
}

func (m *MemoryTokens) Del(_ context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, key := range keys {
		if _, ok := m.entries[key]; ok {
			delete(m.entries, key)
			n++
		}
	}

	return redis.NewIntResult(n, nil)
}
