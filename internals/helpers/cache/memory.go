package cache

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	value   []byte
	expires time.Time
	tags    []string
}

// Memory is the in-process store used when no redis is configured.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memEntry
	byTag   map[string]map[string]struct{}
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: map[string]memEntry{},
		byTag:   map[string]map[string]struct{}{},
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && m.now().After(e.expires) {
		m.removeLocked(key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, tags []string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(key)
	e := memEntry{value: value, tags: tags}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.entries[key] = e
	for _, t := range tags {
		set, ok := m.byTag[t]
		if !ok {
			set = map[string]struct{}{}
			m.byTag[t] = set
		}
		set[key] = struct{}{}
	}
	return nil
}

func (m *Memory) InvalidateTags(_ context.Context, tags ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range tags {
		for key := range m.byTag[t] {
			m.removeLocked(key)
		}
		delete(m.byTag, t)
	}
	return nil
}

func (m *Memory) Clear(ctx context.Context) error {
	return m.InvalidateTags(ctx, AllTag)
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) removeLocked(key string) {
	e, ok := m.entries[key]
	if !ok {
		return
	}
	delete(m.entries, key)
	for _, t := range e.tags {
		if set := m.byTag[t]; set != nil {
			delete(set, key)
			if len(set) == 0 {
				delete(m.byTag, t)
			}
		}
	}
}
