package kv

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/fieldservice-api/internal/application/ports"
)

var _ ports.KVStore = (*MemoryKV)(nil)

type entry struct {
	value   string
	expires time.Time // cero = sin expiración
}

// MemoryKV almacén clave-valor en proceso con expiración perezosa.
// Se usa sin REDIS_ADDR y en tests.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]entry
	now  func() time.Time
}

// NewMemoryKV crea un almacén vacío.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: map[string]entry{}, now: time.Now}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.data[key]
	if !ok {
		return "", false, nil
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.data, key)
		return "", false, nil
	}
	return e.value, true, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := entry{value: value}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.data[key] = e
	return nil
}

func (m *MemoryKV) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}
