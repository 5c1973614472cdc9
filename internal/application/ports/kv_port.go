package ports

import (
	"context"
	"time"
)

// KVStore almacén clave-valor con expiración (Redis o memoria).
// Get devuelve ok=false cuando la clave no existe o expiró.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
