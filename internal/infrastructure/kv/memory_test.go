package kv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV_SetGetDel(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryKV()

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", "v", 0))
	v, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, m.Del(ctx, "k", "otra"))
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryKV_Expira(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryKV()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", "v", time.Minute))
	_, ok, _ := m.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
}
