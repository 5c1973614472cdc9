package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldservice-api/pkg/config"
)

func TestPoolConfigFor(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db", Port: 5432, User: "fs", Password: "p@ss", DBName: "fieldservice", SSLMode: "disable",
		MaxConns: 10, MinConns: 3, ConnMaxLifetimeMinutes: 15,
	}

	pc, err := poolConfigFor(cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(10), pc.MaxConns)
	assert.Equal(t, int32(3), pc.MinConns)
	assert.Equal(t, 15*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.Equal(t, "p@ss", pc.ConnConfig.Password)
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfigFor_MinMayorQueMaxSeIgnora(t *testing.T) {
	pc, err := poolConfigFor(config.DBConfig{DatabaseURL: "postgres://fs@db:5432/fs", MaxConns: 4, MinConns: 8})
	require.NoError(t, err)
	assert.Equal(t, int32(4), pc.MaxConns)
	assert.Equal(t, int32(0), pc.MinConns)
}

func TestPoolConfigFor_DSNInvalido(t *testing.T) {
	_, err := poolConfigFor(config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}
