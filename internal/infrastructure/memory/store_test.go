package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/memory"
)

func TestRun_UsuariosDentroDeTransaccion(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: "u-1", TenantID: "t-1", Email: "tech@a.com"}))

	done := make(chan error, 1)
	go func() {
		done <- store.Run(ctx, func(tx repository.TxRepos) error {
			u, err := tx.Users.GetByID(ctx, "t-1", "u-1")
			if err != nil {
				return err
			}
			if u == nil {
				return errors.New("usuario no encontrado")
			}
			other, err := tx.Users.GetByID(ctx, "t-2", "u-1")
			if err != nil {
				return err
			}
			if other != nil {
				return errors.New("usuario visible desde otro tenant")
			}
			return nil
		})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run no terminó")
	}

	u, err := store.Users().GetByID(ctx, "t-1", "u-1")
	require.NoError(t, err)
	assert.NotNil(t, u)
}

func TestRun_ErrorDescartaCambios(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	err := store.Run(ctx, func(tx repository.TxRepos) error {
		if err := tx.Users.Create(ctx, &entity.User{ID: "u-1", TenantID: "t-1", Email: "tech@a.com"}); err != nil {
			return err
		}
		return errors.New("falla")
	})
	require.Error(t, err)

	u, err := store.Users().GetByID(ctx, "t-1", "u-1")
	require.NoError(t, err)
	assert.Nil(t, u)
}
