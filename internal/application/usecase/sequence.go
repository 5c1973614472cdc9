package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

// createNumbered reserva el siguiente consecutivo del tipo dentro de una transacción y
// ejecuta create con el número formateado (CUST-000001). Si el número ya existe, el
// contador se resincroniza y se reintenta una sola vez; un segundo choque es ErrConflict.
func createNumbered(
	ctx context.Context,
	runner repository.TxRunner,
	tenantID, kind string,
	create func(tx repository.TxRepos, number string) error,
) error {
	attempt := func() error {
		return runner.Run(ctx, func(tx repository.TxRepos) error {
			n, err := tx.Sequences.Next(ctx, tenantID, kind)
			if err != nil {
				return err
			}
			return create(tx, domain.FormatSequenceNumber(kind, n))
		})
	}

	err := attempt()
	if !errors.Is(err, domain.ErrDuplicate) {
		return err
	}
	if err := runner.Run(ctx, func(tx repository.TxRepos) error {
		return tx.Sequences.Resync(ctx, tenantID, kind)
	}); err != nil {
		return err
	}
	if err := attempt(); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return fmt.Errorf("%w: número %s ya asignado", domain.ErrConflict, kind)
		}
		return err
	}
	return nil
}
