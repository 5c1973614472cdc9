package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(Repos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapErr("commit transaction", fmt.Errorf("commit: %w", err))
	}
	return nil
}

// Repos construye el juego de repositorios sobre q (pool o tx).
func Repos(q Querier) repository.TxRepos {
	return repository.TxRepos{
		Customers:    NewCustomerRepository(q),
		Addresses:    NewAddressRepository(q),
		Appointments: NewAppointmentRepository(q),
		Jobs:         NewJobRepository(q),
		Invoices:     NewInvoiceRepository(q),
		Sequences:    NewSequenceRepository(q),
		Users:        NewUserRepository(q),
	}
}
