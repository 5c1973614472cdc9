package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// sequenceSources tabla y columna de número de negocio por tipo de consecutivo.
var sequenceSources = map[string]struct{ table, column string }{
	domain.SequenceCustomer: {"customers", "customer_number"},
	domain.SequenceJob:      {"jobs", "job_number"},
	domain.SequenceInvoice:  {"invoices", "invoice_number"},
}

// SequenceRepo consecutivos por tenant sobre la tabla tenant_sequences.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next reserva el siguiente valor con un upsert atómico. La primera reserva de un
// (tenant, tipo) siembra el contador con la cantidad de registros existentes.
func (r *SequenceRepo) Next(ctx context.Context, tenantID, kind string) (int64, error) {
	query, err := nextSequenceSQL(kind)
	if err != nil {
		return 0, err
	}
	var next int64
	if err := r.q.QueryRow(ctx, query, tenantID, kind).Scan(&next); err != nil {
		return 0, wrapErr("next sequence", err)
	}
	return next, nil
}

// Resync adelanta el contador al mayor número ya persistido; nunca lo retrocede.
func (r *SequenceRepo) Resync(ctx context.Context, tenantID, kind string) error {
	query, err := resyncSequenceSQL(kind)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, query, tenantID, kind)
	return wrapErr("resync sequence", err)
}

func nextSequenceSQL(kind string) (string, error) {
	src, ok := sequenceSources[kind]
	if !ok {
		return "", fmt.Errorf("tipo de consecutivo desconocido: %s", kind)
	}
	return fmt.Sprintf(`
		INSERT INTO tenant_sequences (tenant_id, kind, last_value)
		VALUES ($1, $2, (SELECT COUNT(*) FROM %s WHERE tenant_id = $1) + 1)
		ON CONFLICT (tenant_id, kind) DO UPDATE SET last_value = tenant_sequences.last_value + 1
		RETURNING last_value`, src.table), nil
}

func resyncSequenceSQL(kind string) (string, error) {
	src, ok := sequenceSources[kind]
	if !ok {
		return "", fmt.Errorf("tipo de consecutivo desconocido: %s", kind)
	}
	return fmt.Sprintf(`
		INSERT INTO tenant_sequences (tenant_id, kind, last_value)
		VALUES ($1, $2, (
			SELECT COALESCE(MAX(CAST(substring(%[2]s FROM '[0-9]+$') AS BIGINT)), 0)
			FROM %[1]s WHERE tenant_id = $1))
		ON CONFLICT (tenant_id, kind) DO UPDATE
		SET last_value = GREATEST(tenant_sequences.last_value, EXCLUDED.last_value)`, src.table, src.column), nil
}
