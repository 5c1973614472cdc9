package repository

import "context"

// SequenceRepository reserva consecutivos de negocio por tenant y tipo (CUST, JOB, INV).
// Next debe ser atómico: dos llamadas concurrentes nunca devuelven el mismo valor.
type SequenceRepository interface {
	Next(ctx context.Context, tenantID, kind string) (int64, error)
	// Resync adelanta el contador al mayor número ya persistido (tras un choque de unicidad).
	Resync(ctx context.Context, tenantID, kind string) error
}
