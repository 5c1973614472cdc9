package memory

import (
	"context"
	"strconv"
	"strings"

	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador por tenant y tipo. La primera reserva se siembra con la
// cantidad de registros existentes de ese tipo.
type SequenceRepo struct{ v view }

func (r *SequenceRepo) Next(_ context.Context, tenantID, kind string) (int64, error) {
	var next int64
	err := r.v.write(func(d *dataset) error {
		key := tenantID + "|" + kind
		last, ok := d.sequences[key]
		if !ok {
			last = int64(len(numbersOf(d, tenantID, kind)))
		}
		next = last + 1
		d.sequences[key] = next
		return nil
	})
	return next, err
}

// Resync adelanta el contador al mayor número ya usado.
func (r *SequenceRepo) Resync(_ context.Context, tenantID, kind string) error {
	return r.v.write(func(d *dataset) error {
		key := tenantID + "|" + kind
		maxUsed := d.sequences[key]
		for _, n := range numbersOf(d, tenantID, kind) {
			if v := parseSequence(n); v > maxUsed {
				maxUsed = v
			}
		}
		d.sequences[key] = maxUsed
		return nil
	})
}

func numbersOf(d *dataset, tenantID, kind string) []string {
	var out []string
	switch kind {
	case domain.SequenceCustomer:
		for _, c := range d.customers {
			if c.TenantID == tenantID {
				out = append(out, c.CustomerNumber)
			}
		}
	case domain.SequenceJob:
		for _, j := range d.jobs {
			if j.TenantID == tenantID {
				out = append(out, j.JobNumber)
			}
		}
	case domain.SequenceInvoice:
		for _, inv := range d.invoices {
			if inv.TenantID == tenantID {
				out = append(out, inv.InvoiceNumber)
			}
		}
	}
	return out
}

func parseSequence(number string) int64 {
	i := strings.LastIndex(number, "-")
	n, err := strconv.ParseInt(number[i+1:], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
