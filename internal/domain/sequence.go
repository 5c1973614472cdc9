package domain

import "fmt"

// Tipos de consecutivo por tenant.
const (
	SequenceCustomer = "CUST"
	SequenceJob      = "JOB"
	SequenceInvoice  = "INV"
)

// FormatSequenceNumber devuelve el identificador de negocio, ej. CUST-000001.
func FormatSequenceNumber(kind string, n int64) string {
	return fmt.Sprintf("%s-%06d", kind, n)
}
