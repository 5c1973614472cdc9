package repository

import "context"

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Customers    CustomerRepository
	Addresses    AddressRepository
	Appointments AppointmentRepository
	Jobs         JobRepository
	Invoices     InvoiceRepository
	Sequences    SequenceRepository
	Users        UserRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx TxRepos) error) error
}
