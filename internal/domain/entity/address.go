package entity

import "time"

// Address dirección de servicio de un cliente. Creada en línea con el cliente,
// su ciclo de vida está atado al del cliente.
type Address struct {
	ID         string
	TenantID   string
	CustomerID string
	Street     string
	City       string
	State      string
	ZipCode    string
	Country    string
	IsPrimary  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
