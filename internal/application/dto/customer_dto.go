package dto

import "time"

// AddressResponse dirección en respuestas.
type AddressResponse struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state,omitempty"`
	ZipCode    string    `json:"zipCode,omitempty"`
	Country    string    `json:"country"`
	IsPrimary  bool      `json:"isPrimary"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID             string            `json:"id"`
	TenantID       string            `json:"tenantId"`
	CustomerNumber string            `json:"customerNumber"`
	FirstName      string            `json:"firstName"`
	LastName       string            `json:"lastName"`
	Email          string            `json:"email,omitempty"`
	Phone          string            `json:"phone,omitempty"`
	CompanyName    string            `json:"companyName,omitempty"`
	Notes          string            `json:"notes,omitempty"`
	Status         string            `json:"status"`
	Addresses      []AddressResponse `json:"addresses,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}
