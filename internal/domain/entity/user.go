package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleDispatcher = "dispatcher"
	RoleTechnician = "technician"
)

// User representa un usuario del sistema (pertenece a un Tenant).
type User struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, dispatcher, technician
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
