package entity

import "time"

// Estados de tenant.
const (
	TenantActive   = "active"
	TenantInactive = "inactive"
)

// Tenant representa una organización aislada (multi-tenant). Todos los datos de dominio
// llevan su ID.
type Tenant struct {
	ID        string
	Name      string
	Slug      string // único, usado en URLs y login
	Status    string // active, inactive
	Locale    string // ej. en-US
	Timezone  string // ej. America/Chicago
	Currency  string // ISO 4217, ej. USD
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si el tenant puede operar.
func (t *Tenant) IsActive() bool {
	return t != nil && t.Status == TenantActive
}
