package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fieldservice-api/internal/application/validation"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

// Esquemas de entrada. El mismo esquema sirve para crear (requeridos + defaults)
// y para actualizar (parcial).

var addressSchema = &validation.Schema{
	Name: "address",
	Fields: []validation.Field{
		{Name: "street", Kind: validation.KindString, Required: true, MaxLen: 200},
		{Name: "city", Kind: validation.KindString, Required: true, MaxLen: 100},
		{Name: "state", Kind: validation.KindString, MaxLen: 100},
		{Name: "zipCode", Kind: validation.KindString, MaxLen: 20},
		{Name: "country", Kind: validation.KindString, MaxLen: 2, Default: "US"},
	},
}

var customerSchema = &validation.Schema{
	Name: "customer",
	Fields: []validation.Field{
		{Name: "firstName", Kind: validation.KindString, Required: true, MaxLen: 100},
		{Name: "lastName", Kind: validation.KindString, Required: true, MaxLen: 100},
		{Name: "email", Kind: validation.KindEmail, Nullable: true, MaxLen: 254},
		{Name: "phone", Kind: validation.KindString, Nullable: true, MaxLen: 50},
		{Name: "companyName", Kind: validation.KindString, Nullable: true, MaxLen: 200},
		{Name: "notes", Kind: validation.KindString, Nullable: true, MaxLen: 2000},
		{Name: "status", Kind: validation.KindEnum, Enum: []string{entity.CustomerActive, entity.CustomerInactive}, Default: entity.CustomerActive},
		{Name: "address", Kind: validation.KindObject, Object: addressSchema},
	},
}

var appointmentSchema = &validation.Schema{
	Name: "appointment",
	Fields: []validation.Field{
		{Name: "title", Kind: validation.KindString, Required: true, MaxLen: 200},
		{Name: "description", Kind: validation.KindString, Nullable: true, MaxLen: 2000},
		{Name: "scheduledStart", Kind: validation.KindDate, Required: true},
		{Name: "scheduledEnd", Kind: validation.KindDate},
		{Name: "duration", Kind: validation.KindInt, Positive: true, Default: entity.DefaultAppointmentDuration},
		{Name: "status", Kind: validation.KindEnum, Enum: entity.AppointmentStatuses, Default: entity.AppointmentScheduled},
		{Name: "customerId", Kind: validation.KindRef, Required: true},
		{Name: "assignedToId", Kind: validation.KindRef, Nullable: true},
		{Name: "addressId", Kind: validation.KindRef, Nullable: true},
		{Name: "notes", Kind: validation.KindString, Nullable: true, MaxLen: 2000},
	},
}

var jobSchema = &validation.Schema{
	Name: "job",
	Fields: []validation.Field{
		{Name: "title", Kind: validation.KindString, Required: true, MaxLen: 200},
		{Name: "description", Kind: validation.KindString, Nullable: true, MaxLen: 4000},
		{Name: "status", Kind: validation.KindEnum, Enum: entity.JobStatuses, Default: entity.JobScheduled},
		{Name: "priority", Kind: validation.KindEnum, Enum: entity.JobPriorities, Default: entity.PriorityNormal},
		{Name: "customerId", Kind: validation.KindRef, Required: true},
		{Name: "addressId", Kind: validation.KindRef, Nullable: true},
		{Name: "assignedToId", Kind: validation.KindRef, Nullable: true},
		{Name: "scheduledDate", Kind: validation.KindDate, Nullable: true},
		{Name: "estimatedDuration", Kind: validation.KindInt, Positive: true, Default: 60},
	},
}

var lineItemSchema = &validation.Schema{
	Name: "lineItem",
	Fields: []validation.Field{
		{Name: "description", Kind: validation.KindString, Required: true, MaxLen: 500},
		{Name: "quantity", Kind: validation.KindDecimal, Required: true, Positive: true},
		{Name: "unitPrice", Kind: validation.KindDecimal, Required: true, NonNegative: true},
	},
}

var invoiceSchema = &validation.Schema{
	Name: "invoice",
	Fields: []validation.Field{
		{Name: "customerId", Kind: validation.KindRef, Required: true},
		{Name: "jobId", Kind: validation.KindRef, Nullable: true},
		{Name: "status", Kind: validation.KindEnum, Enum: entity.InvoiceStatuses, Default: entity.InvoiceDraft},
		{Name: "issueDate", Kind: validation.KindDate},
		{Name: "dueDate", Kind: validation.KindDate, Nullable: true},
		{Name: "taxRate", Kind: validation.KindDecimal, NonNegative: true, Default: decimal.Zero},
		{Name: "notes", Kind: validation.KindString, Nullable: true, MaxLen: 2000},
		{Name: "lineItems", Kind: validation.KindObjectList, Required: true, Object: lineItemSchema},
	},
}

var userSchema = &validation.Schema{
	Name: "user",
	Fields: []validation.Field{
		{Name: "email", Kind: validation.KindEmail, Required: true, MaxLen: 254},
		{Name: "password", Kind: validation.KindString, Required: true, MaxLen: 72},
		{Name: "name", Kind: validation.KindString, MaxLen: 200},
		{Name: "role", Kind: validation.KindEnum, Enum: []string{entity.RoleAdmin, entity.RoleDispatcher, entity.RoleTechnician}, Default: entity.RoleTechnician},
	},
}

var tenantSchema = &validation.Schema{
	Name: "tenant",
	Fields: []validation.Field{
		{Name: "name", Kind: validation.KindString, Required: true, MaxLen: 200},
		{Name: "slug", Kind: validation.KindString, Required: true, MaxLen: 63},
		{Name: "locale", Kind: validation.KindString, MaxLen: 20, Default: "en-US"},
		{Name: "timezone", Kind: validation.KindString, MaxLen: 64, Default: "UTC"},
		{Name: "currency", Kind: validation.KindString, MaxLen: 3, Default: "USD"},
	},
}
