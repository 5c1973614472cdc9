package usecase

import (
	"github.com/jhoicas/fieldservice-api/internal/application/dto"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

func normalizePage(page dto.PageRequest) dto.PageRequest {
	page.DefaultPage()
	return page
}

func listResponse[E any, R any](items []E, total int, page dto.PageRequest, conv func(E) R) *dto.ListResponse[R] {
	out := make([]R, 0, len(items))
	for _, it := range items {
		out = append(out, conv(it))
	}
	return &dto.ListResponse[R]{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
}

func toTenantResponse(t *entity.Tenant) dto.TenantResponse {
	return dto.TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		Status:    t.Status,
		Locale:    t.Locale,
		Timezone:  t.Timezone,
		Currency:  t.Currency,
		CreatedAt: t.CreatedAt,
	}
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		TenantID:  u.TenantID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toAddressResponse(a *entity.Address) dto.AddressResponse {
	return dto.AddressResponse{
		ID:         a.ID,
		CustomerID: a.CustomerID,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		ZipCode:    a.ZipCode,
		Country:    a.Country,
		IsPrimary:  a.IsPrimary,
		CreatedAt:  a.CreatedAt,
	}
}

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	out := dto.CustomerResponse{
		ID:             c.ID,
		TenantID:       c.TenantID,
		CustomerNumber: c.CustomerNumber,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		Phone:          c.Phone,
		CompanyName:    c.CompanyName,
		Notes:          c.Notes,
		Status:         c.Status,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	for _, a := range c.Addresses {
		out.Addresses = append(out.Addresses, toAddressResponse(a))
	}
	return out
}

func toAppointmentResponse(a *entity.Appointment) dto.AppointmentResponse {
	return dto.AppointmentResponse{
		ID:             a.ID,
		TenantID:       a.TenantID,
		CustomerID:     a.CustomerID,
		Title:          a.Title,
		Description:    a.Description,
		ScheduledStart: a.ScheduledStart,
		ScheduledEnd:   a.ScheduledEnd,
		Duration:       a.Duration,
		Status:         a.Status,
		AssignedToID:   a.AssignedToID,
		AddressID:      a.AddressID,
		Notes:          a.Notes,
		CreatedByID:    a.CreatedByID,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func toJobResponse(j *entity.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:                j.ID,
		TenantID:          j.TenantID,
		JobNumber:         j.JobNumber,
		CustomerID:        j.CustomerID,
		Title:             j.Title,
		Description:       j.Description,
		Status:            j.Status,
		Priority:          j.Priority,
		AddressID:         j.AddressID,
		AssignedToID:      j.AssignedToID,
		ScheduledDate:     j.ScheduledDate,
		EstimatedDuration: j.EstimatedDuration,
		CreatedByID:       j.CreatedByID,
		CreatedAt:         j.CreatedAt,
		UpdatedAt:         j.UpdatedAt,
	}
}

func toInvoiceResponse(inv *entity.Invoice) dto.InvoiceResponse {
	out := dto.InvoiceResponse{
		ID:            inv.ID,
		TenantID:      inv.TenantID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		JobID:         inv.JobID,
		Status:        inv.Status,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		TaxRate:       inv.TaxRate,
		Subtotal:      inv.Subtotal,
		TaxTotal:      inv.TaxTotal,
		Total:         inv.Total,
		Notes:         inv.Notes,
		LineItems:     make([]dto.InvoiceLineItemResponse, 0, len(inv.LineItems)),
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
	for _, li := range inv.LineItems {
		out.LineItems = append(out.LineItems, dto.InvoiceLineItemResponse{
			ID:          li.ID,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Amount:      li.Amount,
		})
	}
	return out
}
