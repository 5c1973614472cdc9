package http_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldservice-api/internal/domain"
	apphttp "github.com/jhoicas/fieldservice-api/internal/interfaces/http"
)

func TestHealth(t *testing.T) {
	s := newTestServer(t, "")

	status, body := s.doJSON(t, call{method: http.MethodGet, path: "/health"})

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "fieldservice-api", body["service"])
}

func TestMetrics_ExponeContadoresPorRuta(t *testing.T) {
	s := newTestServer(t, "")
	s.doJSON(t, call{method: http.MethodGet, path: "/api/v1/customers", tenant: tenantActive})

	status, raw := s.do(t, call{method: http.MethodGet, path: "/metrics"})

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "fieldservice_http_requests_total")
	assert.Contains(t, string(raw), `route="/api/v1/customers`)
}

func TestTenants_AltaYConsultaPorSlug(t *testing.T) {
	s := newTestServer(t, "")

	status, body := s.doJSON(t, call{method: http.MethodPost, path: "/api/v1/tenants", body: map[string]any{
		"name": "Acme Plumbing", "slug": "Acme-Plumbing", "currency": "usd",
	}})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "acme-plumbing", body["slug"])
	assert.Equal(t, "USD", body["currency"])
	assert.Equal(t, "active", body["status"])

	status, body = s.doJSON(t, call{method: http.MethodGet, path: "/api/v1/tenants/acme-plumbing"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Acme Plumbing", body["name"])

	status, body = s.doJSON(t, call{method: http.MethodPost, path: "/api/v1/tenants", body: map[string]any{
		"name": "Otra", "slug": "acme-plumbing",
	}})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, apphttp.CodeConflict, body["code"])

	status, _ = s.doJSON(t, call{method: http.MethodGet, path: "/api/v1/tenants/no-existe"})
	assert.Equal(t, http.StatusNotFound, status)
}

// Alta, lectura, actualización parcial y borrado de un cliente.
func TestCustomers_CicloCompleto(t *testing.T) {
	s := newTestServer(t, "")

	created := s.createCustomer(t, tenantActive)
	assert.Equal(t, "CUST-000001", created["customerNumber"])
	assert.Equal(t, tenantActive, created["tenantId"])
	addresses, ok := created["addresses"].([]any)
	require.True(t, ok)
	require.Len(t, addresses, 1)
	assert.Equal(t, true, addresses[0].(map[string]any)["isPrimary"])

	id := created["id"].(string)
	status, body := s.doJSON(t, call{method: http.MethodPut, path: "/api/v1/customers/" + id, tenant: tenantActive,
		body: map[string]any{"phone": "555-2002"}})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "555-2002", body["phone"])
	assert.Equal(t, "John", body["firstName"], "los campos ausentes no cambian")

	status, body = s.doJSON(t, call{method: http.MethodGet, path: "/api/v1/customers/" + id, tenant: tenantActive})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "555-2002", body["phone"])

	status, raw := s.do(t, call{method: http.MethodDelete, path: "/api/v1/customers/" + id, tenant: tenantActive})
	assert.Equal(t, http.StatusNoContent, status)
	assert.Empty(t, raw)

	status, body = s.doJSON(t, call{method: http.MethodGet, path: "/api/v1/customers/" + id, tenant: tenantActive})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, apphttp.CodeNotFound, body["code"])
}

func TestCustomers_ValidacionDevuelveCampos(t *testing.T) {
	s := newTestServer(t, "")

	status, body := s.doJSON(t, call{method: http.MethodPost, path: "/api/v1/customers", tenant: tenantActive, body: map[string]any{
		"lastName": "Smith", "email": "no-es-email",
		"address": map[string]any{"city": "Dallas"},
	}})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, apphttp.CodeValidation, body["code"])
	fields := fieldsOf(body)
	assert.Equal(t, "requerido", fields["firstName"])
	assert.Equal(t, "formato inválido", fields["email"])
	assert.Equal(t, "requerido", fields["address.street"])
}

func TestCustomers_CuerpoNoJSON_Retorna400(t *testing.T) {
	s := newTestServer(t, "")

	for _, body := range []string{"{not json", "[1,2,3]"} {
		status, resp := s.doJSON(t, call{method: http.MethodPost, path: "/api/v1/customers", tenant: tenantActive, body: body})
		assert.Equal(t, http.StatusBadRequest, status, body)
		assert.Equal(t, apphttp.CodeInvalidBody, resp["code"], body)
	}
}

// Un registro de otro tenant no existe para el tenant que pregunta.
func TestCustomers_AislamientoEntreTenants(t *testing.T) {
	s := newTestServer(t, "")
	created := s.createCustomer(t, tenantActive)
	id := created["id"].(string)

	for _, c := range []call{
		{method: http.MethodGet, path: "/api/v1/customers/" + id},
		{method: http.MethodPut, path: "/api/v1/customers/" + id, body: map[string]any{"phone": "1"}},
		{method: http.MethodDelete, path: "/api/v1/customers/" + id},
	} {
		c.tenant = tenantOther
		status, _ := s.doJSON(t, c)
		assert.Equal(t, http.StatusNotFound, status, c.method)
	}

	status, body := s.doJSON(t, call{method: http.MethodGet, path: "/api/v1/customers", tenant: tenantOther})
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["items"])
}

func TestCustomers_ListaPaginaYLimiteMaximo(t *testing.T) {
	s := newTestServer(t, "")
	for i := 0; i < 3; i++ {
		s.createCustomer(t, tenantActive)
	}

	status, body := s.doJSON(t, call{method: http.MethodGet, path: "/api/v1/customers?limit=2&offset=1", tenant: tenantActive})
	require.Equal(t, http.StatusOK, status)
	page := body["page"].(map[string]any)
	assert.EqualValues(t, 2, page["limit"])
	assert.EqualValues(t, 1, page["offset"])
	assert.EqualValues(t, 3, page["total"])
	assert.Len(t, body["items"], 2)

	_, body = s.doJSON(t, call{method: http.MethodGet, path: "/api/v1/customers?limit=500", tenant: tenantActive})
	assert.EqualValues(t, 100, body["page"].(map[string]any)["limit"])
}

// Un cliente con trabajos no se puede borrar: 409.
func TestCustomers_BorradoConTrabajos_Retorna409(t *testing.T) {
	s := newTestServer(t, "")
	customer := s.createCustomer(t, tenantActive)
	id := customer["id"].(string)

	status, body := s.doJSON(t, call{method: http.MethodPost, path: "/api/v1/jobs", tenant: tenantActive, body: map[string]any{
		"title": "Fix leak", "customerId": id,
	}})
	require.Equal(t, http.StatusCreated, status, body)

	status, body = s.doJSON(t, call{method: http.MethodDelete, path: "/api/v1/customers/" + id, tenant: tenantActive})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, apphttp.CodeConflict, body["code"])
}

func TestAppointments_CrearYFiltrar(t *testing.T) {
	s := newTestServer(t, "")
	customer := s.createCustomer(t, tenantActive)

	status, body := s.doJSON(t, call{method: http.MethodPost, path: "/api/v1/appointments", tenant: tenantActive, body: map[string]any{
		"title": "Inspection", "customerId": customer["id"], "scheduledStart": "2030-05-01T09:00:00Z", "duration": 90,
	}})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "2030-05-01T10:30:00Z", body["scheduledEnd"])
	assert.Equal(t, "SCHEDULED", body["status"])

	status, body = s.doJSON(t, call{method: http.MethodGet,
		path: "/api/v1/appointments?status=scheduled&from=2030-05-01&to=2030-05-02", tenant: tenantActive})
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"], 1)

	_, body = s.doJSON(t, call{method: http.MethodGet, path: "/api/v1/appointments?from=2030-06-01", tenant: tenantActive})
	assert.Empty(t, body["items"])
}

func TestAppointments_FiltroDeFechaInvalido_Retorna400(t *testing.T) {
	s := newTestServer(t, "")

	status, body := s.doJSON(t, call{method: http.MethodGet, path: "/api/v1/appointments?from=ayer&to=manana", tenant: tenantActive})

	assert.Equal(t, http.StatusBadRequest, status)
	fields := fieldsOf(body)
	assert.Equal(t, "formato inválido", fields["from"])
	assert.Equal(t, "formato inválido", fields["to"])
}

func TestAppointments_ClienteDeOtroTenant_Retorna404(t *testing.T) {
	s := newTestServer(t, "")
	foreign := s.createCustomer(t, tenantOther)

	status, body := s.doJSON(t, call{method: http.MethodPost, path: "/api/v1/appointments", tenant: tenantActive, body: map[string]any{
		"title": "Inspection", "customerId": foreign["id"], "scheduledStart": "2030-05-01T09:00:00Z",
	}})

	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body["message"], "cliente")
}

// DELETE de un trabajo lo cancela; sigue existiendo.
func TestJobs_BorradoCancela(t *testing.T) {
	s := newTestServer(t, "")
	customer := s.createCustomer(t, tenantActive)

	status, job := s.doJSON(t, call{method: http.MethodPost, path: "/api/v1/jobs", tenant: tenantActive, body: map[string]any{
		"title": "Install heater", "customerId": customer["id"], "priority": "high",
	}})
	require.Equal(t, http.StatusCreated, status, job)
	assert.Equal(t, "JOB-000001", job["jobNumber"])
	assert.Equal(t, "HIGH", job["priority"])

	id := job["id"].(string)
	status, _ = s.doJSON(t, call{method: http.MethodDelete, path: "/api/v1/jobs/" + id, tenant: tenantActive})
	assert.Equal(t, http.StatusNoContent, status)

	status, job = s.doJSON(t, call{method: http.MethodGet, path: "/api/v1/jobs/" + id, tenant: tenantActive})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "CANCELLED", job["status"])

	_, list := s.doJSON(t, call{method: http.MethodGet, path: "/api/v1/jobs?status=cancelled", tenant: tenantActive})
	assert.Len(t, list["items"], 1)
}

func TestInvoices_TotalesYPDF(t *testing.T) {
	s := newTestServer(t, "")
	customer := s.createCustomer(t, tenantActive)

	status, inv := s.doJSON(t, call{method: http.MethodPost, path: "/api/v1/invoices", tenant: tenantActive, body: map[string]any{
		"customerId": customer["id"], "taxRate": 8.25, "issueDate": "2030-05-01",
		"lineItems": []any{
			map[string]any{"description": "Labor", "quantity": 2, "unitPrice": 85},
			map[string]any{"description": "Parts", "quantity": 1, "unitPrice": "24.99"},
		},
	}})
	require.Equal(t, http.StatusCreated, status, inv)
	assert.Equal(t, "INV-000001", inv["invoiceNumber"])
	assert.Equal(t, "194.99", inv["subtotal"])
	assert.Equal(t, "16.09", inv["taxTotal"])
	assert.Equal(t, "211.08", inv["total"])

	id := inv["id"].(string)
	status, raw := s.do(t, call{method: http.MethodGet, path: "/api/v1/invoices/" + id + "/pdf", tenant: tenantActive})
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))

	status, _ = s.doJSON(t, call{method: http.MethodDelete, path: "/api/v1/invoices/" + id, tenant: tenantActive})
	assert.Equal(t, http.StatusNoContent, status)

	status, body := s.doJSON(t, call{method: http.MethodPut, path: "/api/v1/invoices/" + id, tenant: tenantActive,
		body: map[string]any{"notes": "tarde"}})
	assert.Equal(t, http.StatusConflict, status, "una factura anulada no se modifica")
	assert.Equal(t, apphttp.CodeConflict, body["code"])
}

func TestInvoices_LineaConCantidadCero_Retorna400(t *testing.T) {
	s := newTestServer(t, "")
	customer := s.createCustomer(t, tenantActive)

	status, body := s.doJSON(t, call{method: http.MethodPost, path: "/api/v1/invoices", tenant: tenantActive, body: map[string]any{
		"customerId": customer["id"],
		"lineItems":  []any{map[string]any{"description": "Labor", "quantity": 0, "unitPrice": 85}},
	}})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "fuera de rango", fieldsOf(body)["lineItems[0].quantity"])
}

// Usuario creado por la API, login con JWT y atribución del autor en un trabajo.
func TestUsersLoginYAtribucion(t *testing.T) {
	s := newTestServer(t, "")

	status, user := s.doJSON(t, call{method: http.MethodPost, path: "/api/v1/users", tenant: tenantActive, body: map[string]any{
		"email": "Ana@Demo.io", "password": "password-123", "name": "Ana", "role": "DISPATCHER",
	}})
	require.Equal(t, http.StatusCreated, status, user)
	assert.Equal(t, "ana@demo.io", user["email"])
	assert.Equal(t, "dispatcher", user["role"])
	assert.NotContains(t, user, "password")
	userID := user["id"].(string)

	status, _ = s.doJSON(t, call{method: http.MethodGet, path: "/api/v1/users/" + userID, tenant: tenantActive})
	assert.Equal(t, http.StatusOK, status)

	status, body := s.doJSON(t, call{method: http.MethodPost, path: "/api/v1/auth/login", tenant: tenantActive,
		body: map[string]any{"email": "ana@demo.io", "password": "incorrecta"}})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, apphttp.CodeUnauthorized, body["code"])

	status, login := s.doJSON(t, call{method: http.MethodPost, path: "/api/v1/auth/login", tenant: tenantActive,
		body: map[string]any{"email": "ana@demo.io", "password": "password-123"}})
	require.Equal(t, http.StatusOK, status, login)
	token := login["token"].(string)
	require.NotEmpty(t, token)

	customer := s.createCustomer(t, tenantActive)
	status, job := s.doJSON(t, call{method: http.MethodPost, path: "/api/v1/jobs", tenant: tenantActive,
		headers: map[string]string{"Authorization": "Bearer " + token},
		body:    map[string]any{"title": "Fix leak", "customerId": customer["id"]}})
	require.Equal(t, http.StatusCreated, status, job)
	assert.Equal(t, userID, job["createdById"])

	// El mismo usuario por X-User-ID; un ID ajeno se ignora sin fallar.
	status, job = s.doJSON(t, call{method: http.MethodPost, path: "/api/v1/jobs", tenant: tenantActive,
		headers: map[string]string{"X-User-ID": userID},
		body:    map[string]any{"title": "Fix leak", "customerId": customer["id"]}})
	require.Equal(t, http.StatusCreated, status, job)
	assert.Equal(t, userID, job["createdById"])

	status, job = s.doJSON(t, call{method: http.MethodPost, path: "/api/v1/jobs", tenant: tenantActive,
		headers: map[string]string{"X-User-ID": "desconocido"},
		body:    map[string]any{"title": "Fix leak", "customerId": customer["id"]}})
	require.Equal(t, http.StatusCreated, status, job)
	assert.NotContains(t, job, "createdById")
}

func TestChat_RespuestaYErroresDelProveedor(t *testing.T) {
	s := newTestServer(t, "")

	status, body := s.doJSON(t, call{method: http.MethodPost, path: "/api/v1/chat", tenant: tenantActive,
		body: map[string]any{"message": "¿Cuándo llega el técnico?"}})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "hola", body["reply"])
	assert.NotEmpty(t, body["conversationId"])

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"timeout", domain.ErrTimeout, http.StatusGatewayTimeout, apphttp.CodeTimeout},
		{"upstream", domain.ErrUpstream, http.StatusBadGateway, apphttp.CodeUpstream},
		{"error desconocido", errors.New("boom"), http.StatusBadGateway, apphttp.CodeUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.llm.err = tt.err
			status, body := s.doJSON(t, call{method: http.MethodPost, path: "/api/v1/chat", tenant: tenantActive,
				body: map[string]any{"message": "hola"}})
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body["code"])
		})
	}

	s.llm.err = nil
	status, body = s.doJSON(t, call{method: http.MethodPost, path: "/api/v1/chat", tenant: tenantActive,
		body: map[string]any{"message": "  "}})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "requerido", fieldsOf(body)["message"])
}

func TestSeed_CreaDatosDeDemostracion(t *testing.T) {
	s := newTestServer(t, testAdminKey)

	status, body := s.doJSON(t, call{method: http.MethodPost, path: "/api/v1/seed", tenant: tenantActive,
		headers: map[string]string{"X-Admin-Key": testAdminKey}})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, []any{"tech@demo.local", "CUST-000001", "JOB-000001", "INV-000001"}, body["applied"])

	_, list := s.doJSON(t, call{method: http.MethodGet, path: "/api/v1/customers", tenant: tenantActive})
	assert.Len(t, list["items"], 1)
}
