package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldservice-api/internal/application/auth"
	"github.com/jhoicas/fieldservice-api/internal/application/ports"
	"github.com/jhoicas/fieldservice-api/internal/application/usecase"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/kv"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/fieldservice-api/internal/interfaces/http"
	"github.com/jhoicas/fieldservice-api/pkg/logger"
)

const (
	tenantActive   = "t-active"
	tenantInactive = "t-inactive"
	tenantOther    = "t-other"
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testAdminKey   = "admin-key"
)

type fakeLLM struct {
	reply string
	err   error
}

func (f *fakeLLM) Chat(_ context.Context, _, _ string, _ []ports.ChatMessage, _ string) (string, error) {
	return f.reply, f.err
}

type fakePDF struct{}

func (fakePDF) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice, _ *entity.Tenant, _ *entity.Customer) ([]byte, error) {
	return []byte("%PDF-" + inv.InvoiceNumber), nil
}

type testServer struct {
	app   *fiber.App
	store *memory.Store
	llm   *fakeLLM
}

// newTestServer arma la API completa sobre el almacenamiento en memoria.
func newTestServer(t *testing.T, adminKey string) *testServer {
	t.Helper()
	store := memory.NewStore()
	now := time.Now().UTC()
	for id, status := range map[string]string{
		tenantActive:   entity.TenantActive,
		tenantInactive: entity.TenantInactive,
		tenantOther:    entity.TenantActive,
	} {
		require.NoError(t, store.Tenants().Create(context.Background(), &entity.Tenant{
			ID: id, Name: id, Slug: id, Status: status,
			Locale: "en-US", Timezone: "UTC", Currency: "USD", CreatedAt: now, UpdatedAt: now,
		}))
	}

	repos := store.Repos()
	llm := &fakeLLM{reply: "hola"}
	users := usecase.NewUserUseCase(store.Users())
	customers := usecase.NewCustomerUseCase(store, repos)
	appointments := usecase.NewAppointmentUseCase(store, repos)
	jobs := usecase.NewJobUseCase(store, repos)
	invoices := usecase.NewInvoiceUseCase(store, repos, store.Tenants(), fakePDF{})
	cache := kv.NewMemoryKV()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		TenantUC:      usecase.NewTenantUseCase(store.Tenants(), cache, time.Minute, logger.Nop()),
		UserUC:        users,
		CustomerUC:    customers,
		AppointmentUC: appointments,
		JobUC:         jobs,
		InvoiceUC:     invoices,
		ChatUC:        usecase.NewChatUseCase(llm, cache, time.Second, time.Minute, logger.Nop()),
		AdminUC:       usecase.NewAdminUseCase(nil, users, customers, appointments, jobs, invoices),
		AuthUC:        auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: "test"}),
		Metrics:       apphttp.NewMetrics(),
		Log:           logger.Nop(),
		TenantHeader:  apphttp.DefaultTenantHeader,
		AdminAPIKey:   adminKey,
		ServiceName:   "fieldservice-api",
	})
	return &testServer{app: app, store: store, llm: llm}
}

type call struct {
	method  string
	path    string
	tenant  string
	body    any
	headers map[string]string
}

// do lanza la petición y devuelve status y cuerpo crudo.
func (s *testServer) do(t *testing.T, c call) (int, []byte) {
	t.Helper()
	var rd io.Reader
	switch b := c.body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(c.method, c.path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tenant != "" {
		req.Header.Set("X-Tenant-ID", c.tenant)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

// doJSON como do, decodificando el cuerpo en un mapa.
func (s *testServer) doJSON(t *testing.T, c call) (int, map[string]any) {
	t.Helper()
	status, raw := s.do(t, c)
	var body map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	}
	return status, body
}

func (s *testServer) createCustomer(t *testing.T, tenant string) map[string]any {
	t.Helper()
	status, body := s.doJSON(t, call{method: http.MethodPost, path: "/api/v1/customers", tenant: tenant, body: map[string]any{
		"firstName": "John", "lastName": "Smith", "email": "john@x.com",
		"address": map[string]any{"street": "1 Elm St", "city": "Dallas"},
	}})
	require.Equal(t, http.StatusCreated, status, body)
	return body
}

func fieldsOf(body map[string]any) map[string]string {
	out := map[string]string{}
	list, _ := body["fields"].([]any)
	for _, f := range list {
		m := f.(map[string]any)
		out[m["field"].(string)] = m["reason"].(string)
	}
	return out
}

// newBareApp monta mws delante de un handler que devuelve el tenant y el usuario resueltos.
func newBareApp(mws ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append(mws, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"tenant": apphttp.GetTenantID(c), "user": apphttp.GetUserID(c)})
	})
	app.Get("/probe", handlers...)
	return app
}

func doBare(t *testing.T, app *fiber.App, headers map[string]string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}
