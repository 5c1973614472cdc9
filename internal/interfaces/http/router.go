package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/fieldservice-api/internal/application/auth"
	"github.com/jhoicas/fieldservice-api/internal/application/usecase"
	"github.com/jhoicas/fieldservice-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TenantUC      *usecase.TenantUseCase
	UserUC        *usecase.UserUseCase
	CustomerUC    *usecase.CustomerUseCase
	AppointmentUC *usecase.AppointmentUseCase
	JobUC         *usecase.JobUseCase
	InvoiceUC     *usecase.InvoiceUseCase
	ChatUC        *usecase.ChatUseCase
	AdminUC       *usecase.AdminUseCase
	AuthUC        *auth.AuthUseCase
	Metrics       *Metrics
	Log           *logger.Logger
	TenantHeader  string
	AdminAPIKey   string
	ServiceName   string
}

// Router registra middlewares globales y las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	app.Use(requestid.New())
	app.Use(RequestLogger(log))
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api/v1")

	// Onboarding (público)
	tenantHandler := NewTenantHandler(deps.TenantUC)
	api.Post("/tenants", tenantHandler.Create)
	api.Get("/tenants/:slug", tenantHandler.GetBySlug)

	tenantScope := []fiber.Handler{TenantMiddleware(deps.TenantHeader), RequireKnownTenant(deps.TenantUC)}

	// Auth (tenant por cabecera, sin usuario)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", append(tenantScope, authHandler.Login)...)

	// Migraciones: tenant por cabecera sin consultar el directorio, que puede no existir todavía.
	adminHandler := NewAdminHandler(deps.AdminUC)
	adminKey := RequireAdminKey(deps.AdminAPIKey)
	api.Post("/migrate", TenantMiddleware(deps.TenantHeader), adminKey, adminHandler.Migrate)

	// Rutas de dominio: tenant obligatorio, autor opcional
	scoped := api.Group("/", append(tenantScope, UserResolver(deps.AuthUC))...)

	customers := scoped.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	appointments := scoped.Group("/appointments")
	appointmentHandler := NewAppointmentHandler(deps.AppointmentUC)
	appointments.Post("/", appointmentHandler.Create)
	appointments.Get("/", appointmentHandler.List)
	appointments.Get("/:id", appointmentHandler.GetByID)
	appointments.Put("/:id", appointmentHandler.Update)
	appointments.Delete("/:id", appointmentHandler.Delete)

	jobs := scoped.Group("/jobs")
	jobHandler := NewJobHandler(deps.JobUC)
	jobs.Post("/", jobHandler.Create)
	jobs.Get("/", jobHandler.List)
	jobs.Get("/:id", jobHandler.GetByID)
	jobs.Put("/:id", jobHandler.Update)
	jobs.Delete("/:id", jobHandler.Delete)

	invoices := scoped.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)

	users := scoped.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)

	chatHandler := NewChatHandler(deps.ChatUC)
	scoped.Post("/chat", chatHandler.Send)

	scoped.Post("/seed", adminKey, adminHandler.Seed)
}
