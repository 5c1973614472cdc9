package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/fieldservice-api/internal/application/auth"
	"github.com/jhoicas/fieldservice-api/internal/application/ports"
	"github.com/jhoicas/fieldservice-api/internal/application/usecase"
	"github.com/jhoicas/fieldservice-api/internal/domain/repository"
	infraai "github.com/jhoicas/fieldservice-api/internal/infrastructure/ai"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/kv"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/fieldservice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/fieldservice-api/internal/interfaces/http"
	"github.com/jhoicas/fieldservice-api/pkg/config"
	"github.com/jhoicas/fieldservice-api/pkg/logger"
)

// storage agrupa los puertos de persistencia del driver elegido.
type storage struct {
	runner   repository.TxRunner
	repos    repository.TxRepos
	tenants  repository.TenantRepository
	users    repository.UserRepository
	migrator usecase.SchemaMigrator
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Str("llm", cfg.LLM.Provider).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.close()

	cache, closeCache := openKV(ctx, cfg.Redis, log)
	defer closeCache()

	var llm ports.LLMService
	switch cfg.LLM.Provider {
	case "anthropic":
		llm = infraai.NewAnthropicService(cfg.LLM.AnthropicAPIKey, cfg.LLM.AnthropicModel, cfg.LLM.Timeout())
	default:
		if cfg.LLM.GatewayURL == "" {
			log.Warn().Msg("LLM_GATEWAY_URL vacío: /chat responderá 502")
		}
		llm = infraai.NewGatewayService(cfg.LLM.GatewayURL, cfg.LLM.Timeout(), log)
	}

	tenantUC := usecase.NewTenantUseCase(store.tenants, cache, cfg.Tenant.CacheTTL(), log)
	userUC := usecase.NewUserUseCase(store.users)
	customerUC := usecase.NewCustomerUseCase(store.runner, store.repos)
	appointmentUC := usecase.NewAppointmentUseCase(store.runner, store.repos)
	jobUC := usecase.NewJobUseCase(store.runner, store.repos)
	invoiceUC := usecase.NewInvoiceUseCase(store.runner, store.repos, store.tenants, infrapdf.NewMarotoPDFGenerator())
	chatUC := usecase.NewChatUseCase(llm, cache, cfg.LLM.Timeout(), cfg.LLM.HistoryTTL(), log)
	adminUC := usecase.NewAdminUseCase(store.migrator, userUC, customerUC, appointmentUC, jobUC, invoiceUC)
	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.LLM.Timeout() + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Field Service API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		TenantUC:      tenantUC,
		UserUC:        userUC,
		CustomerUC:    customerUC,
		AppointmentUC: appointmentUC,
		JobUC:         jobUC,
		InvoiceUC:     invoiceUC,
		ChatUC:        chatUC,
		AdminUC:       adminUC,
		AuthUC:        authUC,
		Metrics:       httpRouter.NewMetrics(),
		Log:           log,
		TenantHeader:  cfg.Tenant.Header,
		AdminAPIKey:   cfg.App.AdminAPIKey,
		ServiceName:   cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage abre PostgreSQL o el almacenamiento en memoria según STORE_DRIVER.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.StoreDriver == config.StoreMemory {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		mem := memory.NewStore()
		return &storage{
			runner:  mem,
			repos:   mem.Repos(),
			tenants: mem.Tenants(),
			users:   mem.Users(),
			close:   func() {},
		}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		runner:   postgres.NewTxRunner(pool),
		repos:    postgres.Repos(pool),
		tenants:  postgres.NewTenantRepository(pool),
		users:    postgres.NewUserRepository(pool),
		migrator: postgres.NewMigrator(pool, log),
		close:    pool.Close,
	}, nil
}

// openKV usa Redis si REDIS_ADDR está definido; si no, o si Redis no responde, un KV en memoria.
func openKV(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (ports.KVStore, func()) {
	if cfg.Addr == "" {
		return kv.NewMemoryKV(), func() {}
	}
	client, err := kv.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("Redis no disponible, se usa KV en memoria")
		return kv.NewMemoryKV(), func() {}
	}
	return kv.NewRedisKV(client), func() { _ = client.Close() }
}
