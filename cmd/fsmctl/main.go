// Command fsmctl tareas administrativas contra la base de datos: migraciones y datos de demostración.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jhoicas/fieldservice-api/internal/application/usecase"
	"github.com/jhoicas/fieldservice-api/internal/domain"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/fieldservice-api/pkg/config"
	"github.com/jhoicas/fieldservice-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "fsmctl",
		Short:         "Administración de fieldservice-api",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCommand(), newSeedCommand())
	return root
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones SQL pendientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAdmin(cmd.Context(), func(ctx context.Context, admin *usecase.AdminUseCase, _ *postgres.TenantRepo) error {
				out, err := admin.Migrate(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, out)
			})
		},
	}
}

func newSeedCommand() *cobra.Command {
	var tenantID string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Crea datos de demostración en un tenant existente",
		Long: `Crea un técnico, un cliente con dirección, una cita, un trabajo y una factura
pasando por los mismos casos de uso que la API.

Ejemplo: fsmctl seed --tenant 7f1c...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAdmin(cmd.Context(), func(ctx context.Context, admin *usecase.AdminUseCase, tenants *postgres.TenantRepo) error {
				t, err := tenants.GetByID(ctx, tenantID)
				if err != nil {
					return err
				}
				if t == nil {
					return fmt.Errorf("%w: %s", domain.ErrUnknownTenant, tenantID)
				}
				out, err := admin.Seed(ctx, tenantID)
				if err != nil {
					return err
				}
				return printJSON(cmd, out)
			})
		},
	}
	cmd.Flags().StringVar(&tenantID, "tenant", "", "ID del tenant a poblar")
	_ = cmd.MarkFlagRequired("tenant")
	return cmd
}

// withAdmin abre PostgreSQL con la configuración del entorno y arma el caso de uso administrativo.
func withAdmin(ctx context.Context, fn func(context.Context, *usecase.AdminUseCase, *postgres.TenantRepo) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	runner := postgres.NewTxRunner(pool)
	repos := postgres.Repos(pool)
	users := postgres.NewUserRepository(pool)
	tenants := postgres.NewTenantRepository(pool)

	userUC := usecase.NewUserUseCase(users)
	admin := usecase.NewAdminUseCase(
		postgres.NewMigrator(pool, log),
		userUC,
		usecase.NewCustomerUseCase(runner, repos),
		usecase.NewAppointmentUseCase(runner, repos),
		usecase.NewJobUseCase(runner, repos),
		usecase.NewInvoiceUseCase(runner, repos, tenants, pdf.NewMarotoPDFGenerator()),
	)
	return fn(ctx, admin, tenants)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
