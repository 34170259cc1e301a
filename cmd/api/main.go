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

	"github.com/jhoicas/pos-paraguay/internal/application/auth"
	"github.com/jhoicas/pos-paraguay/internal/application/cashbox"
	"github.com/jhoicas/pos-paraguay/internal/application/commissions"
	"github.com/jhoicas/pos-paraguay/internal/application/creditnotes"
	"github.com/jhoicas/pos-paraguay/internal/application/fiscal"
	"github.com/jhoicas/pos-paraguay/internal/application/inventory"
	"github.com/jhoicas/pos-paraguay/internal/application/numbering"
	"github.com/jhoicas/pos-paraguay/internal/application/ports"
	"github.com/jhoicas/pos-paraguay/internal/application/purchasing"
	"github.com/jhoicas/pos-paraguay/internal/application/receivables"
	"github.com/jhoicas/pos-paraguay/internal/application/registry"
	"github.com/jhoicas/pos-paraguay/internal/application/sales"
	"github.com/jhoicas/pos-paraguay/internal/infrastructure/geo"
	"github.com/jhoicas/pos-paraguay/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/pos-paraguay/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-paraguay/internal/infrastructure/postgres"
	infrasifen "github.com/jhoicas/pos-paraguay/internal/infrastructure/sifen"
	httpRouter "github.com/jhoicas/pos-paraguay/internal/interfaces/http"
	"github.com/jhoicas/pos-paraguay/pkg/config"
	"github.com/jhoicas/pos-paraguay/pkg/logger"
)

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
		Str("storage", cfg.Storage.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Backend de persistencia: PostgreSQL en operación normal, memoria
	// para desarrollo y demos.
	var txRunner ports.TxRunner
	switch cfg.Storage.Backend {
	case "memory":
		txRunner = memory.NewTxRunner(memory.NewStore())
		log.Warn().Msg("backend en memoria: los datos no persisten")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner = postgres.NewTxRunner(pool)
	}

	geoRegistry, err := geo.NewRegistry(cfg.Storage.GeoFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.Storage.GeoFile).Msg("cargar ubicaciones")
	}

	// Gateway SIFEN: simulado si no hay URL configurada.
	var gateway ports.FiscalGateway
	if cfg.SIFEN.BaseURL == "" {
		gateway = infrasifen.NewMockGateway()
		log.Warn().Msg("gateway SIFEN simulado: respuestas aleatorias")
	} else {
		gateway = infrasifen.NewHTTPGateway(cfg.SIFEN)
	}

	signer, err := infrasifen.NewDigitalSignatureService(cfg.SIFEN.CertPath, cfg.SIFEN.CertKeyPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar certificado de firma")
	}

	registryUC := registry.New(txRunner)
	inventoryUC := inventory.New(txRunner)
	cashboxUC := cashbox.New(txRunner)
	numberingUC := numbering.New(txRunner)
	purchasingUC := purchasing.New(txRunner)
	salesUC := sales.New(txRunner)
	receivablesUC := receivables.New(txRunner)
	commissionsUC := commissions.New(txRunner)
	creditNotesUC := creditnotes.New(txRunner)
	fiscalUC := fiscal.New(
		txRunner,
		infrasifen.NewXMLBuilderService(),
		signer,
		gateway,
		infrapdf.NewKudeGenerator(),
		cfg.SIFEN.MaxAttempts,
		log.Zerolog(),
	)
	authUC := auth.New(txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegistryUC:    registryUC,
		InventoryUC:   inventoryUC,
		CashboxUC:     cashboxUC,
		NumberingUC:   numberingUC,
		PurchasingUC:  purchasingUC,
		SalesUC:       salesUC,
		ReceivablesUC: receivablesUC,
		CommissionsUC: commissionsUC,
		CreditNotesUC: creditNotesUC,
		FiscalUC:      fiscalUC,
		AuthUC:        authUC,
		Geo:           geoRegistry,
		JWTSecret:     cfg.JWT.Secret,
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
