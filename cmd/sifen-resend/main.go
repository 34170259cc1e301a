// Reenvía al SIFEN los documentos electrónicos pendientes o con error,
// acotado por SIFEN_MAX_ATTEMPTS. Pensado para correr desde cron.
package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/pos-paraguay/internal/application/fiscal"
	"github.com/jhoicas/pos-paraguay/internal/application/ports"
	"github.com/jhoicas/pos-paraguay/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-paraguay/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-paraguay/internal/infrastructure/sifen"
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	var gateway ports.FiscalGateway
	if cfg.SIFEN.BaseURL == "" {
		gateway = sifen.NewMockGateway()
		log.Warn().Msg("gateway SIFEN simulado: respuestas aleatorias")
	} else {
		gateway = sifen.NewHTTPGateway(cfg.SIFEN)
	}

	signer, err := sifen.NewDigitalSignatureService(cfg.SIFEN.CertPath, cfg.SIFEN.CertKeyPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar certificado de firma")
	}

	uc := fiscal.New(
		postgres.NewTxRunner(pool),
		sifen.NewXMLBuilderService(),
		signer,
		gateway,
		pdf.NewKudeGenerator(),
		cfg.SIFEN.MaxAttempts,
		log.Zerolog(),
	)

	sent, err := uc.ResendPending(ctx)
	if err != nil {
		log.Error().Err(err).Int("sent", sent).Msg("reenvío de documentos")
		os.Exit(1)
	}
	log.Info().Int("sent", sent).Msg("reenvío de documentos completado")
}
