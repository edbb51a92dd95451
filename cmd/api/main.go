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

	"github.com/loop2cod/hs-accounts/internal/application/auth"
	"github.com/loop2cod/hs-accounts/internal/application/billing"
	"github.com/loop2cod/hs-accounts/internal/application/reports"
	infraexcel "github.com/loop2cod/hs-accounts/internal/infrastructure/excel"
	infrapdf "github.com/loop2cod/hs-accounts/internal/infrastructure/pdf"
	"github.com/loop2cod/hs-accounts/internal/infrastructure/postgres"
	httpRouter "github.com/loop2cod/hs-accounts/internal/interfaces/http"
	"github.com/loop2cod/hs-accounts/pkg/config"
	"github.com/loop2cod/hs-accounts/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	customerUC := billing.NewCustomerUseCase(customerRepo, reportRepo)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, customerRepo, invoiceRepo)
	paymentUC := billing.NewPaymentUseCase(paymentRepo, customerRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(infrapdf.Business{
		Name:    cfg.Business.Name,
		Address: cfg.Business.Address,
		Phone:   cfg.Business.Phone,
		GSTIN:   cfg.Business.GSTIN,
	})
	pdfUC := billing.NewPDFUseCase(invoiceRepo, customerRepo, pdfGenerator)

	reportUC := reports.NewUseCase(customerRepo, reportRepo)
	dashboardUC := reports.NewDashboardUseCase(customerRepo, reportRepo, reportUC)
	exportUC := reports.NewExportUseCase(customerRepo, invoiceRepo, paymentRepo, reportUC, infraexcel.NewExporter())

	pinHash := cfg.Auth.PinHash
	if pinHash == "" && cfg.Auth.Pin != "" {
		pinHash, err = auth.HashPin(cfg.Auth.Pin)
		if err != nil {
			log.Fatal().Err(err).Msg("hash PIN")
		}
	}
	authUC, err := auth.New(pinHash, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("auth configuration")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CustomerUC:  customerUC,
		InvoiceUC:   invoiceUC,
		PDFUC:       pdfUC,
		PaymentUC:   paymentUC,
		ReportUC:    reportUC,
		DashboardUC: dashboardUC,
		ExportUC:    exportUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
