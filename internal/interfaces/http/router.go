package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/loop2cod/hs-accounts/internal/application/auth"
	"github.com/loop2cod/hs-accounts/internal/application/billing"
	"github.com/loop2cod/hs-accounts/internal/application/reports"
)

// RouterDeps are the handler dependencies for the router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	CustomerUC  *billing.CustomerUseCase
	InvoiceUC   *billing.InvoiceUseCase
	PDFUC       *billing.PDFUseCase
	PaymentUC   *billing.PaymentUseCase
	ReportUC    *reports.UseCase
	DashboardUC *reports.DashboardUseCase
	ExportUC    *reports.ExportUseCase
	JWTSecret   string
}

// Router registers the API routes. Everything except the health check and
// the PIN login requires a Bearer token.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (public)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Protected routes (Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Invoices
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)

	// Payments
	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments.Post("/", paymentHandler.Create)
	payments.Get("/", paymentHandler.List)
	payments.Put("/:id", paymentHandler.Update)
	payments.Delete("/:id", paymentHandler.Delete)

	// Reports + dashboard
	reportHandler := NewReportHandler(deps.ReportUC, deps.DashboardUC)
	reportsGroup := protected.Group("/reports")
	reportsGroup.Get("/balance/:customerId", reportHandler.CustomerBalance)
	reportsGroup.Get("/due-balance", reportHandler.DueBalance)
	reportsGroup.Get("/ledger", reportHandler.Ledger)
	protected.Get("/dashboard", reportHandler.Dashboard)

	// Excel exports
	exportHandler := NewExportHandler(deps.ExportUC)
	protected.Get("/export/excel", exportHandler.Export)
}
