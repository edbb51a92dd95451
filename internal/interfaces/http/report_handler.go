package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/loop2cod/hs-accounts/internal/application/dto"
	"github.com/loop2cod/hs-accounts/internal/application/reports"
)

// ReportHandler handles the balance, due & balance, ledger and dashboard
// endpoints.
type ReportHandler struct {
	uc        *reports.UseCase
	dashboard *reports.DashboardUseCase
}

// NewReportHandler builds the handler.
func NewReportHandler(uc *reports.UseCase, dashboard *reports.DashboardUseCase) *ReportHandler {
	return &ReportHandler{uc: uc, dashboard: dashboard}
}

// CustomerBalance GET /api/reports/balance/:customerId
func (h *ReportHandler) CustomerBalance(c *fiber.Ctx) error {
	balance, err := h.uc.CustomerBalance(c.Context(), c.Params("customerId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(balance)
}

// DueBalance GET /api/reports/due-balance?weekday=1
func (h *ReportHandler) DueBalance(c *fiber.Ctx) error {
	var weekday *int
	if raw := c.Query("weekday"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "weekday must be a number"})
		}
		weekday = &n
	}
	rows, err := h.uc.DueBalanceReport(c.Context(), weekday)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rows)
}

// Ledger GET /api/reports/ledger?customer_id=...
func (h *ReportHandler) Ledger(c *fiber.Ctx) error {
	entries, err := h.uc.Ledger(c.Context(), c.Query("customer_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(entries)
}

// Dashboard GET /api/dashboard
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	summary, err := h.dashboard.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
