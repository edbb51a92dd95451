package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/loop2cod/hs-accounts/internal/application/reports"
)

// ExportHandler serves the Excel downloads.
type ExportHandler struct {
	uc *reports.ExportUseCase
}

// NewExportHandler builds the handler.
func NewExportHandler(uc *reports.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Export GET /api/export/excel?type=customers&filter=gst&customer_id=...
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	data, filename, err := h.uc.Export(c.Context(), reports.ExportParams{
		Type:       c.Query("type"),
		Filter:     c.Query("filter"),
		CustomerID: c.Query("customer_id"),
	})
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
