package billing

import (
	"context"

	"github.com/loop2cod/hs-accounts/internal/domain"
	"github.com/loop2cod/hs-accounts/internal/domain/entity"
	"github.com/loop2cod/hs-accounts/internal/domain/repository"
)

// PDFUseCase renders the printable invoice document.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase builds the use case.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{invoiceRepo: invoiceRepo, customerRepo: customerRepo, generator: generator}
}

// GenerateInvoicePDF loads the invoice with its lines and renders the PDF.
// Soft-deleted invoices can still be printed for the archive. A customer
// deleted after the invoice was issued still resolves for display.
func (uc *PDFUseCase) GenerateInvoicePDF(ctx context.Context, invoiceID string) ([]byte, string, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	if inv.LineItems == nil {
		items, err := uc.invoiceRepo.GetLineItems(ctx, inv.ID)
		if err != nil {
			return nil, "", err
		}
		inv.LineItems = items
	}
	customer, err := uc.customerRepo.GetByID(ctx, inv.CustomerID)
	if err != nil {
		return nil, "", err
	}
	if customer == nil {
		customer = &entity.Customer{} // orphan reference, print with blank buyer block
	}
	pdf, err := uc.generator.GenerateInvoicePDF(ctx, inv, customer)
	if err != nil {
		return nil, "", err
	}
	return pdf, inv.InvoiceNumber + ".pdf", nil
}
