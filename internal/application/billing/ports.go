package billing

import (
	"context"

	"github.com/loop2cod/hs-accounts/internal/domain/entity"
	"github.com/loop2cod/hs-accounts/internal/domain/repository"
)

// TxRunner runs a callback with repositories bound to one storage
// transaction. Invoice creation allocates the sequence number and persists
// header plus lines atomically; update rewrites header and lines atomically.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		counterRepo repository.CounterRepository,
	) error) error
}

// InvoicePDFGenerator renders the printable invoice.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, customer *entity.Customer) ([]byte, error)
}
