package repository

import (
	"context"

	"github.com/loop2cod/hs-accounts/internal/domain/entity"
)

// InvoiceFilter narrows List. WithGST nil means both series.
type InvoiceFilter struct {
	WithGST        *bool
	CustomerID     string
	IncludeDeleted bool
}

// InvoiceRepository is the persistence port for Invoice headers and lines.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateLineItem(ctx context.Context, item *entity.LineItem) error
	// Update rewrites the recomputed header fields including the GST flag,
	// which must stay consistent with the totals. The invoice number and
	// customer reference are never touched here.
	Update(ctx context.Context, invoice *entity.Invoice) error
	// ReplaceLineItems deletes the stored lines and inserts the new set.
	ReplaceLineItems(ctx context.Context, invoiceID string, items []entity.LineItem) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetLineItems(ctx context.Context, invoiceID string) ([]entity.LineItem, error)
	List(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, error)
	SoftDelete(ctx context.Context, id string) error
}
