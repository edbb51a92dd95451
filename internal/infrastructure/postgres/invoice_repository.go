package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/loop2cod/hs-accounts/internal/domain"
	"github.com/loop2cod/hs-accounts/internal/domain/entity"
	"github.com/loop2cod/hs-accounts/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository against invoices + invoice_items.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass pool or tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, customer_id, with_gst, invoice_number, date, shipping_address,
	freight, subtotal, total_gst, total_amount, notes, status, created_at, updated_at`

// Create inserts the invoice header. Lines go through CreateLineItem.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, customer_id, with_gst, invoice_number, date, shipping_address, freight, subtotal, total_gst, total_amount, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.CustomerID, inv.WithGST, inv.InvoiceNumber, inv.Date, nullIfEmpty(inv.ShippingAddress),
		inv.Freight, inv.Subtotal, inv.TotalGST, inv.TotalAmount, nullIfEmpty(inv.Notes),
		inv.Status, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLineItem inserts one line row.
func (r *InvoiceRepo) CreateLineItem(ctx context.Context, item *entity.LineItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, position, description, hsn_code, narration, quantity, unit_price, amount, gst_rate, gst_amount, row_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	var rate, gstAmount, rowTotal any
	if item.GST != nil {
		rate, gstAmount, rowTotal = item.GST.Rate, item.GST.Amount, item.GST.RowTotal
	}
	_, err := r.q.Exec(ctx, query,
		item.ID, item.InvoiceID, item.Position, item.Description, nullIfEmpty(item.HSNCode),
		nullIfEmpty(item.Narration), item.Quantity, item.UnitPrice, item.Amount,
		rate, gstAmount, rowTotal,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// Update rewrites the recomputed header fields, including the GST flag so
// with_gst always agrees with the totals written alongside it. Number and
// customer are never touched.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET with_gst = $2, date = $3, shipping_address = $4, freight = $5,
		    subtotal = $6, total_gst = $7, total_amount = $8, notes = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.WithGST, inv.Date, nullIfEmpty(inv.ShippingAddress), inv.Freight,
		inv.Subtotal, inv.TotalGST, inv.TotalAmount, nullIfEmpty(inv.Notes), inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// ReplaceLineItems swaps the stored lines for a fresh set.
func (r *InvoiceRepo) ReplaceLineItems(ctx context.Context, invoiceID string, items []entity.LineItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	for i := range items {
		if err := r.CreateLineItem(ctx, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

// GetByID returns the invoice with its lines, or nil.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	items, err := r.GetLineItems(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.LineItems = items
	return inv, nil
}

// GetLineItems returns an invoice's lines in position order.
func (r *InvoiceRepo) GetLineItems(ctx context.Context, invoiceID string) ([]entity.LineItem, error) {
	query := `
		SELECT id, invoice_id, position, description, hsn_code, narration, quantity, unit_price, amount, gst_rate, gst_amount, row_total
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY position`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var items []entity.LineItem
	for rows.Next() {
		item, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// List returns invoice headers (no lines), newest first.
func (r *InvoiceRepo) List(ctx context.Context, filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE 1=1`
	args := []any{}
	if !filter.IncludeDeleted {
		args = append(args, entity.StatusActive)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.WithGST != nil {
		args = append(args, *filter.WithGST)
		query += fmt.Sprintf(" AND with_gst = $%d", len(args))
	}
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// SoftDelete flips the status to deleted. The invoice number stays consumed.
func (r *InvoiceRepo) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE invoices SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, entity.StatusDeleted)
	if err != nil {
		return fmt.Errorf("soft delete invoice: %w", err)
	}
	return nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var shipping, notes *string
	if err := row.Scan(
		&inv.ID, &inv.CustomerID, &inv.WithGST, &inv.InvoiceNumber, &inv.Date, &shipping,
		&inv.Freight, &inv.Subtotal, &inv.TotalGST, &inv.TotalAmount, &notes,
		&inv.Status, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	inv.ShippingAddress = derefStr(shipping)
	inv.Notes = derefStr(notes)
	return &inv, nil
}

func scanLineItem(row pgx.Row) (*entity.LineItem, error) {
	var item entity.LineItem
	var hsn, narration *string
	var rate, gstAmount, rowTotal *decimal.Decimal
	if err := row.Scan(
		&item.ID, &item.InvoiceID, &item.Position, &item.Description, &hsn, &narration,
		&item.Quantity, &item.UnitPrice, &item.Amount, &rate, &gstAmount, &rowTotal,
	); err != nil {
		return nil, err
	}
	item.HSNCode = derefStr(hsn)
	item.Narration = derefStr(narration)
	// The three gst columns are NULL together for non-GST invoices.
	if rate != nil && gstAmount != nil && rowTotal != nil {
		item.GST = &entity.LineItemGST{
			Rate:     *rate,
			Amount:   *gstAmount,
			RowTotal: *rowTotal,
		}
	}
	return &item, nil
}
