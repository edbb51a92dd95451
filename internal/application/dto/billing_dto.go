package dto

import "github.com/shopspring/decimal"

// LineItemRequest is one row of the invoice form. Rows that are entirely
// empty (blank description, zero quantity, zero price) are dropped, not
// rejected. GSTRate is ignored on non-GST invoices.
type LineItemRequest struct {
	Description string           `json:"description"`
	HSNCode     string           `json:"hsn_code,omitempty"`
	Narration   string           `json:"narration,omitempty"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	GSTRate     *decimal.Decimal `json:"gst_rate,omitempty"`
}

// CreateInvoiceRequest body for POST /api/invoices. Date format 2006-01-02;
// empty means today. Freight omitted means zero.
type CreateInvoiceRequest struct {
	CustomerID      string            `json:"customer_id"`
	WithGST         bool              `json:"with_gst"`
	Date            string            `json:"date,omitempty"`
	ShippingAddress string            `json:"shipping_address,omitempty"`
	Freight         *decimal.Decimal  `json:"freight,omitempty"`
	LineItems       []LineItemRequest `json:"line_items"`
	Notes           string            `json:"notes,omitempty"`
}

// UpdateInvoiceRequest body for PUT /api/invoices/:id. CustomerID must match
// the stored invoice — the customer reference is immutable after creation.
type UpdateInvoiceRequest = CreateInvoiceRequest

// LineItemResponse is one computed invoice line. The GST fields are present
// exactly when the invoice carries GST.
type LineItemResponse struct {
	Description string           `json:"description"`
	HSNCode     string           `json:"hsn_code,omitempty"`
	Narration   string           `json:"narration,omitempty"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	Amount      decimal.Decimal  `json:"amount"`
	GSTRate     *decimal.Decimal `json:"gst_rate,omitempty"`
	GSTAmount   *decimal.Decimal `json:"gst_amount,omitempty"`
	RowTotal    *decimal.Decimal `json:"row_total,omitempty"`
}

// InvoiceResponse is a full invoice for detail and list endpoints.
type InvoiceResponse struct {
	ID              string             `json:"id"`
	CustomerID      string             `json:"customer_id"`
	CustomerName    string             `json:"customer_name,omitempty"`
	ShopName        string             `json:"shop_name,omitempty"`
	WithGST         bool               `json:"with_gst"`
	InvoiceNumber   string             `json:"invoice_number"`
	Date            string             `json:"date"`
	ShippingAddress string             `json:"shipping_address,omitempty"`
	Freight         decimal.Decimal    `json:"freight"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	TotalGST        *decimal.Decimal   `json:"total_gst,omitempty"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	Notes           string             `json:"notes,omitempty"`
	Status          string             `json:"status"`
	LineItems       []LineItemResponse `json:"line_items"`
}

// CreatePaymentRequest body for POST /api/payments.
type CreatePaymentRequest struct {
	CustomerID  string          `json:"customer_id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date,omitempty"`
	PaymentMode string          `json:"payment_mode,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// UpdatePaymentRequest body for PUT /api/payments/:id.
type UpdatePaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date,omitempty"`
	PaymentMode string          `json:"payment_mode,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// PaymentResponse is a payment in responses.
type PaymentResponse struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	PaymentMode  string          `json:"payment_mode"`
	Reference    string          `json:"reference,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// PaymentListResponse is the paginated payment list.
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
	PageResponse
}
