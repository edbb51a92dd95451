package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest body for POST /api/customers. OpeningBalance is the
// signed carry-over from the paper books; omitted means zero.
type CreateCustomerRequest struct {
	Name           string           `json:"name"`
	ShopName       string           `json:"shop_name"`
	Phone          string           `json:"phone"`
	Address        string           `json:"address,omitempty"`
	RouteWeekday   int              `json:"route_weekday"`
	RouteOrder     *int             `json:"route_order,omitempty"`
	GSTIN          string           `json:"gstin,omitempty"`
	OpeningBalance *decimal.Decimal `json:"opening_balance,omitempty"`
}

// UpdateCustomerRequest body for PUT /api/customers/:id. Same shape as
// create; the whole record is rewritten, as the edit form submits it.
type UpdateCustomerRequest = CreateCustomerRequest

// CustomerResponse is a customer in responses.
type CustomerResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	ShopName       string          `json:"shop_name"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address,omitempty"`
	RouteWeekday   int             `json:"route_weekday"`
	RouteOrder     *int            `json:"route_order,omitempty"`
	GSTIN          string          `json:"gstin,omitempty"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Status         string          `json:"status"`
}

// CustomerDetailResponse is the customer page payload: the record plus its
// computed balance block.
type CustomerDetailResponse struct {
	Customer CustomerResponse `json:"customer"`
	Balance  BalanceResponse  `json:"balance"`
}

// BalanceResponse is the outstanding-balance block for one customer.
// Due includes the opening balance.
type BalanceResponse struct {
	Due     decimal.Decimal `json:"due"`
	Paid    decimal.Decimal `json:"paid"`
	Balance decimal.Decimal `json:"balance"`
}
