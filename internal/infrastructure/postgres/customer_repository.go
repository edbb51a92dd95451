package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/loop2cod/hs-accounts/internal/domain"
	"github.com/loop2cod/hs-accounts/internal/domain/entity"
	"github.com/loop2cod/hs-accounts/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implements CustomerRepository (usable with pool or tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository builds the adapter. Pass pool or tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, name, shop_name, phone, address, route_weekday, route_order,
	gstin, opening_balance, status, created_at, updated_at`

// Create persists a new customer.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, shop_name, phone, address, route_weekday, route_order, gstin, opening_balance, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.ShopName, c.Phone, nullIfEmpty(c.Address), c.RouteWeekday, c.RouteOrder,
		nullIfEmpty(c.GSTIN), c.OpeningBalance, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID returns one customer (any status) or nil.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// GetByPhone returns the active customer with that phone, or nil.
func (r *CustomerRepo) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE phone = $1 AND status = $2`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, phone, entity.StatusActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by phone: %w", err)
	}
	return c, nil
}

// List returns customers sorted by route weekday, route order, name.
func (r *CustomerRepo) List(ctx context.Context, filter repository.CustomerFilter) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE 1=1`
	args := []any{}
	if !filter.IncludeDeleted {
		args = append(args, entity.StatusActive)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.RouteWeekday != nil {
		args = append(args, *filter.RouteWeekday)
		query += fmt.Sprintf(" AND route_weekday = $%d", len(args))
	}
	query += " ORDER BY route_weekday, route_order NULLS LAST, name"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update rewrites the editable fields.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, shop_name = $3, phone = $4, address = $5, route_weekday = $6,
		    route_order = $7, gstin = $8, opening_balance = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.ShopName, c.Phone, nullIfEmpty(c.Address), c.RouteWeekday,
		c.RouteOrder, nullIfEmpty(c.GSTIN), c.OpeningBalance, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// SoftDelete flips the status to deleted.
func (r *CustomerRepo) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE customers SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, entity.StatusDeleted)
	if err != nil {
		return fmt.Errorf("soft delete customer: %w", err)
	}
	return nil
}

// CountActive counts non-deleted customers.
func (r *CustomerRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE status = $1`, entity.StatusActive).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var address, gstin *string
	if err := row.Scan(
		&c.ID, &c.Name, &c.ShopName, &c.Phone, &address, &c.RouteWeekday, &c.RouteOrder,
		&gstin, &c.OpeningBalance, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	c.Address = derefStr(address)
	c.GSTIN = derefStr(gstin)
	return &c, nil
}
