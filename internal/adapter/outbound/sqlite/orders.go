package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Sentinel-Gate/storefront/internal/domain/order"
)

const orderColumns = `id, user_id, items_json, shipping_json, payment_method, items_price, tax_price, shipping_price, total_price, is_paid, paid_at, is_delivered, delivered_at, created_at`

// CreateOrder inserts one order. Items and the shipping address are stored
// as JSON documents.
func (s *Store) CreateOrder(ctx context.Context, o *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	shipping, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return fmt.Errorf("marshal shipping address: %w", err)
	}
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO orders (`+orderColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.UserID, string(items), string(shipping), o.PaymentMethod,
		o.ItemsPrice, o.TaxPrice, o.ShippingPrice, o.TotalPrice,
		boolToInt(o.IsPaid), nullMillis(o.PaidAt),
		boolToInt(o.IsDelivered), nullMillis(o.DeliveredAt),
		toMillis(o.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// GetOrder returns one order by ID.
func (s *Store) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	return scanOrder(row)
}

// ListOrdersByUser returns the orders of one user, newest first.
func (s *Store) ListOrdersByUser(ctx context.Context, userID string) ([]order.Order, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = ? ORDER BY created_at DESC, id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}
	return collectOrders(rows)
}

// ListOrders returns all orders, newest first.
func (s *Store) ListOrders(ctx context.Context) ([]order.Order, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return collectOrders(rows)
}

// UpdateOrder saves payment and delivery status.
func (s *Store) UpdateOrder(ctx context.Context, o *order.Order) error {
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE orders SET is_paid = ?, paid_at = ?, is_delivered = ?, delivered_at = ? WHERE id = ?`,
		boolToInt(o.IsPaid), nullMillis(o.PaidAt), boolToInt(o.IsDelivered), nullMillis(o.DeliveredAt), o.ID,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return requireAffected(res, order.ErrNotFound)
}

func collectOrders(rows *sql.Rows) ([]order.Order, error) {
	defer rows.Close()
	orders := []order.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func scanOrder(row rowScanner) (*order.Order, error) {
	var (
		o           order.Order
		items       string
		shipping    string
		isPaid      int
		paidAt      sql.NullInt64
		isDelivered int
		deliveredAt sql.NullInt64
		createdAt   int64
	)
	err := row.Scan(&o.ID, &o.UserID, &items, &shipping, &o.PaymentMethod,
		&o.ItemsPrice, &o.TaxPrice, &o.ShippingPrice, &o.TotalPrice,
		&isPaid, &paidAt, &isDelivered, &deliveredAt, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	if err := json.Unmarshal([]byte(items), &o.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	if err := json.Unmarshal([]byte(shipping), &o.ShippingAddress); err != nil {
		return nil, fmt.Errorf("decode shipping address: %w", err)
	}
	o.IsPaid = isPaid != 0
	o.PaidAt = fromNullMillis(paidAt)
	o.IsDelivered = isDelivered != 0
	o.DeliveredAt = fromNullMillis(deliveredAt)
	o.CreatedAt = fromMillis(createdAt)
	return &o, nil
}
