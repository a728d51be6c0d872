package models

import (
	"context"
	"database/sql"
	"time"
)

// StatusPending is the status stamped on customer self-checkout orders.
const StatusPending = "Pending"

type OrderModel struct {
	DB *sql.DB
}

// FilterCartLines drops every line whose quantity is not positive. Duplicate
// product IDs are kept as independent lines.
func FilterCartLines(lines []CartLine) []CartLine {
	kept := make([]CartLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity > 0 {
			kept = append(kept, line)
		}
	}
	return kept
}

// OrderTotal sums quantity × unit price over the given items.
func OrderTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}

// Insert writes the order header and its line items in one transaction, so
// a failure part-way through never leaves an order without its items.
func (m *OrderModel) Insert(ctx context.Context, userID int, placedAt time.Time, status string, lines []CartLine) (int, error) {
	lines = FilterCartLines(lines)

	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := `INSERT INTO orders (user_id, order_date, order_status)
              VALUES ($1, $2, $3) RETURNING id`

	var orderID int
	err = tx.QueryRowContext(ctx, query, userID, placedAt, status).Scan(&orderID)
	if err != nil {
		return 0, err
	}

	itemQuery := `INSERT INTO order_items (order_id, product_id, quantity)
                  VALUES ($1, $2, $3)`
	for _, line := range lines {
		_, err := tx.ExecContext(ctx, itemQuery, orderID, line.ProductID, line.Quantity)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return orderID, nil
}

// AllForCustomers returns every order placed for a customer-role user,
// newest first, annotated with the purchaser and a live-priced total.
func (m *OrderModel) AllForCustomers(ctx context.Context) ([]Order, error) {
	return m.list(ctx, 0)
}

// ByUser returns one user's orders, newest first.
func (m *OrderModel) ByUser(ctx context.Context, userID int) ([]Order, error) {
	return m.list(ctx, userID)
}

func (m *OrderModel) UpdateStatus(ctx context.Context, orderID int, status string) error {
	result, err := m.DB.ExecContext(ctx, `UPDATE orders SET order_status = $1 WHERE id = $2`, status, orderID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoRecord
	}

	return nil
}

func (m *OrderModel) list(ctx context.Context, userID int) ([]Order, error) {
	query := `SELECT o.id, o.user_id, o.order_date, o.order_status, u.full_name, u.email
              FROM orders o
              JOIN users u ON o.user_id = u.id
              WHERE u.role = $1 AND ($2 = 0 OR u.id = $2)
              ORDER BY o.id DESC`

	rows, err := m.DB.QueryContext(ctx, query, RoleCustomer, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		err := rows.Scan(&o.ID, &o.UserID, &o.OrderDate, &o.Status, &o.CustomerName, &o.CustomerEmail)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := m.items(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
		orders[i].Total = OrderTotal(items)
	}

	return orders, nil
}

// items joins line items against products so the unit price is always the
// current one. A later price change retroactively changes computed totals.
func (m *OrderModel) items(ctx context.Context, orderID int) ([]OrderItem, error) {
	query := `SELECT oi.product_id, p.name, oi.quantity, p.price
              FROM order_items oi
              JOIN products p ON oi.product_id = p.id
              WHERE oi.order_id = $1`

	rows, err := m.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var item OrderItem
		err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
