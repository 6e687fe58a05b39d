package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"radagast/internal/domain"
	apperrors "radagast/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = "id, phone_number, total, delivery_method, address, payment_method, location, status, status_changed_at, created_at"

func scanOrder(row interface{ Scan(...interface{}) error }) (*domain.Order, error) {
	var o domain.Order
	var address sql.NullString
	var statusChangedAt sql.NullTime

	err := row.Scan(
		&o.ID, &o.PhoneNumber, &o.Total, &o.DeliveryMethod, &address,
		&o.PaymentMethod, &o.Location, &o.Status, &statusChangedAt, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if address.Valid {
		o.Address = address.String
	}
	if statusChangedAt.Valid {
		t := statusChangedAt.Time
		o.StatusChangedAt = &t
	}
	return &o, nil
}

func (r *MySQLOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	order.ID = uuid.New().String()
	order.CreatedAt = time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var address interface{}
	if order.Address != "" {
		address = order.Address
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, phone_number, total, delivery_method, address, payment_method, location, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.PhoneNumber, order.Total, string(order.DeliveryMethod), address,
		string(order.PaymentMethod), string(order.Location), string(order.Status), order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	for _, line := range order.Items {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO order_items (order_id, food_id, quantity, price) VALUES (?, ?, ?, ?)",
			order.ID, line.FoodID, line.Quantity, line.Price,
		)
		if err != nil {
			return fmt.Errorf("inserting order item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id string, scope *domain.Location) (*domain.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE id = ?", orderColumns)
	args := []interface{}{id}
	if scope != nil {
		query += " AND location = ?"
		args = append(args, string(*scope))
	}

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	orders, err := r.attachItems(ctx, []domain.Order{*order})
	if err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *MySQLOrderRepository) FindAll(ctx context.Context, scope *domain.Location) ([]domain.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders", orderColumns)
	var args []interface{}
	if scope != nil {
		query += " WHERE location = ?"
		args = append(args, string(*scope))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return r.attachItems(ctx, orders)
}

func (r *MySQLOrderRepository) attachItems(ctx context.Context, orders []domain.Order) ([]domain.Order, error) {
	if len(orders) == 0 {
		return orders, nil
	}

	placeholders := make([]string, len(orders))
	args := make([]interface{}, len(orders))
	index := make(map[string]int, len(orders))
	for i := range orders {
		placeholders[i] = "?"
		args[i] = orders[i].ID
		index[orders[i].ID] = i
	}

	query := fmt.Sprintf(
		"SELECT order_id, food_id, quantity, price FROM order_items WHERE order_id IN (%s) ORDER BY id",
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var line domain.OrderLine
		if err := rows.Scan(&orderID, &line.FoodID, &line.Quantity, &line.Price); err != nil {
			return nil, fmt.Errorf("scanning order item row: %w", err)
		}
		i := index[orderID]
		orders[i].Items = append(orders[i].Items, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order item rows: %w", err)
	}

	return orders, nil
}

// UpdateStatus locks the (scoped) order row first: a missing or out-of-scope
// order is NotFound. Re-applying the current status is a no-op that leaves
// status_changed_at untouched; terminal statuses reject any further change.
func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, scope *domain.Location) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := "SELECT status FROM orders WHERE id = ?"
	args := []interface{}{id}
	if scope != nil {
		query += " AND location = ?"
		args = append(args, string(*scope))
	}
	query += " FOR UPDATE"

	var current string
	err = tx.QueryRowContext(ctx, query, args...).Scan(&current)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("locking order row: %w", err)
	}

	if domain.OrderStatus(current) == status {
		return r.FindByID(ctx, id, scope)
	}
	if !domain.OrderStatus(current).CanTransitionTo(status) {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("order status %s is final", current))
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE orders SET status = ?, status_changed_at = ? WHERE id = ?",
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating order status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing status update: %w", err)
	}

	return r.FindByID(ctx, id, scope)
}

func (r *MySQLOrderRepository) Delete(ctx context.Context, id string, scope *domain.Location) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := "DELETE FROM orders WHERE id = ?"
	args := []interface{}{id}
	if scope != nil {
		query += " AND location = ?"
		args = append(args, string(*scope))
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM order_items WHERE order_id = ?", id); err != nil {
		return fmt.Errorf("deleting order items: %w", err)
	}

	return tx.Commit()
}
