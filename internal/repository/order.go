package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/rookgm/lunchorder/internal/models"
	"github.com/rookgm/lunchorder/internal/repository/postgres"
)

const (
	insertOrderIfAbsentQuery = `
						INSERT INTO orders (user_id, order_date, vendor, rice_size, quantity, price, subsidy, status)
						VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending')
						ON CONFLICT (user_id, order_date) DO NOTHING
						RETURNING id
`
	selectOrderForUpdateQuery = `
						SELECT id, user_id, order_date, vendor, rice_size, quantity, price, subsidy, status, canceled, canceled_at, created_at
						FROM orders
						WHERE user_id = $1 AND order_date = $2
						FOR UPDATE
`
	selectOrderQuery = `
						SELECT id, user_id, order_date, vendor, rice_size, quantity, price, subsidy, status, canceled, canceled_at, created_at
						FROM orders
						WHERE user_id = $1 AND order_date = $2
`
	selectOrderByIDForUpdateQuery = `
						SELECT id, user_id, order_date, vendor, rice_size, quantity, price, subsidy, status, canceled, canceled_at, created_at
						FROM orders
						WHERE id = $1
						FOR UPDATE
`
	updateOrderItemQuery = `
						UPDATE orders
						SET vendor = $1, rice_size = $2
						WHERE id = $3
`
	updateOrderCancelQuery = `
						UPDATE orders
						SET canceled = $1, canceled_at = $2
						WHERE id = $3
`
)

// OrderRepository implements OrderRepository interface
type OrderRepository struct {
	db *postgres.DB
}

// NewOrderRepository creates new OrderRepository instance
func NewOrderRepository(db *postgres.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// MutateOrder locks the order of defaults.UserID on defaults.OrderDate, creating it from defaults
// when absent, and applies fn. Changes of fn are saved only if fn returns nil, otherwise the
// transaction is rolled back and no record is created.
func (or *OrderRepository) MutateOrder(ctx context.Context, defaults models.Order, fn func(order *models.Order, created bool) error) (*models.Order, error) {
	day := models.Day(defaults.OrderDate)
	order := models.Order{}

	err := or.db.InTx(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		created := true
		var id uint64
		err := tx.QueryRow(ctx, insertOrderIfAbsentQuery, defaults.UserID, day, string(defaults.Vendor),
			string(defaults.RiceSize), defaults.Quantity, defaults.Price, defaults.Subsidy).Scan(&id)
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("insert order: %w", err)
			}
			created = false
		}

		if err := scanOrder(tx.QueryRow(ctx, selectOrderForUpdateQuery, defaults.UserID, day), &order); err != nil {
			return fmt.Errorf("lock order: %w", err)
		}

		if err := fn(&order, created); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, updateOrderCancelQuery, order.Canceled, order.CanceledAt, order.ID); err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// GetOrder returns order of user on day
func (or *OrderRepository) GetOrder(ctx context.Context, userID uint64, day time.Time) (*models.Order, error) {
	order := models.Order{}
	if err := scanOrder(or.db.QueryRow(ctx, selectOrderQuery, userID, models.Day(day)), &order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &order, nil
}

// GetUserOrders returns orders of user with order date in [from, to)
func (or *OrderRepository) GetUserOrders(ctx context.Context, userID uint64, from, to time.Time) ([]models.Order, error) {
	return queryOrders(ctx, or.db, sq.And{
		sq.Eq{"user_id": userID},
		sq.GtOrEq{"order_date": models.Day(from)},
		sq.Lt{"order_date": models.Day(to)},
	})
}

// UpdateOrder locks order by id and applies fn, vendor and rice size changes of fn are saved
// only if fn returns nil
func (or *OrderRepository) UpdateOrder(ctx context.Context, id uint64, fn func(order *models.Order) error) (*models.Order, error) {
	order := models.Order{}

	err := or.db.InTx(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if err := scanOrder(tx.QueryRow(ctx, selectOrderByIDForUpdateQuery, id), &order); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.ErrDataNotFound
			}
			return fmt.Errorf("lock order: %w", err)
		}

		if err := fn(&order); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, updateOrderItemQuery, string(order.Vendor), string(order.RiceSize), order.ID); err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// ListOrders returns orders with their owners matching filter, newest date first
func (or *OrderRepository) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.OrderEntry, error) {
	columns := make([]string, 0, len(orderColumns)+2)
	for _, c := range orderColumns {
		columns = append(columns, "o."+c)
	}
	columns = append(columns, "u.login", "u.full_name")

	where := sq.And{}
	if !filter.Date.IsZero() {
		where = append(where, sq.Eq{"o.order_date": models.Day(filter.Date)})
	}
	if filter.Vendor != "" {
		where = append(where, sq.Eq{"o.vendor": string(filter.Vendor)})
	}
	if filter.RiceSize != "" {
		where = append(where, sq.Eq{"o.rice_size": string(filter.RiceSize)})
	}
	if filter.Canceled != nil {
		where = append(where, sq.Eq{"o.canceled": *filter.Canceled})
	}
	if filter.Login != "" {
		where = append(where, sq.ILike{"u.login": "%" + filter.Login + "%"})
	}

	builder := psql.Select(columns...).
		From("orders o").
		Join("users u ON u.id = o.user_id").
		OrderBy("o.order_date DESC", "u.login")
	if len(where) > 0 {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.OrderEntry{}

	for rows.Next() {
		e := models.OrderEntry{}
		err := rows.Scan(&e.ID, &e.UserID, &e.OrderDate, &e.Vendor, &e.RiceSize, &e.Quantity,
			&e.Price, &e.Subsidy, &e.Status, &e.Canceled, &e.CanceledAt, &e.CreatedAt, &e.Login, &e.FullName)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// FinalizeOrders sets status sent to all pending active orders on day
func (or *OrderRepository) FinalizeOrders(ctx context.Context, day time.Time) (int64, error) {
	query, args, err := psql.Update("orders").
		Set("status", string(models.StatusSent)).
		Where(sq.Eq{
			"order_date": models.Day(day),
			"status":     string(models.StatusPending),
			"canceled":   false,
		}).
		ToSql()
	if err != nil {
		return 0, err
	}

	cmd, err := or.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return cmd.RowsAffected(), nil
}

// rowsQuerier is satisfied by both pool and transaction
type rowsQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func queryOrders(ctx context.Context, q rowsQuerier, where sq.Sqlizer) ([]models.Order, error) {
	query, args, err := psql.Select(orderColumns...).
		From("orders").
		Where(where).
		OrderBy("order_date", "user_id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}

	for rows.Next() {
		order := models.Order{}
		if err := scanOrder(rows, &order); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
