package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/rookgm/lunchorder/internal/models"
	"github.com/rookgm/lunchorder/internal/repository/postgres"
)

// ReportRepository implements ReportRepository interface
type ReportRepository struct {
	db *postgres.DB
}

// NewReportRepository creates new ReportRepository instance
func NewReportRepository(db *postgres.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// MonthSnapshot reads users, active orders with order date in [from, to) and lunch config
// within one read only transaction
func (rr *ReportRepository) MonthSnapshot(ctx context.Context, from, to time.Time) (*models.MonthSnapshot, error) {
	snap := models.MonthSnapshot{}

	opts := pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	}

	err := rr.db.InTx(ctx, opts, func(tx pgx.Tx) error {
		cfg, err := getConfig(ctx, tx)
		if err != nil {
			return fmt.Errorf("get lunch config: %w", err)
		}
		snap.Config = cfg

		users, err := queryUsers(ctx, tx)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		snap.Users = users

		orders, err := queryOrders(ctx, tx, sq.And{
			sq.GtOrEq{"order_date": models.Day(from)},
			sq.Lt{"order_date": models.Day(to)},
			sq.Eq{"canceled": false},
		})
		if err != nil {
			return fmt.Errorf("list orders: %w", err)
		}
		snap.Orders = orders

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &snap, nil
}

func queryUsers(ctx context.Context, q rowsQuerier) ([]models.User, error) {
	query, args, err := psql.Select("id", "login", "full_name", "is_admin", "created_at").
		From("users").
		OrderBy("login").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}

	for rows.Next() {
		user := models.User{}
		if err := rows.Scan(&user.ID, &user.Login, &user.FullName, &user.IsAdmin, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// GetActiveOrdersByDate returns active orders of all users on day
func (rr *ReportRepository) GetActiveOrdersByDate(ctx context.Context, day time.Time) ([]models.Order, error) {
	return queryOrders(ctx, rr.db, sq.Eq{
		"order_date": models.Day(day),
		"canceled":   false,
	})
}
