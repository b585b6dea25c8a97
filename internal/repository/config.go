package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rookgm/lunchorder/internal/models"
	"github.com/rookgm/lunchorder/internal/repository/postgres"
)

const (
	selectConfigQuery = `
						SELECT price, subsidy, monthly_limit, updated_at FROM lunch_config
						WHERE id = 1
`
	insertConfigIfAbsentQuery = `
						INSERT INTO lunch_config (id, price, subsidy, monthly_limit)
						VALUES (1, $1, $2, $3)
						ON CONFLICT (id) DO NOTHING
`
	upsertConfigQuery = `
						INSERT INTO lunch_config (id, price, subsidy, monthly_limit)
						VALUES (1, $1, $2, $3)
						ON CONFLICT (id) DO UPDATE
						SET price = EXCLUDED.price, subsidy = EXCLUDED.subsidy,
						    monthly_limit = EXCLUDED.monthly_limit, updated_at = NOW()
						RETURNING price, subsidy, monthly_limit, updated_at
`
)

// ConfigRepository implements ConfigRepository interface
type ConfigRepository struct {
	db *postgres.DB
}

// NewConfigRepository creates new ConfigRepository instance
func NewConfigRepository(db *postgres.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// GetConfig returns lunch config
func (cr *ConfigRepository) GetConfig(ctx context.Context) (models.LunchConfig, error) {
	return getConfig(ctx, cr.db)
}

// CreateConfigIfAbsent inserts cfg unless config exists, reports whether it was inserted
func (cr *ConfigRepository) CreateConfigIfAbsent(ctx context.Context, cfg models.LunchConfig) (bool, error) {
	cmd, err := cr.db.Exec(ctx, insertConfigIfAbsentQuery, cfg.Price, cfg.Subsidy, cfg.MonthlyLimit)
	if err != nil {
		return false, err
	}

	return cmd.RowsAffected() == 1, nil
}

// UpdateConfig replaces lunch config
func (cr *ConfigRepository) UpdateConfig(ctx context.Context, cfg models.LunchConfig) (models.LunchConfig, error) {
	updated := models.LunchConfig{}
	err := cr.db.QueryRow(ctx, upsertConfigQuery, cfg.Price, cfg.Subsidy, cfg.MonthlyLimit).
		Scan(&updated.Price, &updated.Subsidy, &updated.MonthlyLimit, &updated.UpdatedAt)
	if err != nil {
		return models.LunchConfig{}, err
	}

	return updated, nil
}

// querier is satisfied by both pool and transaction
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getConfig(ctx context.Context, q querier) (models.LunchConfig, error) {
	cfg := models.LunchConfig{}
	err := q.QueryRow(ctx, selectConfigQuery).Scan(&cfg.Price, &cfg.Subsidy, &cfg.MonthlyLimit, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.LunchConfig{}, models.ErrDataNotFound
		}
		return models.LunchConfig{}, err
	}

	return cfg, nil
}
