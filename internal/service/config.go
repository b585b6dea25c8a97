package service

import (
	"context"
	"fmt"

	"github.com/rookgm/lunchorder/internal/logger"
	"github.com/rookgm/lunchorder/internal/models"
	"go.uber.org/zap"
)

// ConfigRepository is interface for interacting with lunch config
type ConfigRepository interface {
	// GetConfig returns lunch config
	GetConfig(ctx context.Context) (models.LunchConfig, error)
	// CreateConfigIfAbsent inserts cfg unless config exists
	CreateConfigIfAbsent(ctx context.Context, cfg models.LunchConfig) (bool, error)
	// UpdateConfig replaces lunch config
	UpdateConfig(ctx context.Context, cfg models.LunchConfig) (models.LunchConfig, error)
}

// ConfigService implements ConfigService interface
type ConfigService struct {
	repo ConfigRepository
}

// NewConfigService creates new ConfigService instance
func NewConfigService(repo ConfigRepository) *ConfigService {
	return &ConfigService{repo: repo}
}

// Bootstrap provisions lunch config with defaults if it does not exist yet
func (cs *ConfigService) Bootstrap(ctx context.Context, defaults models.LunchConfig) error {
	if err := defaults.Validate(); err != nil {
		return err
	}

	created, err := cs.repo.CreateConfigIfAbsent(ctx, defaults)
	if err != nil {
		return fmt.Errorf("provision lunch config: %w", err)
	}

	if created {
		logger.Log.Warn("lunch config did not exist, created with defaults",
			zap.Int64("price", defaults.Price),
			zap.Int64("subsidy", defaults.Subsidy),
			zap.Int64("monthly_limit", defaults.MonthlyLimit))
	}

	return nil
}

// GetConfig returns current lunch config
func (cs *ConfigService) GetConfig(ctx context.Context) (models.LunchConfig, error) {
	return cs.repo.GetConfig(ctx)
}

// UpdateConfig validates and stores lunch config
func (cs *ConfigService) UpdateConfig(ctx context.Context, cfg models.LunchConfig) (models.LunchConfig, error) {
	if err := cfg.Validate(); err != nil {
		return models.LunchConfig{}, err
	}

	updated, err := cs.repo.UpdateConfig(ctx, cfg)
	if err != nil {
		return models.LunchConfig{}, err
	}

	logger.Log.Info("lunch config updated",
		zap.Int64("price", updated.Price),
		zap.Int64("subsidy", updated.Subsidy),
		zap.Int64("monthly_limit", updated.MonthlyLimit))

	return updated, nil
}
