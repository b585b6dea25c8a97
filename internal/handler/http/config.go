package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rookgm/lunchorder/internal/models"
)

type ConfigService interface {
	// GetConfig returns current lunch config
	GetConfig(ctx context.Context) (models.LunchConfig, error)
	// UpdateConfig validates and stores lunch config
	UpdateConfig(ctx context.Context, cfg models.LunchConfig) (models.LunchConfig, error)
}

// ConfigHandler represents HTTP handler for lunch config
type ConfigHandler struct {
	svc ConfigService
}

// NewConfigHandler creates new ConfigHandler instance
func NewConfigHandler(svc ConfigService) *ConfigHandler {
	return &ConfigHandler{svc: svc}
}

type configResponse struct {
	Price        int64 `json:"price"`
	Subsidy      int64 `json:"subsidy"`
	MonthlyLimit int64 `json:"monthly_limit"`
}

func newConfigResponse(cfg models.LunchConfig) configResponse {
	return configResponse{
		Price:        cfg.Price,
		Subsidy:      cfg.Subsidy,
		MonthlyLimit: cfg.MonthlyLimit,
	}
}

// GetConfig returns lunch config
// 200 — успешная обработка запроса;
// 404 — настройки не созданы;
// 500 — внутренняя ошибка сервера.
func (ch *ConfigHandler) GetConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := ch.svc.GetConfig(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newConfigResponse(cfg))
	}
}

// UpdateConfig replaces lunch config
// 200 — успешная обработка запроса;
// 400 — неверный формат запроса или отрицательные суммы;
// 500 — внутренняя ошибка сервера.
func (ch *ConfigHandler) UpdateConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req configResponse
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, errKindBadRequest, "bad request")
			return
		}
		defer r.Body.Close()

		cfg, err := ch.svc.UpdateConfig(r.Context(), models.LunchConfig{
			Price:        req.Price,
			Subsidy:      req.Subsidy,
			MonthlyLimit: req.MonthlyLimit,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newConfigResponse(cfg))
	}
}
