package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rookgm/lunchorder/internal/logger"
	"github.com/rookgm/lunchorder/internal/models"
	"go.uber.org/zap"
)

// error kinds of JSON error payload
const (
	errKindBadRequest    = "bad_request"
	errKindUnauthorized  = "unauthorized"
	errKindForbidden     = "forbidden"
	errKindConflict      = "conflict"
	errKindInternal      = "internal_error"
	errKindInvalidDate   = "invalid_date"
	errKindWindowClosed  = "window_closed"
	errKindCutoffPassed  = "cutoff_passed"
	errKindLockedByAdmin = "locked_by_admin"
	errKindInvalidConfig = "invalid_config"
	errKindInvalidOrder  = "invalid_order"
	errKindNotFound      = "not_found"
	errKindInvalidCreds  = "invalid_credentials"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Debug("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, errorResponse{Error: kind, Message: msg})
}

// writeServiceError maps service error to status code and error kind
// 400 — неверная дата, настройки, поставщик или размер риса;
// 404 — данные не найдены;
// 403 — окно закрыто, время вышло или заказ зафиксирован;
// 500 — внутренняя ошибка сервера.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, errKindInvalidDate, err.Error())
	case errors.Is(err, models.ErrWindowClosed):
		writeError(w, http.StatusForbidden, errKindWindowClosed, err.Error())
	case errors.Is(err, models.ErrCutoffPassed):
		writeError(w, http.StatusForbidden, errKindCutoffPassed, err.Error())
	case errors.Is(err, models.ErrLockedByAdmin):
		writeError(w, http.StatusForbidden, errKindLockedByAdmin, err.Error())
	case errors.Is(err, models.ErrInvalidConfig):
		writeError(w, http.StatusBadRequest, errKindInvalidConfig, err.Error())
	case errors.Is(err, models.ErrInvalidOrder):
		writeError(w, http.StatusBadRequest, errKindInvalidOrder, err.Error())
	case errors.Is(err, models.ErrDataNotFound):
		writeError(w, http.StatusNotFound, errKindNotFound, err.Error())
	default:
		logger.Log.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, errKindInternal, "internal error")
	}
}
