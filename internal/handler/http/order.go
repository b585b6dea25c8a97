package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rookgm/lunchorder/internal/models"
)

type OrderService interface {
	// Toggle creates order of user on day or flips its canceled flag
	Toggle(ctx context.Context, userID uint64, day time.Time) (*models.Order, error)
	// SetToday places or cancels today's order of user
	SetToday(ctx context.Context, userID uint64, ordered bool) (*models.Order, error)
	// Today returns state of today's order of user
	Today(ctx context.Context, userID uint64) (models.TodayOrder, error)
	// Calendar returns month grid of user orders
	Calendar(ctx context.Context, userID uint64, year int, month time.Month) (*models.Calendar, error)
	// Finalize locks all pending active orders on day
	Finalize(ctx context.Context, day time.Time) (int64, error)
	// ListOrders returns orders with their owners matching filter
	ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.OrderEntry, error)
	// UpdateOrder changes vendor or rice size of a pending order
	UpdateOrder(ctx context.Context, id uint64, change models.OrderChange) (*models.Order, error)
}

// OrderHandler represents HTTP handler for order-related requests
type OrderHandler struct {
	svc OrderService
}

// NewOrderHandler creates new OrderHandler instance
func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type dateRequest struct {
	Date string `json:"date"`
}

type toggleResponse struct {
	Status string `json:"status"`
	Date   string `json:"date"`
}

// decodeDate reads {"date": "YYYY-MM-DD"} from body
func decodeDate(r *http.Request) (time.Time, error) {
	var req dateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return time.Time{}, models.ErrInvalidDate
	}
	return models.ParseDate(req.Date)
}

// ToggleOrder toggles user order on date
// 200 — заказ создан или его состояние изменено;
// 400 — неверный формат даты;
// 401 — пользователь не аутентифицирован;
// 403 — дата вне окна, время заказа вышло или заказ уже отправлен;
// 500 — внутренняя ошибка сервера.
func (oh *OrderHandler) ToggleOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			writeError(w, http.StatusUnauthorized, errKindUnauthorized, "unauthorized")
			return
		}

		day, err := decodeDate(r)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		defer r.Body.Close()

		order, err := oh.svc.Toggle(r.Context(), payload.UserID, day)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toggleResponse{
			Status: order.State(),
			Date:   day.Format(models.DateLayout),
		})
	}
}

type todayRequest struct {
	Action string `json:"action"`
}

// today order actions
const (
	actionOrder  = "order"
	actionCancel = "cancel"
)

// SetTodayOrder places or cancels today's order
// 200 — успешная обработка запроса;
// 400 — неизвестное действие;
// 401 — пользователь не аутентифицирован;
// 403 — время заказа вышло или заказ уже отправлен;
// 500 — внутренняя ошибка сервера.
func (oh *OrderHandler) SetTodayOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			writeError(w, http.StatusUnauthorized, errKindUnauthorized, "unauthorized")
			return
		}

		var req todayRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
			(req.Action != actionOrder && req.Action != actionCancel) {
			writeError(w, http.StatusBadRequest, errKindBadRequest, `action must be "order" or "cancel"`)
			return
		}
		defer r.Body.Close()

		order, err := oh.svc.SetToday(r.Context(), payload.UserID, req.Action == actionOrder)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toggleResponse{
			Status: order.State(),
			Date:   order.OrderDate.Format(models.DateLayout),
		})
	}
}

type todayResponse struct {
	Date     string `json:"date"`
	Ordered  bool   `json:"ordered"`
	Status   string `json:"status,omitempty"`
	Editable bool   `json:"editable"`
}

// GetTodayOrder returns today's order state
// 200 — успешная обработка запроса;
// 401 — пользователь не аутентифицирован;
// 500 — внутренняя ошибка сервера.
func (oh *OrderHandler) GetTodayOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			writeError(w, http.StatusUnauthorized, errKindUnauthorized, "unauthorized")
			return
		}

		today, err := oh.svc.Today(r.Context(), payload.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, todayResponse{
			Date:     today.Date.Format(models.DateLayout),
			Ordered:  today.Ordered,
			Status:   string(today.Status),
			Editable: today.Editable,
		})
	}
}

type calendarDayResponse struct {
	Date           string `json:"date"`
	IsCurrentMonth bool   `json:"is_current_month"`
	Ordered        bool   `json:"ordered"`
	Allowed        bool   `json:"allowed"`
}

type calendarResponse struct {
	Year  int                     `json:"year"`
	Month int                     `json:"month"`
	Today string                  `json:"today"`
	Weeks [][]calendarDayResponse `json:"weeks"`
}

// Calendar returns month calendar of user orders, current month unless {year}/{month} is given
// 200 — успешная обработка запроса;
// 400 — неверный год или месяц;
// 401 — пользователь не аутентифицирован;
// 500 — внутренняя ошибка сервера.
func (oh *OrderHandler) Calendar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			writeError(w, http.StatusUnauthorized, errKindUnauthorized, "unauthorized")
			return
		}

		year, month, err := parseYearMonth(chi.URLParam(r, "year"), chi.URLParam(r, "month"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		cal, err := oh.svc.Calendar(r.Context(), payload.UserID, year, month)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := calendarResponse{
			Year:  cal.Year,
			Month: int(cal.Month),
			Today: cal.Today.Format(models.DateLayout),
			Weeks: make([][]calendarDayResponse, 0, len(cal.Weeks)),
		}
		for _, week := range cal.Weeks {
			days := make([]calendarDayResponse, 0, len(week))
			for _, d := range week {
				days = append(days, calendarDayResponse{
					Date:           d.Date.Format(models.DateLayout),
					IsCurrentMonth: d.IsCurrentMonth,
					Ordered:        d.Ordered,
					Allowed:        d.Allowed,
				})
			}
			resp.Weeks = append(resp.Weeks, days)
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

type finalizeResponse struct {
	Date   string `json:"date"`
	Locked int64  `json:"locked"`
}

// FinalizeOrders marks orders of date as sent to the vendor
// 200 — успешная обработка запроса;
// 400 — неверный формат даты;
// 500 — внутренняя ошибка сервера.
func (oh *OrderHandler) FinalizeOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day, err := decodeDate(r)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		defer r.Body.Close()

		n, err := oh.svc.Finalize(r.Context(), day)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, finalizeResponse{
			Date:   day.Format(models.DateLayout),
			Locked: n,
		})
	}
}

type orderEntryResponse struct {
	ID         uint64  `json:"id"`
	UserID     uint64  `json:"user_id"`
	Login      string  `json:"login"`
	Name       string  `json:"name"`
	Date       string  `json:"date"`
	Vendor     string  `json:"vendor"`
	VendorName string  `json:"vendor_name"`
	RiceSize   string  `json:"rice_size"`
	Quantity   int     `json:"quantity"`
	Price      int64   `json:"price"`
	Subsidy    int64   `json:"subsidy"`
	Status     string  `json:"status"`
	Canceled   bool    `json:"canceled"`
	CanceledAt *string `json:"canceled_at,omitempty"`
}

func newOrderEntryResponse(e models.OrderEntry) orderEntryResponse {
	user := models.User{Login: e.Login, FullName: e.FullName}
	resp := orderEntryResponse{
		ID:         e.ID,
		UserID:     e.UserID,
		Login:      e.Login,
		Name:       user.DisplayName(),
		Date:       e.OrderDate.Format(models.DateLayout),
		Vendor:     string(e.Vendor),
		VendorName: e.Vendor.Label(),
		RiceSize:   string(e.RiceSize),
		Quantity:   e.Quantity,
		Price:      e.Price,
		Subsidy:    e.Subsidy,
		Status:     string(e.Status),
		Canceled:   e.Canceled,
	}
	if e.CanceledAt != nil {
		at := e.CanceledAt.Format(time.RFC3339)
		resp.CanceledAt = &at
	}
	return resp
}

// ListOrders returns orders filtered by date, vendor, rice_size, canceled and login
// 200 — успешная обработка запроса;
// 400 — неверный фильтр;
// 500 — внутренняя ошибка сервера.
func (oh *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filter := models.OrderFilter{
			Vendor:   models.Vendor(q.Get("vendor")),
			RiceSize: models.RiceSize(q.Get("rice_size")),
			Login:    q.Get("login"),
		}
		if s := q.Get("date"); s != "" {
			day, err := models.ParseDate(s)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			filter.Date = day
		}
		if s := q.Get("canceled"); s != "" {
			canceled, err := strconv.ParseBool(s)
			if err != nil {
				writeError(w, http.StatusBadRequest, errKindBadRequest, "canceled must be true or false")
				return
			}
			filter.Canceled = &canceled
		}

		entries, err := oh.svc.ListOrders(r.Context(), filter)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := make([]orderEntryResponse, 0, len(entries))
		for _, e := range entries {
			resp = append(resp, newOrderEntryResponse(e))
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

type updateOrderRequest struct {
	Vendor   string `json:"vendor"`
	RiceSize string `json:"rice_size"`
}

// UpdateOrder changes vendor or rice size of an order
// 200 — заказ изменён;
// 400 — неверный формат запроса, поставщик или размер риса;
// 403 — заказ уже отправлен;
// 404 — заказ не найден;
// 500 — внутренняя ошибка сервера.
func (oh *OrderHandler) UpdateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, errKindBadRequest, "invalid order id")
			return
		}

		var req updateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, errKindBadRequest, "bad request")
			return
		}
		defer r.Body.Close()

		order, err := oh.svc.UpdateOrder(r.Context(), id, models.OrderChange{
			Vendor:   models.Vendor(req.Vendor),
			RiceSize: models.RiceSize(req.RiceSize),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newOrderEntryResponse(models.OrderEntry{Order: *order}))
	}
}

// parseYearMonth parses optional year and month, empty values are zero
func parseYearMonth(y, m string) (int, time.Month, error) {
	var year, month int
	var err error
	if y != "" {
		if year, err = strconv.Atoi(y); err != nil {
			return 0, 0, models.ErrInvalidDate
		}
	}
	if m != "" {
		if month, err = strconv.Atoi(m); err != nil {
			return 0, 0, models.ErrInvalidDate
		}
		if month < 1 || month > 12 {
			return 0, 0, models.ErrInvalidDate
		}
	}
	return year, time.Month(month), nil
}
