package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/rookgm/lunchorder/internal/handler/http/mocks"
	"github.com/rookgm/lunchorder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOrderHandler_ToggleOrder(t *testing.T) {
	day := models.Date(2025, time.March, 11)

	tests := []struct {
		name           string
		token          *models.TokenPayload
		body           string
		setup          func(t *testing.T) *mocks.MockOrderService
		wantStatusCode int
		wantKind       string
		wantBody       *toggleResponse
	}{
		{
			// 200 — заказ создан;
			name:  "created_order_return_200",
			token: &models.TokenPayload{UserID: 1},
			body:  `{"date":"2025-03-11"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Toggle(gomock.Any(), uint64(1), day).
					Return(&models.Order{UserID: 1, OrderDate: day}, nil).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			wantBody:       &toggleResponse{Status: models.OrderStateOrdered, Date: "2025-03-11"},
		},
		{
			// 200 — заказ отменён;
			name:  "canceled_order_return_200",
			token: &models.TokenPayload{UserID: 1},
			body:  `{"date":"2025-03-11"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Toggle(gomock.Any(), uint64(1), day).
					Return(&models.Order{UserID: 1, OrderDate: day, Canceled: true}, nil).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			wantBody:       &toggleResponse{Status: models.OrderStateCanceled, Date: "2025-03-11"},
		},
		{
			// 400 — неверный формат даты;
			name:  "invalid_date_return_400",
			token: &models.TokenPayload{UserID: 1},
			body:  `{"date":"2025-13-40"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Toggle(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
			wantKind:       errKindInvalidDate,
		},
		{
			// 400 — пустое тело запроса;
			name:  "empty_body_return_400",
			token: &models.TokenPayload{UserID: 1},
			body:  "",
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Toggle(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
			wantKind:       errKindInvalidDate,
		},
		{
			// 401 — пользователь не аутентифицирован;
			name: "unauthorized_request_return_401",
			body: `{"date":"2025-03-11"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Toggle(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusUnauthorized,
			wantKind:       errKindUnauthorized,
		},
		{
			// 403 — дата вне окна;
			name:  "window_closed_return_403",
			token: &models.TokenPayload{UserID: 1},
			body:  `{"date":"2025-03-11"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Toggle(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, models.ErrWindowClosed).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusForbidden,
			wantKind:       errKindWindowClosed,
		},
		{
			// 403 — время заказа вышло;
			name:  "cutoff_passed_return_403",
			token: &models.TokenPayload{UserID: 1},
			body:  `{"date":"2025-03-11"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Toggle(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, models.ErrCutoffPassed).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusForbidden,
			wantKind:       errKindCutoffPassed,
		},
		{
			// 403 — заказ уже отправлен;
			name:  "locked_by_admin_return_403",
			token: &models.TokenPayload{UserID: 1},
			body:  `{"date":"2025-03-11"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Toggle(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, models.ErrLockedByAdmin).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusForbidden,
			wantKind:       errKindLockedByAdmin,
		},
		{
			// 500 — внутренняя ошибка сервера.
			name:  "internal_error_return_500",
			token: &models.TokenPayload{UserID: 1},
			body:  `{"date":"2025-03-11"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Toggle(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, models.ErrInternalError).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
			wantKind:       errKindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/orders/toggle", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal("cannot create request", zap.Error(err))
			}

			w := httptest.NewRecorder()
			st := tt.setup(t)
			ctx := context.WithValue(req.Context(), authPayloadKey, tt.token)

			handler := NewOrderHandler(st)
			h := handler.ToggleOrder()
			h(w, req.WithContext(ctx))

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)

			resBody, err := io.ReadAll(res.Body)
			require.NoError(t, err)

			if tt.wantKind != "" {
				var got errorResponse
				require.NoError(t, json.Unmarshal(resBody, &got))
				assert.Equal(t, tt.wantKind, got.Error)
				assert.NotEmpty(t, got.Message)
			}

			if tt.wantBody != nil {
				var got toggleResponse
				require.NoError(t, json.Unmarshal(resBody, &got))
				if diff := cmp.Diff(*tt.wantBody, got); diff != "" {
					t.Errorf("mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestOrderHandler_SetTodayOrder(t *testing.T) {
	day := models.Date(2025, time.March, 10)

	tests := []struct {
		name           string
		token          *models.TokenPayload
		body           string
		setup          func(t *testing.T) *mocks.MockOrderService
		wantStatusCode int
		wantStatus     string
	}{
		{
			// 200 — заказ оформлен;
			name:  "order_action_return_200",
			token: &models.TokenPayload{UserID: 2},
			body:  `{"action":"order"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().SetToday(gomock.Any(), uint64(2), true).
					Return(&models.Order{UserID: 2, OrderDate: day}, nil).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			wantStatus:     models.OrderStateOrdered,
		},
		{
			// 200 — заказ отменён;
			name:  "cancel_action_return_200",
			token: &models.TokenPayload{UserID: 2},
			body:  `{"action":"cancel"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().SetToday(gomock.Any(), uint64(2), false).
					Return(&models.Order{UserID: 2, OrderDate: day, Canceled: true}, nil).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			wantStatus:     models.OrderStateCanceled,
		},
		{
			// 400 — неизвестное действие;
			name:  "unknown_action_return_400",
			token: &models.TokenPayload{UserID: 2},
			body:  `{"action":"maybe"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().SetToday(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			// 401 — пользователь не аутентифицирован;
			name: "unauthorized_request_return_401",
			body: `{"action":"order"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().SetToday(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			// 403 — время заказа вышло;
			name:  "cutoff_passed_return_403",
			token: &models.TokenPayload{UserID: 2},
			body:  `{"action":"order"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().SetToday(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, models.ErrCutoffPassed).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/orders/today", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal("cannot create request", zap.Error(err))
			}

			w := httptest.NewRecorder()
			st := tt.setup(t)
			ctx := context.WithValue(req.Context(), authPayloadKey, tt.token)

			handler := NewOrderHandler(st)
			h := handler.SetTodayOrder()
			h(w, req.WithContext(ctx))

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)

			if tt.wantStatus != "" {
				var got toggleResponse
				require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
				assert.Equal(t, tt.wantStatus, got.Status)
				assert.Equal(t, "2025-03-10", got.Date)
			}
		})
	}
}

func TestOrderHandler_GetTodayOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svcMock := mocks.NewMockOrderService(ctrl)
	svcMock.EXPECT().Today(gomock.Any(), uint64(3)).Return(models.TodayOrder{
		Date:     models.Date(2025, time.March, 10),
		Ordered:  true,
		Status:   models.StatusPending,
		Editable: true,
	}, nil).Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/today", nil)
	ctx := context.WithValue(req.Context(), authPayloadKey, &models.TokenPayload{UserID: 3})
	w := httptest.NewRecorder()

	NewOrderHandler(svcMock).GetTodayOrder()(w, req.WithContext(ctx))

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var got todayResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))

	want := todayResponse{Date: "2025-03-10", Ordered: true, Status: "pending", Editable: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderHandler_Calendar(t *testing.T) {
	today := models.Date(2025, time.March, 10)
	cal := &models.Calendar{
		Year:  2025,
		Month: time.March,
		Today: today,
		Weeks: [][]models.CalendarDay{{
			{Date: models.Date(2025, time.February, 24)},
			{Date: models.Date(2025, time.March, 1), IsCurrentMonth: true, Ordered: true},
			{Date: today, IsCurrentMonth: true, Allowed: true},
		}},
	}

	tests := []struct {
		name           string
		path           string
		setup          func(t *testing.T) *mocks.MockOrderService
		wantStatusCode int
	}{
		{
			// 200 — текущий месяц;
			name: "current_month_return_200",
			path: "/api/calendar",
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Calendar(gomock.Any(), uint64(1), 0, time.Month(0)).Return(cal, nil).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusOK,
		},
		{
			// 200 — указанный месяц;
			name: "given_month_return_200",
			path: "/api/calendar/2025/3",
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Calendar(gomock.Any(), uint64(1), 2025, time.March).Return(cal, nil).Times(1)
				return svcMock
			},
			wantStatusCode: http.StatusOK,
		},
		{
			// 400 — неверный месяц;
			name: "invalid_month_return_400",
			path: "/api/calendar/2025/13",
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Calendar(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewOrderHandler(tt.setup(t))

			r := chi.NewRouter()
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					ctx := context.WithValue(r.Context(), authPayloadKey, &models.TokenPayload{UserID: 1})
					next.ServeHTTP(w, r.WithContext(ctx))
				})
			})
			r.Get("/api/calendar", handler.Calendar())
			r.Get("/api/calendar/{year}/{month}", handler.Calendar())

			srv := httptest.NewServer(r)
			defer srv.Close()

			res, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)

			if tt.wantStatusCode != http.StatusOK {
				return
			}

			var got calendarResponse
			require.NoError(t, json.NewDecoder(res.Body).Decode(&got))

			want := calendarResponse{
				Year:  2025,
				Month: 3,
				Today: "2025-03-10",
				Weeks: [][]calendarDayResponse{{
					{Date: "2025-02-24"},
					{Date: "2025-03-01", IsCurrentMonth: true, Ordered: true},
					{Date: "2025-03-10", IsCurrentMonth: true, Allowed: true},
				}},
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOrderHandler_FinalizeOrders(t *testing.T) {
	day := models.Date(2025, time.March, 10)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svcMock := mocks.NewMockOrderService(ctrl)
	svcMock.EXPECT().Finalize(gomock.Any(), day).Return(int64(4), nil).Times(1)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/orders/finalize", strings.NewReader(`{"date":"2025-03-10"}`))
	w := httptest.NewRecorder()

	NewOrderHandler(svcMock).FinalizeOrders()(w, req)

	res := w.Result()
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var got finalizeResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	assert.Equal(t, finalizeResponse{Date: "2025-03-10", Locked: 4}, got)
}

func TestParseYearMonth(t *testing.T) {
	tests := []struct {
		name      string
		year      string
		month     string
		wantYear  int
		wantMonth time.Month
		wantErr   bool
	}{
		{name: "empty", wantYear: 0, wantMonth: 0},
		{name: "valid", year: "2024", month: "2", wantYear: 2024, wantMonth: time.February},
		{name: "month_zero", year: "2024", month: "0", wantErr: true},
		{name: "month_too_big", year: "2024", month: "13", wantErr: true},
		{name: "not_a_number", year: "year", month: "1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, m, err := parseYearMonth(tt.year, tt.month)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantYear, y)
			assert.Equal(t, tt.wantMonth, m)
		})
	}
}
