package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rookgm/lunchorder/internal/eligibility"
	"github.com/rookgm/lunchorder/internal/logger"
	"github.com/rookgm/lunchorder/internal/models"
	"go.uber.org/zap"
)

// OrderRepository is interface for interacting with order-related data
type OrderRepository interface {
	// MutateOrder locks order of user on date creating it from defaults when absent and applies fn
	MutateOrder(ctx context.Context, defaults models.Order, fn func(order *models.Order, created bool) error) (*models.Order, error)
	// GetOrder returns order of user on day
	GetOrder(ctx context.Context, userID uint64, day time.Time) (*models.Order, error)
	// GetUserOrders returns orders of user with order date in [from, to)
	GetUserOrders(ctx context.Context, userID uint64, from, to time.Time) ([]models.Order, error)
	// FinalizeOrders sets status sent to all pending active orders on day
	FinalizeOrders(ctx context.Context, day time.Time) (int64, error)
	// UpdateOrder locks order by id and saves vendor and rice size changes of fn
	UpdateOrder(ctx context.Context, id uint64, fn func(order *models.Order) error) (*models.Order, error)
	// ListOrders returns orders with their owners matching filter
	ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.OrderEntry, error)
}

// OrderService implements OrderService interface
type OrderService struct {
	repo    OrderRepository
	configs ConfigRepository
	policy  eligibility.Policy
	now     func() time.Time
}

// NewOrderService creates new OrderService instance
func NewOrderService(repo OrderRepository, configs ConfigRepository, policy eligibility.Policy) *OrderService {
	return &OrderService{
		repo:    repo,
		configs: configs,
		policy:  policy,
		now:     time.Now,
	}
}

// newOrder returns defaults of lazily created order with price snapshot of current config
func (os *OrderService) newOrder(ctx context.Context, userID uint64, day time.Time) (models.Order, error) {
	cfg, err := os.configs.GetConfig(ctx)
	if err != nil {
		return models.Order{}, fmt.Errorf("get lunch config: %w", err)
	}

	return models.Order{
		UserID:    userID,
		OrderDate: models.Day(day),
		Vendor:    models.DefaultVendor,
		RiceSize:  models.DefaultRiceSize,
		Quantity:  1,
		Price:     cfg.Price,
		Subsidy:   cfg.Subsidy,
		Status:    models.StatusPending,
	}, nil
}

// Toggle creates order of user on day or flips its canceled flag
func (os *OrderService) Toggle(ctx context.Context, userID uint64, day time.Time) (*models.Order, error) {
	now := os.now()
	if err := os.policy.Check(day, now); err != nil {
		return nil, err
	}

	defaults, err := os.newOrder(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	order, err := os.repo.MutateOrder(ctx, defaults, func(order *models.Order, created bool) error {
		if created {
			return nil
		}
		if order.Locked() {
			return models.ErrLockedByAdmin
		}
		setCanceled(order, !order.Canceled, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Debug("order toggled",
		zap.Uint64("user_id", userID),
		zap.String("date", order.OrderDate.Format(models.DateLayout)),
		zap.String("status", order.State()))

	return order, nil
}

// SetToday places (ordered is true) or cancels today's order of user
func (os *OrderService) SetToday(ctx context.Context, userID uint64, ordered bool) (*models.Order, error) {
	now := os.now()
	today := os.policy.Today(now)
	if err := os.policy.Check(today, now); err != nil {
		return nil, err
	}

	if !ordered {
		_, err := os.repo.GetOrder(ctx, userID, today)
		if errors.Is(err, models.ErrDataNotFound) {
			// nothing to cancel
			return &models.Order{
				UserID:    userID,
				OrderDate: today,
				Status:    models.StatusPending,
				Canceled:  true,
			}, nil
		}
		if err != nil {
			return nil, err
		}
	}

	defaults, err := os.newOrder(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	order, err := os.repo.MutateOrder(ctx, defaults, func(order *models.Order, created bool) error {
		if created && ordered {
			return nil
		}
		if order.Locked() {
			return models.ErrLockedByAdmin
		}
		setCanceled(order, !ordered, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Debug("today order set",
		zap.Uint64("user_id", userID),
		zap.String("date", today.Format(models.DateLayout)),
		zap.String("status", order.State()))

	return order, nil
}

// Today returns state of today's order of user
func (os *OrderService) Today(ctx context.Context, userID uint64) (models.TodayOrder, error) {
	now := os.now()
	today := os.policy.Today(now)

	res := models.TodayOrder{
		Date:     today,
		Editable: os.policy.Editable(today, now),
	}

	order, err := os.repo.GetOrder(ctx, userID, today)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return res, nil
		}
		return models.TodayOrder{}, err
	}

	res.Ordered = order.Ordered()
	res.Status = order.Status
	if order.Locked() {
		res.Editable = false
	}

	return res, nil
}

// Calendar returns month grid of user orders. Zero year or month means current one.
func (os *OrderService) Calendar(ctx context.Context, userID uint64, year int, month time.Month) (*models.Calendar, error) {
	now := os.now()
	today := os.policy.Today(now)
	if year == 0 {
		year = today.Year()
	}
	if month == 0 {
		month = today.Month()
	}
	if year < 1 || year > 9999 || month < time.January || month > time.December {
		return nil, models.ErrInvalidDate
	}

	weeks := monthWeeks(year, month)
	from := weeks[0][0]
	to := weeks[len(weeks)-1][6].AddDate(0, 0, 1)

	orders, err := os.repo.GetUserOrders(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	ordered := make(eligibility.DateSet, len(orders))
	for _, o := range orders {
		if o.Ordered() {
			ordered[models.Day(o.OrderDate)] = struct{}{}
		}
	}
	allowed := os.policy.Allowed(now)

	cal := &models.Calendar{
		Year:  year,
		Month: month,
		Today: today,
		Weeks: make([][]models.CalendarDay, 0, len(weeks)),
	}
	for _, week := range weeks {
		days := make([]models.CalendarDay, 0, len(week))
		for _, d := range week {
			days = append(days, models.CalendarDay{
				Date:           d,
				IsCurrentMonth: d.Month() == month,
				Ordered:        ordered.Contains(d),
				Allowed:        allowed.Contains(d),
			})
		}
		cal.Weeks = append(cal.Weeks, days)
	}

	return cal, nil
}

// Finalize locks all pending active orders on day
func (os *OrderService) Finalize(ctx context.Context, day time.Time) (int64, error) {
	n, err := os.repo.FinalizeOrders(ctx, day)
	if err != nil {
		return 0, err
	}

	logger.Log.Info("orders finalized",
		zap.String("date", models.Day(day).Format(models.DateLayout)),
		zap.Int64("count", n))

	return n, nil
}

// ListOrders returns orders for the admin order list
func (os *OrderService) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.OrderEntry, error) {
	if filter.Vendor != "" && !filter.Vendor.Valid() {
		return nil, models.ErrInvalidOrder
	}
	if filter.RiceSize != "" && !filter.RiceSize.Valid() {
		return nil, models.ErrInvalidOrder
	}

	return os.repo.ListOrders(ctx, filter)
}

// UpdateOrder changes vendor or rice size of a pending order
func (os *OrderService) UpdateOrder(ctx context.Context, id uint64, change models.OrderChange) (*models.Order, error) {
	if err := change.Validate(); err != nil {
		return nil, err
	}

	order, err := os.repo.UpdateOrder(ctx, id, func(order *models.Order) error {
		if order.Locked() {
			return models.ErrLockedByAdmin
		}
		change.Apply(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("order updated",
		zap.Uint64("id", order.ID),
		zap.String("vendor", string(order.Vendor)),
		zap.String("rice_size", string(order.RiceSize)))

	return order, nil
}

func setCanceled(order *models.Order, canceled bool, now time.Time) {
	if canceled == order.Canceled {
		return
	}
	order.Canceled = canceled
	if canceled {
		at := now
		order.CanceledAt = &at
	} else {
		order.CanceledAt = nil
	}
}

// monthWeeks returns full weeks, Monday first, covering the month
func monthWeeks(year int, month time.Month) [][]time.Time {
	first := models.Date(year, month, 1)
	// days back to Monday
	offset := (int(first.Weekday()) + 6) % 7
	d := first.AddDate(0, 0, -offset)

	last := models.Date(year, month, models.DaysIn(year, month))

	var weeks [][]time.Time
	for !d.After(last) {
		week := make([]time.Time, 7)
		for i := range week {
			week[i] = d
			d = d.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}

	return weeks
}
