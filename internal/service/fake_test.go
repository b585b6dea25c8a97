package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rookgm/lunchorder/internal/models"
)

type orderKey struct {
	userID uint64
	day    time.Time
}

// memOrderRepo is in-memory OrderRepository, one lock for all records
type memOrderRepo struct {
	mu     sync.Mutex
	nextID uint64
	orders map[orderKey]models.Order
	logins map[uint64]string
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: map[orderKey]models.Order{}, logins: map[uint64]string{}}
}

func (m *memOrderRepo) MutateOrder(_ context.Context, defaults models.Order, fn func(order *models.Order, created bool) error) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := orderKey{userID: defaults.UserID, day: models.Day(defaults.OrderDate)}
	order, ok := m.orders[key]
	if !ok {
		m.nextID++
		order = defaults
		order.ID = m.nextID
		order.OrderDate = key.day
	}

	if err := fn(&order, !ok); err != nil {
		// rolled back
		if !ok {
			m.nextID--
		}
		return nil, err
	}

	m.orders[key] = order
	return &order, nil
}

func (m *memOrderRepo) GetOrder(_ context.Context, userID uint64, day time.Time) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderKey{userID: userID, day: models.Day(day)}]
	if !ok {
		return nil, models.ErrDataNotFound
	}
	return &order, nil
}

func (m *memOrderRepo) GetUserOrders(_ context.Context, userID uint64, from, to time.Time) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	orders := []models.Order{}
	for k, o := range m.orders {
		if k.userID == userID && !k.day.Before(from) && k.day.Before(to) {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (m *memOrderRepo) FinalizeOrders(_ context.Context, day time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for k, o := range m.orders {
		if k.day.Equal(models.Day(day)) && o.Status == models.StatusPending && !o.Canceled {
			o.Status = models.StatusSent
			m.orders[k] = o
			n++
		}
	}
	return n, nil
}

func (m *memOrderRepo) UpdateOrder(_ context.Context, id uint64, fn func(order *models.Order) error) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, o := range m.orders {
		if o.ID != id {
			continue
		}
		if err := fn(&o); err != nil {
			return nil, err
		}
		m.orders[k] = o
		return &o, nil
	}
	return nil, models.ErrDataNotFound
}

func (m *memOrderRepo) ListOrders(_ context.Context, filter models.OrderFilter) ([]models.OrderEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := []models.OrderEntry{}
	for _, o := range m.orders {
		switch {
		case !filter.Date.IsZero() && !o.OrderDate.Equal(models.Day(filter.Date)):
			continue
		case filter.Vendor != "" && o.Vendor != filter.Vendor:
			continue
		case filter.RiceSize != "" && o.RiceSize != filter.RiceSize:
			continue
		case filter.Canceled != nil && o.Canceled != *filter.Canceled:
			continue
		case filter.Login != "" && !strings.Contains(m.logins[o.UserID], filter.Login):
			continue
		}
		entries = append(entries, models.OrderEntry{Order: o, Login: m.logins[o.UserID]})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (m *memOrderRepo) all() []models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()

	orders := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		orders = append(orders, o)
	}
	return orders
}

func (m *memOrderRepo) put(o models.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	o.ID = m.nextID
	o.OrderDate = models.Day(o.OrderDate)
	m.orders[orderKey{userID: o.UserID, day: o.OrderDate}] = o
}

func (m *memOrderRepo) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

type memConfigRepo struct {
	cfg    *models.LunchConfig
	err    error
	writes int
}

func (m *memConfigRepo) GetConfig(context.Context) (models.LunchConfig, error) {
	if m.err != nil {
		return models.LunchConfig{}, m.err
	}
	if m.cfg == nil {
		return models.LunchConfig{}, models.ErrDataNotFound
	}
	return *m.cfg, nil
}

func (m *memConfigRepo) CreateConfigIfAbsent(_ context.Context, cfg models.LunchConfig) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if m.cfg != nil {
		return false, nil
	}
	m.cfg = &cfg
	m.writes++
	return true, nil
}

func (m *memConfigRepo) UpdateConfig(_ context.Context, cfg models.LunchConfig) (models.LunchConfig, error) {
	if m.err != nil {
		return models.LunchConfig{}, m.err
	}
	m.cfg = &cfg
	m.writes++
	return cfg, nil
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]models.User{}}
}

func (m *memUserRepo) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.Login]; ok {
		return nil, models.ErrConflictData
	}
	u := *user
	u.ID = uint64(len(m.users) + 1)
	m.users[u.Login] = u
	return &u, nil
}

func (m *memUserRepo) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[login]
	if !ok {
		return nil, models.ErrDataNotFound
	}
	return &u, nil
}

func (m *memUserRepo) GetUserByID(_ context.Context, id uint64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, models.ErrDataNotFound
}
