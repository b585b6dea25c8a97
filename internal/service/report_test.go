package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rookgm/lunchorder/internal/eligibility"
	"github.com/rookgm/lunchorder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memReportRepo struct {
	snap     models.MonthSnapshot
	err      error
	from, to time.Time
}

func (m *memReportRepo) MonthSnapshot(_ context.Context, from, to time.Time) (*models.MonthSnapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.from, m.to = from, to
	snap := m.snap
	return &snap, nil
}

func (m *memReportRepo) GetActiveOrdersByDate(_ context.Context, day time.Time) ([]models.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	orders := []models.Order{}
	for _, o := range m.snap.Orders {
		if models.Day(o.OrderDate).Equal(models.Day(day)) && !o.Canceled {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func newTestReportService(t *testing.T, repo ReportRepository, now time.Time) *ReportService {
	t.Helper()

	policy, err := eligibility.NewPolicy(eligibility.DefaultWindowDays, eligibility.DefaultCutoff, tokyo)
	require.NoError(t, err)

	svc := NewReportService(repo, policy)
	svc.now = func() time.Time { return now }
	return svc
}

func TestReportService_Monthly(t *testing.T) {
	cfg := models.LunchConfig{Price: 430, Subsidy: 200, MonthlyLimit: 3780}
	var orders []models.Order
	for d := 1; d <= 20; d++ {
		orders = append(orders, models.Order{
			UserID:    1,
			OrderDate: models.Date(2025, time.July, d),
			Vendor:    models.VendorVeg17,
			Price:     430,
		})
	}
	repo := &memReportRepo{snap: models.MonthSnapshot{
		Users:  []models.User{{ID: 1, Login: "yamada"}},
		Orders: orders,
		Config: cfg,
	}}
	svc := newTestReportService(t, repo, monday(12, 0))

	report, err := svc.Monthly(context.Background(), 0, 0)
	require.NoError(t, err)

	assert.Equal(t, models.Date(2025, time.July, 1), repo.from)
	assert.Equal(t, models.Date(2025, time.August, 1), repo.to)
	assert.Equal(t, 31, report.Days)
	require.Len(t, report.Users, 1)

	want := models.Amounts{
		Quantity:     20,
		TotalPrice:   8600,
		TotalSubsidy: 4000,
		Limit:        3780,
		CompanyPay:   3780,
		Over:         220,
		UserPay:      4820,
	}
	if diff := cmp.Diff(want, report.Users[0].Amounts); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 20, report.Vendors[0].Count)
	assert.Equal(t, int64(8600), report.Vendors[0].Amount)
}

func TestReportService_MonthlyErrors(t *testing.T) {
	svc := newTestReportService(t, &memReportRepo{}, monday(12, 0))
	_, err := svc.Monthly(context.Background(), 2025, 0)
	assert.NoError(t, err)

	_, err = svc.Monthly(context.Background(), 2025, 13)
	assert.ErrorIs(t, err, models.ErrInvalidDate)

	dbErr := errors.New("connection reset")
	svc = newTestReportService(t, &memReportRepo{err: dbErr}, monday(12, 0))
	_, err = svc.Monthly(context.Background(), 2025, time.July)
	assert.ErrorIs(t, err, dbErr)
}

func TestReportService_Fax(t *testing.T) {
	today := models.Date(2025, time.July, 7)
	repo := &memReportRepo{snap: models.MonthSnapshot{Orders: []models.Order{
		{OrderDate: today, RiceSize: models.RiceLarge},
		{OrderDate: today, RiceSize: models.RiceSmall},
		{OrderDate: today, RiceSize: models.RiceSmall},
		{OrderDate: today, RiceSize: models.RiceMedium, Canceled: true},
		{OrderDate: today.AddDate(0, 0, 1), RiceSize: models.RiceMedium},
	}}}
	svc := newTestReportService(t, repo, monday(7, 30))

	sheet, err := svc.Fax(context.Background(), time.Time{})
	require.NoError(t, err)

	want := &models.FaxSheet{Date: today, Large: 1, Medium: 0, Small: 2}
	if diff := cmp.Diff(want, sheet); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	sheet, err = svc.Fax(context.Background(), today.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, sheet.Medium)
}
