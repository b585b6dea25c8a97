package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rookgm/lunchorder/internal/eligibility"
	"github.com/rookgm/lunchorder/internal/models"
	"github.com/rookgm/lunchorder/internal/summary"
)

// ReportRepository is interface for reading report data
type ReportRepository interface {
	// MonthSnapshot reads users, active orders in [from, to) and lunch config consistently
	MonthSnapshot(ctx context.Context, from, to time.Time) (*models.MonthSnapshot, error)
	// GetActiveOrdersByDate returns active orders of all users on day
	GetActiveOrdersByDate(ctx context.Context, day time.Time) ([]models.Order, error)
}

// ReportService implements ReportService interface
type ReportService struct {
	repo   ReportRepository
	policy eligibility.Policy
	now    func() time.Time
}

// NewReportService creates new ReportService instance
func NewReportService(repo ReportRepository, policy eligibility.Policy) *ReportService {
	return &ReportService{
		repo:   repo,
		policy: policy,
		now:    time.Now,
	}
}

// Monthly returns monthly report. Zero year or month means current one.
func (rs *ReportService) Monthly(ctx context.Context, year int, month time.Month) (*models.MonthlyReport, error) {
	today := rs.policy.Today(rs.now())
	if year == 0 {
		year = today.Year()
	}
	if month == 0 {
		month = today.Month()
	}
	if year < 1 || year > 9999 || month < time.January || month > time.December {
		return nil, models.ErrInvalidDate
	}

	from := models.Date(year, month, 1)
	snap, err := rs.repo.MonthSnapshot(ctx, from, from.AddDate(0, 1, 0))
	if err != nil {
		return nil, fmt.Errorf("read month snapshot: %w", err)
	}

	report := summary.Monthly(year, month, *snap)
	return &report, nil
}

// Fax returns daily order sheet of day. Zero day means today.
func (rs *ReportService) Fax(ctx context.Context, day time.Time) (*models.FaxSheet, error) {
	if day.IsZero() {
		day = rs.policy.Today(rs.now())
	}

	orders, err := rs.repo.GetActiveOrdersByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("read orders: %w", err)
	}

	sheet := summary.Fax(day, orders)
	return &sheet, nil
}
