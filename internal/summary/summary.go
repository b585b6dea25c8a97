// Package summary aggregates per-day order states into the monthly report and the daily fax sheet.
package summary

import (
	"time"

	"github.com/rookgm/lunchorder/internal/models"
)

// Compute applies price, subsidy and the monthly subsidy cap to qty orders.
func Compute(qty int, cfg models.LunchConfig) models.Amounts {
	totalPrice := int64(qty) * cfg.Price
	totalSubsidy := int64(qty) * cfg.Subsidy
	companyPay := min(totalSubsidy, cfg.MonthlyLimit)

	return models.Amounts{
		Quantity:     qty,
		TotalPrice:   totalPrice,
		TotalSubsidy: totalSubsidy,
		Limit:        cfg.MonthlyLimit,
		CompanyPay:   companyPay,
		Over:         max(0, totalSubsidy-cfg.MonthlyLimit),
		UserPay:      totalPrice - companyPay,
	}
}

// inMonth returns day of month of an active order inside year/month, zero otherwise
func inMonth(o *models.Order, year int, month time.Month) int {
	if !o.Ordered() {
		return 0
	}
	d := models.Day(o.OrderDate)
	if d.Year() != year || d.Month() != month {
		return 0
	}
	return d.Day()
}

// UserMonthly builds the report row of user. Each day counts once regardless of
// how many active records the user has on it.
func UserMonthly(user models.User, year int, month time.Month, orders []models.Order, cfg models.LunchConfig) models.UserSummary {
	flags := make([]int, models.DaysIn(year, month))
	for i := range orders {
		if orders[i].UserID != user.ID {
			continue
		}
		if day := inMonth(&orders[i], year, month); day > 0 {
			flags[day-1] = 1
		}
	}

	qty := 0
	for _, f := range flags {
		qty += f
	}

	return models.UserSummary{
		UserID:  user.ID,
		Name:    user.DisplayName(),
		Flags:   flags,
		Amounts: Compute(qty, cfg),
	}
}

// OrganizationDaily counts active records per day across all users and applies
// the same formula to the sum of daily counts.
func OrganizationDaily(year int, month time.Month, orders []models.Order, cfg models.LunchConfig) models.OrganizationTotals {
	daily := make([]int, models.DaysIn(year, month))
	for i := range orders {
		if day := inMonth(&orders[i], year, month); day > 0 {
			daily[day-1]++
		}
	}

	qty := 0
	for _, c := range daily {
		qty += c
	}

	return models.OrganizationTotals{
		Daily:   daily,
		Amounts: Compute(qty, cfg),
	}
}

// VendorBreakdown counts active records and sums their stored price per vendor.
func VendorBreakdown(year int, month time.Month, orders []models.Order) []models.VendorTotal {
	idx := make(map[models.Vendor]int, len(models.Vendors))
	totals := make([]models.VendorTotal, len(models.Vendors))
	for i, v := range models.Vendors {
		idx[v] = i
		totals[i].Vendor = v
	}

	for i := range orders {
		if inMonth(&orders[i], year, month) == 0 {
			continue
		}
		n, ok := idx[orders[i].Vendor]
		if !ok {
			continue
		}
		totals[n].Count++
		totals[n].Amount += orders[i].Price
	}

	return totals
}

// Monthly assembles the monthly report. Users keep the order of snap.Users.
func Monthly(year int, month time.Month, snap models.MonthSnapshot) models.MonthlyReport {
	rows := make([]models.UserSummary, 0, len(snap.Users))
	for _, u := range snap.Users {
		rows = append(rows, UserMonthly(u, year, month, snap.Orders, snap.Config))
	}

	return models.MonthlyReport{
		Year:    year,
		Month:   month,
		Days:    models.DaysIn(year, month),
		Config:  snap.Config,
		Users:   rows,
		Totals:  OrganizationDaily(year, month, snap.Orders, snap.Config),
		Vendors: VendorBreakdown(year, month, snap.Orders),
	}
}

// Fax counts active orders of day by rice size.
func Fax(day time.Time, orders []models.Order) models.FaxSheet {
	day = models.Day(day)
	sheet := models.FaxSheet{Date: day}
	for i := range orders {
		o := &orders[i]
		if !o.Ordered() || !models.Day(o.OrderDate).Equal(day) {
			continue
		}
		switch o.RiceSize {
		case models.RiceLarge:
			sheet.Large++
		case models.RiceMedium:
			sheet.Medium++
		case models.RiceSmall:
			sheet.Small++
		}
	}
	return sheet
}
