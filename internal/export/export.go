// Package export renders reports as CSV tables.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rookgm/lunchorder/internal/models"
)

// aggregate column headers in fixed order
var aggregateHeader = []string{"注文数", "合計金額", "補助額", "上限", "会社負担", "超過", "実費"}

// MonthlyFilename returns file name of monthly report
func MonthlyFilename(r *models.MonthlyReport) string {
	return fmt.Sprintf("lunch_report_%04d%02d.csv", r.Year, int(r.Month))
}

// FaxFilename returns file name of daily fax sheet
func FaxFilename(f *models.FaxSheet) string {
	return f.Date.Format("lunch_order_20060102.csv")
}

// WriteMonthly writes monthly report: header, one row per user, totals row,
// then vendor block after a blank line.
func WriteMonthly(w io.Writer, r *models.MonthlyReport) error {
	cw := csv.NewWriter(w)

	width := 2 + r.Days + len(aggregateHeader)

	header := make([]string, 0, width)
	header = append(header, "コード", "氏名")
	for d := 1; d <= r.Days; d++ {
		header = append(header, fmt.Sprintf("%d日", d))
	}
	header = append(header, aggregateHeader...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, u := range r.Users {
		row := make([]string, 0, width)
		row = append(row, strconv.FormatUint(u.UserID, 10), u.Name)
		row = appendInts(row, u.Flags)
		row = appendAmounts(row, u.Amounts)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	totals := make([]string, 0, width)
	totals = append(totals, "", "合計")
	totals = appendInts(totals, r.Totals.Daily)
	totals = appendAmounts(totals, r.Totals.Amounts)
	if err := cw.Write(totals); err != nil {
		return err
	}

	if err := cw.Write(make([]string, width)); err != nil {
		return err
	}
	title := make([]string, width)
	title[0] = "≪ベンダー集計≫"
	if err := cw.Write(title); err != nil {
		return err
	}
	for _, v := range r.Vendors {
		row := make([]string, width)
		row[1] = v.Vendor.Label()
		row[2+r.Days] = strconv.Itoa(v.Count)
		row[3+r.Days] = strconv.FormatInt(v.Amount, 10)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFax writes fax sheet as named cells
func WriteFax(w io.Writer, f *models.FaxSheet) error {
	cw := csv.NewWriter(w)

	records := [][]string{
		{"date", f.Date.Format(models.DateLayout)},
		{"large", strconv.Itoa(f.Large)},
		{"medium", strconv.Itoa(f.Medium)},
		{"small", strconv.Itoa(f.Small)},
		{"total", strconv.Itoa(f.Total())},
	}
	if err := cw.WriteAll(records); err != nil {
		return err
	}

	return cw.Error()
}

func appendInts(row []string, values []int) []string {
	for _, v := range values {
		row = append(row, strconv.Itoa(v))
	}
	return row
}

func appendAmounts(row []string, a models.Amounts) []string {
	return append(row,
		strconv.Itoa(a.Quantity),
		strconv.FormatInt(a.TotalPrice, 10),
		strconv.FormatInt(a.TotalSubsidy, 10),
		strconv.FormatInt(a.Limit, 10),
		strconv.FormatInt(a.CompanyPay, 10),
		strconv.FormatInt(a.Over, 10),
		strconv.FormatInt(a.UserPay, 10),
	)
}
