package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rookgm/lunchorder/internal/export"
	"github.com/rookgm/lunchorder/internal/logger"
	"github.com/rookgm/lunchorder/internal/models"
	"go.uber.org/zap"
)

type ReportService interface {
	// Monthly returns monthly report
	Monthly(ctx context.Context, year int, month time.Month) (*models.MonthlyReport, error)
	// Fax returns daily order sheet
	Fax(ctx context.Context, day time.Time) (*models.FaxSheet, error)
}

// ReportHandler represents HTTP handler for report-related requests
type ReportHandler struct {
	svc ReportService
}

// NewReportHandler creates new ReportHandler instance
func NewReportHandler(svc ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

const (
	formatJSON = "json"
	formatCSV  = "csv"
)

type amountsResponse struct {
	Quantity     int   `json:"quantity"`
	TotalPrice   int64 `json:"total_price"`
	TotalSubsidy int64 `json:"total_subsidy"`
	Limit        int64 `json:"limit"`
	CompanyPay   int64 `json:"company_pay"`
	Over         int64 `json:"over"`
	UserPay      int64 `json:"user_pay"`
}

type userSummaryResponse struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Flags []int  `json:"flags"`
	amountsResponse
}

type totalsResponse struct {
	Daily []int `json:"daily"`
	amountsResponse
}

type vendorResponse struct {
	Vendor string `json:"vendor"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Amount int64  `json:"amount"`
}

type monthlyResponse struct {
	Year    int                   `json:"year"`
	Month   int                   `json:"month"`
	Days    int                   `json:"days"`
	Config  configResponse        `json:"config"`
	Users   []userSummaryResponse `json:"users"`
	Totals  totalsResponse        `json:"totals"`
	Vendors []vendorResponse      `json:"vendors"`
}

func newAmountsResponse(a models.Amounts) amountsResponse {
	return amountsResponse{
		Quantity:     a.Quantity,
		TotalPrice:   a.TotalPrice,
		TotalSubsidy: a.TotalSubsidy,
		Limit:        a.Limit,
		CompanyPay:   a.CompanyPay,
		Over:         a.Over,
		UserPay:      a.UserPay,
	}
}

// MonthlyReport returns monthly report as JSON or CSV attachment
// 200 — успешная обработка запроса;
// 400 — неверный год, месяц или формат;
// 500 — внутренняя ошибка сервера.
func (rh *ReportHandler) MonthlyReport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		format, ok := parseFormat(q.Get("format"))
		if !ok {
			writeError(w, http.StatusBadRequest, errKindBadRequest, "format must be json or csv")
			return
		}

		year, month, err := parseYearMonth(q.Get("year"), q.Get("month"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		report, err := rh.svc.Monthly(r.Context(), year, month)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		if format == formatCSV {
			writeCSV(w, export.MonthlyFilename(report), func(w http.ResponseWriter) error {
				return export.WriteMonthly(w, report)
			})
			return
		}

		resp := monthlyResponse{
			Year:    report.Year,
			Month:   int(report.Month),
			Days:    report.Days,
			Config:  newConfigResponse(report.Config),
			Users:   make([]userSummaryResponse, 0, len(report.Users)),
			Totals:  totalsResponse{Daily: report.Totals.Daily, amountsResponse: newAmountsResponse(report.Totals.Amounts)},
			Vendors: make([]vendorResponse, 0, len(report.Vendors)),
		}
		for _, u := range report.Users {
			resp.Users = append(resp.Users, userSummaryResponse{
				ID:              u.UserID,
				Name:            u.Name,
				Flags:           u.Flags,
				amountsResponse: newAmountsResponse(u.Amounts),
			})
		}
		for _, v := range report.Vendors {
			resp.Vendors = append(resp.Vendors, vendorResponse{
				Vendor: string(v.Vendor),
				Name:   v.Vendor.Label(),
				Count:  v.Count,
				Amount: v.Amount,
			})
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

type faxResponse struct {
	Date   string `json:"date"`
	Large  int    `json:"large"`
	Medium int    `json:"medium"`
	Small  int    `json:"small"`
	Total  int    `json:"total"`
}

// FaxSheet returns daily order sheet, today unless date is given
// 200 — успешная обработка запроса;
// 400 — неверная дата или формат;
// 500 — внутренняя ошибка сервера.
func (rh *ReportHandler) FaxSheet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		format, ok := parseFormat(q.Get("format"))
		if !ok {
			writeError(w, http.StatusBadRequest, errKindBadRequest, "format must be json or csv")
			return
		}

		var day time.Time
		if s := q.Get("date"); s != "" {
			d, err := models.ParseDate(s)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			day = d
		}

		sheet, err := rh.svc.Fax(r.Context(), day)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		if format == formatCSV {
			writeCSV(w, export.FaxFilename(sheet), func(w http.ResponseWriter) error {
				return export.WriteFax(w, sheet)
			})
			return
		}

		writeJSON(w, http.StatusOK, faxResponse{
			Date:   sheet.Date.Format(models.DateLayout),
			Large:  sheet.Large,
			Medium: sheet.Medium,
			Small:  sheet.Small,
			Total:  sheet.Total(),
		})
	}
}

func parseFormat(s string) (string, bool) {
	switch s {
	case "", formatJSON:
		return formatJSON, true
	case formatCSV:
		return formatCSV, true
	default:
		return "", false
	}
}

func writeCSV(w http.ResponseWriter, filename string, write func(w http.ResponseWriter) error) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)

	if err := write(w); err != nil {
		logger.Log.Error("write csv", zap.String("file", filename), zap.Error(err))
	}
}
