package models

import "time"

// Amounts are monthly aggregate columns of the report.
// TotalPrice == UserPay + CompanyPay and TotalSubsidy == CompanyPay + Over.
type Amounts struct {
	Quantity     int
	TotalPrice   int64
	TotalSubsidy int64
	Limit        int64
	CompanyPay   int64
	Over         int64
	UserPay      int64
}

// UserSummary is one user row of the monthly report
type UserSummary struct {
	UserID uint64
	Name   string
	// Flags[i] is 1 when user has an active order on day i+1
	Flags []int
	Amounts
}

// OrganizationTotals is the totals row of the monthly report
type OrganizationTotals struct {
	// Daily[i] is number of active orders on day i+1
	Daily []int
	Amounts
}

// VendorTotal is vendor breakdown line
type VendorTotal struct {
	Vendor Vendor
	Count  int
	// Amount is sum of price snapshots stored on orders
	Amount int64
}

// MonthlyReport is payload of the monthly report
type MonthlyReport struct {
	Year    int
	Month   time.Month
	Days    int
	Config  LunchConfig
	Users   []UserSummary
	Totals  OrganizationTotals
	Vendors []VendorTotal
}

// MonthSnapshot is consistent read of everything the monthly report needs
type MonthSnapshot struct {
	Users  []User
	Orders []Order
	Config LunchConfig
}

// FaxSheet is daily order sheet sent to the vendor
type FaxSheet struct {
	Date   time.Time
	Large  int
	Medium int
	Small  int
}

// Total returns number of lunch boxes
func (f FaxSheet) Total() int {
	return f.Large + f.Medium + f.Small
}
