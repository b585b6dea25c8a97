package models

import "time"

// Status is order lifecycle status
type Status string

// pending — order can still be toggled by the user;
// sent — order has been sent to the vendor by staff and is locked.
const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
)

// Vendor is lunch supplier code
type Vendor string

const (
	VendorVeg17   Vendor = "veg17"
	VendorYamajin Vendor = "yamajin"
	VendorKaachan Vendor = "kaachan"
)

// Vendors lists supplier codes in report order.
var Vendors = []Vendor{VendorVeg17, VendorYamajin, VendorKaachan}

var vendorLabels = map[Vendor]string{
	VendorVeg17:   "ベジタブルディッシュ17",
	VendorYamajin: "やまじん",
	VendorKaachan: "かあちゃんの台所",
}

// Label returns vendor display name
func (v Vendor) Label() string {
	if l, ok := vendorLabels[v]; ok {
		return l
	}
	return string(v)
}

// Valid reports whether v is a known vendor
func (v Vendor) Valid() bool {
	_, ok := vendorLabels[v]
	return ok
}

// RiceSize is rice portion of the lunch box
type RiceSize string

const (
	RiceLarge  RiceSize = "large"
	RiceMedium RiceSize = "medium"
	RiceSmall  RiceSize = "small"
)

var riceSizes = map[RiceSize]struct{}{
	RiceLarge:  {},
	RiceMedium: {},
	RiceSmall:  {},
}

// Valid reports whether r is a known rice size
func (r RiceSize) Valid() bool {
	_, ok := riceSizes[r]
	return ok
}

// defaults for lazily created orders
const (
	DefaultVendor   = VendorVeg17
	DefaultRiceSize = RiceMedium
)

// Order is order entity, one per user per date
type Order struct {
	ID         uint64
	UserID     uint64
	OrderDate  time.Time
	Vendor     Vendor
	RiceSize   RiceSize
	Quantity   int
	Price      int64
	Subsidy    int64
	Status     Status
	Canceled   bool
	CanceledAt *time.Time
	CreatedAt  time.Time
}

// Ordered reports whether order counts as an active order
func (o *Order) Ordered() bool {
	return !o.Canceled
}

// Locked reports whether staff has finalized the order
func (o *Order) Locked() bool {
	return o.Status != StatusPending
}

// order status shown to the user
const (
	OrderStateOrdered  = "ordered"
	OrderStateCanceled = "canceled"
)

// State maps canceled flag to user-facing status
func (o *Order) State() string {
	if o.Canceled {
		return OrderStateCanceled
	}
	return OrderStateOrdered
}

// OrderEntry is order with its owner for the admin order list
type OrderEntry struct {
	Order
	Login    string
	FullName string
}

// OrderFilter narrows the admin order list, zero fields match everything
type OrderFilter struct {
	Date     time.Time
	Vendor   Vendor
	RiceSize RiceSize
	Canceled *bool
	// Login matches a substring of the user login
	Login string
}

// OrderChange is admin edit of an order, empty fields are left unchanged
type OrderChange struct {
	Vendor   Vendor
	RiceSize RiceSize
}

// Validate checks that change sets at least one known field
func (c OrderChange) Validate() error {
	if c.Vendor == "" && c.RiceSize == "" {
		return ErrInvalidOrder
	}
	if c.Vendor != "" && !c.Vendor.Valid() {
		return ErrInvalidOrder
	}
	if c.RiceSize != "" && !c.RiceSize.Valid() {
		return ErrInvalidOrder
	}
	return nil
}

// Apply sets the non-empty fields of c on order
func (c OrderChange) Apply(order *Order) {
	if c.Vendor != "" {
		order.Vendor = c.Vendor
	}
	if c.RiceSize != "" {
		order.RiceSize = c.RiceSize
	}
}
