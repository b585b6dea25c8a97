package models

import (
	"math"
	"time"
)

// MaxAmount is the largest yen amount the integer columns can hold
const MaxAmount = math.MaxInt32

// LunchConfig contains pricing and subsidy settings
type LunchConfig struct {
	Price        int64
	Subsidy      int64
	MonthlyLimit int64
	UpdatedAt    time.Time
}

// Validate checks that all amounts are within [0, MaxAmount]
func (c LunchConfig) Validate() error {
	for _, v := range []int64{c.Price, c.Subsidy, c.MonthlyLimit} {
		if v < 0 || v > MaxAmount {
			return ErrInvalidConfig
		}
	}
	return nil
}
