package valueobjects

import (
	"fmt"
	"time"
)

// BillingInterval is the recurring period unit a price applies to.
type BillingInterval string

const (
	IntervalMonth BillingInterval = "month"
	IntervalYear  BillingInterval = "year"
)

// ParseBillingInterval validates and converts a raw interval string.
func ParseBillingInterval(raw string) (BillingInterval, error) {
	switch BillingInterval(raw) {
	case IntervalMonth:
		return IntervalMonth, nil
	case IntervalYear:
		return IntervalYear, nil
	default:
		return "", fmt.Errorf("invalid billing interval: %s", raw)
	}
}

func (i BillingInterval) String() string {
	return string(i)
}

func (i BillingInterval) IsValid() bool {
	return i == IntervalMonth || i == IntervalYear
}

// PeriodDuration returns the fixed-length billing period for the interval:
// 30 days for month, 365 days for year. This is a deliberate approximation,
// not calendar-accurate month/year arithmetic.
func (i BillingInterval) PeriodDuration() time.Duration {
	if i == IntervalYear {
		return 365 * 24 * time.Hour
	}
	return 30 * 24 * time.Hour
}
