package subscription

import (
	"fmt"
	"time"

	"lumen/internal/domain/subscription/valueobjects"
	"lumen/internal/shared/biztime"
	"lumen/internal/shared/id"
)

// Subscription is the subscription aggregate. Each user holds at most one
// subscription record; plan changes update the existing record in place.
type Subscription struct {
	id                 uint
	sid                string
	userID             uint
	planID             uint
	interval           valueobjects.BillingInterval
	currency           string
	status             valueobjects.SubscriptionStatus
	currentPeriodStart time.Time
	currentPeriodEnd   time.Time
	cancelAtPeriodEnd  bool
	billingRef         string
	priceRef           string
	version            int
	createdAt          time.Time
	updatedAt          time.Time
}

// NewSubscription creates an active subscription covering the given period.
func NewSubscription(
	userID, planID uint,
	interval valueobjects.BillingInterval,
	currency string,
	billingRef, priceRef string,
	periodStart, periodEnd time.Time,
) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !interval.IsValid() {
		return nil, fmt.Errorf("invalid billing interval: %s", interval)
	}
	if currency == "" {
		return nil, fmt.Errorf("currency is required")
	}
	if !periodEnd.After(periodStart) {
		return nil, fmt.Errorf("period end must be after period start")
	}

	now := biztime.NowUTC()
	return &Subscription{
		sid:                id.NewSubscriptionID(),
		userID:             userID,
		planID:             planID,
		interval:           interval,
		currency:           currency,
		status:             valueobjects.StatusActive,
		currentPeriodStart: biztime.ToUTC(periodStart),
		currentPeriodEnd:   biztime.ToUTC(periodEnd),
		cancelAtPeriodEnd:  false,
		billingRef:         billingRef,
		priceRef:           priceRef,
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// ReconstructSubscription rebuilds a subscription from persistence.
func ReconstructSubscription(
	subID uint,
	sid string,
	userID uint,
	planID uint,
	interval valueobjects.BillingInterval,
	currency string,
	status valueobjects.SubscriptionStatus,
	currentPeriodStart time.Time,
	currentPeriodEnd time.Time,
	cancelAtPeriodEnd bool,
	billingRef string,
	priceRef string,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) *Subscription {
	return &Subscription{
		id:                 subID,
		sid:                sid,
		userID:             userID,
		planID:             planID,
		interval:           interval,
		currency:           currency,
		status:             status,
		currentPeriodStart: currentPeriodStart,
		currentPeriodEnd:   currentPeriodEnd,
		cancelAtPeriodEnd:  cancelAtPeriodEnd,
		billingRef:         billingRef,
		priceRef:           priceRef,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// ActivatePlan switches the subscription to the given plan and resets the
// billing period. Identity fields, the billing reference, and the
// cancel-at-period-end flag are preserved.
func (s *Subscription) ActivatePlan(planID uint, priceRef string, periodStart, periodEnd time.Time) error {
	if planID == 0 {
		return fmt.Errorf("plan ID is required")
	}
	if !periodEnd.After(periodStart) {
		return fmt.Errorf("period end must be after period start")
	}
	s.planID = planID
	s.priceRef = priceRef
	s.status = valueobjects.StatusActive
	s.currentPeriodStart = biztime.ToUTC(periodStart)
	s.currentPeriodEnd = biztime.ToUTC(periodEnd)
	s.version++
	s.updatedAt = biztime.NowUTC()
	return nil
}

func (s *Subscription) ID() uint                                    { return s.id }
func (s *Subscription) SID() string                                 { return s.sid }
func (s *Subscription) UserID() uint                                { return s.userID }
func (s *Subscription) PlanID() uint                                { return s.planID }
func (s *Subscription) Interval() valueobjects.BillingInterval      { return s.interval }
func (s *Subscription) Currency() string                            { return s.currency }
func (s *Subscription) Status() valueobjects.SubscriptionStatus     { return s.status }
func (s *Subscription) CurrentPeriodStart() time.Time               { return s.currentPeriodStart }
func (s *Subscription) CurrentPeriodEnd() time.Time                 { return s.currentPeriodEnd }
func (s *Subscription) CancelAtPeriodEnd() bool                     { return s.cancelAtPeriodEnd }
func (s *Subscription) BillingRef() string                          { return s.billingRef }
func (s *Subscription) PriceRef() string                            { return s.priceRef }
func (s *Subscription) Version() int                                { return s.version }
func (s *Subscription) CreatedAt() time.Time                        { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time                        { return s.updatedAt }

// SetID assigns the database identity after insert.
func (s *Subscription) SetID(subID uint) { s.id = subID }

func (s *Subscription) IsActive() bool {
	return s.status == valueobjects.StatusActive
}
