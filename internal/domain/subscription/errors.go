package subscription

import "errors"

var (
	// ErrPlanNotFound is returned when no plan matches the lookup.
	ErrPlanNotFound = errors.New("plan not found")

	// ErrSubscriptionNotFound is returned when no subscription matches the lookup.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)
