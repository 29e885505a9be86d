package valueobjects

// SubscriptionStatus is the lifecycle status of a subscription record.
// This core only ever writes active; cancellation flows live elsewhere.
type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "active"
	StatusCanceled SubscriptionStatus = "canceled"
	StatusExpired  SubscriptionStatus = "expired"
)

var validSubscriptionStatuses = map[SubscriptionStatus]bool{
	StatusActive:   true,
	StatusCanceled: true,
	StatusExpired:  true,
}

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) IsValid() bool {
	return validSubscriptionStatuses[s]
}
