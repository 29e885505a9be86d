package models

import "time"

// SubscriptionModel is the persistence model for subscriptions. The unique
// index on UserID enforces one subscription per user at the storage level.
type SubscriptionModel struct {
	ID                 uint   `gorm:"primarykey"`
	SID                string `gorm:"uniqueIndex;not null;size:32"`
	UserID             uint   `gorm:"uniqueIndex;not null"`
	PlanID             uint   `gorm:"not null"`
	Interval           string `gorm:"not null;size:10"`
	Currency           string `gorm:"not null;size:8"`
	Status             string `gorm:"not null;size:20;default:active"`
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	CancelAtPeriodEnd  bool   `gorm:"not null;default:false"`
	BillingRef         string `gorm:"size:64"`
	PriceRef           string `gorm:"size:64"`
	Version            int    `gorm:"not null;default:1"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}
