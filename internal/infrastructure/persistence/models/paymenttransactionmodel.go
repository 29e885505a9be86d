package models

import "time"

// PaymentTransactionModel is the persistence model for payment transactions.
// This is the anti-corruption layer between domain and database.
type PaymentTransactionModel struct {
	ID               uint    `gorm:"primarykey"`
	SID              string  `gorm:"uniqueIndex;not null;size:32"`
	UserID           uint    `gorm:"index;not null"`
	PlanID           uint    `gorm:"not null"`
	Interval         string  `gorm:"not null;size:10"`
	Amount           int64   `gorm:"not null"`
	Currency         string  `gorm:"not null;size:8"`
	Status           string  `gorm:"index;not null;size:20;default:pending"`
	GatewayInvoiceID *string `gorm:"index;size:64"`
	RedirectURL      *string `gorm:"size:512"`
	GatewayStatus    *string `gorm:"size:32"`
	VerifiedAt       *time.Time
	Version          int `gorm:"not null;default:1"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (PaymentTransactionModel) TableName() string {
	return "payment_transactions"
}
