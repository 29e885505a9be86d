package models

import (
	"time"

	"gorm.io/datatypes"
)

// PlanModel is the persistence model for catalog plans. Prices holds the
// interval -> currency -> price table as JSON.
type PlanModel struct {
	ID          uint   `gorm:"primarykey"`
	SID         string `gorm:"uniqueIndex;not null;size:32"`
	Key         string `gorm:"column:plan_key;uniqueIndex;not null;size:50"`
	Name        string `gorm:"not null;size:100"`
	Description string `gorm:"size:500"`
	Prices      datatypes.JSON
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PlanModel) TableName() string {
	return "plans"
}
