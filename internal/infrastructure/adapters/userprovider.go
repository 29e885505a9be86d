package adapters

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// GormUserProvider answers user-existence checks against the users table.
// Billing does not own user records; the table is managed by the identity
// service and only read here.
type GormUserProvider struct {
	db *gorm.DB
}

func NewGormUserProvider(database *gorm.DB) *GormUserProvider {
	return &GormUserProvider{db: database}
}

func (p *GormUserProvider) Exists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	if err := p.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}
