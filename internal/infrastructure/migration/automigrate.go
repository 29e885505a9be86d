package migration

import (
	"lumen/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.PaymentTransactionModel{},
		&models.SubscriptionModel{},
		&models.PlanModel{},
	}
}
