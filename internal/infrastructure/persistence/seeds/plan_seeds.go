package seeds

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domainsub "lumen/internal/domain/subscription"
	"lumen/internal/domain/subscription/valueobjects"
	"lumen/internal/infrastructure/repository"
)

// SeedPlans inserts the default plan catalog. Existing plans are left
// untouched so the seeder is safe to run repeatedly.
func SeedPlans(ctx context.Context, db *gorm.DB) error {
	planRepo := repository.NewPlanRepository(db)

	catalog := []struct {
		key         string
		name        string
		description string
		prices      domainsub.PriceTable
	}{
		{
			key:         domainsub.KeyFree,
			name:        "Free",
			description: "Get started at no cost",
			prices:      nil,
		},
		{
			key:         domainsub.KeyPro,
			name:        "Pro",
			description: "Full access for professionals",
			prices: domainsub.PriceTable{
				valueobjects.IntervalMonth: {
					"usd": {PriceRef: "price_pro_month_usd", Amount: 1990},
					"eur": {PriceRef: "price_pro_month_eur", Amount: 1990},
				},
				valueobjects.IntervalYear: {
					"usd": {PriceRef: "price_pro_year_usd", Amount: 19990},
					"eur": {PriceRef: "price_pro_year_eur", Amount: 19990},
				},
			},
		},
	}

	for _, entry := range catalog {
		_, err := planRepo.GetByKey(ctx, entry.key)
		if err == nil {
			continue
		}
		if !errors.Is(err, domainsub.ErrPlanNotFound) {
			return err
		}

		plan, err := domainsub.NewPlan(entry.key, entry.name, entry.description, entry.prices)
		if err != nil {
			return err
		}
		if err := planRepo.Create(ctx, plan); err != nil {
			return err
		}
	}

	return nil
}
