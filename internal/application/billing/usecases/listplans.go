package usecases

import (
	"context"
	"fmt"

	"lumen/internal/domain/subscription"
	"lumen/internal/shared/logger"
)

// PriceDTO is the API view of a price point.
type PriceDTO struct {
	PriceRef string `json:"price_ref"`
	Amount   int64  `json:"amount"`
}

// PlanDTO is the API view of a catalog plan.
type PlanDTO struct {
	ID          string                         `json:"id"`
	Key         string                         `json:"key"`
	Name        string                         `json:"name"`
	Description string                         `json:"description,omitempty"`
	Free        bool                           `json:"free"`
	Prices      map[string]map[string]PriceDTO `json:"prices"`
}

type ListPlansResult struct {
	Plans []PlanDTO `json:"plans"`
}

type ListPlansUseCase struct {
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

func NewListPlansUseCase(planRepo subscription.PlanRepository, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *ListPlansUseCase) Execute(ctx context.Context) (*ListPlansResult, error) {
	plans, err := uc.planRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	dtos := make([]PlanDTO, 0, len(plans))
	for _, plan := range plans {
		prices := make(map[string]map[string]PriceDTO, len(plan.Prices()))
		for interval, byCurrency := range plan.Prices() {
			row := make(map[string]PriceDTO, len(byCurrency))
			for currency, price := range byCurrency {
				row[currency] = PriceDTO{PriceRef: price.PriceRef, Amount: price.Amount}
			}
			prices[interval.String()] = row
		}
		dtos = append(dtos, PlanDTO{
			ID:          plan.SID(),
			Key:         plan.Key(),
			Name:        plan.Name(),
			Description: plan.Description(),
			Free:        plan.IsFree(),
			Prices:      prices,
		})
	}

	return &ListPlansResult{Plans: dtos}, nil
}
