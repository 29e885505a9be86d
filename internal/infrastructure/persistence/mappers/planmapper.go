package mappers

import (
	"encoding/json"
	"fmt"

	"lumen/internal/domain/subscription"
	"lumen/internal/infrastructure/persistence/models"
)

// PlanToModel converts a plan entity to its persistence model. The price
// table is stored as JSON.
func PlanToModel(plan *subscription.Plan) (*models.PlanModel, error) {
	if plan == nil {
		return nil, nil
	}
	prices, err := json.Marshal(plan.Prices())
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan prices: %w", err)
	}
	return &models.PlanModel{
		ID:          plan.ID(),
		SID:         plan.SID(),
		Key:         plan.Key(),
		Name:        plan.Name(),
		Description: plan.Description(),
		Prices:      prices,
		CreatedAt:   plan.CreatedAt(),
		UpdatedAt:   plan.UpdatedAt(),
	}, nil
}

// PlanToDomain converts a persistence model back to the plan entity.
func PlanToDomain(model *models.PlanModel) (*subscription.Plan, error) {
	if model == nil {
		return nil, nil
	}
	var prices subscription.PriceTable
	if len(model.Prices) > 0 {
		if err := json.Unmarshal(model.Prices, &prices); err != nil {
			return nil, fmt.Errorf("failed to decode plan prices: %w", err)
		}
	}
	return subscription.ReconstructPlan(
		model.ID,
		model.SID,
		model.Key,
		model.Name,
		model.Description,
		prices,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}
