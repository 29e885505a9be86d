package mappers

import (
	"lumen/internal/domain/subscription"
	"lumen/internal/domain/subscription/valueobjects"
	"lumen/internal/infrastructure/persistence/models"
)

// SubscriptionToModel converts a subscription aggregate to its persistence model.
func SubscriptionToModel(sub *subscription.Subscription) *models.SubscriptionModel {
	if sub == nil {
		return nil
	}
	return &models.SubscriptionModel{
		ID:                 sub.ID(),
		SID:                sub.SID(),
		UserID:             sub.UserID(),
		PlanID:             sub.PlanID(),
		Interval:           sub.Interval().String(),
		Currency:           sub.Currency(),
		Status:             sub.Status().String(),
		CurrentPeriodStart: sub.CurrentPeriodStart(),
		CurrentPeriodEnd:   sub.CurrentPeriodEnd(),
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd(),
		BillingRef:         sub.BillingRef(),
		PriceRef:           sub.PriceRef(),
		Version:            sub.Version(),
		CreatedAt:          sub.CreatedAt(),
		UpdatedAt:          sub.UpdatedAt(),
	}
}

// SubscriptionToDomain converts a persistence model back to the aggregate.
func SubscriptionToDomain(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}
	return subscription.ReconstructSubscription(
		model.ID,
		model.SID,
		model.UserID,
		model.PlanID,
		valueobjects.BillingInterval(model.Interval),
		model.Currency,
		valueobjects.SubscriptionStatus(model.Status),
		model.CurrentPeriodStart,
		model.CurrentPeriodEnd,
		model.CancelAtPeriodEnd,
		model.BillingRef,
		model.PriceRef,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}
