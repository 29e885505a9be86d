package usecases

import (
	"context"
	"errors"
	"fmt"

	"lumen/internal/domain/subscription"
	"lumen/internal/shared/logger"
)

type GetSubscriptionCommand struct {
	UserID uint
}

// SubscriptionDTO is the API view of a subscription. Period bounds are epoch
// seconds.
type SubscriptionDTO struct {
	ID                 string `json:"id"`
	PlanID             string `json:"plan_id"`
	PlanKey            string `json:"plan_key"`
	PlanName           string `json:"plan_name"`
	Interval           string `json:"interval"`
	Currency           string `json:"currency"`
	Status             string `json:"status"`
	CurrentPeriodStart int64  `json:"current_period_start"`
	CurrentPeriodEnd   int64  `json:"current_period_end"`
	CancelAtPeriodEnd  bool   `json:"cancel_at_period_end"`
}

// GetSubscriptionResult carries the user's subscription, nil when none exists.
type GetSubscriptionResult struct {
	Subscription *SubscriptionDTO `json:"subscription"`
}

type GetSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	planRepo         subscription.PlanRepository
	logger           logger.Interface
}

func NewGetSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	planRepo subscription.PlanRepository,
	logger logger.Interface,
) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		logger:           logger,
	}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, cmd GetSubscriptionCommand) (*GetSubscriptionResult, error) {
	sub, err := uc.subscriptionRepo.GetByUserID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return &GetSubscriptionResult{}, nil
	}

	dto := &SubscriptionDTO{
		ID:                 sub.SID(),
		Interval:           sub.Interval().String(),
		Currency:           sub.Currency(),
		Status:             sub.Status().String(),
		CurrentPeriodStart: sub.CurrentPeriodStart().Unix(),
		CurrentPeriodEnd:   sub.CurrentPeriodEnd().Unix(),
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd(),
	}

	plan, err := uc.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		if !errors.Is(err, subscription.ErrPlanNotFound) {
			return nil, fmt.Errorf("failed to get plan: %w", err)
		}
		uc.logger.Warnw("subscription references missing plan",
			"subscription_id", sub.SID(),
			"plan_id", sub.PlanID(),
		)
	} else {
		dto.PlanID = plan.SID()
		dto.PlanKey = plan.Key()
		dto.PlanName = plan.Name()
	}

	return &GetSubscriptionResult{Subscription: dto}, nil
}
