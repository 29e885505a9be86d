package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/internal/domain/subscription"
	subscriptionvo "lumen/internal/domain/subscription/valueobjects"
	"lumen/internal/shared/logger"
)

func TestGetSubscriptionUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	activeSubscription := func(t *testing.T) *subscription.Subscription {
		t.Helper()
		start := time.Now().UTC()
		sub, err := subscription.NewSubscription(
			7, 2, subscriptionvo.IntervalMonth, "usd",
			"inv_123", "price_pro_month_usd",
			start, start.Add(30*24*time.Hour),
		)
		require.NoError(t, err)
		return sub
	}

	t.Run("returns subscription with plan details", func(t *testing.T) {
		sub := activeSubscription(t)
		subRepo := new(mockSubscriptionRepository)
		planRepo := new(mockPlanRepository)
		subRepo.On("GetByUserID", ctx, uint(7)).Return(sub, nil)
		planRepo.On("GetByID", ctx, uint(2)).Return(testProPlan(), nil)

		uc := NewGetSubscriptionUseCase(subRepo, planRepo, logger.NewLogger())
		result, err := uc.Execute(ctx, GetSubscriptionCommand{UserID: 7})

		require.NoError(t, err)
		require.NotNil(t, result.Subscription)
		dto := result.Subscription
		assert.Equal(t, sub.SID(), dto.ID)
		assert.Equal(t, "plan_pro12345678", dto.PlanID)
		assert.Equal(t, subscription.KeyPro, dto.PlanKey)
		assert.Equal(t, "Pro", dto.PlanName)
		assert.Equal(t, "month", dto.Interval)
		assert.Equal(t, "usd", dto.Currency)
		assert.Equal(t, "active", dto.Status)
		assert.Equal(t, int64(30*24*60*60), dto.CurrentPeriodEnd-dto.CurrentPeriodStart)
		assert.False(t, dto.CancelAtPeriodEnd)
	})

	t.Run("returns empty result when user has no subscription", func(t *testing.T) {
		subRepo := new(mockSubscriptionRepository)
		subRepo.On("GetByUserID", ctx, uint(7)).Return(nil, nil)

		uc := NewGetSubscriptionUseCase(subRepo, new(mockPlanRepository), logger.NewLogger())
		result, err := uc.Execute(ctx, GetSubscriptionCommand{UserID: 7})

		require.NoError(t, err)
		assert.Nil(t, result.Subscription)
	})

	t.Run("tolerates missing plan", func(t *testing.T) {
		sub := activeSubscription(t)
		subRepo := new(mockSubscriptionRepository)
		planRepo := new(mockPlanRepository)
		subRepo.On("GetByUserID", ctx, uint(7)).Return(sub, nil)
		planRepo.On("GetByID", ctx, uint(2)).Return(nil, subscription.ErrPlanNotFound)

		uc := NewGetSubscriptionUseCase(subRepo, planRepo, logger.NewLogger())
		result, err := uc.Execute(ctx, GetSubscriptionCommand{UserID: 7})

		require.NoError(t, err)
		require.NotNil(t, result.Subscription)
		assert.Empty(t, result.Subscription.PlanKey)
		assert.Equal(t, sub.SID(), result.Subscription.ID)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		subRepo := new(mockSubscriptionRepository)
		subRepo.On("GetByUserID", ctx, uint(7)).Return(nil, errors.New("db down"))

		uc := NewGetSubscriptionUseCase(subRepo, new(mockPlanRepository), logger.NewLogger())
		result, err := uc.Execute(ctx, GetSubscriptionCommand{UserID: 7})

		require.Error(t, err)
		assert.Nil(t, result)
	})
}
