package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/internal/domain/subscription"
	"lumen/internal/domain/subscription/valueobjects"
)

func createTestSubscription(t *testing.T, userID uint) *subscription.Subscription {
	t.Helper()
	start := time.Now().UTC().Truncate(time.Second)
	sub, err := subscription.NewSubscription(
		userID, 2, valueobjects.IntervalMonth, "usd",
		"inv_123", "price_pro_month_usd",
		start, start.Add(30*24*time.Hour),
	)
	require.NoError(t, err)
	return sub
}

func TestSubscriptionRepository_Create(t *testing.T) {
	database := setupTestDB(t)
	repo := NewSubscriptionRepository(database)
	ctx := context.Background()

	t.Run("creates subscription", func(t *testing.T) {
		sub := createTestSubscription(t, 1)

		err := repo.Create(ctx, sub)
		assert.NoError(t, err)
		assert.NotZero(t, sub.ID())

		found, err := repo.GetByUserID(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, sub.SID(), found.SID())
		assert.Equal(t, valueobjects.StatusActive, found.Status())
		assert.Equal(t, "inv_123", found.BillingRef())
	})

	t.Run("enforces one subscription per user", func(t *testing.T) {
		sub := createTestSubscription(t, 2)
		require.NoError(t, repo.Create(ctx, sub))

		second := createTestSubscription(t, 2)
		assert.Error(t, repo.Create(ctx, second))
	})
}

func TestSubscriptionRepository_GetByUserID(t *testing.T) {
	database := setupTestDB(t)
	repo := NewSubscriptionRepository(database)
	ctx := context.Background()

	t.Run("returns nil without error when absent", func(t *testing.T) {
		found, err := repo.GetByUserID(ctx, 42)
		assert.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestSubscriptionRepository_Update(t *testing.T) {
	database := setupTestDB(t)
	repo := NewSubscriptionRepository(database)
	ctx := context.Background()

	t.Run("persists plan switch in place", func(t *testing.T) {
		sub := createTestSubscription(t, 1)
		require.NoError(t, repo.Create(ctx, sub))
		originalID := sub.ID()

		newStart := time.Now().UTC().Truncate(time.Second)
		newEnd := newStart.Add(365 * 24 * time.Hour)
		require.NoError(t, sub.ActivatePlan(3, "price_pro_year_usd", newStart, newEnd))
		require.NoError(t, repo.Update(ctx, sub))

		found, err := repo.GetByUserID(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, originalID, found.ID())
		assert.Equal(t, uint(3), found.PlanID())
		assert.Equal(t, "price_pro_year_usd", found.PriceRef())
		assert.Equal(t, "inv_123", found.BillingRef())
		assert.Equal(t, newEnd.Unix(), found.CurrentPeriodEnd().Unix())
	})
}

func TestSubscriptionRepository_GetBySID(t *testing.T) {
	database := setupTestDB(t)
	repo := NewSubscriptionRepository(database)
	ctx := context.Background()

	sub := createTestSubscription(t, 5)
	require.NoError(t, repo.Create(ctx, sub))

	found, err := repo.GetBySID(ctx, sub.SID())
	require.NoError(t, err)
	assert.Equal(t, uint(5), found.UserID())

	_, err = repo.GetBySID(ctx, "sub_missing")
	assert.ErrorIs(t, err, subscription.ErrSubscriptionNotFound)
}
