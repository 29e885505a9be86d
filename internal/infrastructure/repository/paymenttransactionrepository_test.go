package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lumen/internal/domain/billing"
	billingvo "lumen/internal/domain/billing/valueobjects"
	subscriptionvo "lumen/internal/domain/subscription/valueobjects"
	"lumen/internal/infrastructure/persistence/models"
	"lumen/internal/shared/query"
)

func setupTestDB(t *testing.T) *gorm.DB {
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = database.AutoMigrate(
		&models.PaymentTransactionModel{},
		&models.SubscriptionModel{},
		&models.PlanModel{},
	)
	require.NoError(t, err)

	return database
}

func createTestTransaction(t *testing.T, userID uint) *billing.Transaction {
	t.Helper()
	txn, err := billing.NewTransaction(userID, 2, subscriptionvo.IntervalMonth, billingvo.NewMoney(1990, "usd"))
	require.NoError(t, err)
	return txn
}

func TestPaymentTransactionRepository_Create(t *testing.T) {
	database := setupTestDB(t)
	repo := NewPaymentTransactionRepository(database)
	ctx := context.Background()

	t.Run("creates pending transaction", func(t *testing.T) {
		txn := createTestTransaction(t, 1)

		err := repo.Create(ctx, txn)
		assert.NoError(t, err)
		assert.NotZero(t, txn.ID())

		found, err := repo.GetBySID(ctx, txn.SID())
		require.NoError(t, err)
		assert.Equal(t, txn.SID(), found.SID())
		assert.Equal(t, billingvo.TransactionStatusPending, found.Status())
		assert.Equal(t, int64(1990), found.Amount().AmountInCents())
		assert.Equal(t, "usd", found.Amount().Currency())
	})

	t.Run("rejects duplicate sid", func(t *testing.T) {
		txn := createTestTransaction(t, 2)
		require.NoError(t, repo.Create(ctx, txn))

		dup := billing.ReconstructTransaction(
			0, txn.SID(), 2, 2, subscriptionvo.IntervalMonth,
			billingvo.NewMoney(1990, "usd"), billingvo.TransactionStatusPending,
			nil, nil, nil, nil, 1, time.Now().UTC(), time.Now().UTC(),
		)
		assert.Error(t, repo.Create(ctx, dup))
	})
}

func TestPaymentTransactionRepository_Update(t *testing.T) {
	database := setupTestDB(t)
	repo := NewPaymentTransactionRepository(database)
	ctx := context.Background()

	t.Run("persists invoice attachment and completion", func(t *testing.T) {
		txn := createTestTransaction(t, 1)
		require.NoError(t, repo.Create(ctx, txn))

		require.NoError(t, txn.AttachInvoice("inv_123", "https://pay.mayar.id/inv_123"))
		require.NoError(t, repo.Update(ctx, txn))

		found, err := repo.GetBySID(ctx, txn.SID())
		require.NoError(t, err)
		require.NotNil(t, found.GatewayInvoiceID())
		assert.Equal(t, "inv_123", *found.GatewayInvoiceID())

		require.NoError(t, txn.MarkCompleted(time.Now(), "paid"))
		require.NoError(t, repo.Update(ctx, txn))

		found, err = repo.GetBySID(ctx, txn.SID())
		require.NoError(t, err)
		assert.True(t, found.IsCompleted())
		require.NotNil(t, found.VerifiedAt())
		require.NotNil(t, found.GatewayStatus())
		assert.Equal(t, "paid", *found.GatewayStatus())
	})
}

func TestPaymentTransactionRepository_Lookups(t *testing.T) {
	database := setupTestDB(t)
	repo := NewPaymentTransactionRepository(database)
	ctx := context.Background()

	txn := createTestTransaction(t, 7)
	require.NoError(t, txn.AttachInvoice("inv_lookup", "https://pay.mayar.id/inv_lookup"))
	require.NoError(t, repo.Create(ctx, txn))

	t.Run("gets by id", func(t *testing.T) {
		found, err := repo.GetByID(ctx, txn.ID())
		require.NoError(t, err)
		assert.Equal(t, txn.SID(), found.SID())
	})

	t.Run("gets by gateway invoice id", func(t *testing.T) {
		found, err := repo.GetByGatewayInvoiceID(ctx, "inv_lookup")
		require.NoError(t, err)
		assert.Equal(t, txn.SID(), found.SID())
	})

	t.Run("returns sentinel for missing rows", func(t *testing.T) {
		_, err := repo.GetBySID(ctx, "txn_missing")
		assert.ErrorIs(t, err, billing.ErrTransactionNotFound)

		_, err = repo.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, billing.ErrTransactionNotFound)
	})

	t.Run("lists user transactions newest first", func(t *testing.T) {
		older := createTestTransaction(t, 7)
		require.NoError(t, repo.Create(ctx, older))

		txns, err := repo.ListByUserID(ctx, 7, query.PageFilter{})
		require.NoError(t, err)
		assert.Len(t, txns, 2)

		txns, err = repo.ListByUserID(ctx, 99, query.PageFilter{})
		require.NoError(t, err)
		assert.Empty(t, txns)
	})

	t.Run("pages through results", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			require.NoError(t, repo.Create(ctx, createTestTransaction(t, 42)))
		}

		first, err := repo.ListByUserID(ctx, 42, query.PageFilter{Page: 1, PageSize: 2})
		require.NoError(t, err)
		assert.Len(t, first, 2)

		second, err := repo.ListByUserID(ctx, 42, query.PageFilter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Len(t, second, 1)
	})
}
