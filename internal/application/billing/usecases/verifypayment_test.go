package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lumen/internal/application/billing/gateway"
	"lumen/internal/domain/billing"
	billingvo "lumen/internal/domain/billing/valueobjects"
	"lumen/internal/domain/subscription"
	subscriptionvo "lumen/internal/domain/subscription/valueobjects"
	apperrors "lumen/internal/shared/errors"
	"lumen/internal/shared/logger"
)

func pendingTransaction(t *testing.T, userID uint) *billing.Transaction {
	t.Helper()
	txn, err := billing.NewTransaction(userID, 2, subscriptionvo.IntervalMonth, billingvo.NewMoney(1990, "usd"))
	require.NoError(t, err)
	require.NoError(t, txn.AttachInvoice("inv_123", "https://pay.mayar.id/inv_123"))
	return txn
}

func newVerifyUseCase(
	txnRepo *mockTransactionRepository,
	subRepo *mockSubscriptionRepository,
	planRepo *mockPlanRepository,
	gw *mockPaymentGateway,
) *VerifyPaymentUseCase {
	return NewVerifyPaymentUseCase(txnRepo, subRepo, planRepo, gw, passthroughTxManager{}, logger.NewLogger())
}

func TestVerifyPaymentUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown transaction", func(t *testing.T) {
		txnRepo := new(mockTransactionRepository)
		txnRepo.On("GetBySID", ctx, "txn_missing").Return(nil, billing.ErrTransactionNotFound)

		uc := newVerifyUseCase(txnRepo, new(mockSubscriptionRepository), new(mockPlanRepository), new(mockPaymentGateway))
		_, err := uc.Execute(ctx, VerifyPaymentCommand{UserID: 1, TransactionID: "txn_missing"})
		assert.True(t, apperrors.IsNotFoundError(err))
	})

	t.Run("hides other users' transactions", func(t *testing.T) {
		txn := pendingTransaction(t, 7)
		txnRepo := new(mockTransactionRepository)
		txnRepo.On("GetBySID", ctx, txn.SID()).Return(txn, nil)

		uc := newVerifyUseCase(txnRepo, new(mockSubscriptionRepository), new(mockPlanRepository), new(mockPaymentGateway))
		_, err := uc.Execute(ctx, VerifyPaymentCommand{UserID: 1, TransactionID: txn.SID()})
		assert.True(t, apperrors.IsNotFoundError(err))
	})

	t.Run("short-circuits already completed transaction", func(t *testing.T) {
		txn := pendingTransaction(t, 1)
		require.NoError(t, txn.MarkCompleted(time.Now(), "paid"))

		txnRepo := new(mockTransactionRepository)
		txnRepo.On("GetBySID", ctx, txn.SID()).Return(txn, nil)
		gw := new(mockPaymentGateway)

		uc := newVerifyUseCase(txnRepo, new(mockSubscriptionRepository), new(mockPlanRepository), gw)
		result, err := uc.Execute(ctx, VerifyPaymentCommand{UserID: 1, TransactionID: txn.SID()})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "payment already verified", result.Message)
		gw.AssertNotCalled(t, "VerifyTransaction", mock.Anything, mock.Anything)
	})

	t.Run("rejects failed transaction", func(t *testing.T) {
		txn := pendingTransaction(t, 1)
		require.NoError(t, txn.MarkFailed("expired"))
		txnRepo := new(mockTransactionRepository)
		txnRepo.On("GetBySID", ctx, txn.SID()).Return(txn, nil)

		uc := newVerifyUseCase(txnRepo, new(mockSubscriptionRepository), new(mockPlanRepository), new(mockPaymentGateway))
		_, err := uc.Execute(ctx, VerifyPaymentCommand{UserID: 1, TransactionID: txn.SID()})
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("rejects transaction without invoice", func(t *testing.T) {
		txn, err := billing.NewTransaction(1, 2, subscriptionvo.IntervalMonth, billingvo.NewMoney(1990, "usd"))
		require.NoError(t, err)
		txnRepo := new(mockTransactionRepository)
		txnRepo.On("GetBySID", ctx, txn.SID()).Return(txn, nil)

		uc := newVerifyUseCase(txnRepo, new(mockSubscriptionRepository), new(mockPlanRepository), new(mockPaymentGateway))
		_, err = uc.Execute(ctx, VerifyPaymentCommand{UserID: 1, TransactionID: txn.SID()})
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("leaves transaction pending when gateway unavailable", func(t *testing.T) {
		txn := pendingTransaction(t, 1)
		txnRepo := new(mockTransactionRepository)
		txnRepo.On("GetBySID", ctx, txn.SID()).Return(txn, nil)
		gw := new(mockPaymentGateway)
		gw.On("VerifyTransaction", ctx, "inv_123").Return(nil, gateway.ErrGatewayUnavailable)

		uc := newVerifyUseCase(txnRepo, new(mockSubscriptionRepository), new(mockPlanRepository), gw)
		_, err := uc.Execute(ctx, VerifyPaymentCommand{UserID: 1, TransactionID: txn.SID()})
		assert.True(t, apperrors.IsUnavailableError(err))
		assert.True(t, txn.IsPending())
		txnRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("marks transaction failed when gateway has no record", func(t *testing.T) {
		txn := pendingTransaction(t, 1)
		txnRepo := new(mockTransactionRepository)
		txnRepo.On("GetBySID", ctx, txn.SID()).Return(txn, nil)
		txnRepo.On("Update", ctx, txn).Return(nil)
		gw := new(mockPaymentGateway)
		gw.On("VerifyTransaction", ctx, "inv_123").Return(nil, gateway.ErrTransactionNotFound)

		uc := newVerifyUseCase(txnRepo, new(mockSubscriptionRepository), new(mockPlanRepository), gw)
		_, err := uc.Execute(ctx, VerifyPaymentCommand{UserID: 1, TransactionID: txn.SID()})
		assert.True(t, apperrors.IsNotFoundError(err))
		assert.Equal(t, billingvo.TransactionStatusFailed, txn.Status())
	})

	t.Run("unverified payment fails transaction without server error", func(t *testing.T) {
		txn := pendingTransaction(t, 1)
		txnRepo := new(mockTransactionRepository)
		txnRepo.On("GetBySID", ctx, txn.SID()).Return(txn, nil)
		txnRepo.On("Update", ctx, txn).Return(nil)
		gw := new(mockPaymentGateway)
		gw.On("VerifyTransaction", ctx, "inv_123").Return(&gateway.VerificationResult{ID: "inv_123", Status: "created"}, nil)

		uc := newVerifyUseCase(txnRepo, new(mockSubscriptionRepository), new(mockPlanRepository), gw)
		result, err := uc.Execute(ctx, VerifyPaymentCommand{UserID: 1, TransactionID: txn.SID()})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "payment not verified", result.Message)
		assert.Equal(t, billingvo.TransactionStatusFailed, txn.Status())
	})

	t.Run("verified payment creates first subscription", func(t *testing.T) {
		txn := pendingTransaction(t, 1)
		plan := testProPlan()

		txnRepo := new(mockTransactionRepository)
		subRepo := new(mockSubscriptionRepository)
		planRepo := new(mockPlanRepository)
		gw := new(mockPaymentGateway)

		txnRepo.On("GetBySID", ctx, txn.SID()).Return(txn, nil)
		gw.On("VerifyTransaction", ctx, "inv_123").Return(&gateway.VerificationResult{ID: "inv_123", Status: "paid", AmountInCents: 1990, Currency: "usd"}, nil)
		planRepo.On("GetByID", ctx, uint(2)).Return(plan, nil)
		subRepo.On("GetByUserID", mock.Anything, uint(1)).Return(nil, nil)
		subRepo.On("Create", mock.Anything, mock.AnythingOfType("*subscription.Subscription")).Return(nil)
		txnRepo.On("Update", mock.Anything, txn).Return(nil)

		uc := newVerifyUseCase(txnRepo, subRepo, planRepo, gw)
		result, err := uc.Execute(ctx, VerifyPaymentCommand{UserID: 1, TransactionID: txn.SID()})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "payment verified", result.Message)
		assert.True(t, txn.IsCompleted())

		created := subRepo.Calls[1].Arguments.Get(1).(*subscription.Subscription)
		assert.Equal(t, uint(1), created.UserID())
		assert.Equal(t, uint(2), created.PlanID())
		assert.Equal(t, "inv_123", created.BillingRef())
		assert.Equal(t, "price_pro_month_usd", created.PriceRef())
		assert.Equal(t, 30*24*time.Hour, created.CurrentPeriodEnd().Sub(created.CurrentPeriodStart()))
		subRepo.AssertExpectations(t)
	})

	t.Run("verified payment updates existing subscription in place", func(t *testing.T) {
		txn := pendingTransaction(t, 1)
		plan := testProPlan()

		start := time.Now().UTC().Add(-20 * 24 * time.Hour)
		existing, err := subscription.NewSubscription(1, 9, subscriptionvo.IntervalMonth, "usd", "inv_old", "price_old", start, start.Add(30*24*time.Hour))
		require.NoError(t, err)
		existingSID := existing.SID()

		txnRepo := new(mockTransactionRepository)
		subRepo := new(mockSubscriptionRepository)
		planRepo := new(mockPlanRepository)
		gw := new(mockPaymentGateway)

		txnRepo.On("GetBySID", ctx, txn.SID()).Return(txn, nil)
		gw.On("VerifyTransaction", ctx, "inv_123").Return(&gateway.VerificationResult{ID: "inv_123", Status: "paid"}, nil)
		planRepo.On("GetByID", ctx, uint(2)).Return(plan, nil)
		subRepo.On("GetByUserID", mock.Anything, uint(1)).Return(existing, nil)
		subRepo.On("Update", mock.Anything, existing).Return(nil)
		txnRepo.On("Update", mock.Anything, txn).Return(nil)

		uc := newVerifyUseCase(txnRepo, subRepo, planRepo, gw)
		result, err := uc.Execute(ctx, VerifyPaymentCommand{UserID: 1, TransactionID: txn.SID()})
		require.NoError(t, err)
		assert.True(t, result.Success)

		assert.Equal(t, existingSID, existing.SID())
		assert.Equal(t, uint(2), existing.PlanID())
		assert.Equal(t, "price_pro_month_usd", existing.PriceRef())
		assert.Equal(t, "inv_old", existing.BillingRef())
		subRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("subscription write failure keeps transaction pending", func(t *testing.T) {
		txn := pendingTransaction(t, 1)
		plan := testProPlan()

		txnRepo := new(mockTransactionRepository)
		subRepo := new(mockSubscriptionRepository)
		planRepo := new(mockPlanRepository)
		gw := new(mockPaymentGateway)

		txnRepo.On("GetBySID", ctx, txn.SID()).Return(txn, nil)
		gw.On("VerifyTransaction", ctx, "inv_123").Return(&gateway.VerificationResult{ID: "inv_123", Status: "paid"}, nil)
		planRepo.On("GetByID", ctx, uint(2)).Return(plan, nil)
		subRepo.On("GetByUserID", mock.Anything, uint(1)).Return(nil, nil)
		subRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

		uc := newVerifyUseCase(txnRepo, subRepo, planRepo, gw)
		_, err := uc.Execute(ctx, VerifyPaymentCommand{UserID: 1, TransactionID: txn.SID()})
		require.Error(t, err)
		txnRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
