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
	"lumen/internal/domain/subscription"
	subscriptionvo "lumen/internal/domain/subscription/valueobjects"
	apperrors "lumen/internal/shared/errors"
	"lumen/internal/shared/logger"
)

const testSiteURL = "https://app.lumen.dev"

func testProPlan() *subscription.Plan {
	now := time.Now().UTC()
	return subscription.ReconstructPlan(2, "plan_pro12345678", subscription.KeyPro, "Pro", "Full access",
		subscription.PriceTable{
			subscriptionvo.IntervalMonth: {
				"usd": {PriceRef: "price_pro_month_usd", Amount: 1990},
			},
			subscriptionvo.IntervalYear: {
				"usd": {PriceRef: "price_pro_year_usd", Amount: 19990},
			},
		}, now, now)
}

func testFreePlan() *subscription.Plan {
	now := time.Now().UTC()
	return subscription.ReconstructPlan(1, "plan_free1234567", subscription.KeyFree, "Free", "Get started", nil, now, now)
}

func TestCreateCheckoutUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("creates checkout for paid plan", func(t *testing.T) {
		txnRepo := new(mockTransactionRepository)
		planRepo := new(mockPlanRepository)
		users := new(mockUserProvider)
		gw := new(mockPaymentGateway)

		plan := testProPlan()
		users.On("Exists", ctx, uint(1)).Return(true, nil)
		planRepo.On("GetBySID", ctx, plan.SID()).Return(plan, nil)
		txnRepo.On("Create", ctx, mock.AnythingOfType("*billing.Transaction")).Return(nil)
		gw.On("CreateInvoice", ctx, mock.MatchedBy(func(req gateway.InvoiceRequest) bool {
			return req.AmountInCents == 1990 && req.Currency == "usd" &&
				req.Metadata["plan"] == subscription.KeyPro
		})).Return(&gateway.Invoice{ID: "inv_123", PaymentURL: "https://pay.mayar.id/inv_123"}, nil)
		txnRepo.On("Update", ctx, mock.AnythingOfType("*billing.Transaction")).Return(nil)

		uc := NewCreateCheckoutUseCase(txnRepo, planRepo, users, gw, testSiteURL, logger.NewLogger())
		result, err := uc.Execute(ctx, CreateCheckoutCommand{
			UserID:   1,
			PlanSID:  plan.SID(),
			Interval: "month",
			Currency: "usd",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://pay.mayar.id/inv_123", result.PaymentURL)
		assert.Contains(t, result.TransactionID, "txn_")

		// The pending row is written before the gateway is called.
		created := txnRepo.Calls[0].Arguments.Get(1).(*billing.Transaction)
		assert.Equal(t, int64(1990), created.Amount().AmountInCents())
		txnRepo.AssertExpectations(t)
		gw.AssertExpectations(t)
	})

	t.Run("embeds transaction id in return URL", func(t *testing.T) {
		txnRepo := new(mockTransactionRepository)
		planRepo := new(mockPlanRepository)
		users := new(mockUserProvider)
		gw := new(mockPaymentGateway)

		plan := testProPlan()
		users.On("Exists", ctx, uint(1)).Return(true, nil)
		planRepo.On("GetBySID", ctx, plan.SID()).Return(plan, nil)
		txnRepo.On("Create", ctx, mock.Anything).Return(nil)
		txnRepo.On("Update", ctx, mock.Anything).Return(nil)

		var redirectURL string
		gw.On("CreateInvoice", ctx, mock.Anything).Run(func(args mock.Arguments) {
			redirectURL = args.Get(1).(gateway.InvoiceRequest).RedirectURL
		}).Return(&gateway.Invoice{ID: "inv_123", PaymentURL: "https://pay.mayar.id/inv_123"}, nil)

		uc := NewCreateCheckoutUseCase(txnRepo, planRepo, users, gw, testSiteURL, logger.NewLogger())
		result, err := uc.Execute(ctx, CreateCheckoutCommand{UserID: 1, PlanSID: plan.SID(), Interval: "year", Currency: "usd"})
		require.NoError(t, err)

		assert.Equal(t, testSiteURL+"/dashboard/checkout?payment_redirect=true&transaction_id="+result.TransactionID, redirectURL)
	})

	t.Run("rejects unknown user", func(t *testing.T) {
		users := new(mockUserProvider)
		users.On("Exists", ctx, uint(9)).Return(false, nil)

		uc := NewCreateCheckoutUseCase(new(mockTransactionRepository), new(mockPlanRepository), users, new(mockPaymentGateway), testSiteURL, logger.NewLogger())
		_, err := uc.Execute(ctx, CreateCheckoutCommand{UserID: 9, PlanSID: "plan_x", Interval: "month", Currency: "usd"})
		assert.True(t, apperrors.IsNotFoundError(err))
	})

	t.Run("rejects invalid interval", func(t *testing.T) {
		users := new(mockUserProvider)
		users.On("Exists", ctx, uint(1)).Return(true, nil)

		uc := NewCreateCheckoutUseCase(new(mockTransactionRepository), new(mockPlanRepository), users, new(mockPaymentGateway), testSiteURL, logger.NewLogger())
		_, err := uc.Execute(ctx, CreateCheckoutCommand{UserID: 1, PlanSID: "plan_x", Interval: "weekly", Currency: "usd"})
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("rejects unknown plan", func(t *testing.T) {
		planRepo := new(mockPlanRepository)
		users := new(mockUserProvider)
		users.On("Exists", ctx, uint(1)).Return(true, nil)
		planRepo.On("GetBySID", ctx, "plan_missing").Return(nil, subscription.ErrPlanNotFound)

		uc := NewCreateCheckoutUseCase(new(mockTransactionRepository), planRepo, users, new(mockPaymentGateway), testSiteURL, logger.NewLogger())
		_, err := uc.Execute(ctx, CreateCheckoutCommand{UserID: 1, PlanSID: "plan_missing", Interval: "month", Currency: "usd"})
		assert.True(t, apperrors.IsNotFoundError(err))
	})

	t.Run("rejects free plan", func(t *testing.T) {
		planRepo := new(mockPlanRepository)
		users := new(mockUserProvider)
		plan := testFreePlan()
		users.On("Exists", ctx, uint(1)).Return(true, nil)
		planRepo.On("GetBySID", ctx, plan.SID()).Return(plan, nil)

		uc := NewCreateCheckoutUseCase(new(mockTransactionRepository), planRepo, users, new(mockPaymentGateway), testSiteURL, logger.NewLogger())
		_, err := uc.Execute(ctx, CreateCheckoutCommand{UserID: 1, PlanSID: plan.SID(), Interval: "month", Currency: "usd"})
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("rejects missing price point", func(t *testing.T) {
		planRepo := new(mockPlanRepository)
		users := new(mockUserProvider)
		plan := testProPlan()
		users.On("Exists", ctx, uint(1)).Return(true, nil)
		planRepo.On("GetBySID", ctx, plan.SID()).Return(plan, nil)

		uc := NewCreateCheckoutUseCase(new(mockTransactionRepository), planRepo, users, new(mockPaymentGateway), testSiteURL, logger.NewLogger())
		_, err := uc.Execute(ctx, CreateCheckoutCommand{UserID: 1, PlanSID: plan.SID(), Interval: "month", Currency: "gbp"})
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("marks transaction failed when gateway errors", func(t *testing.T) {
		txnRepo := new(mockTransactionRepository)
		planRepo := new(mockPlanRepository)
		users := new(mockUserProvider)
		gw := new(mockPaymentGateway)

		plan := testProPlan()
		users.On("Exists", ctx, uint(1)).Return(true, nil)
		planRepo.On("GetBySID", ctx, plan.SID()).Return(plan, nil)
		txnRepo.On("Create", ctx, mock.Anything).Return(nil)
		gw.On("CreateInvoice", ctx, mock.Anything).Return(nil, gateway.ErrGatewayUnavailable)
		txnRepo.On("Update", ctx, mock.MatchedBy(func(txn *billing.Transaction) bool {
			return txn.Status().IsTerminal()
		})).Return(nil)

		uc := NewCreateCheckoutUseCase(txnRepo, planRepo, users, gw, testSiteURL, logger.NewLogger())
		_, err := uc.Execute(ctx, CreateCheckoutCommand{UserID: 1, PlanSID: plan.SID(), Interval: "month", Currency: "usd"})
		assert.True(t, apperrors.IsUnavailableError(err))
		txnRepo.AssertExpectations(t)
	})
}
