package usecases

import (
	"context"
	"errors"
	"fmt"

	"lumen/internal/application/billing/gateway"
	"lumen/internal/domain/billing"
	billingvo "lumen/internal/domain/billing/valueobjects"
	"lumen/internal/domain/subscription"
	subscriptionvo "lumen/internal/domain/subscription/valueobjects"
	apperrors "lumen/internal/shared/errors"
	"lumen/internal/shared/logger"
)

// CreateCheckoutCommand starts a checkout for a plan purchase. The amount is
// never taken from the client; it is resolved from the plan catalog.
type CreateCheckoutCommand struct {
	UserID   uint
	PlanSID  string
	Interval string
	Currency string
}

// CreateCheckoutResult carries the hosted payment page and the transaction
// handle the client will bring back for verification.
type CreateCheckoutResult struct {
	PaymentURL    string `json:"payment_url"`
	TransactionID string `json:"transaction_id"`
}

type CreateCheckoutUseCase struct {
	transactionRepo billing.TransactionRepository
	planRepo        subscription.PlanRepository
	userProvider    UserProvider
	gateway         gateway.PaymentGateway
	siteURL         string
	logger          logger.Interface
}

func NewCreateCheckoutUseCase(
	transactionRepo billing.TransactionRepository,
	planRepo subscription.PlanRepository,
	userProvider UserProvider,
	paymentGateway gateway.PaymentGateway,
	siteURL string,
	logger logger.Interface,
) *CreateCheckoutUseCase {
	return &CreateCheckoutUseCase{
		transactionRepo: transactionRepo,
		planRepo:        planRepo,
		userProvider:    userProvider,
		gateway:         paymentGateway,
		siteURL:         siteURL,
		logger:          logger,
	}
}

func (uc *CreateCheckoutUseCase) Execute(ctx context.Context, cmd CreateCheckoutCommand) (*CreateCheckoutResult, error) {
	exists, err := uc.userProvider.Exists(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	interval, err := subscriptionvo.ParseBillingInterval(cmd.Interval)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid billing interval", err.Error())
	}
	if cmd.Currency == "" {
		return nil, apperrors.NewValidationError("currency is required", "")
	}

	plan, err := uc.planRepo.GetBySID(ctx, cmd.PlanSID)
	if err != nil {
		if errors.Is(err, subscription.ErrPlanNotFound) {
			return nil, apperrors.NewNotFoundError("plan not found")
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan.IsFree() {
		return nil, apperrors.NewValidationError("free plan does not require checkout", "")
	}

	price, ok := plan.Price(interval, cmd.Currency)
	if !ok {
		return nil, apperrors.NewValidationError(
			"plan has no price for the requested interval and currency",
			fmt.Sprintf("%s/%s", interval, cmd.Currency),
		)
	}

	txn, err := billing.NewTransaction(cmd.UserID, plan.ID(), interval, billingvo.NewMoney(price.Amount, cmd.Currency))
	if err != nil {
		return nil, apperrors.NewValidationError("invalid checkout request", err.Error())
	}

	// The pending row is written before the gateway call so a crashed
	// checkout still leaves an auditable record.
	if err := uc.transactionRepo.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	returnURL := fmt.Sprintf("%s/dashboard/checkout?payment_redirect=true&transaction_id=%s", uc.siteURL, txn.SID())

	invoice, err := uc.gateway.CreateInvoice(ctx, gateway.InvoiceRequest{
		AmountInCents: price.Amount,
		Currency:      cmd.Currency,
		RedirectURL:   returnURL,
		Metadata: map[string]string{
			"transaction_id": txn.SID(),
			"plan":           plan.Key(),
			"interval":       interval.String(),
		},
	})
	if err != nil {
		uc.logger.Errorw("gateway invoice creation failed",
			"transaction_id", txn.SID(),
			"plan", plan.Key(),
			"error", err,
		)
		if markErr := txn.MarkFailed(""); markErr == nil {
			if updateErr := uc.transactionRepo.Update(ctx, txn); updateErr != nil {
				uc.logger.Errorw("failed to mark transaction failed after gateway error",
					"transaction_id", txn.SID(),
					"error", updateErr,
				)
			}
		}
		return nil, apperrors.NewUnavailableError("payment gateway error", err.Error())
	}

	if err := txn.AttachInvoice(invoice.ID, invoice.PaymentURL); err != nil {
		return nil, fmt.Errorf("failed to attach invoice: %w", err)
	}
	if err := uc.transactionRepo.Update(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	uc.logger.Infow("checkout created",
		"transaction_id", txn.SID(),
		"user_id", cmd.UserID,
		"plan", plan.Key(),
		"interval", interval.String(),
		"amount", price.Amount,
		"currency", cmd.Currency,
	)

	return &CreateCheckoutResult{
		PaymentURL:    invoice.PaymentURL,
		TransactionID: txn.SID(),
	}, nil
}
