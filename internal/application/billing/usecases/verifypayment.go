package usecases

import (
	"context"
	"errors"
	"fmt"

	"lumen/internal/application/billing/gateway"
	"lumen/internal/domain/billing"
	"lumen/internal/domain/subscription"
	"lumen/internal/shared/biztime"
	apperrors "lumen/internal/shared/errors"
	"lumen/internal/shared/logger"
)

// VerifyPaymentCommand asks for verification of a transaction the user was
// redirected back with.
type VerifyPaymentCommand struct {
	UserID        uint
	TransactionID string
}

// VerifyPaymentResult reports the verification outcome. Success=false with a
// nil error means the gateway has not seen the payment yet; it is not a
// server fault.
type VerifyPaymentResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type VerifyPaymentUseCase struct {
	transactionRepo  billing.TransactionRepository
	subscriptionRepo subscription.Repository
	planRepo         subscription.PlanRepository
	gateway          gateway.PaymentGateway
	txManager        TransactionManager
	logger           logger.Interface
}

func NewVerifyPaymentUseCase(
	transactionRepo billing.TransactionRepository,
	subscriptionRepo subscription.Repository,
	planRepo subscription.PlanRepository,
	paymentGateway gateway.PaymentGateway,
	txManager TransactionManager,
	logger logger.Interface,
) *VerifyPaymentUseCase {
	return &VerifyPaymentUseCase{
		transactionRepo:  transactionRepo,
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		gateway:          paymentGateway,
		txManager:        txManager,
		logger:           logger,
	}
}

func (uc *VerifyPaymentUseCase) Execute(ctx context.Context, cmd VerifyPaymentCommand) (*VerifyPaymentResult, error) {
	txn, err := uc.transactionRepo.GetBySID(ctx, cmd.TransactionID)
	if err != nil {
		if errors.Is(err, billing.ErrTransactionNotFound) {
			return nil, apperrors.NewNotFoundError("transaction not found")
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	// Ownership is enforced the same way as absence so transaction ids
	// cannot be probed across accounts.
	if txn.UserID() != cmd.UserID {
		return nil, apperrors.NewNotFoundError("transaction not found")
	}

	if txn.IsCompleted() {
		return &VerifyPaymentResult{Success: true, Message: "payment already verified"}, nil
	}
	if txn.Status().IsTerminal() {
		return nil, apperrors.NewValidationError("transaction is no longer verifiable", txn.Status().String())
	}
	if txn.GatewayInvoiceID() == nil {
		return nil, apperrors.NewValidationError("transaction has no gateway invoice", "")
	}

	result, err := uc.gateway.VerifyTransaction(ctx, *txn.GatewayInvoiceID())
	if err != nil {
		switch {
		case errors.Is(err, gateway.ErrGatewayUnavailable):
			// Transaction stays pending; the client can retry.
			uc.logger.Warnw("gateway unavailable during verification",
				"transaction_id", txn.SID(),
				"error", err,
			)
			return nil, apperrors.NewUnavailableError("payment gateway unavailable", err.Error())
		case errors.Is(err, gateway.ErrTransactionNotFound):
			uc.failTransaction(ctx, txn, "not_found")
			return nil, apperrors.NewNotFoundError("payment not found at gateway")
		default:
			return nil, fmt.Errorf("failed to verify payment: %w", err)
		}
	}

	if !result.Verified() {
		uc.failTransaction(ctx, txn, result.Status)
		return &VerifyPaymentResult{Success: false, Message: "payment not verified"}, nil
	}

	if err := uc.activate(ctx, txn, result); err != nil {
		return nil, err
	}

	uc.logger.Infow("payment verified",
		"transaction_id", txn.SID(),
		"user_id", txn.UserID(),
		"plan_id", txn.PlanID(),
	)
	return &VerifyPaymentResult{Success: true, Message: "payment verified"}, nil
}

// activate writes the subscription and completes the transaction in one
// database transaction. The subscription write comes first; a completed
// transaction must always imply an active subscription.
func (uc *VerifyPaymentUseCase) activate(ctx context.Context, txn *billing.Transaction, result *gateway.VerificationResult) error {
	plan, err := uc.planRepo.GetByID(ctx, txn.PlanID())
	if err != nil {
		return fmt.Errorf("failed to get plan for activation: %w", err)
	}

	priceRef := ""
	if price, ok := plan.Price(txn.Interval(), txn.Amount().Currency()); ok {
		priceRef = price.PriceRef
	}

	now := biztime.NowUTC()
	periodEnd := now.Add(txn.Interval().PeriodDuration())
	billingRef := *txn.GatewayInvoiceID()

	return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		sub, err := uc.subscriptionRepo.GetByUserID(txCtx, txn.UserID())
		if err != nil {
			return fmt.Errorf("failed to get subscription: %w", err)
		}

		if sub == nil {
			sub, err = subscription.NewSubscription(
				txn.UserID(),
				plan.ID(),
				txn.Interval(),
				txn.Amount().Currency(),
				billingRef,
				priceRef,
				now,
				periodEnd,
			)
			if err != nil {
				return fmt.Errorf("failed to build subscription: %w", err)
			}
			if err := uc.subscriptionRepo.Create(txCtx, sub); err != nil {
				return fmt.Errorf("failed to create subscription: %w", err)
			}
		} else {
			if err := sub.ActivatePlan(plan.ID(), priceRef, now, periodEnd); err != nil {
				return fmt.Errorf("failed to activate plan: %w", err)
			}
			if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
				return fmt.Errorf("failed to update subscription: %w", err)
			}
		}

		if err := txn.MarkCompleted(now, result.Status); err != nil {
			return fmt.Errorf("failed to complete transaction: %w", err)
		}
		if err := uc.transactionRepo.Update(txCtx, txn); err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}
		return nil
	})
}

func (uc *VerifyPaymentUseCase) failTransaction(ctx context.Context, txn *billing.Transaction, gatewayStatus string) {
	if err := txn.MarkFailed(gatewayStatus); err != nil {
		uc.logger.Warnw("cannot mark transaction failed",
			"transaction_id", txn.SID(),
			"status", txn.Status().String(),
			"error", err,
		)
		return
	}
	if err := uc.transactionRepo.Update(ctx, txn); err != nil {
		uc.logger.Errorw("failed to persist failed transaction",
			"transaction_id", txn.SID(),
			"error", err,
		)
	}
}
