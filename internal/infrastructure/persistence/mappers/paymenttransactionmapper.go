package mappers

import (
	"lumen/internal/domain/billing"
	billingvo "lumen/internal/domain/billing/valueobjects"
	subscriptionvo "lumen/internal/domain/subscription/valueobjects"
	"lumen/internal/infrastructure/persistence/models"
)

// TransactionToModel converts a transaction aggregate to its persistence model.
func TransactionToModel(txn *billing.Transaction) *models.PaymentTransactionModel {
	if txn == nil {
		return nil
	}
	return &models.PaymentTransactionModel{
		ID:               txn.ID(),
		SID:              txn.SID(),
		UserID:           txn.UserID(),
		PlanID:           txn.PlanID(),
		Interval:         txn.Interval().String(),
		Amount:           txn.Amount().AmountInCents(),
		Currency:         txn.Amount().Currency(),
		Status:           txn.Status().String(),
		GatewayInvoiceID: txn.GatewayInvoiceID(),
		RedirectURL:      txn.RedirectURL(),
		GatewayStatus:    txn.GatewayStatus(),
		VerifiedAt:       txn.VerifiedAt(),
		Version:          txn.Version(),
		CreatedAt:        txn.CreatedAt(),
		UpdatedAt:        txn.UpdatedAt(),
	}
}

// TransactionToDomain converts a persistence model back to the aggregate.
func TransactionToDomain(model *models.PaymentTransactionModel) (*billing.Transaction, error) {
	if model == nil {
		return nil, nil
	}
	return billing.ReconstructTransaction(
		model.ID,
		model.SID,
		model.UserID,
		model.PlanID,
		subscriptionvo.BillingInterval(model.Interval),
		billingvo.NewMoney(model.Amount, model.Currency),
		billingvo.TransactionStatus(model.Status),
		model.GatewayInvoiceID,
		model.RedirectURL,
		model.GatewayStatus,
		model.VerifiedAt,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}
