package billing

import (
	"fmt"
	"time"

	"lumen/internal/domain/billing/valueobjects"
	subscriptionvo "lumen/internal/domain/subscription/valueobjects"
	"lumen/internal/shared/biztime"
	"lumen/internal/shared/id"
)

// Transaction is the payment transaction aggregate. It records one checkout
// attempt against the payment gateway and tracks it from pending to a
// terminal state. Completed transactions are immutable.
type Transaction struct {
	id               uint
	sid              string
	userID           uint
	planID           uint
	interval         subscriptionvo.BillingInterval
	amount           valueobjects.Money
	status           valueobjects.TransactionStatus
	gatewayInvoiceID *string
	redirectURL      *string
	gatewayStatus    *string
	verifiedAt       *time.Time
	version          int
	createdAt        time.Time
	updatedAt        time.Time
}

// NewTransaction creates a pending transaction for a checkout attempt.
// The amount is fixed here from the plan catalog and never changes afterwards.
func NewTransaction(userID, planID uint, interval subscriptionvo.BillingInterval, amount valueobjects.Money) (*Transaction, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !interval.IsValid() {
		return nil, fmt.Errorf("invalid billing interval: %s", interval)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	if amount.Currency() == "" {
		return nil, fmt.Errorf("currency is required")
	}

	now := biztime.NowUTC()
	return &Transaction{
		sid:       id.NewTransactionID(),
		userID:    userID,
		planID:    planID,
		interval:  interval,
		amount:    amount,
		status:    valueobjects.TransactionStatusPending,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructTransaction rebuilds a transaction from persistence.
func ReconstructTransaction(
	txnID uint,
	sid string,
	userID uint,
	planID uint,
	interval subscriptionvo.BillingInterval,
	amount valueobjects.Money,
	status valueobjects.TransactionStatus,
	gatewayInvoiceID *string,
	redirectURL *string,
	gatewayStatus *string,
	verifiedAt *time.Time,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) *Transaction {
	return &Transaction{
		id:               txnID,
		sid:              sid,
		userID:           userID,
		planID:           planID,
		interval:         interval,
		amount:           amount,
		status:           status,
		gatewayInvoiceID: gatewayInvoiceID,
		redirectURL:      redirectURL,
		gatewayStatus:    gatewayStatus,
		verifiedAt:       verifiedAt,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// AttachInvoice records the gateway invoice identity and redirect URL
// returned by the checkout call. Only allowed while pending.
func (t *Transaction) AttachInvoice(invoiceID, redirectURL string) error {
	if t.status != valueobjects.TransactionStatusPending {
		return fmt.Errorf("cannot attach invoice to %s transaction", t.status)
	}
	if invoiceID == "" {
		return fmt.Errorf("invoice ID is required")
	}
	if redirectURL == "" {
		return fmt.Errorf("redirect URL is required")
	}
	t.gatewayInvoiceID = &invoiceID
	t.redirectURL = &redirectURL
	t.touch()
	return nil
}

// MarkCompleted transitions the transaction to completed. Calling it on an
// already-completed transaction is a no-op so verification stays idempotent.
func (t *Transaction) MarkCompleted(verifiedAt time.Time, gatewayStatus string) error {
	if t.status == valueobjects.TransactionStatusCompleted {
		return nil
	}
	if !t.status.CanTransitionTo(valueobjects.TransactionStatusCompleted) {
		return fmt.Errorf("cannot complete %s transaction", t.status)
	}
	if t.gatewayInvoiceID == nil {
		return fmt.Errorf("cannot complete transaction without gateway invoice")
	}
	utc := biztime.ToUTC(verifiedAt)
	t.status = valueobjects.TransactionStatusCompleted
	t.verifiedAt = &utc
	t.gatewayStatus = &gatewayStatus
	t.touch()
	return nil
}

// MarkFailed transitions the transaction to failed, recording the last
// gateway status observed when available.
func (t *Transaction) MarkFailed(gatewayStatus string) error {
	if !t.status.CanTransitionTo(valueobjects.TransactionStatusFailed) {
		return fmt.Errorf("cannot fail %s transaction", t.status)
	}
	t.status = valueobjects.TransactionStatusFailed
	if gatewayStatus != "" {
		t.gatewayStatus = &gatewayStatus
	}
	t.touch()
	return nil
}

// MarkCancelled transitions the transaction to cancelled.
func (t *Transaction) MarkCancelled() error {
	if !t.status.CanTransitionTo(valueobjects.TransactionStatusCancelled) {
		return fmt.Errorf("cannot cancel %s transaction", t.status)
	}
	t.status = valueobjects.TransactionStatusCancelled
	t.touch()
	return nil
}

func (t *Transaction) touch() {
	t.version++
	t.updatedAt = biztime.NowUTC()
}

func (t *Transaction) ID() uint                                  { return t.id }
func (t *Transaction) SID() string                               { return t.sid }
func (t *Transaction) UserID() uint                              { return t.userID }
func (t *Transaction) PlanID() uint                              { return t.planID }
func (t *Transaction) Interval() subscriptionvo.BillingInterval  { return t.interval }
func (t *Transaction) Amount() valueobjects.Money                { return t.amount }
func (t *Transaction) Status() valueobjects.TransactionStatus    { return t.status }
func (t *Transaction) GatewayInvoiceID() *string                 { return t.gatewayInvoiceID }
func (t *Transaction) RedirectURL() *string                      { return t.redirectURL }
func (t *Transaction) GatewayStatus() *string                    { return t.gatewayStatus }
func (t *Transaction) VerifiedAt() *time.Time                    { return t.verifiedAt }
func (t *Transaction) Version() int                              { return t.version }
func (t *Transaction) CreatedAt() time.Time                      { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time                      { return t.updatedAt }

// SetID assigns the database identity after insert.
func (t *Transaction) SetID(txnID uint) { t.id = txnID }

func (t *Transaction) IsPending() bool {
	return t.status == valueobjects.TransactionStatusPending
}

func (t *Transaction) IsCompleted() bool {
	return t.status == valueobjects.TransactionStatusCompleted
}
