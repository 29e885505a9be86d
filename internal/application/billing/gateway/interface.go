package gateway

import (
	"context"
	"errors"
)

var (
	// ErrGatewayUnavailable indicates a transport failure or 5xx from the
	// gateway; the attempt may be retried.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrGatewayRejected indicates the gateway refused the request (4xx).
	ErrGatewayRejected = errors.New("payment gateway rejected request")

	// ErrTransactionNotFound indicates the gateway has no record of the
	// transaction being verified.
	ErrTransactionNotFound = errors.New("gateway transaction not found")
)

// InvoiceRequest describes the invoice to create at the gateway.
type InvoiceRequest struct {
	AmountInCents int64
	Currency      string
	RedirectURL   string
	Metadata      map[string]string
}

// Invoice is the gateway's handle on a created invoice: its id and the
// hosted page the user is sent to.
type Invoice struct {
	ID         string
	PaymentURL string
}

// VerificationResult is the gateway's view of a transaction.
type VerificationResult struct {
	ID            string
	Status        string
	AmountInCents int64
	Currency      string
}

// Verified reports whether the gateway considers the transaction paid.
func (r VerificationResult) Verified() bool {
	return r.Status == "paid"
}

// PaymentGateway is the external checkout provider.
type PaymentGateway interface {
	CreateInvoice(ctx context.Context, req InvoiceRequest) (*Invoice, error)
	VerifyTransaction(ctx context.Context, invoiceID string) (*VerificationResult, error)
}
