package billing

import (
	"context"

	"lumen/internal/shared/query"
)

// TransactionRepository persists payment transactions.
// Lookups return ErrTransactionNotFound when no row matches.
type TransactionRepository interface {
	Create(ctx context.Context, txn *Transaction) error
	Update(ctx context.Context, txn *Transaction) error
	GetByID(ctx context.Context, id uint) (*Transaction, error)
	GetBySID(ctx context.Context, sid string) (*Transaction, error)
	GetByGatewayInvoiceID(ctx context.Context, invoiceID string) (*Transaction, error)
	ListByUserID(ctx context.Context, userID uint, filter query.PageFilter) ([]*Transaction, error)
}
