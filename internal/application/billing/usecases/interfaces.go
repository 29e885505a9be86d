package usecases

import "context"

// UserProvider answers whether a user account exists. Billing does not own
// user records; it only needs existence checks before taking money.
type UserProvider interface {
	Exists(ctx context.Context, userID uint) (bool, error)
}

// TransactionManager runs a function inside a database transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
