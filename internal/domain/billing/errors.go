package billing

import "errors"

var (
	// ErrTransactionNotFound is returned when no transaction matches the lookup.
	ErrTransactionNotFound = errors.New("transaction not found")
)
