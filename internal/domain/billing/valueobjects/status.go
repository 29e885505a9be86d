package valueobjects

// TransactionStatus represents the lifecycle state of a payment transaction.
// Valid transitions: pending -> completed | failed | cancelled. Terminal
// states never transition again; completed records are immutable.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

var validTransactionStatuses = map[TransactionStatus]bool{
	TransactionStatusPending:   true,
	TransactionStatusCompleted: true,
	TransactionStatusFailed:    true,
	TransactionStatusCancelled: true,
}

func (s TransactionStatus) String() string {
	return string(s)
}

func (s TransactionStatus) IsValid() bool {
	return validTransactionStatuses[s]
}

// IsTerminal reports whether the status is final.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusFailed || s == TransactionStatusCancelled
}

// CanTransitionTo reports whether a transition to target is allowed.
func (s TransactionStatus) CanTransitionTo(target TransactionStatus) bool {
	if s != TransactionStatusPending {
		return false
	}
	return target == TransactionStatusCompleted || target == TransactionStatusFailed || target == TransactionStatusCancelled
}
