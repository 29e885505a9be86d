package usecases

import (
	"context"
	"fmt"

	"lumen/internal/domain/billing"
	"lumen/internal/shared/logger"
	"lumen/internal/shared/mapper"
	"lumen/internal/shared/query"
)

type ListTransactionsQuery struct {
	UserID   uint
	Page     int
	PageSize int
}

// TransactionDTO is the API view of a payment transaction.
type TransactionDTO struct {
	ID         string `json:"id"`
	PlanID     uint   `json:"plan_id"`
	Interval   string `json:"interval"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	Status     string `json:"status"`
	VerifiedAt *int64 `json:"verified_at,omitempty"`
	CreatedAt  int64  `json:"created_at"`
}

type ListTransactionsResult struct {
	Transactions []TransactionDTO `json:"transactions"`
	Page         int              `json:"page"`
	PageSize     int              `json:"page_size"`
}

type ListTransactionsUseCase struct {
	transactionRepo billing.TransactionRepository
	logger          logger.Interface
}

func NewListTransactionsUseCase(
	transactionRepo billing.TransactionRepository,
	logger logger.Interface,
) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// Execute returns the user's payment history, newest first.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, q ListTransactionsQuery) (*ListTransactionsResult, error) {
	filter := query.NewPageFilter(q.Page, q.PageSize)

	txns, err := uc.transactionRepo.ListByUserID(ctx, q.UserID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	dtos := mapper.MapSlice(txns, transactionToDTO)
	if dtos == nil {
		dtos = []TransactionDTO{}
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	return &ListTransactionsResult{
		Transactions: dtos,
		Page:         page,
		PageSize:     filter.Limit(),
	}, nil
}

func transactionToDTO(txn *billing.Transaction) TransactionDTO {
	dto := TransactionDTO{
		ID:        txn.SID(),
		PlanID:    txn.PlanID(),
		Interval:  txn.Interval().String(),
		Amount:    txn.Amount().AmountInCents(),
		Currency:  txn.Amount().Currency(),
		Status:    txn.Status().String(),
		CreatedAt: txn.CreatedAt().Unix(),
	}
	if txn.VerifiedAt() != nil {
		ts := txn.VerifiedAt().Unix()
		dto.VerifiedAt = &ts
	}
	return dto
}
