package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lumen/internal/domain/billing"
	"lumen/internal/infrastructure/persistence/mappers"
	"lumen/internal/infrastructure/persistence/models"
	"lumen/internal/shared/db"
	"lumen/internal/shared/mapper"
	"lumen/internal/shared/query"
)

type PaymentTransactionRepository struct {
	db *gorm.DB
}

func NewPaymentTransactionRepository(database *gorm.DB) *PaymentTransactionRepository {
	return &PaymentTransactionRepository{db: database}
}

func (r *PaymentTransactionRepository) Create(ctx context.Context, txn *billing.Transaction) error {
	model := mappers.TransactionToModel(txn)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	// Write back the auto-generated ID to the domain object.
	txn.SetID(model.ID)

	return nil
}

func (r *PaymentTransactionRepository) Update(ctx context.Context, txn *billing.Transaction) error {
	model := mappers.TransactionToModel(txn)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentTransactionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":             model.Status,
			"gateway_invoice_id": model.GatewayInvoiceID,
			"redirect_url":       model.RedirectURL,
			"gateway_status":     model.GatewayStatus,
			"verified_at":        model.VerifiedAt,
			"version":            model.Version,
			"updated_at":         model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update transaction: %w", result.Error)
	}

	// RowsAffected may be 0 when updated values equal the existing ones.

	return nil
}

func (r *PaymentTransactionRepository) GetByID(ctx context.Context, id uint) (*billing.Transaction, error) {
	var model models.PaymentTransactionModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return mappers.TransactionToDomain(&model)
}

func (r *PaymentTransactionRepository) GetBySID(ctx context.Context, sid string) (*billing.Transaction, error) {
	var model models.PaymentTransactionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("sid = ?", sid).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by sid: %w", err)
	}

	return mappers.TransactionToDomain(&model)
}

func (r *PaymentTransactionRepository) GetByGatewayInvoiceID(ctx context.Context, invoiceID string) (*billing.Transaction, error) {
	var model models.PaymentTransactionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("gateway_invoice_id = ?", invoiceID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by gateway_invoice_id: %w", err)
	}

	return mappers.TransactionToDomain(&model)
}

func (r *PaymentTransactionRepository) ListByUserID(ctx context.Context, userID uint, filter query.PageFilter) ([]*billing.Transaction, error) {
	var txnModels []*models.PaymentTransactionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&txnModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return mapper.MapSliceWithID(txnModels, mappers.TransactionToDomain,
		func(m *models.PaymentTransactionModel) uint { return m.ID })
}
