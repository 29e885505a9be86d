package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lumen/internal/domain/subscription"
	"lumen/internal/infrastructure/persistence/mappers"
	"lumen/internal/infrastructure/persistence/models"
	"lumen/internal/shared/db"
	"lumen/internal/shared/mapper"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(database *gorm.DB) *PlanRepository {
	return &PlanRepository{db: database}
}

func (r *PlanRepository) Create(ctx context.Context, plan *subscription.Plan) error {
	model, err := mappers.PlanToModel(plan)
	if err != nil {
		return err
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}

	plan.SetID(model.ID)

	return nil
}

func (r *PlanRepository) GetByID(ctx context.Context, id uint) (*subscription.Plan, error) {
	var model models.PlanModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return mappers.PlanToDomain(&model)
}

func (r *PlanRepository) GetBySID(ctx context.Context, sid string) (*subscription.Plan, error) {
	var model models.PlanModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("sid = ?", sid).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get plan by sid: %w", err)
	}

	return mappers.PlanToDomain(&model)
}

func (r *PlanRepository) GetByKey(ctx context.Context, key string) (*subscription.Plan, error) {
	var model models.PlanModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("plan_key = ?", key).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get plan by key: %w", err)
	}

	return mappers.PlanToDomain(&model)
}

func (r *PlanRepository) List(ctx context.Context) ([]*subscription.Plan, error) {
	var planModels []*models.PlanModel

	if err := db.GetTxFromContext(ctx, r.db).
		Order("id ASC").
		Find(&planModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	return mapper.MapSliceWithID(planModels, mappers.PlanToDomain,
		func(m *models.PlanModel) uint { return m.ID })
}
