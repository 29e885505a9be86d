package cache

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	"lumen/internal/domain/subscription"
	"lumen/internal/infrastructure/persistence/mappers"
	"lumen/internal/infrastructure/persistence/models"
	"lumen/internal/shared/logger"
	"lumen/internal/shared/mapper"
)

const (
	planListKey   = "billing:plans:list"
	basePlanTTL   = 30 * time.Minute
	planTTLJitter = 10 * time.Minute // TTL range: 30-40 min (anti-stampede)
)

// CachedPlanRepository decorates a plan repository with a Redis cache for the
// catalog listing. The catalog changes only via seeding, so a stale window of
// minutes is acceptable; every write invalidates the list anyway. All other
// lookups pass through.
type CachedPlanRepository struct {
	inner  subscription.PlanRepository
	client *redis.Client
	logger logger.Interface
}

func NewCachedPlanRepository(inner subscription.PlanRepository, client *redis.Client, logger logger.Interface) *CachedPlanRepository {
	return &CachedPlanRepository{
		inner:  inner,
		client: client,
		logger: logger,
	}
}

func (c *CachedPlanRepository) Create(ctx context.Context, plan *subscription.Plan) error {
	if err := c.inner.Create(ctx, plan); err != nil {
		return err
	}
	if err := c.client.Del(ctx, planListKey).Err(); err != nil {
		c.logger.Warnw("failed to invalidate plan cache", "error", err)
	}
	return nil
}

func (c *CachedPlanRepository) GetByID(ctx context.Context, id uint) (*subscription.Plan, error) {
	return c.inner.GetByID(ctx, id)
}

func (c *CachedPlanRepository) GetBySID(ctx context.Context, sid string) (*subscription.Plan, error) {
	return c.inner.GetBySID(ctx, sid)
}

func (c *CachedPlanRepository) GetByKey(ctx context.Context, key string) (*subscription.Plan, error) {
	return c.inner.GetByKey(ctx, key)
}

func (c *CachedPlanRepository) List(ctx context.Context) ([]*subscription.Plan, error) {
	if cached, err := c.client.Get(ctx, planListKey).Bytes(); err == nil {
		if plans, decodeErr := decodePlans(cached); decodeErr == nil {
			return plans, nil
		}
		// A corrupt entry falls through to the database and gets rewritten.
		c.logger.Warnw("discarding corrupt plan cache entry")
	} else if err != redis.Nil {
		c.logger.Warnw("plan cache read failed", "error", err)
	}

	plans, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	encoded, err := encodePlans(plans)
	if err != nil {
		c.logger.Warnw("failed to encode plans for cache", "error", err)
		return plans, nil
	}
	ttl := basePlanTTL + rand.N(planTTLJitter)
	if err := c.client.Set(ctx, planListKey, encoded, ttl).Err(); err != nil {
		c.logger.Warnw("plan cache write failed", "error", err)
	}

	return plans, nil
}

func encodePlans(plans []*subscription.Plan) ([]byte, error) {
	planModels, err := mapper.MapSliceWithError(plans, mappers.PlanToModel)
	if err != nil {
		return nil, err
	}
	return json.Marshal(planModels)
}

func decodePlans(data []byte) ([]*subscription.Plan, error) {
	var planModels []*models.PlanModel
	if err := json.Unmarshal(data, &planModels); err != nil {
		return nil, err
	}
	return mapper.MapSliceWithID(planModels, mappers.PlanToDomain,
		func(m *models.PlanModel) uint { return m.ID })
}
