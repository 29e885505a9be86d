package subscription

import "context"

// Repository persists subscriptions. GetByUserID returns (nil, nil) when the
// user has no subscription yet so callers can branch between create and update.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	Update(ctx context.Context, sub *Subscription) error
	GetByUserID(ctx context.Context, userID uint) (*Subscription, error)
	GetBySID(ctx context.Context, sid string) (*Subscription, error)
}

// PlanRepository persists the plan catalog.
// Lookups return ErrPlanNotFound when no row matches.
type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	GetBySID(ctx context.Context, sid string) (*Plan, error)
	GetByKey(ctx context.Context, key string) (*Plan, error)
	List(ctx context.Context) ([]*Plan, error)
}
