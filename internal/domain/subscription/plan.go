package subscription

import (
	"fmt"
	"time"

	"lumen/internal/domain/subscription/valueobjects"
	"lumen/internal/shared/biztime"
	"lumen/internal/shared/id"
)

// Plan keys for the built-in catalog.
const (
	KeyFree = "free"
	KeyPro  = "pro"
)

// Price is one purchasable price point of a plan: the gateway-side price
// reference plus the amount in the smallest currency unit.
type Price struct {
	PriceRef string `json:"price_ref"`
	Amount   int64  `json:"amount"`
}

// PriceTable maps billing interval -> currency code -> price.
type PriceTable map[valueobjects.BillingInterval]map[string]Price

// Plan is a subscription plan in the catalog.
type Plan struct {
	id          uint
	sid         string
	key         string
	name        string
	description string
	prices      PriceTable
	createdAt   time.Time
	updatedAt   time.Time
}

// NewPlan creates a catalog plan. A nil price table is allowed for free plans.
func NewPlan(key, name, description string, prices PriceTable) (*Plan, error) {
	if key == "" {
		return nil, fmt.Errorf("plan key is required")
	}
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if prices == nil {
		prices = PriceTable{}
	}

	now := biztime.NowUTC()
	return &Plan{
		sid:         id.NewPlanID(),
		key:         key,
		name:        name,
		description: description,
		prices:      prices,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructPlan rebuilds a plan from persistence.
func ReconstructPlan(
	planID uint,
	sid string,
	key string,
	name string,
	description string,
	prices PriceTable,
	createdAt time.Time,
	updatedAt time.Time,
) *Plan {
	if prices == nil {
		prices = PriceTable{}
	}
	return &Plan{
		id:          planID,
		sid:         sid,
		key:         key,
		name:        name,
		description: description,
		prices:      prices,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Price looks up the price point for an interval and currency.
func (p *Plan) Price(interval valueobjects.BillingInterval, currency string) (Price, bool) {
	byCurrency, ok := p.prices[interval]
	if !ok {
		return Price{}, false
	}
	price, ok := byCurrency[currency]
	return price, ok
}

// IsFree reports whether this is the free tier. The key is authoritative;
// a free plan stays free even if price points are seeded for it.
func (p *Plan) IsFree() bool {
	return p.key == KeyFree
}

func (p *Plan) ID() uint             { return p.id }
func (p *Plan) SID() string          { return p.sid }
func (p *Plan) Key() string          { return p.key }
func (p *Plan) Name() string         { return p.name }
func (p *Plan) Description() string  { return p.description }
func (p *Plan) Prices() PriceTable   { return p.prices }
func (p *Plan) CreatedAt() time.Time { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time { return p.updatedAt }

// SetID assigns the database identity after insert.
func (p *Plan) SetID(planID uint) { p.id = planID }
