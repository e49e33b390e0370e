package quote

import (
	"context"

	"github.com/google/uuid"

	"github.com/tiendacr/backend-tienda/internal/breakdown"
	"github.com/tiendacr/backend-tienda/internal/obs"
	"github.com/tiendacr/backend-tienda/internal/order"
	"github.com/tiendacr/backend-tienda/internal/tax"
)

// OrderGetter loads the order state the breakdown engine needs.
type OrderGetter interface {
	Get(ctx context.Context, id uuid.UUID) (order.Order, error)
}

// Service computes order breakdowns for both call sites: live quotes on draft
// carts and the breakdown view of existing orders. Both paths run the same
// engine; the duplicated per-screen math this replaces is gone on purpose.
type Service struct {
	Orders OrderGetter
	Engine breakdown.Engine
	Cache  *Cache
}

// QuoteCart prices a draft cart. Draft carts behave like pending orders:
// shipping is always recomputed from the current address and items.
func (s *Service) QuoteCart(items []breakdown.LineItem, addr breakdown.Address, regime tax.Regime) breakdown.Breakdown {
	if obs.QuoteItemsTotal != nil {
		obs.QuoteItemsTotal.Observe(float64(len(items)))
	}
	b, source := s.Engine.Compute(breakdown.Input{
		Items:   items,
		Address: addr,
		Regime:  regime,
		Status:  breakdown.StatusPending,
	})
	obs.ObserveBreakdown(string(source))
	return b
}

// OrderBreakdown returns the breakdown for a stored order. Results for
// non-pending orders are cached: their items, address and stored figures are
// immutable, so the cache can only go stale across tariff data updates, which
// the TTL bounds. Pending orders are never cached.
func (s *Service) OrderBreakdown(ctx context.Context, id uuid.UUID) (breakdown.Breakdown, error) {
	key := "breakdown:order:" + id.String()
	var cached breakdown.Breakdown
	if hit, err := s.Cache.GetJSON(ctx, key, &cached); err == nil && hit {
		obs.ObserveBreakdownCache("hit")
		return cached, nil
	}
	obs.ObserveBreakdownCache("miss")

	ord, err := s.Orders.Get(ctx, id)
	if err != nil {
		return breakdown.Breakdown{}, err
	}
	b, source := s.Engine.Compute(breakdown.Input{
		Items:   ord.Items,
		Address: ord.Address,
		Regime:  ord.Regime,
		Status:  ord.Status,
		Stored:  ord.Stored,
	})
	obs.ObserveBreakdown(string(source))
	if !ord.Status.Pending() {
		_ = s.Cache.SetJSON(ctx, key, b)
	}
	return b, nil
}
