package quote_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/tiendacr/backend-tienda/internal/breakdown"
	"github.com/tiendacr/backend-tienda/internal/geo"
	"github.com/tiendacr/backend-tienda/internal/order"
	"github.com/tiendacr/backend-tienda/internal/quote"
	"github.com/tiendacr/backend-tienda/internal/tariff"
	"github.com/tiendacr/backend-tienda/internal/tax"
)

type fakeOrders struct {
	orders map[uuid.UUID]order.Order
	calls  int
}

func (f *fakeOrders) Get(_ context.Context, id uuid.UUID) (order.Order, error) {
	f.calls++
	ord, ok := f.orders[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	return ord, nil
}

func testEngine() breakdown.Engine {
	return breakdown.Engine{Tariffs: tariff.Calculator{Zones: geo.DefaultTable(), Tariffs: tariff.DefaultTable()}}
}

func newTestCache(t *testing.T) *quote.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return quote.NewCache(client, time.Minute)
}

func TestQuoteCart(t *testing.T) {
	svc := &quote.Service{Engine: testEngine()}
	b := svc.QuoteCart(
		[]breakdown.LineItem{{Qty: 2, UnitPrice: 5000}},
		breakdown.Address{Province: "San José", Canton: "Central"},
		tax.RegimeTraditional,
	)
	require.Equal(t, int64(10000), b.ItemsSubtotal)
	require.Equal(t, int64(1300), b.ItemsTax)
	require.Equal(t, int64(1850), b.ShippingBase)
	require.Equal(t, int64(240), b.ShippingTax)
	require.Equal(t, b.ItemsSubtotal+b.ItemsTax+b.ShippingBase+b.ShippingTax, b.Total)
}

func TestOrderBreakdownCachesFinalizedOrders(t *testing.T) {
	id := uuid.New()
	orders := &fakeOrders{orders: map[uuid.UUID]order.Order{
		id: {
			ID:     id,
			Status: breakdown.StatusShipped,
			Regime: tax.RegimeTraditional,
			Items:  []breakdown.LineItem{{Qty: 1, UnitPrice: 8000}},
			Stored: &breakdown.Stored{ShippingBase: 2150, ShippingTax: 279},
		},
	}}
	svc := &quote.Service{Orders: orders, Engine: testEngine(), Cache: newTestCache(t)}

	first, err := svc.OrderBreakdown(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, int64(2150), first.ShippingBase)
	require.Equal(t, 1, orders.calls)

	second, err := svc.OrderBreakdown(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, orders.calls, "second read must come from cache")
}

func TestOrderBreakdownNeverCachesPending(t *testing.T) {
	id := uuid.New()
	orders := &fakeOrders{orders: map[uuid.UUID]order.Order{
		id: {
			ID:      id,
			Status:  breakdown.StatusPending,
			Regime:  tax.RegimeTraditional,
			Address: breakdown.Address{Province: "San José", Canton: "Central"},
			Items:   []breakdown.LineItem{{Qty: 2, UnitPrice: 5000}},
		},
	}}
	svc := &quote.Service{Orders: orders, Engine: testEngine(), Cache: newTestCache(t)}

	_, err := svc.OrderBreakdown(context.Background(), id)
	require.NoError(t, err)
	_, err = svc.OrderBreakdown(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, 2, orders.calls, "pending orders must be recomputed every call")
}

func TestOrderBreakdownRepairsLegacySimplified(t *testing.T) {
	id := uuid.New()
	orders := &fakeOrders{orders: map[uuid.UUID]order.Order{
		id: {
			ID:     id,
			Status: breakdown.StatusDelivered,
			Regime: tax.RegimeSimplified,
			Items:  []breakdown.LineItem{{Qty: 1, UnitPrice: 8000}},
			Stored: &breakdown.Stored{ShippingBase: 2150, ShippingTax: 279},
		},
	}}
	svc := &quote.Service{Orders: orders, Engine: testEngine()}

	b, err := svc.OrderBreakdown(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, int64(2429), b.ShippingBase)
	require.Equal(t, int64(0), b.ShippingTax)
}

func TestOrderBreakdownNotFound(t *testing.T) {
	svc := &quote.Service{Orders: &fakeOrders{}, Engine: testEngine()}
	_, err := svc.OrderBreakdown(context.Background(), uuid.New())
	require.ErrorIs(t, err, order.ErrNotFound)
}

func TestOrderBreakdownWorksWithoutCache(t *testing.T) {
	id := uuid.New()
	orders := &fakeOrders{orders: map[uuid.UUID]order.Order{
		id: {
			ID:     id,
			Status: breakdown.StatusDelivered,
			Regime: tax.RegimeTraditional,
			Items:  []breakdown.LineItem{{Qty: 1, UnitPrice: 8000}},
		},
	}}
	svc := &quote.Service{Orders: orders, Engine: testEngine()}

	b, err := svc.OrderBreakdown(context.Background(), id)
	require.NoError(t, err)
	// No stored breakdown: the historic flat fee applies.
	require.Equal(t, int64(3450), b.ShippingBase)
	require.Equal(t, int64(448), b.ShippingTax)
}
