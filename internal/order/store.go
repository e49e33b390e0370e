package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tiendacr/backend-tienda/internal/breakdown"
	"github.com/tiendacr/backend-tienda/internal/tax"
)

// ErrNotFound is returned when the requested order does not exist.
var ErrNotFound = errors.New("order not found")

// Order is the read-side view the breakdown engine needs: lifecycle status,
// tax regime, destination, line items and the optionally persisted shipping
// breakdown. The store never writes; the repair rule is display-only.
type Order struct {
	ID      uuid.UUID
	Status  breakdown.Status
	Regime  tax.Regime
	Address breakdown.Address
	Items   []breakdown.LineItem
	Stored  *breakdown.Stored
}

// Store reads orders from PostgreSQL.
type Store struct {
	Pool *pgxpool.Pool
}

const getOrderSQL = `
SELECT status, tax_regime, COALESCE(ship_province, ''), COALESCE(ship_canton, ''),
       shipping_base, shipping_tax
FROM orders
WHERE id = $1`

const listOrderItemsSQL = `
SELECT qty, unit_price, tax_rate_bps, unit_weight_grams
FROM order_items
WHERE order_id = $1
ORDER BY position`

// Get loads one order with its line items.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Order, error) {
	if s == nil || s.Pool == nil {
		return Order{}, errors.New("order store not configured")
	}

	var (
		status       string
		regime       string
		province     string
		canton       string
		shippingBase *int64
		shippingTax  *int64
	)
	err := s.Pool.QueryRow(ctx, getOrderSQL, id).Scan(
		&status, &regime, &province, &canton, &shippingBase, &shippingTax,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}

	out := Order{
		ID:      id,
		Status:  breakdown.Status(status),
		Regime:  tax.ParseRegime(regime),
		Address: breakdown.Address{Province: province, Canton: canton},
	}
	if shippingBase != nil {
		stored := breakdown.Stored{ShippingBase: *shippingBase}
		if shippingTax != nil {
			stored.ShippingTax = *shippingTax
		}
		out.Stored = &stored
	}

	rows, err := s.Pool.Query(ctx, listOrderItemsSQL, id)
	if err != nil {
		return Order{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			qty       int32
			unitPrice int64
			rateBps   *int32
			weight    *int64
		)
		if err := rows.Scan(&qty, &unitPrice, &rateBps, &weight); err != nil {
			return Order{}, err
		}
		item := breakdown.LineItem{
			Qty:        int(qty),
			UnitPrice:  unitPrice,
			TaxRateBps: rateBps,
		}
		if weight != nil {
			item.UnitWeightGrams = *weight
		}
		out.Items = append(out.Items, item)
	}
	if err := rows.Err(); err != nil {
		return Order{}, err
	}
	return out, nil
}
