package breakdown

import (
	"github.com/tiendacr/backend-tienda/internal/tariff"
	"github.com/tiendacr/backend-tienda/internal/tax"
)

// Money represents a monetary value in whole colones.
type Money = int64

// DefaultLegacyShippingFee is the raw fee substituted for historic orders
// that predate persisted breakdowns. It is kept only for backward-compatible
// display of those orders and is not a current tariff.
const DefaultLegacyShippingFee Money = 3450

// LineItem is a read-only view of an order line. TaxRateBps is nil when the
// catalog stores no rate (defaulting to 13%); UnitWeightGrams of zero means
// the weight attribute is missing (defaulting to 100 g).
type LineItem struct {
	Qty             int
	UnitPrice       Money
	TaxRateBps      *int32
	UnitWeightGrams int64
}

// Address is the shipping destination. Both fields may be blank on draft
// carts; that is a valid input, not an error.
type Address struct {
	Province string
	Canton   string
}

// Status is the order lifecycle tag. The engine only cares about the pending
// predicate; every other value is opaque.
type Status string

const (
	StatusPending    Status = "pending"
	StatusPlaced     Status = "placed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Pending reports whether the order's cart and address are still mutable.
func (s Status) Pending() bool {
	return s == StatusPending
}

// Stored is a previously persisted shipping breakdown, read from storage
// alongside the order. The engine never writes it back.
type Stored struct {
	ShippingBase Money
	ShippingTax  Money
}

// Breakdown is the four-part decomposition of an order total. The invariant
// Total == ItemsSubtotal + ItemsTax + ShippingBase + ShippingTax holds for
// every breakdown the engine produces.
type Breakdown struct {
	ItemsSubtotal Money `json:"itemsSubtotal"`
	ItemsTax      Money `json:"itemsTax"`
	ShippingBase  Money `json:"shippingBase"`
	ShippingTax   Money `json:"shippingTax"`
	Total         Money `json:"total"`
}

// Source records which branch of the decision rule produced the shipping
// figures. It labels the breakdown metric and never leaves the process.
type Source string

const (
	// SourceRecomputed means shipping was priced fresh from the current
	// address and items (pending orders).
	SourceRecomputed Source = "recomputed"
	// SourceStored means a persisted breakdown was reused untouched.
	SourceStored Source = "stored"
	// SourceRepaired means a persisted breakdown computed under the
	// traditional regime was folded for a now-simplified order, in memory only.
	SourceRepaired Source = "repaired"
	// SourceLegacy means the order predates persisted breakdowns and the
	// historic fallback fee was applied.
	SourceLegacy Source = "legacy"
)

// Input is everything the engine needs for one computation.
type Input struct {
	Items   []LineItem
	Address Address
	Regime  tax.Regime
	Status  Status
	Stored  *Stored
}

// Engine assembles order breakdowns. It is a pure value: safe for concurrent
// use, no I/O, no shared mutable state.
type Engine struct {
	Tariffs tariff.Calculator
	// LegacyShippingFee overrides DefaultLegacyShippingFee when positive.
	LegacyShippingFee Money
}

// Compute produces the breakdown for the order's current state.
//
// Decision rule, in priority order:
//  1. Pending orders always reprice shipping from the current address and
//     items; any stored figure is stale by construction.
//  2. A persisted breakdown with a positive base is reused as-is, except
//     that a positive stored tax on a simplified order reveals it was
//     computed under the traditional regime before the regime changed; it is
//     repaired in memory by folding the tax into the base.
//  3. Orders with no persisted breakdown fall back to the historic flat fee.
func (e Engine) Compute(in Input) (Breakdown, Source) {
	subtotal := Subtotal(in.Items)
	itemsTax := tax.ItemsTax(taxItems(in.Items), in.Regime)

	var shippingBase, shippingTax Money
	var source Source
	switch {
	case in.Status.Pending():
		raw := e.Tariffs.Fee(in.Address.Province, in.Address.Canton, tariffItems(in.Items))
		shippingBase, shippingTax = tax.AdjustShipping(raw, in.Regime)
		source = SourceRecomputed
	case in.Stored != nil && in.Stored.ShippingBase > 0:
		shippingBase, shippingTax = in.Stored.ShippingBase, in.Stored.ShippingTax
		source = SourceStored
		if in.Regime == tax.RegimeSimplified && shippingTax > 0 {
			shippingBase, shippingTax = tax.AdjustShipping(shippingBase, tax.RegimeSimplified)
			source = SourceRepaired
		}
	default:
		fee := e.LegacyShippingFee
		if fee <= 0 {
			fee = DefaultLegacyShippingFee
		}
		shippingBase, shippingTax = tax.AdjustShipping(fee, in.Regime)
		source = SourceLegacy
	}

	return Breakdown{
		ItemsSubtotal: subtotal,
		ItemsTax:      itemsTax,
		ShippingBase:  shippingBase,
		ShippingTax:   shippingTax,
		Total:         subtotal + itemsTax + shippingBase + shippingTax,
	}, source
}

// Subtotal sums quantity times unit price over all items. The figure is never
// regime-dependent.
func Subtotal(items []LineItem) Money {
	var total Money
	for _, it := range items {
		if it.Qty <= 0 || it.UnitPrice < 0 {
			continue
		}
		total += Money(it.Qty) * it.UnitPrice
	}
	return total
}

func taxItems(items []LineItem) []tax.Item {
	out := make([]tax.Item, 0, len(items))
	for _, it := range items {
		out = append(out, tax.Item{Qty: it.Qty, UnitPrice: it.UnitPrice, RateBps: it.TaxRateBps})
	}
	return out
}

func tariffItems(items []LineItem) []tariff.Item {
	out := make([]tariff.Item, 0, len(items))
	for _, it := range items {
		out = append(out, tariff.Item{Qty: it.Qty, UnitWeightGrams: it.UnitWeightGrams})
	}
	return out
}
