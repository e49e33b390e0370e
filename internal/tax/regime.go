package tax

import "strings"

// Regime selects how IVA is itemized on an order. Exactly one regime applies
// per order; it is immutable once the order is finalized.
type Regime string

const (
	// RegimeTraditional itemizes IVA separately from the pre-tax base for
	// both items and shipping.
	RegimeTraditional Regime = "traditional"
	// RegimeSimplified folds IVA into a single displayed shipping figure and
	// itemizes no per-line tax.
	RegimeSimplified Regime = "simplified"
)

// DefaultRateBps is the standard IVA rate (13%) in basis points. It
// substitutes a line item's missing tax rate; an explicit zero rate is
// honored as zero tax.
const DefaultRateBps int32 = 1300

// ivaShippingBps is the IVA rate applied to shipping under both regimes.
const ivaShippingBps int64 = 1300

// ParseRegime normalizes a stored regime tag. Unknown or blank values fall
// back to the traditional regime, matching how legacy orders were recorded.
func ParseRegime(value string) Regime {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(RegimeSimplified):
		return RegimeSimplified
	default:
		return RegimeTraditional
	}
}

// Item carries the fields of a line item that matter for tax calculation.
// RateBps is nil when the catalog stores no rate for the product.
type Item struct {
	Qty       int
	UnitPrice int64
	RateBps   *int32
}

// ItemsTax returns the summed per-line IVA in whole colones. The simplified
// regime itemizes no tax. Each line is floored independently so the result
// matches what an invoice listing per-line tax would show.
func ItemsTax(items []Item, regime Regime) int64 {
	if regime == RegimeSimplified {
		return 0
	}
	var total int64
	for _, it := range items {
		if it.Qty <= 0 || it.UnitPrice < 0 {
			continue
		}
		rate := int64(DefaultRateBps)
		if it.RateBps != nil {
			rate = int64(*it.RateBps)
		}
		if rate <= 0 {
			continue
		}
		total += int64(it.Qty) * it.UnitPrice * rate / 10000
	}
	return total
}

// AdjustShipping converts a raw shipping fee into the regime's displayed
// base/tax pair. Traditional keeps the raw fee as a tax-exclusive base and
// itemizes IVA; simplified folds IVA into the base and itemizes nothing.
// All rounding floors, uniformly (see DESIGN.md).
func AdjustShipping(raw int64, regime Regime) (base, tax int64) {
	if raw <= 0 {
		return 0, 0
	}
	if regime == RegimeSimplified {
		return raw * (10000 + ivaShippingBps) / 10000, 0
	}
	return raw, raw * ivaShippingBps / 10000
}
