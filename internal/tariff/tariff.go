package tariff

import (
	"strings"

	"github.com/tiendacr/backend-tienda/internal/geo"
)

// DefaultUnitWeightGrams substitutes missing per-item weights. Catalog entries
// without a weight attribute historically shipped as 100 g.
const DefaultUnitWeightGrams = 100

// Band prices a shipment whose total weight does not exceed MaxWeightGrams.
// Rates are stored in whole colones; the currency has no fractional subunit.
type Band struct {
	MaxWeightGrams int64
	GAMRate        int64
	RestRate       int64
}

// Overflow prices shipments heavier than the last band. The base rate covers
// the first kilogram, each started kilogram beyond that adds ExtraKiloRate.
type Overflow struct {
	Base1kgGAM    int64
	Base1kgRest   int64
	ExtraKiloRate int64
}

// Table is the banded tariff. Construct it once at startup and treat it as
// immutable; a tariff change is a data update, not a code change.
type Table struct {
	bands    []Band
	overflow Overflow
}

// NewTable copies the provided bands so later mutation of the caller's slice
// cannot affect the table.
func NewTable(bands []Band, overflow Overflow) Table {
	owned := make([]Band, len(bands))
	copy(owned, bands)
	return Table{bands: owned, overflow: overflow}
}

// DefaultTable reproduces the legacy courier tariff.
func DefaultTable() Table {
	return NewTable([]Band{
		{MaxWeightGrams: 250, GAMRate: 1850, RestRate: 2150},
		{MaxWeightGrams: 500, GAMRate: 1950, RestRate: 2500},
		{MaxWeightGrams: 1000, GAMRate: 2350, RestRate: 3450},
	}, Overflow{Base1kgGAM: 2350, Base1kgRest: 3450, ExtraKiloRate: 1100})
}

// Item carries the fields of a line item that matter for weighing a shipment.
type Item struct {
	Qty             int
	UnitWeightGrams int64
}

// TotalWeight sums quantity times unit weight over all items, substituting
// DefaultUnitWeightGrams for missing weights.
func TotalWeight(items []Item) int64 {
	var total int64
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		weight := it.UnitWeightGrams
		if weight <= 0 {
			weight = DefaultUnitWeightGrams
		}
		total += int64(it.Qty) * weight
	}
	return total
}

// Calculator resolves the raw shipping fee for a destination and item list.
// It is pure: no I/O, no mutation, identical output for identical input.
type Calculator struct {
	Zones   *geo.Table
	Tariffs Table
}

// Fee returns the raw, regime-independent shipping fee in whole colones.
// A blank province or canton yields zero: a draft cart without a destination
// cannot be priced, and that is a valid outcome rather than an error.
func (c Calculator) Fee(province, canton string, items []Item) int64 {
	if strings.TrimSpace(province) == "" || strings.TrimSpace(canton) == "" {
		return 0
	}
	weight := TotalWeight(items)
	gam := c.Zones.IsGAM(province, canton)
	for _, band := range c.Tariffs.bands {
		if weight <= band.MaxWeightGrams {
			if gam {
				return band.GAMRate
			}
			return band.RestRate
		}
	}
	// Heavier than every band: the overflow base covers the first kilogram,
	// each started kilogram beyond it is billed at the extra-kilo rate.
	extraKilos := (weight - 1000 + 999) / 1000
	if extraKilos < 0 {
		extraKilos = 0
	}
	base := c.Tariffs.overflow.Base1kgRest
	if gam {
		base = c.Tariffs.overflow.Base1kgGAM
	}
	return base + extraKilos*c.Tariffs.overflow.ExtraKiloRate
}
