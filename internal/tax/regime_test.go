package tax

import "testing"

func bps(v int32) *int32 { return &v }

func TestParseRegime(t *testing.T) {
	cases := []struct {
		in   string
		want Regime
	}{
		{"traditional", RegimeTraditional},
		{"simplified", RegimeSimplified},
		{" Simplified ", RegimeSimplified},
		{"", RegimeTraditional},
		{"unknown", RegimeTraditional},
	}
	for _, tc := range cases {
		if got := ParseRegime(tc.in); got != tc.want {
			t.Fatalf("ParseRegime(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestItemsTaxTraditional(t *testing.T) {
	items := []Item{
		{Qty: 2, UnitPrice: 5000},               // default 13% -> 1300
		{Qty: 1, UnitPrice: 10000, RateBps: bps(400)}, // 4% -> 400
		{Qty: 3, UnitPrice: 333},                // floor(999 * 0.13) = 129
	}
	if got := ItemsTax(items, RegimeTraditional); got != 1300+400+129 {
		t.Fatalf("ItemsTax = %d, want %d", got, 1300+400+129)
	}
}

func TestItemsTaxExplicitZeroRate(t *testing.T) {
	// An explicit zero rate means zero tax; only a missing rate defaults to 13%.
	items := []Item{{Qty: 5, UnitPrice: 2000, RateBps: bps(0)}}
	if got := ItemsTax(items, RegimeTraditional); got != 0 {
		t.Fatalf("ItemsTax = %d, want 0", got)
	}
}

func TestItemsTaxSimplified(t *testing.T) {
	items := []Item{{Qty: 2, UnitPrice: 5000}}
	if got := ItemsTax(items, RegimeSimplified); got != 0 {
		t.Fatalf("simplified regime must itemize no tax, got %d", got)
	}
}

func TestItemsTaxSkipsInvalidLines(t *testing.T) {
	items := []Item{
		{Qty: 0, UnitPrice: 5000},
		{Qty: -2, UnitPrice: 5000},
		{Qty: 1, UnitPrice: -100},
	}
	if got := ItemsTax(items, RegimeTraditional); got != 0 {
		t.Fatalf("ItemsTax = %d, want 0", got)
	}
}

func TestAdjustShippingTraditional(t *testing.T) {
	base, tax := AdjustShipping(1850, RegimeTraditional)
	if base != 1850 || tax != 240 {
		t.Fatalf("got base=%d tax=%d, want base=1850 tax=240", base, tax)
	}
	base, tax = AdjustShipping(2150, RegimeTraditional)
	if base != 2150 || tax != 279 {
		t.Fatalf("got base=%d tax=%d, want base=2150 tax=279", base, tax)
	}
}

func TestAdjustShippingSimplified(t *testing.T) {
	base, tax := AdjustShipping(1850, RegimeSimplified)
	if base != 2090 || tax != 0 {
		t.Fatalf("got base=%d tax=%d, want base=2090 tax=0", base, tax)
	}
	base, tax = AdjustShipping(2150, RegimeSimplified)
	if base != 2429 || tax != 0 {
		t.Fatalf("got base=%d tax=%d, want base=2429 tax=0", base, tax)
	}
}

func TestAdjustShippingZero(t *testing.T) {
	for _, regime := range []Regime{RegimeTraditional, RegimeSimplified} {
		base, tax := AdjustShipping(0, regime)
		if base != 0 || tax != 0 {
			t.Fatalf("%s: got base=%d tax=%d, want zeros", regime, base, tax)
		}
	}
}

// Folding IVA into a traditional base must agree with applying the
// simplified adjustment to the raw fee directly.
func TestAdjustShippingRegimeAgreement(t *testing.T) {
	for _, raw := range []int64{1, 99, 1850, 2150, 2350, 3450, 4550, 100001} {
		tradBase, _ := AdjustShipping(raw, RegimeTraditional)
		repairedBase, repairedTax := AdjustShipping(tradBase, RegimeSimplified)
		directBase, directTax := AdjustShipping(raw, RegimeSimplified)
		if repairedBase != directBase || repairedTax != directTax {
			t.Fatalf("raw %d: repaired (%d,%d) != direct (%d,%d)",
				raw, repairedBase, repairedTax, directBase, directTax)
		}
	}
}
