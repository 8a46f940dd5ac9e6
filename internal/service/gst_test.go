package service

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLineGSTSameState(t *testing.T) {
	breakup := LineGST(decimal.NewFromInt(1000), 1, decimal.NewFromInt(18), "Maharashtra", "Maharashtra")
	if !breakup.IGST.IsZero() {
		t.Fatalf("expected zero igst, got %s", breakup.IGST)
	}
	if !breakup.CGST.Equal(breakup.SGST) {
		t.Fatalf("cgst %s != sgst %s", breakup.CGST, breakup.SGST)
	}
	if !breakup.CGST.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("unexpected cgst: %s", breakup.CGST)
	}
	if !breakup.Total().Equal(decimal.NewFromInt(180)) {
		t.Fatalf("unexpected total: %s", breakup.Total())
	}
}

func TestLineGSTInterState(t *testing.T) {
	breakup := LineGST(decimal.NewFromInt(500), 2, decimal.NewFromInt(12), "Maharashtra", "Karnataka")
	if !breakup.CGST.IsZero() || !breakup.SGST.IsZero() {
		t.Fatalf("expected zero cgst/sgst, got %s / %s", breakup.CGST, breakup.SGST)
	}
	if !breakup.IGST.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("unexpected igst: %s", breakup.IGST)
	}
}

func TestLineGSTStateComparisonIsCaseInsensitive(t *testing.T) {
	breakup := LineGST(decimal.NewFromInt(100), 1, decimal.NewFromInt(18), " maharashtra ", "Maharashtra")
	if !breakup.IGST.IsZero() {
		t.Fatalf("expected intra-state treatment, got igst %s", breakup.IGST)
	}
}

func TestLineGSTZeroRated(t *testing.T) {
	breakup := LineGST(decimal.NewFromInt(100), 3, decimal.Zero, "Maharashtra", "Karnataka")
	if !breakup.Total().IsZero() {
		t.Fatalf("expected zero tax, got %s", breakup.Total())
	}
}

func TestLineGSTInvalidQuantity(t *testing.T) {
	breakup := LineGST(decimal.NewFromInt(100), 0, decimal.NewFromInt(18), "A", "B")
	if !breakup.Total().IsZero() {
		t.Fatalf("expected zero tax for zero quantity, got %s", breakup.Total())
	}
}

func TestGSTBreakupAccumulatesWithoutIntermediateRounding(t *testing.T) {
	// Three lines at 33.33 with 18% intra-state GST. Summing the raw values and
	// rounding once must not drift from the rounded-per-line result range.
	var total GSTBreakup
	for i := 0; i < 3; i++ {
		line := LineGST(decimal.RequireFromString("33.33"), 1, decimal.NewFromInt(18), "Delhi", "Delhi")
		total = total.Add(line)
	}
	want := decimal.RequireFromString("99.99").
		Mul(decimal.NewFromInt(9)).Div(decimal.NewFromInt(100))
	if !total.CGST.Equal(want) {
		t.Fatalf("accumulated cgst %s, want %s", total.CGST, want)
	}
}
