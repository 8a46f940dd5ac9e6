package service

import (
	"strings"

	"github.com/shopspring/decimal"
)

// GSTBreakup is the tax split for one line or a whole cart. Values stay
// unrounded; round only when converting to Money at the response boundary.
type GSTBreakup struct {
	CGST decimal.Decimal
	SGST decimal.Decimal
	IGST decimal.Decimal
}

// Total returns the summed tax.
func (b GSTBreakup) Total() decimal.Decimal {
	return b.CGST.Add(b.SGST).Add(b.IGST)
}

// Add accumulates another breakup.
func (b GSTBreakup) Add(other GSTBreakup) GSTBreakup {
	return GSTBreakup{
		CGST: b.CGST.Add(other.CGST),
		SGST: b.SGST.Add(other.SGST),
		IGST: b.IGST.Add(other.IGST),
	}
}

// LineGST computes the tax split for one line. Intra-state sales split the
// GST evenly into CGST and SGST; inter-state sales put the full amount into
// IGST.
func LineGST(unitPrice decimal.Decimal, quantity int, gstPercent decimal.Decimal, sellerState, buyerState string) GSTBreakup {
	if quantity <= 0 || gstPercent.Sign() <= 0 || unitPrice.Sign() <= 0 {
		return GSTBreakup{}
	}

	lineAmount := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	hundred := decimal.NewFromInt(100)

	if SameState(sellerState, buyerState) {
		half := lineAmount.Mul(gstPercent.Div(decimal.NewFromInt(2))).Div(hundred)
		return GSTBreakup{CGST: half, SGST: half}
	}
	return GSTBreakup{IGST: lineAmount.Mul(gstPercent).Div(hundred)}
}

// SameState compares state names ignoring case and surrounding space.
func SameState(sellerState, buyerState string) bool {
	return strings.EqualFold(strings.TrimSpace(sellerState), strings.TrimSpace(buyerState))
}
