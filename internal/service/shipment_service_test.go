package service

import (
	"context"
	"testing"

	"github.com/vastrakart/vastrakart/internal/config"

	"github.com/shopspring/decimal"
)

func TestCheckPincodeWithoutCarrierCarriesEstimate(t *testing.T) {
	svc := NewShipmentService(nil, config.DelhiveryConfig{}, config.ShippingConfig{
		FlatRate:  50,
		FreeAbove: 999,
	})

	result, err := svc.CheckPincode(context.Background(), "560001")
	if err != nil {
		t.Fatalf("check pincode failed: %v", err)
	}
	if !result.Serviceable {
		t.Fatal("expected serviceable without a configured carrier")
	}
	if result.Pincode != "560001" {
		t.Fatalf("pincode want 560001 got %s", result.Pincode)
	}
	if !result.EstimatedCost.Decimal.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("estimated cost want 50 got %s", result.EstimatedCost.String())
	}
	if !result.FreeShippingAbove.Decimal.Equal(decimal.NewFromInt(999)) {
		t.Fatalf("free shipping floor want 999 got %s", result.FreeShippingAbove.String())
	}
}

func TestWithEstimateSkipsUnserviceablePincode(t *testing.T) {
	svc := NewShipmentService(nil, config.DelhiveryConfig{}, config.ShippingConfig{
		FlatRate:  50,
		FreeAbove: 999,
	})

	result := svc.withEstimate(PincodeCheckResult{Pincode: "110001"})
	if result.Serviceable {
		t.Fatal("expected unserviceable result to stay unserviceable")
	}
	if !result.EstimatedCost.Decimal.IsZero() {
		t.Fatalf("estimated cost want zero got %s", result.EstimatedCost.String())
	}
	if !result.FreeShippingAbove.Decimal.IsZero() {
		t.Fatalf("free shipping floor want zero got %s", result.FreeShippingAbove.String())
	}
}
