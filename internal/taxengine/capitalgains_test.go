package taxengine

import (
	"testing"
	"time"
)

func TestCapitalGainsEquityBoundary(t *testing.T) {
	short, err := ComputeCapitalGains(Disposal{AssetClass: GainEquity, PurchasePrice: 100_000, SalePrice: 150_000, HoldingDays: 365})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if short.LongTerm || short.Term != "Short-term" {
		t.Fatalf("365 days must be short term, got %+v", short)
	}
	long, err := ComputeCapitalGains(Disposal{AssetClass: GainEquity, PurchasePrice: 100_000, SalePrice: 150_000, HoldingDays: 366})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !long.LongTerm {
		t.Fatalf("366 days must be long term, got %+v", long)
	}
}

func TestCapitalGainsClassBoundaries(t *testing.T) {
	cases := []struct {
		class GainAssetClass
		days  int
		long  bool
	}{
		{GainProperty, 730, false},
		{GainProperty, 731, true},
		{GainOther, 1095, false},
		{GainOther, 1096, true},
	}
	for _, tc := range cases {
		res, err := ComputeCapitalGains(Disposal{AssetClass: tc.class, PurchasePrice: 1, SalePrice: 2, HoldingDays: tc.days})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.LongTerm != tc.long {
			t.Fatalf("%s at %d days: expected long=%v", tc.class, tc.days, tc.long)
		}
	}
}

func TestCapitalGainsHoldingFromDates(t *testing.T) {
	purchase := time.Date(2022, time.January, 10, 0, 0, 0, 0, time.UTC)
	sale := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	res, err := ComputeCapitalGains(Disposal{
		AssetClass:    GainEquity,
		PurchasePrice: 100_000,
		SalePrice:     120_000,
		PurchaseDate:  &purchase,
		SaleDate:      &sale,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.HoldingDays != 730 {
		t.Fatalf("expected 730 days from dates, got %d", res.HoldingDays)
	}
	if !res.LongTerm {
		t.Fatal("expected long term for equity past a year")
	}
}

func TestCapitalGainsNegativeHolding(t *testing.T) {
	purchase := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	sale := purchase.AddDate(0, 0, -5)
	if _, err := ComputeCapitalGains(Disposal{AssetClass: GainEquity, PurchaseDate: &purchase, SaleDate: &sale}); err != ErrNegativeHolding {
		t.Fatalf("expected ErrNegativeHolding, got %v", err)
	}
}

func TestCapitalGainsLongTermEquityExemption(t *testing.T) {
	res, err := ComputeCapitalGains(Disposal{AssetClass: GainEquity, PurchasePrice: 500_000, SalePrice: 650_000, HoldingDays: 400})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Gain 150000, taxable above the 100000 exemption at 10%.
	if res.Gain != 150_000 {
		t.Fatalf("expected gain 150000, got %.2f", res.Gain)
	}
	if res.Tax != 5_000 {
		t.Fatalf("expected tax 5000, got %.2f", res.Tax)
	}

	// Gain within the exemption owes nothing.
	res, err = ComputeCapitalGains(Disposal{AssetClass: GainEquity, PurchasePrice: 500_000, SalePrice: 590_000, HoldingDays: 400})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Tax != 0 {
		t.Fatalf("expected zero tax under exemption, got %.2f", res.Tax)
	}
}

func TestCapitalGainsPropertyIndexation(t *testing.T) {
	res, err := ComputeCapitalGains(Disposal{
		AssetClass:    GainProperty,
		PurchasePrice: 1_000_000,
		SalePrice:     2_000_000,
		HoldingDays:   1_000,
		CIIPurchase:   100,
		CIISale:       110,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IndexedCost != 1_100_000 {
		t.Fatalf("expected indexed cost 1100000, got %.2f", res.IndexedCost)
	}
	if res.Gain != 900_000 {
		t.Fatalf("expected gain 900000, got %.2f", res.Gain)
	}
	if res.Tax != 180_000 {
		t.Fatalf("expected 20%% flat tax 180000, got %.2f", res.Tax)
	}
}

func TestCapitalGainsNoIndexationWithoutIndices(t *testing.T) {
	res, err := ComputeCapitalGains(Disposal{AssetClass: GainProperty, PurchasePrice: 1_000_000, SalePrice: 1_500_000, HoldingDays: 1_000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IndexedCost != 1_000_000 {
		t.Fatalf("expected unadjusted basis, got %.2f", res.IndexedCost)
	}
}

func TestCapitalGainsShortTermRates(t *testing.T) {
	equity, err := ComputeCapitalGains(Disposal{AssetClass: GainEquity, PurchasePrice: 100_000, SalePrice: 140_000, HoldingDays: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if equity.Tax != 6_000 {
		t.Fatalf("expected 15%% STCG 6000, got %.2f", equity.Tax)
	}
	// Short-term non-equity folds into ordinary income; no tax here.
	other, err := ComputeCapitalGains(Disposal{AssetClass: GainOther, PurchasePrice: 100_000, SalePrice: 140_000, HoldingDays: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other.Tax != 0 {
		t.Fatalf("expected zero engine tax for short-term other, got %.2f", other.Tax)
	}
}
