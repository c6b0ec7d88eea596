package taxengine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Service fronts the pure computations with caching for the expensive
// regime comparison. All other operations pass straight through; they
// are cheap enough that a cache round-trip would cost more than the
// computation.
type Service struct {
	cache *Cache
}

// NewService constructs the engine service.
func NewService(cache *Cache) *Service {
	return &Service{cache: cache}
}

// IncomeTax computes liability under one regime.
func (s *Service) IncomeTax(_ context.Context, income Income, deductions Deductions, regime Regime) (RegimeResult, error) {
	return ComputeIncomeTax(income, deductions, regime)
}

// CompareRegimes computes both regimes with a redis-backed cache keyed
// by the input fingerprint.
func (s *Service) CompareRegimes(ctx context.Context, income Income, deductions Deductions) (RegimeComparison, error) {
	if s == nil || s.cache == nil {
		return CompareRegimes(income, deductions)
	}
	key, err := s.cache.BuildKey(ctx, "taxengine", "compare", fingerprint(income, deductions))
	if err != nil {
		return CompareRegimes(income, deductions)
	}
	var cmp RegimeComparison
	err = s.cache.FetchJSON(ctx, key, &cmp, func(context.Context) (interface{}, error) {
		return CompareRegimes(income, deductions)
	})
	if err != nil {
		return CompareRegimes(income, deductions)
	}
	return cmp, nil
}

// Depreciation computes the asset schedule.
func (s *Service) Depreciation(_ context.Context, assets []Asset, method DepreciationMethod) DepreciationSchedule {
	return ComputeDepreciation(assets, method)
}

// CapitalGains classifies and taxes a disposal.
func (s *Service) CapitalGains(_ context.Context, in Disposal) (CapitalGainResult, error) {
	return ComputeCapitalGains(in)
}

// GST nets a period's transactions.
func (s *Service) GST(_ context.Context, txns []GSTTransaction) GSTNetResult {
	return ComputeGST(txns)
}

// TDS determines withholding for a payment.
func (s *Service) TDS(_ context.Context, category PaymentCategory, amount float64) TDSResult {
	return ComputeTDS(category, amount)
}

// fingerprint hashes the comparison inputs into a stable cache key
// component.
func fingerprint(income Income, deductions Deductions) string {
	raw, _ := json.Marshal(struct {
		Income     Income
		Deductions Deductions
	}{income, deductions})
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:8])
}
