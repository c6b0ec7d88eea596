package taxengine

// depreciationRates fixes the WDV percentage per asset block.
var depreciationRates = map[AssetClass]float64{
	AssetBuilding:       0.05,
	AssetFurniture:      0.10,
	AssetPlantMachinery: 0.15,
	AssetComputers:      0.40,
	AssetVehicles:       0.15,
	AssetIntangible:     0.25,
}

// defaultDepreciationRate applies to unrecognised asset classes,
// matching the plant & machinery block.
const defaultDepreciationRate = 0.15

// defaultUsefulLife is the SLM fallback life in years.
const defaultUsefulLife = 10

// ComputeDepreciation builds the per-asset schedule. WDV is the
// default; SLM divides the opening value by the asset's useful life.
// Closing values are surfaced as-is: a negative closing value signals
// bad caller data and is not floored here.
func ComputeDepreciation(assets []Asset, method DepreciationMethod) DepreciationSchedule {
	if method != MethodSLM {
		method = MethodWDV
	}
	schedule := DepreciationSchedule{
		Method:  method,
		Entries: make([]DepreciationEntry, 0, len(assets)),
	}
	var total float64
	for _, asset := range assets {
		rate, ok := depreciationRates[asset.Class]
		if !ok {
			rate = defaultDepreciationRate
		}
		var depreciation float64
		if method == MethodWDV {
			depreciation = (asset.OpeningWDV + asset.Additions) * rate
		} else {
			life := asset.UsefulLife
			if life <= 0 {
				life = defaultUsefulLife
			}
			depreciation = asset.OpeningWDV / float64(life)
		}
		name := asset.Name
		if name == "" {
			name = "Unnamed Asset"
		}
		schedule.Entries = append(schedule.Entries, DepreciationEntry{
			AssetName:    name,
			Class:        asset.Class,
			OpeningWDV:   asset.OpeningWDV,
			Additions:    asset.Additions,
			RatePct:      rate * 100,
			Depreciation: round2(depreciation),
			ClosingWDV:   round2(asset.OpeningWDV + asset.Additions - depreciation),
		})
		total += depreciation
	}
	schedule.TotalDepreciation = round2(total)
	return schedule
}
