// Package taxengine computes income tax, depreciation, capital gains,
// GST netting, and TDS from explicit inputs. Every computation is a
// pure function: no clock reads, no I/O, no shared mutable state. Rule
// constants approximate FY2024-25 figures and are asserted, not
// derived from statute.
package taxengine

import (
	"errors"
	"time"
)

// Regime selects one of the two income-tax rule sets.
type Regime string

const (
	// RegimeOld permits chapter VI-A deductions at higher slab rates.
	RegimeOld Regime = "old"
	// RegimeNew ignores deductions in exchange for lower slab rates.
	RegimeNew Regime = "new"
)

// Income groups the taxable income components.
type Income struct {
	Salary         float64 `json:"gross_salary"`
	Business       float64 `json:"business_income"`
	HouseProperty  float64 `json:"house_property_income"`
	ShortTermGains float64 `json:"capital_gains_short_term"`
	LongTermGains  float64 `json:"capital_gains_long_term"`
	Other          float64 `json:"other_income"`
}

// Total sums all income components.
func (in Income) Total() float64 {
	return in.Salary + in.Business + in.HouseProperty + in.ShortTermGains + in.LongTermGains + in.Other
}

// Deductions groups chapter VI-A deduction claims. Only the old regime
// honours them.
type Deductions struct {
	Sec80C float64 `json:"deductions_80c"`
	Sec80D float64 `json:"deductions_80d"`
	Sec80G float64 `json:"deductions_80g"`
	Other  float64 `json:"other_deductions"`
}

// Total sums all deduction claims.
func (d Deductions) Total() float64 {
	return d.Sec80C + d.Sec80D + d.Sec80G + d.Other
}

// SlabLine is one row of the marginal-rate breakdown.
type SlabLine struct {
	Range         string  `json:"slab"`
	RatePct       float64 `json:"rate"`
	TaxableAmount float64 `json:"taxable_amount"`
	Tax           float64 `json:"tax"`
}

// RegimeResult is the full liability computation under one regime.
type RegimeResult struct {
	Regime            Regime     `json:"regime"`
	GrossTotalIncome  float64    `json:"gross_total_income"`
	StandardDeduction float64    `json:"standard_deduction"`
	TotalDeductions   float64    `json:"total_deductions"`
	TaxableIncome     float64    `json:"taxable_income"`
	TaxOnIncome       float64    `json:"tax_on_income"`
	Cess              float64    `json:"cess"`
	TotalTaxLiability float64    `json:"total_tax_liability"`
	EffectiveRatePct  float64    `json:"effective_tax_rate"`
	Breakdown         []SlabLine `json:"tax_breakdown"`
}

// RegimeComparison holds both regime results and the recommendation.
type RegimeComparison struct {
	Old         RegimeResult `json:"old_regime"`
	New         RegimeResult `json:"new_regime"`
	Recommended Regime       `json:"recommended_regime"`
	Savings     float64      `json:"tax_savings"`
	SavingsPct  float64      `json:"savings_percentage"`
	Reason      string       `json:"recommendation_reason"`
}

// AssetClass enumerates depreciation block categories.
type AssetClass string

const (
	AssetBuilding       AssetClass = "building"
	AssetFurniture      AssetClass = "furniture"
	AssetPlantMachinery AssetClass = "plant_machinery"
	AssetComputers      AssetClass = "computers"
	AssetVehicles       AssetClass = "vehicles"
	AssetIntangible     AssetClass = "intangible"
)

// DepreciationMethod selects the computation method.
type DepreciationMethod string

const (
	// MethodWDV is written-down value, the income-tax default.
	MethodWDV DepreciationMethod = "wdv"
	// MethodSLM is straight line, rarely exercised under the IT Act.
	MethodSLM DepreciationMethod = "slm"
)

// Asset describes one asset block for a depreciation run.
type Asset struct {
	Name       string     `json:"name"`
	Class      AssetClass `json:"type"`
	OpeningWDV float64    `json:"opening_wdv"`
	Additions  float64    `json:"additions"`
	UsefulLife int        `json:"useful_life,omitempty"`
}

// DepreciationEntry is the per-asset schedule row. Ordering mirrors
// the input assets.
type DepreciationEntry struct {
	AssetName    string     `json:"asset_name"`
	Class        AssetClass `json:"asset_type"`
	OpeningWDV   float64    `json:"opening_wdv"`
	Additions    float64    `json:"additions"`
	RatePct      float64    `json:"depreciation_rate"`
	Depreciation float64    `json:"depreciation"`
	ClosingWDV   float64    `json:"closing_wdv"`
}

// DepreciationSchedule aggregates a depreciation run.
type DepreciationSchedule struct {
	Method            DepreciationMethod  `json:"method"`
	Entries           []DepreciationEntry `json:"depreciation_schedule"`
	TotalDepreciation float64             `json:"total_depreciation"`
}

// GainAssetClass enumerates capital-gains asset categories.
type GainAssetClass string

const (
	GainEquity   GainAssetClass = "equity"
	GainProperty GainAssetClass = "property"
	GainOther    GainAssetClass = "other"
)

// Disposal describes one asset sale for capital-gains computation.
// Holding is taken from the dates when both are present, otherwise
// from HoldingDays. CII values index the cost basis of long-term
// property; when either is absent the basis is left unadjusted.
type Disposal struct {
	AssetClass    GainAssetClass `json:"asset_type"`
	PurchasePrice float64        `json:"purchase_price"`
	SalePrice     float64        `json:"sale_price"`
	PurchaseDate  *time.Time     `json:"purchase_date,omitempty"`
	SaleDate      *time.Time     `json:"sale_date,omitempty"`
	HoldingDays   int            `json:"holding_days,omitempty"`
	CIIPurchase   float64        `json:"cost_inflation_index_purchase,omitempty"`
	CIISale       float64        `json:"cost_inflation_index_sale,omitempty"`
}

// CapitalGainResult is the classified and taxed disposal.
type CapitalGainResult struct {
	AssetClass  GainAssetClass `json:"asset_type"`
	HoldingDays int            `json:"holding_period_days"`
	LongTerm    bool           `json:"is_long_term"`
	Term        string         `json:"type"`
	IndexedCost float64        `json:"indexed_cost"`
	Gain        float64        `json:"capital_gain"`
	Tax         float64        `json:"tax_on_capital_gain"`
}

// TxnDirection marks a GST transaction as a sale or purchase.
type TxnDirection string

const (
	TxnSale     TxnDirection = "sale"
	TxnPurchase TxnDirection = "purchase"
)

// GSTTransaction is one line of a GST period.
type GSTTransaction struct {
	Direction TxnDirection `json:"type"`
	Amount    float64      `json:"amount"`
	Rate      float64      `json:"gst_rate"`
}

// GSTNetResult nets output tax against input credit for a period.
type GSTNetResult struct {
	OutputGST       float64 `json:"output_gst"`
	InputTaxCredit  float64 `json:"input_tax_credit"`
	NetLiability    float64 `json:"net_gst_liability"`
	CGST            float64 `json:"cgst"`
	SGST            float64 `json:"sgst"`
	PaymentRequired bool    `json:"payment_required"`
	RefundDue       bool    `json:"refund_due"`
	RefundAmount    float64 `json:"refund_amount"`
}

// PaymentCategory enumerates TDS payment sections.
type PaymentCategory string

const (
	PaySalary          PaymentCategory = "salary"
	PayProfessionalFee PaymentCategory = "professional_fees"
	PayContract        PaymentCategory = "contract"
	PayContractCompany PaymentCategory = "contract_company"
	PayRent            PaymentCategory = "rent"
	PayCommission      PaymentCategory = "commission"
	PayInterest        PaymentCategory = "interest"
	PayDividend        PaymentCategory = "dividend"
)

// TDSResult is the withholding determination for one payment.
type TDSResult struct {
	Category   PaymentCategory `json:"payment_type"`
	Amount     float64         `json:"amount"`
	RatePct    float64         `json:"tds_rate"`
	Threshold  float64         `json:"threshold"`
	Applicable bool            `json:"tds_applicable"`
	TDSAmount  float64         `json:"tds_amount"`
	NetPayable float64         `json:"net_payment"`
}

var (
	// ErrUnknownRegime indicates a regime id outside old/new.
	ErrUnknownRegime = errors.New("taxengine: unknown tax regime")
	// ErrNegativeHolding indicates a sale date before the purchase date.
	ErrNegativeHolding = errors.New("taxengine: negative holding period")
)
