package compliance

// Turnover thresholds used to resolve conditional obligations. The
// amounts approximate FY2024-25 limits (GST registration 40 lakh,
// tax audit 1 crore, TDS obligations 50 lakh) and are not a statement
// of current law.
const (
	GSTRegistrationThreshold = 4_000_000.0
	AuditThreshold           = 10_000_000.0
	WithholdingThreshold     = 5_000_000.0
)

// complianceMatrix maps each business type to its base obligations.
var complianceMatrix = map[BusinessType]RequirementSet{
	BusinessProprietorship: {
		GSTRegistration:   Conditional,
		Audit:             Conditional,
		Withholding:       NotRequired,
		CorporateFiling:   NotRequired,
		ApplicableReturns: []TaskCategory{CategoryITR, CategoryGST},
	},
	BusinessPartnership: {
		GSTRegistration:   Conditional,
		Audit:             Required,
		Withholding:       Conditional,
		CorporateFiling:   NotRequired,
		ApplicableReturns: []TaskCategory{CategoryITR, CategoryGST, CategoryTDS},
	},
	BusinessLLP: {
		GSTRegistration:   Conditional,
		Audit:             Required,
		Withholding:       Required,
		CorporateFiling:   Required,
		ApplicableReturns: []TaskCategory{CategoryITR, CategoryGST, CategoryTDS, CategoryROC, CategoryAudit},
	},
	BusinessPrivateLimited: {
		GSTRegistration:   Conditional,
		Audit:             Required,
		Withholding:       Required,
		CorporateFiling:   Required,
		ApplicableReturns: []TaskCategory{CategoryITR, CategoryGST, CategoryTDS, CategoryROC, CategoryAudit},
	},
	BusinessPublicLimited: {
		GSTRegistration:   Required,
		Audit:             Required,
		Withholding:       Required,
		CorporateFiling:   Required,
		ApplicableReturns: []TaskCategory{CategoryITR, CategoryGST, CategoryTDS, CategoryROC, CategoryAudit},
	},
	BusinessTrust: {
		GSTRegistration:   Conditional,
		Audit:             Conditional,
		Withholding:       Required,
		CorporateFiling:   NotRequired,
		ApplicableReturns: []TaskCategory{CategoryITR, CategoryGST, CategoryTDS},
	},
	BusinessHUF: {
		GSTRegistration:   Conditional,
		Audit:             Conditional,
		Withholding:       NotRequired,
		CorporateFiling:   NotRequired,
		ApplicableReturns: []TaskCategory{CategoryITR, CategoryGST},
	},
	BusinessIndividual: {
		GSTRegistration:   NotRequired,
		Audit:             NotRequired,
		Withholding:       NotRequired,
		CorporateFiling:   NotRequired,
		ApplicableReturns: []TaskCategory{CategoryITR},
	},
}

// serviceChecklists lists the document checklist per engagement type.
// Order is significant and mirrors the preparation sequence.
var serviceChecklists = map[string][]ChecklistItem{
	"ITR_INDIVIDUAL": {
		{Item: "Form 16 received from employer", Status: ItemMandatory},
		{Item: "Form 26AS downloaded and verified", Status: ItemMandatory},
		{Item: "Bank statements for all accounts", Status: ItemMandatory},
		{Item: "Interest certificates from banks", Status: ItemOptional},
		{Item: "House property details (rent, loan interest)", Status: ItemOptional},
		{Item: "Capital gains computation", Status: ItemOptional},
		{Item: "Investment proofs (80C, 80D, 80G)", Status: ItemOptional},
		{Item: "Other income details (dividend, interest)", Status: ItemOptional},
		{Item: "Previous year refund received confirmation", Status: ItemOptional},
	},
	"ITR_BUSINESS": {
		{Item: "Books of accounts finalized", Status: ItemMandatory},
		{Item: "Trial balance prepared", Status: ItemMandatory},
		{Item: "Profit & Loss account", Status: ItemMandatory},
		{Item: "Balance sheet", Status: ItemMandatory},
		{Item: "Tax audit report (if applicable)", Status: ItemConditional},
		{Item: "Advance tax payment challans", Status: ItemOptional},
		{Item: "TDS certificates", Status: ItemOptional},
		{Item: "Depreciation schedule", Status: ItemMandatory},
	},
	"GST_MONTHLY": {
		{Item: "Sales register finalized", Status: ItemMandatory},
		{Item: "Purchase register finalized", Status: ItemMandatory},
		{Item: "GSTR-2A downloaded and reconciled", Status: ItemMandatory},
		{Item: "E-way bills accounted for", Status: ItemOptional},
		{Item: "Credit notes issued", Status: ItemOptional},
		{Item: "Debit notes received", Status: ItemOptional},
		{Item: "Exports documentation", Status: ItemOptional},
		{Item: "HSN codes verified", Status: ItemMandatory},
	},
	"TDS_QUARTERLY": {
		{Item: "TDS challan details collected", Status: ItemMandatory},
		{Item: "Deductee details (PAN, amount) prepared", Status: ItemMandatory},
		{Item: "Form 15G/15H collected (if applicable)", Status: ItemOptional},
		{Item: "Late payment interest calculated", Status: ItemOptional},
		{Item: "FVU file prepared", Status: ItemMandatory},
	},
	"AUDIT": {
		{Item: "All vouchers collected", Status: ItemMandatory},
		{Item: "Bank statements for full year", Status: ItemMandatory},
		{Item: "Stock register", Status: ItemMandatory},
		{Item: "Fixed assets register", Status: ItemMandatory},
		{Item: "Loan agreements", Status: ItemOptional},
		{Item: "Board resolutions", Status: ItemConditional},
		{Item: "Related party transactions details", Status: ItemOptional},
	},
	"ROC_ANNUAL": {
		{Item: "Board meeting for accounts approval", Status: ItemMandatory},
		{Item: "AGM notice sent to members", Status: ItemMandatory},
		{Item: "AGM conducted", Status: ItemMandatory},
		{Item: "Financial statements finalized", Status: ItemMandatory},
		{Item: "AOC-4 form prepared", Status: ItemMandatory},
		{Item: "MGT-7 form prepared", Status: ItemMandatory},
		{Item: "Digital signature certificates ready", Status: ItemMandatory},
	},
}

// stageSequence is the ordered engagement workflow.
var stageSequence = []Stage{
	StageDataCollection,
	StagePreparation,
	StageReview,
	StageClientApproval,
	StageFiling,
	StageAcknowledgment,
	StageCompleted,
}
