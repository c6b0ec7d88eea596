package compliance

import (
	"encoding/json"
	"errors"
)

// BusinessType enumerates the constitution of a client entity.
type BusinessType string

const (
	BusinessProprietorship BusinessType = "PROPRIETORSHIP"
	BusinessPartnership    BusinessType = "PARTNERSHIP"
	BusinessLLP            BusinessType = "LLP"
	BusinessPrivateLimited BusinessType = "PRIVATE_LIMITED"
	BusinessPublicLimited  BusinessType = "PUBLIC_LIMITED"
	BusinessTrust          BusinessType = "TRUST"
	BusinessHUF            BusinessType = "HUF"
	BusinessIndividual     BusinessType = "INDIVIDUAL"
)

// TaskCategory enumerates compliance filing categories.
type TaskCategory string

const (
	CategoryITR   TaskCategory = "ITR"
	CategoryGST   TaskCategory = "GST"
	CategoryTDS   TaskCategory = "TDS"
	CategoryROC   TaskCategory = "ROC"
	CategoryAudit TaskCategory = "AUDIT"
)

// Requirement is the tri-state obligation value. Conditional collapses
// to Required or NotRequired once turnover is known.
type Requirement int

const (
	// NotRequired means the obligation never applies to the entity.
	NotRequired Requirement = iota
	// Required means the obligation always applies.
	Required
	// Conditional means applicability depends on turnover thresholds.
	Conditional
)

// String renders the wire form of a requirement.
func (r Requirement) String() string {
	switch r {
	case Required:
		return "REQUIRED"
	case Conditional:
		return "CONDITIONAL"
	default:
		return "NOT_REQUIRED"
	}
}

// MarshalJSON emits the string form.
func (r Requirement) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// RequirementSet captures the resolved obligations for a client.
type RequirementSet struct {
	GSTRegistration   Requirement    `json:"requires_gst"`
	Audit             Requirement    `json:"requires_audit"`
	Withholding       Requirement    `json:"requires_tds"`
	CorporateFiling   Requirement    `json:"requires_roc_filing"`
	ApplicableReturns []TaskCategory `json:"applicable_returns"`
}

// ItemStatus marks a checklist item as mandatory, conditional, or
// optional for the engagement.
type ItemStatus string

const (
	ItemMandatory   ItemStatus = "MANDATORY"
	ItemConditional ItemStatus = "CONDITIONAL"
	ItemOptional    ItemStatus = "OPTIONAL"
)

// ChecklistItem is one entry of a service checklist.
type ChecklistItem struct {
	Item   string     `json:"item"`
	Status ItemStatus `json:"status"`
}

// Stage enumerates the engagement workflow sequence.
type Stage string

const (
	StageDataCollection   Stage = "DATA_COLLECTION"
	StagePreparation      Stage = "UNDER_PREPARATION"
	StageReview           Stage = "REVIEW"
	StageClientApproval   Stage = "CLIENT_APPROVAL"
	StageFiling           Stage = "FILING"
	StageAcknowledgment   Stage = "ACKNOWLEDGMENT_RECEIVED"
	StageCompleted        Stage = "COMPLETED"
)

var (
	// ErrUnknownBusinessType indicates a business type outside the matrix.
	ErrUnknownBusinessType = errors.New("compliance: unknown business type")
	// ErrUnknownStage indicates a stage outside the workflow sequence.
	ErrUnknownStage = errors.New("compliance: unknown workflow stage")
)
