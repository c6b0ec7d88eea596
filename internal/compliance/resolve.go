package compliance

import (
	"time"

	"github.com/meridian-ca/meridian/internal/fiscal"
)

// Resolve returns the obligation set for a business type. When a
// turnover is supplied, conditional obligations collapse against the
// fixed thresholds; otherwise they remain Conditional for the caller
// to revisit.
func Resolve(bt BusinessType, turnover *float64) (RequirementSet, error) {
	base, ok := complianceMatrix[bt]
	if !ok {
		return RequirementSet{}, ErrUnknownBusinessType
	}
	set := RequirementSet{
		GSTRegistration:   base.GSTRegistration,
		Audit:             base.Audit,
		Withholding:       base.Withholding,
		CorporateFiling:   base.CorporateFiling,
		ApplicableReturns: append([]TaskCategory(nil), base.ApplicableReturns...),
	}
	if turnover == nil {
		return set, nil
	}
	set.GSTRegistration = resolveConditional(set.GSTRegistration, *turnover, GSTRegistrationThreshold)
	set.Audit = resolveConditional(set.Audit, *turnover, AuditThreshold)
	set.Withholding = resolveConditional(set.Withholding, *turnover, WithholdingThreshold)
	return set, nil
}

func resolveConditional(r Requirement, turnover, threshold float64) Requirement {
	if r != Conditional {
		return r
	}
	if turnover > threshold {
		return Required
	}
	return NotRequired
}

// Checklist returns the ordered document checklist for a service type.
// Unknown service types yield an empty list rather than an error.
func Checklist(serviceType string) []ChecklistItem {
	items, ok := serviceChecklists[serviceType]
	if !ok {
		return []ChecklistItem{}
	}
	return append([]ChecklistItem(nil), items...)
}

// ServiceTypes lists the known checklist service types.
func ServiceTypes() []string {
	return []string{"ITR_INDIVIDUAL", "ITR_BUSINESS", "GST_MONTHLY", "TDS_QUARTERLY", "AUDIT", "ROC_ANNUAL"}
}

// Stages returns the workflow stage sequence in order.
func Stages() []Stage {
	return append([]Stage(nil), stageSequence...)
}

// NextStage advances a workflow stage, clamping at COMPLETED.
func NextStage(current Stage) (Stage, error) {
	for i, stage := range stageSequence {
		if stage != current {
			continue
		}
		if i == len(stageSequence)-1 {
			return current, nil
		}
		return stageSequence[i+1], nil
	}
	return "", ErrUnknownStage
}

// QueryAge returns how many whole days a client query has been open.
func QueryAge(raisedAt, asOf time.Time) int {
	days := fiscal.DaysBetween(raisedAt, asOf)
	if days < 0 {
		return 0
	}
	return days
}

// reminderCadence is the day offsets at which pending client queries
// get a follow-up reminder.
var reminderCadence = []int{3, 7, 14}

// ShouldRemind reports whether a pending query warrants another
// reminder given how long it has been open and how many reminders have
// already gone out.
func ShouldRemind(daysPending, remindersSent int) bool {
	if remindersSent < 0 || remindersSent >= len(reminderCadence) {
		return false
	}
	return daysPending >= reminderCadence[remindersSent]
}
