package compliance

import (
	"testing"
	"time"
)

func turnover(v float64) *float64 { return &v }

func TestResolveLLPAllThresholdsExceeded(t *testing.T) {
	set, err := Resolve(BusinessLLP, turnover(12_000_000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Audit != Required {
		t.Fatalf("expected audit required, got %s", set.Audit)
	}
	if set.GSTRegistration != Required {
		t.Fatalf("expected gst required, got %s", set.GSTRegistration)
	}
	if set.Withholding != Required {
		t.Fatalf("expected tds required, got %s", set.Withholding)
	}
	if set.CorporateFiling != Required {
		t.Fatalf("expected roc required, got %s", set.CorporateFiling)
	}
	if len(set.ApplicableReturns) != 5 {
		t.Fatalf("expected 5 applicable returns, got %d", len(set.ApplicableReturns))
	}
}

func TestResolveConditionalStaysWithoutTurnover(t *testing.T) {
	set, err := Resolve(BusinessProprietorship, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.GSTRegistration != Conditional {
		t.Fatalf("expected gst conditional, got %s", set.GSTRegistration)
	}
	if set.Audit != Conditional {
		t.Fatalf("expected audit conditional, got %s", set.Audit)
	}
}

func TestResolveThresholdIsStrict(t *testing.T) {
	// At exactly the threshold the obligation does not trigger.
	set, err := Resolve(BusinessProprietorship, turnover(GSTRegistrationThreshold))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.GSTRegistration != NotRequired {
		t.Fatalf("expected gst not required at threshold, got %s", set.GSTRegistration)
	}
	set, err = Resolve(BusinessProprietorship, turnover(GSTRegistrationThreshold+1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.GSTRegistration != Required {
		t.Fatalf("expected gst required above threshold, got %s", set.GSTRegistration)
	}
}

func TestResolveUnknownBusinessType(t *testing.T) {
	if _, err := Resolve(BusinessType("COOPERATIVE"), nil); err != ErrUnknownBusinessType {
		t.Fatalf("expected ErrUnknownBusinessType, got %v", err)
	}
}

func TestChecklistKnownAndUnknown(t *testing.T) {
	items := Checklist("ITR_BUSINESS")
	if len(items) != 8 {
		t.Fatalf("expected 8 items, got %d", len(items))
	}
	if items[0].Item != "Books of accounts finalized" || items[0].Status != ItemMandatory {
		t.Fatalf("unexpected first item %+v", items[0])
	}
	if items[4].Status != ItemConditional {
		t.Fatalf("expected conditional audit report item, got %s", items[4].Status)
	}
	if got := Checklist("PAYROLL"); len(got) != 0 {
		t.Fatalf("expected empty checklist for unknown service, got %d items", len(got))
	}
}

func TestNextStageAdvancesAndClamps(t *testing.T) {
	next, err := NextStage(StageDataCollection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != StagePreparation {
		t.Fatalf("expected UNDER_PREPARATION, got %s", next)
	}
	next, err = NextStage(StageCompleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != StageCompleted {
		t.Fatalf("expected terminal stage to clamp, got %s", next)
	}
	if _, err := NextStage(Stage("ARCHIVED")); err != ErrUnknownStage {
		t.Fatalf("expected ErrUnknownStage, got %v", err)
	}
}

func TestShouldRemindCadence(t *testing.T) {
	if ShouldRemind(2, 0) {
		t.Fatal("no reminder before day 3")
	}
	if !ShouldRemind(3, 0) {
		t.Fatal("expected first reminder at day 3")
	}
	if ShouldRemind(6, 1) {
		t.Fatal("no second reminder before day 7")
	}
	if !ShouldRemind(14, 2) {
		t.Fatal("expected third reminder at day 14")
	}
	if ShouldRemind(30, 3) {
		t.Fatal("no reminders after cadence exhausted")
	}
}

func TestQueryAge(t *testing.T) {
	raised := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2025, time.June, 8, 0, 0, 0, 0, time.UTC)
	if got := QueryAge(raised, asOf); got != 7 {
		t.Fatalf("expected 7 days, got %d", got)
	}
	if got := QueryAge(asOf, raised); got != 0 {
		t.Fatalf("expected clamped 0 for future raise date, got %d", got)
	}
}
