package compliance

import (
	"testing"
	"time"
)

var lateFeeDue = time.Date(2025, time.July, 31, 0, 0, 0, 0, time.UTC)

func TestComputeLateFeeNotOverdue(t *testing.T) {
	// Reference equal to the due date accrues nothing.
	res := ComputeLateFee(CategoryGST, lateFeeDue, lateFeeDue)
	if res.Overdue {
		t.Fatal("expected overdue=false on the due date")
	}
	if res.DaysOverdue != 0 || res.LateFee != 0 || res.Interest != 0 || res.TotalPenalty != 0 {
		t.Fatalf("expected zero penalty, got %+v", res)
	}
}

func TestComputeLateFeeOneDay(t *testing.T) {
	res := ComputeLateFee(CategoryGST, lateFeeDue, lateFeeDue.AddDate(0, 0, 1))
	if !res.Overdue || res.DaysOverdue != 1 {
		t.Fatalf("expected 1 day overdue, got %+v", res)
	}
	if res.LateFee != 50 {
		t.Fatalf("expected fee 50, got %.2f", res.LateFee)
	}
	if res.Interest <= 0 {
		t.Fatalf("expected positive interest, got %.2f", res.Interest)
	}
	if res.TotalPenalty != round2(res.LateFee+res.Interest) {
		t.Fatalf("total mismatch: %+v", res)
	}
}

func TestComputeLateFeeGSTCaps(t *testing.T) {
	res := ComputeLateFee(CategoryGST, lateFeeDue, lateFeeDue.AddDate(0, 0, 200))
	if res.LateFee != 5_000 {
		t.Fatalf("expected capped fee 5000, got %.2f", res.LateFee)
	}
	if res.Breakdown.LateFeePerDay != 50 || res.Breakdown.AnnualRatePct != 18 {
		t.Fatalf("unexpected breakdown %+v", res.Breakdown)
	}
}

func TestComputeLateFeeITRSteps(t *testing.T) {
	res := ComputeLateFee(CategoryITR, lateFeeDue, lateFeeDue.AddDate(0, 0, 100))
	if res.LateFee != 5_000 {
		t.Fatalf("expected flat fee 5000, got %.2f", res.LateFee)
	}
	res = ComputeLateFee(CategoryITR, lateFeeDue, lateFeeDue.AddDate(0, 0, 366))
	if res.LateFee != 10_000 {
		t.Fatalf("expected stepped fee 10000 past a year, got %.2f", res.LateFee)
	}
}

func TestComputeLateFeeTDSUncapped(t *testing.T) {
	res := ComputeLateFee(CategoryTDS, lateFeeDue, lateFeeDue.AddDate(0, 0, 50))
	if res.LateFee != 10_000 {
		t.Fatalf("expected 200/day * 50 = 10000, got %.2f", res.LateFee)
	}
}

func TestComputeLateFeeAuditInterestOnly(t *testing.T) {
	res := ComputeLateFee(CategoryAudit, lateFeeDue, lateFeeDue.AddDate(0, 0, 30))
	if res.LateFee != 0 || res.Interest != 0 {
		t.Fatalf("expected zero fee and interest for audit, got %+v", res)
	}
	if !res.Overdue || res.DaysOverdue != 30 {
		t.Fatalf("expected overdue tracking to remain, got %+v", res)
	}
}

func TestComputeLateFeeROCNoInterest(t *testing.T) {
	res := ComputeLateFee(CategoryROC, lateFeeDue, lateFeeDue.AddDate(0, 0, 10))
	if res.LateFee != 1_000 {
		t.Fatalf("expected 100/day * 10, got %.2f", res.LateFee)
	}
	if res.Interest != 0 {
		t.Fatalf("expected no interest for ROC, got %.2f", res.Interest)
	}
}

func TestComputeLateFeeUnknownCategoryDegrades(t *testing.T) {
	res := ComputeLateFee(TaskCategory("FEMA"), lateFeeDue, lateFeeDue.AddDate(0, 0, 5))
	if res.LateFee != 0 || res.Interest != 0 || res.TotalPenalty != 0 {
		t.Fatalf("expected zero structure for unknown category, got %+v", res)
	}
	if res.DaysOverdue != 5 {
		t.Fatalf("days overdue should still be tracked, got %d", res.DaysOverdue)
	}
}

func TestComputeLateFeeInterestArithmetic(t *testing.T) {
	// 10000 * 18% * 73 / 365 = 360.00
	res := ComputeLateFee(CategoryGST, lateFeeDue, lateFeeDue.AddDate(0, 0, 73))
	if res.Interest != 360 {
		t.Fatalf("expected interest 360.00, got %.2f", res.Interest)
	}
}
