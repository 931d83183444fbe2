package service

import (
	"testing"

	breakdownmodel "budgetku_backend/internals/features/budget/breakdowns/model"
	fundmodel "budgetku_backend/internals/features/budget/funds/model"
)

func checksOf(report ViolationReport) map[string]Violation {
	out := make(map[string]Violation, len(report.Violations))
	for _, v := range report.Violations {
		out[v.Check] = v
	}
	return out
}

func TestDetectViolations_Clean(t *testing.T) {
	avail := Availability{ParentTotal: 100000, AlreadyAllocated: 40000, Available: 60000}
	report := DetectViolations(avail, Candidate{Allocated: 50000, Obligated: 45000, Utilized: 30000})

	if report.HasViolations {
		t.Fatalf("expected clean report, got %+v", report.Violations)
	}
}

func TestDetectViolations_AllFourReportedTogether(t *testing.T) {
	// every check tripped at once: the detector must not short-circuit
	avail := Availability{ParentTotal: 100000, AlreadyAllocated: 90000, Available: 10000}
	report := DetectViolations(avail, Candidate{
		Allocated: 50000,  // > available 10,000
		Obligated: 120000, // > parent 100,000
		Utilized:  150000, // > own allocation and > parent
	})

	if !report.HasViolations {
		t.Fatal("expected violations")
	}
	if len(report.Violations) != 4 {
		t.Fatalf("got %d violations, want 4: %+v", len(report.Violations), report.Violations)
	}

	byCheck := checksOf(report)

	v, ok := byCheck[ViolationAllocationExceedsAvailable]
	if !ok {
		t.Fatal("missing allocation_exceeds_available")
	}
	if v.Diff != 40000 {
		t.Fatalf("allocation diff = %v, want 40000", v.Diff)
	}

	v, ok = byCheck[ViolationUtilizedExceedsAllocated]
	if !ok {
		t.Fatal("missing utilized_exceeds_allocated")
	}
	if v.Limit != 50000 || v.Diff != 100000 {
		t.Fatalf("utilized-vs-allocated limit/diff = %v/%v, want 50000/100000", v.Limit, v.Diff)
	}

	if _, ok = byCheck[ViolationObligatedExceedsParent]; !ok {
		t.Fatal("missing obligated_exceeds_parent_total")
	}
	if _, ok = byCheck[ViolationUtilizedExceedsParent]; !ok {
		t.Fatal("missing utilized_exceeds_parent_total")
	}
}

func TestDetectViolations_ParentChecksSkippedWithoutParentTotal(t *testing.T) {
	avail := Availability{ParentTotal: 0, AlreadyAllocated: 0, Available: 0}
	report := DetectViolations(avail, Candidate{Allocated: 0, Obligated: 5000, Utilized: 0})

	byCheck := checksOf(report)
	if _, ok := byCheck[ViolationObligatedExceedsParent]; ok {
		t.Fatal("obligated-vs-parent must be skipped when the parent total is unset")
	}
	if _, ok := byCheck[ViolationUtilizedExceedsParent]; ok {
		t.Fatal("utilized-vs-parent must be skipped when the parent total is unset")
	}
}

func TestDetectViolations_EqualityIsNotAViolation(t *testing.T) {
	avail := Availability{ParentTotal: 100000, AlreadyAllocated: 70000, Available: 30000}
	report := DetectViolations(avail, Candidate{Allocated: 30000, Obligated: 100000, Utilized: 30000})

	if report.HasViolations {
		t.Fatalf("amounts exactly at their limits must pass, got %+v", report.Violations)
	}
}

func TestRollupStatus(t *testing.T) {
	mk := func(statuses ...breakdownmodel.BreakdownStatus) []breakdownmodel.BreakdownCore {
		out := make([]breakdownmodel.BreakdownCore, 0, len(statuses))
		for _, s := range statuses {
			out = append(out, breakdownmodel.BreakdownCore{FundBreakdownStatus: s})
		}
		return out
	}

	cases := []struct {
		name     string
		children []breakdownmodel.BreakdownCore
		want     fundmodel.FundStatus
		ok       bool
	}{
		{"no children leaves status untouched", nil, "", false},
		{"any delayed child wins", mk(breakdownmodel.BreakdownStatusCompleted, breakdownmodel.BreakdownStatusDelayed, breakdownmodel.BreakdownStatusOngoing), fundmodel.FundStatusDelayed, true},
		{"ongoing beats completed", mk(breakdownmodel.BreakdownStatusCompleted, breakdownmodel.BreakdownStatusOngoing), fundmodel.FundStatusOngoing, true},
		{"all completed", mk(breakdownmodel.BreakdownStatusCompleted, breakdownmodel.BreakdownStatusCompleted), fundmodel.FundStatusCompleted, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := rollupStatus(tc.children)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("rollupStatus = (%q, %v), want (%q, %v)", got, ok, tc.want, tc.ok)
			}
		})
	}
}
