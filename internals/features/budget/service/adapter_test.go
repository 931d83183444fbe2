package service

import (
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	breakdownmodel "budgetku_backend/internals/features/budget/breakdowns/model"
)

func TestResolveFamily(t *testing.T) {
	for _, raw := range []string{"project", "trust", "development", "special_education", "special_health"} {
		fam, err := ResolveFamily(raw)
		if err != nil {
			t.Fatalf("ResolveFamily(%q): %v", raw, err)
		}
		if string(fam.Type) != raw {
			t.Fatalf("ResolveFamily(%q).Type = %q", raw, fam.Type)
		}
	}

	// case and whitespace are normalized
	if _, err := ResolveFamily("  Project "); err != nil {
		t.Fatalf("normalized lookup failed: %v", err)
	}

	_, err := ResolveFamily("slush")
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusBadRequest {
		t.Fatalf("unknown type: got %v, want a 400", err)
	}
}

func TestFamilyCapabilities(t *testing.T) {
	cases := []struct {
		typ    string
		auto   bool
		rollup bool
	}{
		{"project", true, true},
		{"development", true, false},
		{"trust", false, false},
		{"special_education", false, false},
		{"special_health", false, false},
	}
	for _, tc := range cases {
		fam, err := ResolveFamily(tc.typ)
		if err != nil {
			t.Fatal(err)
		}
		if fam.HasAutoCalculate != tc.auto || fam.HasStatusRollup != tc.rollup {
			t.Fatalf("%s capabilities = (auto=%v rollup=%v), want (auto=%v rollup=%v)",
				tc.typ, fam.HasAutoCalculate, fam.HasStatusRollup, tc.auto, tc.rollup)
		}
	}
}

func TestDerivedMath(t *testing.T) {
	if got := Balance(1000, 500); got != 500 {
		t.Fatalf("Balance = %v, want 500", got)
	}
	if got := UtilizationRate(1000, 500); got != 50 {
		t.Fatalf("UtilizationRate = %v, want 50", got)
	}
	if got := UtilizationRate(0, 500); got != 0 {
		t.Fatalf("UtilizationRate with zero allocation = %v, want 0", got)
	}
}

func TestTrashVisibility(t *testing.T) {
	db := newTestDB(t)
	fam, err := ResolveFamily("project")
	if err != nil {
		t.Fatal(err)
	}

	fund := seedFund(t, db, fam, 10000, false)
	row := seedBreakdown(t, db, fam, fund.FundID, 1000, breakdownmodel.BreakdownStatusOngoing)

	now := time.Now()
	row.FundBreakdownDeletedAt = &now
	if err := fam.SaveBreakdown(db, &row); err != nil {
		t.Fatal(err)
	}

	if _, err := fam.GetBreakdown(db, row.FundBreakdownID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("active read of a trashed row: got %v, want ErrRecordNotFound", err)
	}
	got, err := fam.GetBreakdownAny(db, row.FundBreakdownID)
	if err != nil {
		t.Fatalf("trash-inclusive read: %v", err)
	}
	if !got.IsDeleted() {
		t.Fatal("trash-inclusive read must surface the deletion marker")
	}

	active, err := fam.ListActiveBreakdowns(db, fund.FundID)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 0 {
		t.Fatalf("active listing returned %d rows, want 0", len(active))
	}

	// restore: clear the markers and the row is visible again
	got.FundBreakdownDeletedAt = nil
	got.FundBreakdownDeletedBy = nil
	got.FundBreakdownDeletionReason = nil
	if err := fam.SaveBreakdown(db, got); err != nil {
		t.Fatal(err)
	}
	if _, err := fam.GetBreakdown(db, row.FundBreakdownID); err != nil {
		t.Fatalf("read after restore: %v", err)
	}
}
