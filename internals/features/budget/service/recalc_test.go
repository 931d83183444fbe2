package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	database "budgetku_backend/internals/databases"
	breakdownmodel "budgetku_backend/internals/features/budget/breakdowns/model"
	fundmodel "budgetku_backend/internals/features/budget/funds/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedFund(t *testing.T, db *gorm.DB, fam Family, allocated float64, auto bool) fundmodel.FundCore {
	t.Helper()
	fund := fundmodel.FundCore{
		FundName:                  "General Operations",
		FundFiscalYear:            2025,
		FundTotalAllocated:        allocated,
		FundStatus:                fundmodel.FundStatusOngoing,
		FundAutoCalculateUtilized: auto,
	}
	if err := fam.CreateFund(db, &fund); err != nil {
		t.Fatalf("create fund: %v", err)
	}
	return fund
}

func seedBreakdown(t *testing.T, db *gorm.DB, fam Family, fundID uuid.UUID, utilized float64, status breakdownmodel.BreakdownStatus) breakdownmodel.BreakdownCore {
	t.Helper()
	fID := fundID
	row := breakdownmodel.BreakdownCore{
		FundBreakdownFundID:     &fID,
		FundBreakdownOfficeCode: "PEO",
		FundBreakdownAllocated:  utilized,
		FundBreakdownUtilized:   utilized,
		FundBreakdownStatus:     status,
	}
	if err := fam.CreateBreakdown(db, &row); err != nil {
		t.Fatalf("create breakdown: %v", err)
	}
	return row
}

func TestRecalcFund_AutoSumsActiveChildrenOnly(t *testing.T) {
	db := newTestDB(t)
	fam, err := ResolveFamily("project")
	if err != nil {
		t.Fatal(err)
	}

	fund := seedFund(t, db, fam, 100000, true)
	seedBreakdown(t, db, fam, fund.FundID, 10000, breakdownmodel.BreakdownStatusOngoing)
	seedBreakdown(t, db, fam, fund.FundID, 15000, breakdownmodel.BreakdownStatusOngoing)

	// a trashed child whose figures must not leak into the totals
	trashed := seedBreakdown(t, db, fam, fund.FundID, 99999, breakdownmodel.BreakdownStatusOngoing)
	now := time.Now()
	trashed.FundBreakdownDeletedAt = &now
	if err := fam.SaveBreakdown(db, &trashed); err != nil {
		t.Fatal(err)
	}

	if err := fam.RecalcFund(db, fund.FundID); err != nil {
		t.Fatal(err)
	}

	got, err := fam.GetFund(db, fund.FundID)
	if err != nil {
		t.Fatal(err)
	}
	if got.FundTotalUtilized != 25000 {
		t.Fatalf("FundTotalUtilized = %v, want 25000", got.FundTotalUtilized)
	}
	if got.FundBalance != 75000 {
		t.Fatalf("FundBalance = %v, want 75000", got.FundBalance)
	}
	if got.FundUtilizationRate != 25 {
		t.Fatalf("FundUtilizationRate = %v, want 25", got.FundUtilizationRate)
	}
}

func TestRecalcFund_ManualModeKeepsStoredUtilized(t *testing.T) {
	db := newTestDB(t)
	fam, err := ResolveFamily("project")
	if err != nil {
		t.Fatal(err)
	}

	fund := seedFund(t, db, fam, 1000, false)
	fund.FundTotalUtilized = 500
	if err := fam.SaveFund(db, &fund); err != nil {
		t.Fatal(err)
	}
	// children exist but manual mode must ignore them
	seedBreakdown(t, db, fam, fund.FundID, 999, breakdownmodel.BreakdownStatusOngoing)

	if err := fam.RecalcFund(db, fund.FundID); err != nil {
		t.Fatal(err)
	}

	got, err := fam.GetFund(db, fund.FundID)
	if err != nil {
		t.Fatal(err)
	}
	if got.FundTotalUtilized != 500 {
		t.Fatalf("FundTotalUtilized = %v, want the stored 500", got.FundTotalUtilized)
	}
	if got.FundBalance != 500 {
		t.Fatalf("FundBalance = %v, want 500", got.FundBalance)
	}
	if got.FundUtilizationRate != 50 {
		t.Fatalf("FundUtilizationRate = %v, want 50", got.FundUtilizationRate)
	}
}

func TestRecalcFund_TogglingAutoOnRefreshesStaleFigures(t *testing.T) {
	db := newTestDB(t)
	fam, err := ResolveFamily("development")
	if err != nil {
		t.Fatal(err)
	}

	fund := seedFund(t, db, fam, 50000, false)
	fund.FundTotalUtilized = 12345 // stale manual figure
	if err := fam.SaveFund(db, &fund); err != nil {
		t.Fatal(err)
	}
	seedBreakdown(t, db, fam, fund.FundID, 20000, breakdownmodel.BreakdownStatusOngoing)

	fund.FundAutoCalculateUtilized = true
	if err := fam.SaveFund(db, &fund); err != nil {
		t.Fatal(err)
	}
	if err := fam.RecalcFund(db, fund.FundID); err != nil {
		t.Fatal(err)
	}

	got, err := fam.GetFund(db, fund.FundID)
	if err != nil {
		t.Fatal(err)
	}
	if got.FundTotalUtilized != 20000 {
		t.Fatalf("FundTotalUtilized = %v, want the live sum 20000", got.FundTotalUtilized)
	}
}

func TestRecalcFund_NonAutoFamilyNeverOverwrites(t *testing.T) {
	db := newTestDB(t)
	fam, err := ResolveFamily("trust")
	if err != nil {
		t.Fatal(err)
	}
	if fam.HasAutoCalculate {
		t.Fatal("trust family must not carry the auto-calc capability")
	}

	// even with the per-record flag set, the family gate wins
	fund := seedFund(t, db, fam, 10000, true)
	fund.FundTotalUtilized = 4000
	if err := fam.SaveFund(db, &fund); err != nil {
		t.Fatal(err)
	}
	seedBreakdown(t, db, fam, fund.FundID, 9999, breakdownmodel.BreakdownStatusOngoing)

	if err := fam.RecalcFund(db, fund.FundID); err != nil {
		t.Fatal(err)
	}

	got, err := fam.GetFund(db, fund.FundID)
	if err != nil {
		t.Fatal(err)
	}
	if got.FundTotalUtilized != 4000 {
		t.Fatalf("FundTotalUtilized = %v, want the stored 4000", got.FundTotalUtilized)
	}
}

func TestRecalcFund_StatusRollup(t *testing.T) {
	db := newTestDB(t)
	fam, err := ResolveFamily("project")
	if err != nil {
		t.Fatal(err)
	}

	fund := seedFund(t, db, fam, 100000, true)
	seedBreakdown(t, db, fam, fund.FundID, 1000, breakdownmodel.BreakdownStatusCompleted)
	delayed := seedBreakdown(t, db, fam, fund.FundID, 2000, breakdownmodel.BreakdownStatusDelayed)

	if err := fam.RecalcFund(db, fund.FundID); err != nil {
		t.Fatal(err)
	}
	got, err := fam.GetFund(db, fund.FundID)
	if err != nil {
		t.Fatal(err)
	}
	if got.FundStatus != fundmodel.FundStatusDelayed {
		t.Fatalf("FundStatus = %q, want delayed while a delayed child exists", got.FundStatus)
	}

	// resolve the delay; the fund follows its children back down
	delayed.FundBreakdownStatus = breakdownmodel.BreakdownStatusCompleted
	if err := fam.SaveBreakdown(db, &delayed); err != nil {
		t.Fatal(err)
	}
	if err := fam.RecalcFund(db, fund.FundID); err != nil {
		t.Fatal(err)
	}
	got, err = fam.GetFund(db, fund.FundID)
	if err != nil {
		t.Fatal(err)
	}
	if got.FundStatus != fundmodel.FundStatusCompleted {
		t.Fatalf("FundStatus = %q, want completed once every active child is", got.FundStatus)
	}
}

func TestRecalcFund_RollupSkippedWithNoActiveChildren(t *testing.T) {
	db := newTestDB(t)
	fam, err := ResolveFamily("project")
	if err != nil {
		t.Fatal(err)
	}

	fund := seedFund(t, db, fam, 100000, true)
	child := seedBreakdown(t, db, fam, fund.FundID, 1000, breakdownmodel.BreakdownStatusCompleted)
	now := time.Now()
	child.FundBreakdownDeletedAt = &now
	if err := fam.SaveBreakdown(db, &child); err != nil {
		t.Fatal(err)
	}

	if err := fam.RecalcFund(db, fund.FundID); err != nil {
		t.Fatal(err)
	}
	got, err := fam.GetFund(db, fund.FundID)
	if err != nil {
		t.Fatal(err)
	}
	if got.FundStatus != fundmodel.FundStatusOngoing {
		t.Fatalf("FundStatus = %q, want the original ongoing when no active children remain", got.FundStatus)
	}
}
