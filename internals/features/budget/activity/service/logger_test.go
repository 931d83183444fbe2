// file: internals/features/budget/activity/service/logger_test.go
package service

import (
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"budgetku_backend/internals/features/budget/activity/model"
	helper "budgetku_backend/internals/helpers"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.ProjectFundActivityLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testActor() helper.Actor {
	return helper.Actor{
		ID:         uuid.New(),
		Name:       "Jamie Reyes",
		Email:      "jamie.reyes@example.gov",
		Role:       "admin",
		Department: "Budget Office",
	}
}

func TestChangedFields_TrackedAllowListOnly(t *testing.T) {
	tracked := []string{"fund_name", "fund_total_allocated"}
	prev := map[string]any{
		"fund_name":            "Roads 2025",
		"fund_total_allocated": 100000.0,
		"fund_remarks":         "old remark",
	}
	next := map[string]any{
		"fund_name":            "Roads 2025 (amended)",
		"fund_total_allocated": 100000.0,
		"fund_remarks":         "new remark", // untracked, must not appear
	}

	changed := ChangedFields(tracked, prev, next)
	if len(changed) != 1 || changed[0] != "fund_name" {
		t.Fatalf("changed = %v, want [fund_name]", changed)
	}
}

func TestChangedFields_PresenceAsymmetryCounts(t *testing.T) {
	tracked := []string{"fund_deleted_at"}
	prev := map[string]any{}
	next := map[string]any{"fund_deleted_at": "2025-06-01T00:00:00Z"}

	changed := ChangedFields(tracked, prev, next)
	if len(changed) != 1 || changed[0] != "fund_deleted_at" {
		t.Fatalf("changed = %v, want [fund_deleted_at]", changed)
	}
}

func TestLog_SnapshotsAndDiff(t *testing.T) {
	db := newTestDB(t)
	actor := testActor()
	entityID := uuid.New()

	type record struct {
		FundName           string  `json:"fund_name"`
		FundTotalAllocated float64 `json:"fund_total_allocated"`
		FundRemarks        string  `json:"fund_remarks"`
	}
	prev := record{FundName: "Roads 2025", FundTotalAllocated: 100000, FundRemarks: "x"}
	next := record{FundName: "Roads 2025", FundTotalAllocated: 150000, FundRemarks: "x"}

	logID, err := Log(db, "project_fund_activity_logs", []string{"fund_name", "fund_total_allocated"}, Entry{
		Action:     model.ActionUpdated,
		EntityKind: model.EntityKindFund,
		EntityID:   &entityID,
		Previous:   prev,
		Next:       next,
		Actor:      actor,
	})
	if err != nil {
		t.Fatal(err)
	}

	var row model.ActivityLogCore
	if err := db.Table("project_fund_activity_logs").
		Where("activity_log_id = ?", logID).
		Take(&row).Error; err != nil {
		t.Fatal(err)
	}

	if row.ActivityLogAction != model.ActionUpdated {
		t.Fatalf("action = %q, want updated", row.ActivityLogAction)
	}
	if row.ActivityLogSource != model.SourceWeb {
		t.Fatalf("source = %q, want the web default", row.ActivityLogSource)
	}
	if row.ActivityLogPerformedByName != actor.Name {
		t.Fatalf("performed_by_name = %q, want %q", row.ActivityLogPerformedByName, actor.Name)
	}

	var changed []string
	if err := sonic.Unmarshal(row.ActivityLogChangedFields, &changed); err != nil {
		t.Fatal(err)
	}
	if len(changed) != 1 || changed[0] != "fund_total_allocated" {
		t.Fatalf("changed_fields = %v, want [fund_total_allocated]", changed)
	}

	var prevSnap record
	if err := sonic.Unmarshal(row.ActivityLogPreviousValues, &prevSnap); err != nil {
		t.Fatal(err)
	}
	if prevSnap.FundTotalAllocated != 100000 {
		t.Fatalf("previous snapshot allocated = %v, want 100000", prevSnap.FundTotalAllocated)
	}
}

func TestLog_EarlierEntriesSurviveLaterMutations(t *testing.T) {
	db := newTestDB(t)
	actor := testActor()
	entityID := uuid.New()

	type record struct {
		FundName           string  `json:"fund_name"`
		FundTotalAllocated float64 `json:"fund_total_allocated"`
	}
	tracked := []string{"fund_name", "fund_total_allocated"}
	v1 := record{FundName: "Roads 2025", FundTotalAllocated: 100000}
	v2 := record{FundName: "Roads 2025", FundTotalAllocated: 150000}
	v3 := record{FundName: "Roads 2025", FundTotalAllocated: 925000}

	firstID, err := Log(db, "project_fund_activity_logs", tracked, Entry{
		Action:     model.ActionUpdated,
		EntityKind: model.EntityKindFund,
		EntityID:   &entityID,
		Previous:   v1,
		Next:       v2,
		Actor:      actor,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Log(db, "project_fund_activity_logs", tracked, Entry{
		Action:     model.ActionUpdated,
		EntityKind: model.EntityKindFund,
		EntityID:   &entityID,
		Previous:   v2,
		Next:       v3,
		Actor:      actor,
	}); err != nil {
		t.Fatal(err)
	}

	// the first entry keeps the figures as they were at write time
	var first model.ActivityLogCore
	if err := db.Table("project_fund_activity_logs").
		Where("activity_log_id = ?", firstID).
		Take(&first).Error; err != nil {
		t.Fatal(err)
	}
	var prevSnap, nextSnap record
	if err := sonic.Unmarshal(first.ActivityLogPreviousValues, &prevSnap); err != nil {
		t.Fatal(err)
	}
	if err := sonic.Unmarshal(first.ActivityLogNewValues, &nextSnap); err != nil {
		t.Fatal(err)
	}
	if prevSnap.FundTotalAllocated != 100000 {
		t.Fatalf("first entry previous allocated = %v, want 100000", prevSnap.FundTotalAllocated)
	}
	if nextSnap.FundTotalAllocated != 150000 {
		t.Fatalf("first entry new allocated = %v, want 150000", nextSnap.FundTotalAllocated)
	}

	var total int64
	if err := db.Table("project_fund_activity_logs").Count(&total).Error; err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Fatalf("entries = %d, want 2 (append-only, no rewrites)", total)
	}
}

func TestLog_CreateOnlyEntryHasNoDiff(t *testing.T) {
	db := newTestDB(t)
	entityID := uuid.New()

	logID, err := Log(db, "project_fund_activity_logs", []string{"fund_name"}, Entry{
		Action:     model.ActionCreated,
		EntityKind: model.EntityKindFund,
		EntityID:   &entityID,
		Next:       map[string]any{"fund_name": "New Fund"},
		Actor:      testActor(),
	})
	if err != nil {
		t.Fatal(err)
	}

	var row model.ActivityLogCore
	if err := db.Table("project_fund_activity_logs").
		Where("activity_log_id = ?", logID).
		Take(&row).Error; err != nil {
		t.Fatal(err)
	}
	if len(row.ActivityLogPreviousValues) != 0 {
		t.Fatalf("previous_values = %s, want empty on create", row.ActivityLogPreviousValues)
	}
	if len(row.ActivityLogChangedFields) != 0 {
		t.Fatalf("changed_fields = %s, want empty without both snapshots", row.ActivityLogChangedFields)
	}
}

func TestLog_BulkEntryCarriesBatchMetadata(t *testing.T) {
	db := newTestDB(t)
	fundID := uuid.New()
	batchID := uuid.New()
	count := 17

	logID, err := Log(db, "project_fund_activity_logs", nil, Entry{
		Action:      model.ActionBulkCreated,
		EntityKind:  model.EntityKindBreakdown,
		EntityID:    &fundID,
		Next:        map[string]any{"record_count": count},
		Actor:       testActor(),
		BatchID:     &batchID,
		RecordCount: &count,
		Source:      model.SourceBulkImport,
	})
	if err != nil {
		t.Fatal(err)
	}

	var row model.ActivityLogCore
	if err := db.Table("project_fund_activity_logs").
		Where("activity_log_id = ?", logID).
		Take(&row).Error; err != nil {
		t.Fatal(err)
	}
	if row.ActivityLogBatchID == nil || *row.ActivityLogBatchID != batchID {
		t.Fatalf("batch_id = %v, want %v", row.ActivityLogBatchID, batchID)
	}
	if row.ActivityLogRecordCount == nil || *row.ActivityLogRecordCount != count {
		t.Fatalf("record_count = %v, want %d", row.ActivityLogRecordCount, count)
	}
	if row.ActivityLogSource != model.SourceBulkImport {
		t.Fatalf("source = %q, want bulk_import", row.ActivityLogSource)
	}
}
