// file: internals/features/budget/funds/controller/fund_controller_test.go
package controller

import (
	"bytes"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	database "budgetku_backend/internals/databases"
	activitymodel "budgetku_backend/internals/features/budget/activity/model"
	fundmodel "budgetku_backend/internals/features/budget/funds/model"
	"budgetku_backend/internals/features/budget/service"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
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

	app := fiber.New()
	// stand-in for the auth middleware
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", uuid.New().String())
		c.Locals("user_name", "Test Admin")
		c.Locals("user_email", "admin@example.gov")
		c.Locals("user_role", "admin")
		c.Locals("user_department", "Budget Office")
		return c.Next()
	})

	ctl := NewFundController(db, nil)
	app.Put("/budget/:fund_type/funds/:id", ctl.Update)
	app.Post("/budget/:fund_type/funds/:id/restore", ctl.RestoreFromTrash)

	return app, db
}

func seedTrustFund(t *testing.T, db *gorm.DB, allocated, utilized float64) fundmodel.FundCore {
	t.Helper()
	fam, err := service.ResolveFamily("trust")
	if err != nil {
		t.Fatal(err)
	}
	fund := fundmodel.FundCore{
		FundName:           "Trust Receipts 2025",
		FundFiscalYear:     2025,
		FundTotalAllocated: allocated,
		FundTotalUtilized:  utilized,
		FundStatus:         fundmodel.FundStatusOngoing,
	}
	if err := fam.CreateFund(db, &fund); err != nil {
		t.Fatal(err)
	}
	if err := fam.RecalcFund(db, fund.FundID); err != nil {
		t.Fatal(err)
	}
	return fund
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) (int, map[string]any) {
	t.Helper()
	raw, err := sonic.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	raw, err = io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	var body map[string]any
	if err := sonic.Unmarshal(raw, &body); err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, body
}

func TestUpdate_RejectsUnknownStatus(t *testing.T) {
	app, db := newTestApp(t)
	fund := seedTrustFund(t, db, 50000, 10000)
	fam, _ := service.ResolveFamily("trust")

	code, _ := doJSON(t, app, "PUT", "/budget/trust/funds/"+fund.FundID.String(), fiber.Map{
		"fund_status": "bogus",
	})
	if code != fiber.StatusBadRequest {
		t.Fatalf("out-of-enum status: status = %d, want 400", code)
	}

	got, err := fam.GetFund(db, fund.FundID)
	if err != nil {
		t.Fatal(err)
	}
	if got.FundStatus != fundmodel.FundStatusOngoing {
		t.Fatalf("FundStatus = %q, want %q untouched", got.FundStatus, fundmodel.FundStatusOngoing)
	}
}

func TestUpdate_AcceptsKnownStatus(t *testing.T) {
	app, db := newTestApp(t)
	fund := seedTrustFund(t, db, 50000, 10000)
	fam, _ := service.ResolveFamily("trust")

	code, _ := doJSON(t, app, "PUT", "/budget/trust/funds/"+fund.FundID.String(), fiber.Map{
		"fund_status": "completed",
	})
	if code != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	got, err := fam.GetFund(db, fund.FundID)
	if err != nil {
		t.Fatal(err)
	}
	if got.FundStatus != fundmodel.FundStatusCompleted {
		t.Fatalf("FundStatus = %q, want %q", got.FundStatus, fundmodel.FundStatusCompleted)
	}
}

func TestRestore_ActiveFundIsNoOp(t *testing.T) {
	app, db := newTestApp(t)
	fund := seedTrustFund(t, db, 50000, 10000)
	fam, _ := service.ResolveFamily("trust")

	before, err := fam.GetFund(db, fund.FundID)
	if err != nil {
		t.Fatal(err)
	}

	code, body := doJSON(t, app, "POST", "/budget/trust/funds/"+fund.FundID.String()+"/restore", fiber.Map{})
	if code != fiber.StatusOK {
		t.Fatalf("restore active fund: status = %d, want 200", code)
	}
	data, _ := body["data"].(map[string]any)
	if restored, _ := data["restored"].(bool); restored {
		t.Fatal("restored = true for a fund that was never trashed")
	}

	// the no-op must not write a log entry or move derived figures
	var restoreLogs int64
	if err := db.Table("trust_fund_activity_logs").
		Where("activity_log_action = ?", activitymodel.ActionRestored).
		Count(&restoreLogs).Error; err != nil {
		t.Fatal(err)
	}
	if restoreLogs != 0 {
		t.Fatalf("restored entries = %d, want 0", restoreLogs)
	}
	after, err := fam.GetFund(db, fund.FundID)
	if err != nil {
		t.Fatal(err)
	}
	if after.FundBalance != before.FundBalance || after.FundUtilizationRate != before.FundUtilizationRate {
		t.Fatalf("derived figures moved: balance %v -> %v, rate %v -> %v",
			before.FundBalance, after.FundBalance, before.FundUtilizationRate, after.FundUtilizationRate)
	}
}
