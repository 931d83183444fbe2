// file: internals/features/budget/service/recalc.go
package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	breakdownmodel "budgetku_backend/internals/features/budget/breakdowns/model"
	fundmodel "budgetku_backend/internals/features/budget/funds/model"
)

/* =========================
   Derived-field math
   ========================= */

// Balance is allocated − utilized, recomputed on every write and never
// trusted from client input.
func Balance(allocated, utilized float64) float64 {
	return allocated - utilized
}

func UtilizationRate(allocated, utilized float64) float64 {
	if allocated <= 0 {
		return 0
	}
	return utilized / allocated * 100
}

/* =========================
   Auto-calculation controller
   ========================= */

// RecalcFund re-derives the fund's denormalized fields inside the same
// transaction as the triggering child mutation. When the family supports
// auto mode and the fund has it enabled, utilized is overwritten with
// the live sum of active children; balance and rate are re-derived
// either way.
func (fam Family) RecalcFund(tx *gorm.DB, fundID uuid.UUID) error {
	fund, err := fam.GetFund(tx, fundID)
	if err != nil {
		return err
	}

	updates := map[string]any{
		"fund_updated_at": time.Now(),
	}

	utilized := fund.FundTotalUtilized
	if fam.HasAutoCalculate && fund.FundAutoCalculateUtilized {
		sum, err := fam.SumActiveUtilized(tx, fundID)
		if err != nil {
			return err
		}
		utilized = sum
		updates["fund_total_utilized"] = sum
	}

	updates["fund_balance"] = Balance(fund.FundTotalAllocated, utilized)
	updates["fund_utilization_rate"] = UtilizationRate(fund.FundTotalAllocated, utilized)

	if fam.HasStatusRollup && fund.FundAutoCalculateUtilized {
		children, err := fam.ListActiveBreakdowns(tx, fundID)
		if err != nil {
			return err
		}
		if status, ok := rollupStatus(children); ok {
			updates["fund_status"] = status
		}
	}

	return tx.Table(fam.FundTable).
		Where("fund_id = ?", fundID).
		Updates(updates).Error
}

// SumActiveUtilized aggregates budget utilized across the fund's
// non-deleted children.
func (fam Family) SumActiveUtilized(tx *gorm.DB, fundID uuid.UUID) (float64, error) {
	var sum float64
	err := tx.Table(fam.BreakdownTable).
		Select("COALESCE(SUM(fund_breakdown_utilized), 0)").
		Where("fund_breakdown_fund_id = ? AND fund_breakdown_deleted_at IS NULL", fundID).
		Scan(&sum).Error
	return sum, err
}

// SumActiveAllocated aggregates allocations across the fund's
// non-deleted children (availability reads).
func (fam Family) SumActiveAllocated(tx *gorm.DB, fundID uuid.UUID, excludeID uuid.UUID) (float64, error) {
	q := tx.Table(fam.BreakdownTable).
		Select("COALESCE(SUM(fund_breakdown_allocated), 0)").
		Where("fund_breakdown_fund_id = ? AND fund_breakdown_deleted_at IS NULL", fundID)
	if excludeID != uuid.Nil {
		q = q.Where("fund_breakdown_id <> ?", excludeID)
	}
	var sum float64
	err := q.Scan(&sum).Error
	return sum, err
}

/* =========================
   Status rollup (Project family)
   ========================= */

// rollupStatus reduces child statuses worst-case: any delayed child
// marks the fund delayed, any ongoing child keeps it ongoing, and the
// fund is completed only when every active child is. With no active
// children the fund status is left untouched (ok=false).
func rollupStatus(children []breakdownmodel.BreakdownCore) (fundmodel.FundStatus, bool) {
	if len(children) == 0 {
		return "", false
	}
	anyOngoing := false
	for _, c := range children {
		switch c.FundBreakdownStatus {
		case breakdownmodel.BreakdownStatusDelayed:
			return fundmodel.FundStatusDelayed, true
		case breakdownmodel.BreakdownStatusOngoing:
			anyOngoing = true
		}
	}
	if anyOngoing {
		return fundmodel.FundStatusOngoing, true
	}
	return fundmodel.FundStatusCompleted, true
}
