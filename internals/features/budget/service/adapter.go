// file: internals/features/budget/service/adapter.go
package service

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	activitymodel "budgetku_backend/internals/features/budget/activity/model"
	breakdownmodel "budgetku_backend/internals/features/budget/breakdowns/model"
	fundmodel "budgetku_backend/internals/features/budget/funds/model"
)

/* =========================
   Fund families
   ========================= */

type FundType string

const (
	FundTypeProject          FundType = "project"
	FundTypeTrust            FundType = "trust"
	FundTypeDevelopment      FundType = "development" // 20% DF
	FundTypeSpecialEducation FundType = "special_education"
	FundTypeSpecialHealth    FundType = "special_health"
)

// Family is the adapter for one fund type: table names, capabilities and
// the tracked-field allow-lists for its activity log. All engine logic
// is written once against Family + the shared core structs instead of
// being duplicated five times.
type Family struct {
	Type FundType

	FundTable      string
	BreakdownTable string
	ActivityTable  string

	// utilized derived from children (Project + 20% DF only)
	HasAutoCalculate bool
	// fund status reduced from child statuses (Project only)
	HasStatusRollup bool

	// allow-lists for the diff engine; keys are JSON/column names
	FundTrackedFields      []string
	BreakdownTrackedFields []string
}

var fundTrackedFields = []string{
	"fund_name",
	"fund_total_allocated",
	"fund_total_utilized",
	"fund_obligated",
	"fund_balance",
	"fund_status",
	"fund_office_in_charge",
	"fund_remarks",
	"fund_auto_calculate_utilized",
	"fund_deleted_at",
}

var breakdownTrackedFields = []string{
	"fund_breakdown_office_code",
	"fund_breakdown_allocated",
	"fund_breakdown_obligated",
	"fund_breakdown_utilized",
	"fund_breakdown_status",
	"fund_breakdown_accomplishment",
	"fund_breakdown_remarks",
	"fund_breakdown_deleted_at",
}

var registry = map[FundType]Family{
	FundTypeProject: {
		Type:                   FundTypeProject,
		FundTable:              fundmodel.ProjectFund{}.TableName(),
		BreakdownTable:         breakdownmodel.ProjectFundBreakdown{}.TableName(),
		ActivityTable:          activitymodel.ProjectFundActivityLog{}.TableName(),
		HasAutoCalculate:       true,
		HasStatusRollup:        true,
		FundTrackedFields:      fundTrackedFields,
		BreakdownTrackedFields: breakdownTrackedFields,
	},
	FundTypeTrust: {
		Type:                   FundTypeTrust,
		FundTable:              fundmodel.TrustFund{}.TableName(),
		BreakdownTable:         breakdownmodel.TrustFundBreakdown{}.TableName(),
		ActivityTable:          activitymodel.TrustFundActivityLog{}.TableName(),
		FundTrackedFields:      fundTrackedFields,
		BreakdownTrackedFields: breakdownTrackedFields,
	},
	FundTypeDevelopment: {
		Type:                   FundTypeDevelopment,
		FundTable:              fundmodel.DevelopmentFund{}.TableName(),
		BreakdownTable:         breakdownmodel.DevelopmentFundBreakdown{}.TableName(),
		ActivityTable:          activitymodel.DevelopmentFundActivityLog{}.TableName(),
		HasAutoCalculate:       true,
		FundTrackedFields:      fundTrackedFields,
		BreakdownTrackedFields: breakdownTrackedFields,
	},
	FundTypeSpecialEducation: {
		Type:                   FundTypeSpecialEducation,
		FundTable:              fundmodel.SpecialEducationFund{}.TableName(),
		BreakdownTable:         breakdownmodel.SpecialEducationFundBreakdown{}.TableName(),
		ActivityTable:          activitymodel.SpecialEducationFundActivityLog{}.TableName(),
		FundTrackedFields:      fundTrackedFields,
		BreakdownTrackedFields: breakdownTrackedFields,
	},
	FundTypeSpecialHealth: {
		Type:                   FundTypeSpecialHealth,
		FundTable:              fundmodel.SpecialHealthFund{}.TableName(),
		BreakdownTable:         breakdownmodel.SpecialHealthFundBreakdown{}.TableName(),
		ActivityTable:          activitymodel.SpecialHealthFundActivityLog{}.TableName(),
		FundTrackedFields:      fundTrackedFields,
		BreakdownTrackedFields: breakdownTrackedFields,
	},
}

// ResolveFamily maps a :fund_type path segment to its adapter.
func ResolveFamily(raw string) (Family, error) {
	fam, ok := registry[FundType(strings.TrimSpace(strings.ToLower(raw)))]
	if !ok {
		return Family{}, fiber.NewError(fiber.StatusBadRequest, "Unknown fund type")
	}
	return fam, nil
}

// Families returns every registered family (stable order not guaranteed).
func Families() []Family {
	out := make([]Family, 0, len(registry))
	for _, fam := range registry {
		out = append(out, fam)
	}
	return out
}

/* =========================
   Row accessors
   ========================= */

// GetFund loads a live (non-deleted) fund row.
func (fam Family) GetFund(tx *gorm.DB, id uuid.UUID) (*fundmodel.FundCore, error) {
	var fund fundmodel.FundCore
	err := tx.Table(fam.FundTable).
		Where("fund_id = ? AND fund_deleted_at IS NULL", id).
		Take(&fund).Error
	if err != nil {
		return nil, err
	}
	return &fund, nil
}

// GetFundAny loads a fund row regardless of trash state (restore/hard
// delete need to see trashed rows).
func (fam Family) GetFundAny(tx *gorm.DB, id uuid.UUID) (*fundmodel.FundCore, error) {
	var fund fundmodel.FundCore
	err := tx.Table(fam.FundTable).
		Where("fund_id = ?", id).
		Take(&fund).Error
	if err != nil {
		return nil, err
	}
	return &fund, nil
}

// ListActiveBreakdowns returns the non-deleted children of a fund. The
// deleted_at IS NULL filter here is the load-bearing invariant of every
// aggregation in the engine.
func (fam Family) ListActiveBreakdowns(tx *gorm.DB, fundID uuid.UUID) ([]breakdownmodel.BreakdownCore, error) {
	var rows []breakdownmodel.BreakdownCore
	err := tx.Table(fam.BreakdownTable).
		Where("fund_breakdown_fund_id = ? AND fund_breakdown_deleted_at IS NULL", fundID).
		Order("fund_breakdown_created_at ASC").
		Find(&rows).Error
	return rows, err
}

// GetBreakdown loads a live (non-deleted) breakdown row.
func (fam Family) GetBreakdown(tx *gorm.DB, id uuid.UUID) (*breakdownmodel.BreakdownCore, error) {
	var row breakdownmodel.BreakdownCore
	err := tx.Table(fam.BreakdownTable).
		Where("fund_breakdown_id = ? AND fund_breakdown_deleted_at IS NULL", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetBreakdownAny loads a breakdown row regardless of trash state.
func (fam Family) GetBreakdownAny(tx *gorm.DB, id uuid.UUID) (*breakdownmodel.BreakdownCore, error) {
	var row breakdownmodel.BreakdownCore
	err := tx.Table(fam.BreakdownTable).
		Where("fund_breakdown_id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

/* =========================
   Writers
   ========================= */

func (fam Family) CreateFund(tx *gorm.DB, fund *fundmodel.FundCore) error {
	return tx.Table(fam.FundTable).Create(fund).Error
}

// SaveFund writes every column back (Select("*") so zero values are not
// skipped the way struct Updates would).
func (fam Family) SaveFund(tx *gorm.DB, fund *fundmodel.FundCore) error {
	return tx.Table(fam.FundTable).
		Where("fund_id = ?", fund.FundID).
		Select("*").
		Updates(fund).Error
}

func (fam Family) DeleteFundRow(tx *gorm.DB, id uuid.UUID) error {
	return tx.Table(fam.FundTable).
		Where("fund_id = ?", id).
		Delete(&fundmodel.FundCore{}).Error
}

func (fam Family) CreateBreakdown(tx *gorm.DB, row *breakdownmodel.BreakdownCore) error {
	return tx.Table(fam.BreakdownTable).Create(row).Error
}

func (fam Family) SaveBreakdown(tx *gorm.DB, row *breakdownmodel.BreakdownCore) error {
	return tx.Table(fam.BreakdownTable).
		Where("fund_breakdown_id = ?", row.FundBreakdownID).
		Select("*").
		Updates(row).Error
}

func (fam Family) DeleteBreakdownRow(tx *gorm.DB, id uuid.UUID) error {
	return tx.Table(fam.BreakdownTable).
		Where("fund_breakdown_id = ?", id).
		Delete(&breakdownmodel.BreakdownCore{}).Error
}
