// file: internals/features/budget/breakdowns/model/breakdown_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enums (Go-side)
   ========================= */

type BreakdownStatus string

const (
	BreakdownStatusOngoing   BreakdownStatus = "ongoing"
	BreakdownStatusCompleted BreakdownStatus = "completed"
	BreakdownStatusDelayed   BreakdownStatus = "delayed"
)

func (s BreakdownStatus) Valid() bool {
	switch s {
	case BreakdownStatusOngoing, BreakdownStatusCompleted, BreakdownStatusDelayed:
		return true
	}
	return false
}

/* =========================
   Shared core
   ========================= */

// BreakdownCore is the sub-allocation row shared by the five families.
// fund_breakdown_fund_id is nullable: legacy imports carry orphan rows
// with no resolvable parent.
type BreakdownCore struct {
	FundBreakdownID uuid.UUID `json:"fund_breakdown_id" gorm:"column:fund_breakdown_id;type:uuid;primaryKey"`

	FundBreakdownFundID *uuid.UUID `json:"fund_breakdown_fund_id,omitempty" gorm:"column:fund_breakdown_fund_id;type:uuid;index"`

	FundBreakdownOfficeCode string  `json:"fund_breakdown_office_code" gorm:"column:fund_breakdown_office_code;type:varchar(60);not null"`
	FundBreakdownParticular *string `json:"fund_breakdown_particular,omitempty" gorm:"column:fund_breakdown_particular;type:text"`

	FundBreakdownAllocated       float64 `json:"fund_breakdown_allocated" gorm:"column:fund_breakdown_allocated;type:numeric(18,2);not null;default:0"`
	FundBreakdownObligated       float64 `json:"fund_breakdown_obligated" gorm:"column:fund_breakdown_obligated;type:numeric(18,2);not null;default:0"`
	FundBreakdownUtilized        float64 `json:"fund_breakdown_utilized" gorm:"column:fund_breakdown_utilized;type:numeric(18,2);not null;default:0"`
	FundBreakdownBalance         float64 `json:"fund_breakdown_balance" gorm:"column:fund_breakdown_balance;type:numeric(18,2);not null;default:0"`
	FundBreakdownUtilizationRate float64 `json:"fund_breakdown_utilization_rate" gorm:"column:fund_breakdown_utilization_rate;type:numeric(8,2);not null;default:0"`

	// 0–100
	FundBreakdownAccomplishment float64 `json:"fund_breakdown_accomplishment" gorm:"column:fund_breakdown_accomplishment;type:numeric(5,2);not null;default:0"`

	FundBreakdownStatus BreakdownStatus `json:"fund_breakdown_status" gorm:"column:fund_breakdown_status;type:varchar(20);not null;default:'ongoing'"`

	FundBreakdownDateStarted    *time.Time `json:"fund_breakdown_date_started,omitempty" gorm:"column:fund_breakdown_date_started"`
	FundBreakdownTargetDate     *time.Time `json:"fund_breakdown_target_date,omitempty" gorm:"column:fund_breakdown_target_date"`
	FundBreakdownCompletionDate *time.Time `json:"fund_breakdown_completion_date,omitempty" gorm:"column:fund_breakdown_completion_date"`
	FundBreakdownReportDate     *time.Time `json:"fund_breakdown_report_date,omitempty" gorm:"column:fund_breakdown_report_date"`

	// correlates siblings created by one bulk import
	FundBreakdownBatchID *uuid.UUID `json:"fund_breakdown_batch_id,omitempty" gorm:"column:fund_breakdown_batch_id;type:uuid;index"`

	FundBreakdownRemarks *string `json:"fund_breakdown_remarks,omitempty" gorm:"column:fund_breakdown_remarks;type:text"`

	FundBreakdownCreatedBy *uuid.UUID `json:"fund_breakdown_created_by,omitempty" gorm:"column:fund_breakdown_created_by;type:uuid"`
	FundBreakdownUpdatedBy *uuid.UUID `json:"fund_breakdown_updated_by,omitempty" gorm:"column:fund_breakdown_updated_by;type:uuid"`

	FundBreakdownCreatedAt time.Time `json:"fund_breakdown_created_at" gorm:"column:fund_breakdown_created_at;not null;autoCreateTime"`
	FundBreakdownUpdatedAt time.Time `json:"fund_breakdown_updated_at" gorm:"column:fund_breakdown_updated_at;not null;autoUpdateTime"`

	FundBreakdownDeletedAt      *time.Time `json:"fund_breakdown_deleted_at,omitempty" gorm:"column:fund_breakdown_deleted_at"`
	FundBreakdownDeletedBy      *uuid.UUID `json:"fund_breakdown_deleted_by,omitempty" gorm:"column:fund_breakdown_deleted_by;type:uuid"`
	FundBreakdownDeletionReason *string    `json:"fund_breakdown_deletion_reason,omitempty" gorm:"column:fund_breakdown_deletion_reason;type:text"`
}

func (b *BreakdownCore) BeforeCreate(tx *gorm.DB) error {
	if b.FundBreakdownID == uuid.Nil {
		b.FundBreakdownID = uuid.New()
	}
	return nil
}

func (b *BreakdownCore) IsDeleted() bool { return b.FundBreakdownDeletedAt != nil }

/* =========================
   Families (one table each)
   ========================= */

type ProjectFundBreakdown struct {
	BreakdownCore `gorm:"embedded"`
}

func (ProjectFundBreakdown) TableName() string { return "project_fund_breakdowns" }

type TrustFundBreakdown struct {
	BreakdownCore `gorm:"embedded"`
}

func (TrustFundBreakdown) TableName() string { return "trust_fund_breakdowns" }

type DevelopmentFundBreakdown struct {
	BreakdownCore `gorm:"embedded"`
}

func (DevelopmentFundBreakdown) TableName() string { return "development_fund_breakdowns" }

type SpecialEducationFundBreakdown struct {
	BreakdownCore `gorm:"embedded"`
}

func (SpecialEducationFundBreakdown) TableName() string { return "special_education_fund_breakdowns" }

type SpecialHealthFundBreakdown struct {
	BreakdownCore `gorm:"embedded"`
}

func (SpecialHealthFundBreakdown) TableName() string { return "special_health_fund_breakdowns" }
