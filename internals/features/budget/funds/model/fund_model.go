// file: internals/features/budget/funds/model/fund_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enums (Go-side)
   ========================= */

type FundStatus string

const (
	FundStatusOngoing   FundStatus = "ongoing"
	FundStatusCompleted FundStatus = "completed"
	FundStatusDelayed   FundStatus = "delayed"
)

func (s FundStatus) Valid() bool {
	switch s {
	case FundStatusOngoing, FundStatusCompleted, FundStatusDelayed:
		return true
	}
	return false
}

/* =========================
   Shared core
   ========================= */

// FundCore is the column set shared by the five fund families. Each
// family embeds it and only supplies its own table name, so the
// consistency engine can query any family through one struct.
//
// fund_balance and fund_utilization_rate are derived server-side on
// every write and never trusted from client input.
type FundCore struct {
	FundID uuid.UUID `json:"fund_id" gorm:"column:fund_id;type:uuid;primaryKey"`

	FundName       string `json:"fund_name" gorm:"column:fund_name;type:text;not null"`
	FundFiscalYear int    `json:"fund_fiscal_year" gorm:"column:fund_fiscal_year;not null"`

	FundOfficeInCharge *string `json:"fund_office_in_charge,omitempty" gorm:"column:fund_office_in_charge;type:varchar(60)"`
	FundRemarks        *string `json:"fund_remarks,omitempty" gorm:"column:fund_remarks;type:text"`

	// Trust/SEF/SHF call this "received" in the UI; storage is uniform.
	FundTotalAllocated  float64 `json:"fund_total_allocated" gorm:"column:fund_total_allocated;type:numeric(18,2);not null;default:0"`
	FundTotalUtilized   float64 `json:"fund_total_utilized" gorm:"column:fund_total_utilized;type:numeric(18,2);not null;default:0"`
	FundObligated       float64 `json:"fund_obligated" gorm:"column:fund_obligated;type:numeric(18,2);not null;default:0"`
	FundBalance         float64 `json:"fund_balance" gorm:"column:fund_balance;type:numeric(18,2);not null;default:0"`
	FundUtilizationRate float64 `json:"fund_utilization_rate" gorm:"column:fund_utilization_rate;type:numeric(8,2);not null;default:0"`

	FundStatus FundStatus `json:"fund_status" gorm:"column:fund_status;type:varchar(20);not null;default:'ongoing'"`

	// Only meaningful for families with the auto-calc capability
	// (Project, 20% Development); gated by the adapter registry. No DB
	// default: a false here must survive the insert.
	FundAutoCalculateUtilized bool `json:"fund_auto_calculate_utilized" gorm:"column:fund_auto_calculate_utilized;not null"`

	FundIsPinned bool `json:"fund_is_pinned" gorm:"column:fund_is_pinned;not null;default:false"`

	FundCreatedBy *uuid.UUID `json:"fund_created_by,omitempty" gorm:"column:fund_created_by;type:uuid"`
	FundUpdatedBy *uuid.UUID `json:"fund_updated_by,omitempty" gorm:"column:fund_updated_by;type:uuid"`

	FundCreatedAt time.Time `json:"fund_created_at" gorm:"column:fund_created_at;not null;autoCreateTime"`
	FundUpdatedAt time.Time `json:"fund_updated_at" gorm:"column:fund_updated_at;not null;autoUpdateTime"`

	FundDeletedAt      *time.Time `json:"fund_deleted_at,omitempty" gorm:"column:fund_deleted_at"`
	FundDeletedBy      *uuid.UUID `json:"fund_deleted_by,omitempty" gorm:"column:fund_deleted_by;type:uuid"`
	FundDeletionReason *string    `json:"fund_deletion_reason,omitempty" gorm:"column:fund_deletion_reason;type:text"`
}

func (f *FundCore) BeforeCreate(tx *gorm.DB) error {
	if f.FundID == uuid.Nil {
		f.FundID = uuid.New()
	}
	return nil
}

func (f *FundCore) IsDeleted() bool { return f.FundDeletedAt != nil }

/* =========================
   Families (one table each)
   ========================= */

type ProjectFund struct {
	FundCore `gorm:"embedded"`
}

func (ProjectFund) TableName() string { return "project_funds" }

type TrustFund struct {
	FundCore `gorm:"embedded"`
}

func (TrustFund) TableName() string { return "trust_funds" }

// 20% Development Fund
type DevelopmentFund struct {
	FundCore `gorm:"embedded"`
}

func (DevelopmentFund) TableName() string { return "development_funds" }

type SpecialEducationFund struct {
	FundCore `gorm:"embedded"`
}

func (SpecialEducationFund) TableName() string { return "special_education_funds" }

type SpecialHealthFund struct {
	FundCore `gorm:"embedded"`
}

func (SpecialHealthFund) TableName() string { return "special_health_funds" }
