// file: internals/features/budget/activity/model/activity_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Enums (Go-side)
   ========================= */

type ActivityAction string

const (
	ActionCreated         ActivityAction = "created"
	ActionUpdated         ActivityAction = "updated"
	ActionDeleted         ActivityAction = "deleted"
	ActionRestored        ActivityAction = "restored"
	ActionToggledAutoCalc ActivityAction = "toggled_auto_calculate"
	ActionBulkCreated     ActivityAction = "bulk_created"
	ActionBulkUpdated     ActivityAction = "bulk_updated"
	ActionBulkDeleted     ActivityAction = "bulk_deleted"
)

type ActivityEntityKind string

const (
	EntityKindFund      ActivityEntityKind = "fund"
	EntityKindBreakdown ActivityEntityKind = "breakdown"
)

type ActivitySource string

const (
	SourceWeb        ActivitySource = "web"
	SourceBulkImport ActivitySource = "bulk_import"
	SourceSystem     ActivitySource = "system"
	SourceMigration  ActivitySource = "migration"
)

/* =========================
   Shared core
   ========================= */

// ActivityLogCore is the append-only audit row shared by the five
// per-family log tables. Snapshots are full records, opaque JSON; actor
// fields are copied by value at write time (never a live join), so
// entries stay accurate after the user is renamed or removed. No update
// or delete surface exists for these tables.
type ActivityLogCore struct {
	ActivityLogID uuid.UUID `json:"activity_log_id" gorm:"column:activity_log_id;type:uuid;primaryKey"`

	ActivityLogAction     ActivityAction     `json:"activity_log_action" gorm:"column:activity_log_action;type:varchar(30);not null;index"`
	ActivityLogEntityKind ActivityEntityKind `json:"activity_log_entity_kind" gorm:"column:activity_log_entity_kind;type:varchar(20);not null"`

	// nullable: bulk entries aggregate many rows under one batch id
	ActivityLogEntityID *uuid.UUID `json:"activity_log_entity_id,omitempty" gorm:"column:activity_log_entity_id;type:uuid;index"`

	ActivityLogPreviousValues datatypes.JSON `json:"activity_log_previous_values,omitempty" gorm:"column:activity_log_previous_values;type:jsonb"`
	ActivityLogNewValues      datatypes.JSON `json:"activity_log_new_values,omitempty" gorm:"column:activity_log_new_values;type:jsonb"`
	ActivityLogChangedFields  datatypes.JSON `json:"activity_log_changed_fields,omitempty" gorm:"column:activity_log_changed_fields;type:jsonb"`

	ActivityLogPerformedByID         *uuid.UUID `json:"activity_log_performed_by_id,omitempty" gorm:"column:activity_log_performed_by_id;type:uuid"`
	ActivityLogPerformedByName       string     `json:"activity_log_performed_by_name" gorm:"column:activity_log_performed_by_name;type:text"`
	ActivityLogPerformedByEmail      string     `json:"activity_log_performed_by_email" gorm:"column:activity_log_performed_by_email;type:text"`
	ActivityLogPerformedByRole       string     `json:"activity_log_performed_by_role" gorm:"column:activity_log_performed_by_role;type:varchar(30)"`
	ActivityLogPerformedByDepartment string     `json:"activity_log_performed_by_department" gorm:"column:activity_log_performed_by_department;type:text"`

	ActivityLogReason      *string        `json:"activity_log_reason,omitempty" gorm:"column:activity_log_reason;type:text"`
	ActivityLogBatchID     *uuid.UUID     `json:"activity_log_batch_id,omitempty" gorm:"column:activity_log_batch_id;type:uuid;index"`
	ActivityLogRecordCount *int           `json:"activity_log_record_count,omitempty" gorm:"column:activity_log_record_count"`
	ActivityLogSource      ActivitySource `json:"activity_log_source" gorm:"column:activity_log_source;type:varchar(20);not null;default:'web'"`

	ActivityLogCreatedAt time.Time `json:"activity_log_created_at" gorm:"column:activity_log_created_at;not null;autoCreateTime"`
}

func (l *ActivityLogCore) BeforeCreate(tx *gorm.DB) error {
	if l.ActivityLogID == uuid.Nil {
		l.ActivityLogID = uuid.New()
	}
	return nil
}

/* =========================
   Families (one table each)
   ========================= */

type ProjectFundActivityLog struct {
	ActivityLogCore `gorm:"embedded"`
}

func (ProjectFundActivityLog) TableName() string { return "project_fund_activity_logs" }

type TrustFundActivityLog struct {
	ActivityLogCore `gorm:"embedded"`
}

func (TrustFundActivityLog) TableName() string { return "trust_fund_activity_logs" }

type DevelopmentFundActivityLog struct {
	ActivityLogCore `gorm:"embedded"`
}

func (DevelopmentFundActivityLog) TableName() string { return "development_fund_activity_logs" }

type SpecialEducationFundActivityLog struct {
	ActivityLogCore `gorm:"embedded"`
}

func (SpecialEducationFundActivityLog) TableName() string {
	return "special_education_fund_activity_logs"
}

type SpecialHealthFundActivityLog struct {
	ActivityLogCore `gorm:"embedded"`
}

func (SpecialHealthFundActivityLog) TableName() string { return "special_health_fund_activity_logs" }
