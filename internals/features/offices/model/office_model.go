// file: internals/features/offices/model/office_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImplementingOffice is the registry of offices/locations a breakdown
// can be assigned to. Codes are the stable reference; names are display.
type ImplementingOffice struct {
	OfficeID uuid.UUID `json:"office_id" gorm:"column:office_id;type:uuid;primaryKey"`

	OfficeCode string `json:"office_code" gorm:"column:office_code;type:varchar(60);not null;uniqueIndex"`
	OfficeName string `json:"office_name" gorm:"column:office_name;type:text;not null"`

	// no DB default so a false survives the insert unmodified
	OfficeIsActive bool `json:"office_is_active" gorm:"column:office_is_active;not null"`

	OfficeCreatedAt time.Time  `json:"office_created_at" gorm:"column:office_created_at;not null;autoCreateTime"`
	OfficeUpdatedAt time.Time  `json:"office_updated_at" gorm:"column:office_updated_at;not null;autoUpdateTime"`
	OfficeDeletedAt *time.Time `json:"office_deleted_at,omitempty" gorm:"column:office_deleted_at"`
}

func (ImplementingOffice) TableName() string { return "implementing_offices" }

func (o *ImplementingOffice) BeforeCreate(tx *gorm.DB) error {
	if o.OfficeID == uuid.Nil {
		o.OfficeID = uuid.New()
	}
	return nil
}
