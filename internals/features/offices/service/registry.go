// file: internals/features/offices/service/registry.go
package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"budgetku_backend/internals/features/offices/model"
)

var ErrOfficeNotFound = errors.New("implementing office not found")

// Lookup fetches a live office row by code.
func Lookup(tx *gorm.DB, code string) (*model.ImplementingOffice, error) {
	var office model.ImplementingOffice
	err := tx.
		Where("office_code = ? AND office_deleted_at IS NULL", strings.TrimSpace(code)).
		Take(&office).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOfficeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &office, nil
}

// IsActive reports whether the code resolves to an active office.
// Unknown codes are simply inactive.
func IsActive(tx *gorm.DB, code string) (bool, error) {
	office, err := Lookup(tx, code)
	if errors.Is(err, ErrOfficeNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return office.OfficeIsActive, nil
}

// Resolve returns the display name for a code.
func Resolve(tx *gorm.DB, code string) (string, error) {
	office, err := Lookup(tx, code)
	if err != nil {
		return "", err
	}
	return office.OfficeName, nil
}
