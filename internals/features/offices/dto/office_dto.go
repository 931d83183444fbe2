// file: internals/features/offices/dto/office_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"budgetku_backend/internals/features/offices/model"
)

type OfficeCreateDTO struct {
	OfficeCode string `json:"office_code" validate:"required,max=60"`
	OfficeName string `json:"office_name" validate:"required"`
}

type OfficeUpdateDTO struct {
	OfficeName     *string `json:"office_name,omitempty"`
	OfficeIsActive *bool   `json:"office_is_active,omitempty"`
}

type OfficeResponse struct {
	OfficeID        uuid.UUID `json:"office_id"`
	OfficeCode      string    `json:"office_code"`
	OfficeName      string    `json:"office_name"`
	OfficeIsActive  bool      `json:"office_is_active"`
	OfficeCreatedAt time.Time `json:"office_created_at"`
	OfficeUpdatedAt time.Time `json:"office_updated_at"`
}

func ToOfficeResponse(m model.ImplementingOffice) OfficeResponse {
	return OfficeResponse{
		OfficeID:        m.OfficeID,
		OfficeCode:      m.OfficeCode,
		OfficeName:      m.OfficeName,
		OfficeIsActive:  m.OfficeIsActive,
		OfficeCreatedAt: m.OfficeCreatedAt,
		OfficeUpdatedAt: m.OfficeUpdatedAt,
	}
}

func ToOfficeResponses(rows []model.ImplementingOffice) []OfficeResponse {
	out := make([]OfficeResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToOfficeResponse(r))
	}
	return out
}

func (d OfficeCreateDTO) ToModel() model.ImplementingOffice {
	return model.ImplementingOffice{
		OfficeID:       uuid.New(),
		OfficeCode:     strings.ToUpper(strings.TrimSpace(d.OfficeCode)),
		OfficeName:     strings.TrimSpace(d.OfficeName),
		OfficeIsActive: true,
	}
}
