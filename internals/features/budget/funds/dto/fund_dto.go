// file: internals/features/budget/funds/dto/fund_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	fundmodel "budgetku_backend/internals/features/budget/funds/model"
)

////////////////////////////////////////////////////////////////////////////////
// FUNDS DTO
////////////////////////////////////////////////////////////////////////////////

// Create: balance/utilization rate are never accepted from the client;
// the controller derives them. Utilized is honored only when the fund is
// (or the family forces it) in manual mode.
type FundCreateDTO struct {
	FundName       string `json:"fund_name" validate:"required"`
	FundFiscalYear int    `json:"fund_fiscal_year" validate:"required,min=2000,max=2100"`

	FundOfficeInCharge *string `json:"fund_office_in_charge,omitempty"`
	FundRemarks        *string `json:"fund_remarks,omitempty"`

	FundTotalAllocated float64 `json:"fund_total_allocated" validate:"min=0"`
	FundTotalUtilized  float64 `json:"fund_total_utilized" validate:"min=0"`
	FundObligated      float64 `json:"fund_obligated" validate:"min=0"`

	FundAutoCalculateUtilized *bool `json:"fund_auto_calculate_utilized,omitempty"`
}

// Update (partial)
type FundUpdateDTO struct {
	FundName       *string `json:"fund_name,omitempty"`
	FundFiscalYear *int    `json:"fund_fiscal_year,omitempty" validate:"omitempty,min=2000,max=2100"`

	FundOfficeInCharge *string `json:"fund_office_in_charge,omitempty"`
	FundRemarks        *string `json:"fund_remarks,omitempty"`

	FundTotalAllocated *float64 `json:"fund_total_allocated,omitempty" validate:"omitempty,min=0"`
	FundTotalUtilized  *float64 `json:"fund_total_utilized,omitempty" validate:"omitempty,min=0"`
	FundObligated      *float64 `json:"fund_obligated,omitempty" validate:"omitempty,min=0"`

	FundStatus *fundmodel.FundStatus `json:"fund_status,omitempty"`
}

// Trash / toggle requests carry an optional human reason for the log.
type ReasonDTO struct {
	Reason *string `json:"reason,omitempty"`
}

type FundResponse struct {
	FundID   uuid.UUID `json:"fund_id"`
	FundType string    `json:"fund_type"`

	FundName       string `json:"fund_name"`
	FundFiscalYear int    `json:"fund_fiscal_year"`

	FundOfficeInCharge *string `json:"fund_office_in_charge,omitempty"`
	FundRemarks        *string `json:"fund_remarks,omitempty"`

	FundTotalAllocated  float64 `json:"fund_total_allocated"`
	FundTotalUtilized   float64 `json:"fund_total_utilized"`
	FundObligated       float64 `json:"fund_obligated"`
	FundBalance         float64 `json:"fund_balance"`
	FundUtilizationRate float64 `json:"fund_utilization_rate"`

	FundStatus                fundmodel.FundStatus `json:"fund_status"`
	FundAutoCalculateUtilized bool                 `json:"fund_auto_calculate_utilized"`
	FundIsPinned              bool                 `json:"fund_is_pinned"`

	FundIsDeleted      bool       `json:"fund_is_deleted"`
	FundDeletedAt      *time.Time `json:"fund_deleted_at,omitempty"`
	FundDeletionReason *string    `json:"fund_deletion_reason,omitempty"`

	FundCreatedAt time.Time `json:"fund_created_at"`
	FundUpdatedAt time.Time `json:"fund_updated_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToFundResponse(fundType string, m fundmodel.FundCore) FundResponse {
	return FundResponse{
		FundID:   m.FundID,
		FundType: fundType,

		FundName:       m.FundName,
		FundFiscalYear: m.FundFiscalYear,

		FundOfficeInCharge: m.FundOfficeInCharge,
		FundRemarks:        m.FundRemarks,

		FundTotalAllocated:  m.FundTotalAllocated,
		FundTotalUtilized:   m.FundTotalUtilized,
		FundObligated:       m.FundObligated,
		FundBalance:         m.FundBalance,
		FundUtilizationRate: m.FundUtilizationRate,

		FundStatus:                m.FundStatus,
		FundAutoCalculateUtilized: m.FundAutoCalculateUtilized,
		FundIsPinned:              m.FundIsPinned,

		FundIsDeleted:      m.IsDeleted(),
		FundDeletedAt:      m.FundDeletedAt,
		FundDeletionReason: m.FundDeletionReason,

		FundCreatedAt: m.FundCreatedAt,
		FundUpdatedAt: m.FundUpdatedAt,
	}
}

func ToFundResponses(fundType string, rows []fundmodel.FundCore) []FundResponse {
	out := make([]FundResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToFundResponse(fundType, r))
	}
	return out
}

// ApplyCreate builds the model from the payload; derived fields are left
// for the controller.
func (d FundCreateDTO) ApplyCreate(m *fundmodel.FundCore) {
	m.FundName = strings.TrimSpace(d.FundName)
	m.FundFiscalYear = d.FundFiscalYear
	m.FundOfficeInCharge = trimPtr(d.FundOfficeInCharge)
	m.FundRemarks = trimPtr(d.FundRemarks)
	m.FundTotalAllocated = d.FundTotalAllocated
	m.FundTotalUtilized = d.FundTotalUtilized
	m.FundObligated = d.FundObligated
	if d.FundAutoCalculateUtilized != nil {
		m.FundAutoCalculateUtilized = *d.FundAutoCalculateUtilized
	}
}

// ApplyUpdate copies only the provided fields.
func (d FundUpdateDTO) ApplyUpdate(m *fundmodel.FundCore) {
	if d.FundName != nil {
		m.FundName = strings.TrimSpace(*d.FundName)
	}
	if d.FundFiscalYear != nil {
		m.FundFiscalYear = *d.FundFiscalYear
	}
	if d.FundOfficeInCharge != nil {
		m.FundOfficeInCharge = trimPtr(d.FundOfficeInCharge)
	}
	if d.FundRemarks != nil {
		m.FundRemarks = trimPtr(d.FundRemarks)
	}
	if d.FundTotalAllocated != nil {
		m.FundTotalAllocated = *d.FundTotalAllocated
	}
	if d.FundTotalUtilized != nil {
		m.FundTotalUtilized = *d.FundTotalUtilized
	}
	if d.FundObligated != nil {
		m.FundObligated = *d.FundObligated
	}
	if d.FundStatus != nil {
		m.FundStatus = *d.FundStatus
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
