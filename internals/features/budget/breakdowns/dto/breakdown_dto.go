// file: internals/features/budget/breakdowns/dto/breakdown_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	breakdownmodel "budgetku_backend/internals/features/budget/breakdowns/model"
	"budgetku_backend/internals/features/budget/service"
)

////////////////////////////////////////////////////////////////////////////////
// BREAKDOWNS DTO
////////////////////////////////////////////////////////////////////////////////

// Create: confirm_violations=true commits even when the violation
// detector reports exceedances. The checks are advisory because pending
// budget amendments legitimately exceed the recorded ceilings.
type BreakdownCreateDTO struct {
	FundBreakdownFundID uuid.UUID `json:"fund_breakdown_fund_id" validate:"required"`

	FundBreakdownOfficeCode string  `json:"fund_breakdown_office_code" validate:"required"`
	FundBreakdownParticular *string `json:"fund_breakdown_particular,omitempty"`

	FundBreakdownAllocated float64 `json:"fund_breakdown_allocated" validate:"min=0"`
	FundBreakdownObligated float64 `json:"fund_breakdown_obligated" validate:"min=0"`
	FundBreakdownUtilized  float64 `json:"fund_breakdown_utilized" validate:"min=0"`

	FundBreakdownAccomplishment float64 `json:"fund_breakdown_accomplishment" validate:"min=0,max=100"`

	FundBreakdownStatus *breakdownmodel.BreakdownStatus `json:"fund_breakdown_status,omitempty"`

	FundBreakdownDateStarted    *time.Time `json:"fund_breakdown_date_started,omitempty"`
	FundBreakdownTargetDate     *time.Time `json:"fund_breakdown_target_date,omitempty"`
	FundBreakdownCompletionDate *time.Time `json:"fund_breakdown_completion_date,omitempty"`
	FundBreakdownReportDate     *time.Time `json:"fund_breakdown_report_date,omitempty"`

	FundBreakdownRemarks *string `json:"fund_breakdown_remarks,omitempty"`

	ConfirmViolations bool `json:"confirm_violations"`
}

// Update (partial)
type BreakdownUpdateDTO struct {
	FundBreakdownOfficeCode *string `json:"fund_breakdown_office_code,omitempty"`
	FundBreakdownParticular *string `json:"fund_breakdown_particular,omitempty"`

	FundBreakdownAllocated *float64 `json:"fund_breakdown_allocated,omitempty" validate:"omitempty,min=0"`
	FundBreakdownObligated *float64 `json:"fund_breakdown_obligated,omitempty" validate:"omitempty,min=0"`
	FundBreakdownUtilized  *float64 `json:"fund_breakdown_utilized,omitempty" validate:"omitempty,min=0"`

	FundBreakdownAccomplishment *float64 `json:"fund_breakdown_accomplishment,omitempty" validate:"omitempty,min=0,max=100"`

	FundBreakdownStatus *breakdownmodel.BreakdownStatus `json:"fund_breakdown_status,omitempty"`

	FundBreakdownDateStarted    *time.Time `json:"fund_breakdown_date_started,omitempty"`
	FundBreakdownTargetDate     *time.Time `json:"fund_breakdown_target_date,omitempty"`
	FundBreakdownCompletionDate *time.Time `json:"fund_breakdown_completion_date,omitempty"`
	FundBreakdownReportDate     *time.Time `json:"fund_breakdown_report_date,omitempty"`

	FundBreakdownRemarks *string `json:"fund_breakdown_remarks,omitempty"`

	ConfirmViolations bool `json:"confirm_violations"`
}

// Bulk import payload: every item lands under one fund with a shared
// generated batch id and a single aggregate log entry.
type BreakdownBulkCreateDTO struct {
	FundBreakdownFundID uuid.UUID              `json:"fund_breakdown_fund_id" validate:"required"`
	Items               []BreakdownBulkItemDTO `json:"items" validate:"required,min=1,dive"`
	ConfirmViolations   bool                   `json:"confirm_violations"`
}

type BreakdownBulkItemDTO struct {
	FundBreakdownOfficeCode string  `json:"fund_breakdown_office_code" validate:"required"`
	FundBreakdownParticular *string `json:"fund_breakdown_particular,omitempty"`

	FundBreakdownAllocated float64 `json:"fund_breakdown_allocated" validate:"min=0"`
	FundBreakdownObligated float64 `json:"fund_breakdown_obligated" validate:"min=0"`
	FundBreakdownUtilized  float64 `json:"fund_breakdown_utilized" validate:"min=0"`

	FundBreakdownAccomplishment float64 `json:"fund_breakdown_accomplishment" validate:"min=0,max=100"`

	FundBreakdownStatus *breakdownmodel.BreakdownStatus `json:"fund_breakdown_status,omitempty"`

	FundBreakdownDateStarted *time.Time `json:"fund_breakdown_date_started,omitempty"`
	FundBreakdownTargetDate  *time.Time `json:"fund_breakdown_target_date,omitempty"`
	FundBreakdownReportDate  *time.Time `json:"fund_breakdown_report_date,omitempty"`

	FundBreakdownRemarks *string `json:"fund_breakdown_remarks,omitempty"`
}

type ReasonDTO struct {
	Reason *string `json:"reason,omitempty"`
}

type BreakdownResponse struct {
	FundBreakdownID     uuid.UUID  `json:"fund_breakdown_id"`
	FundBreakdownFundID *uuid.UUID `json:"fund_breakdown_fund_id,omitempty"`

	FundBreakdownOfficeCode string  `json:"fund_breakdown_office_code"`
	FundBreakdownOfficeName *string `json:"fund_breakdown_office_name,omitempty"`
	FundBreakdownParticular *string `json:"fund_breakdown_particular,omitempty"`

	FundBreakdownAllocated       float64 `json:"fund_breakdown_allocated"`
	FundBreakdownObligated       float64 `json:"fund_breakdown_obligated"`
	FundBreakdownUtilized        float64 `json:"fund_breakdown_utilized"`
	FundBreakdownBalance         float64 `json:"fund_breakdown_balance"`
	FundBreakdownUtilizationRate float64 `json:"fund_breakdown_utilization_rate"`

	FundBreakdownAccomplishment float64 `json:"fund_breakdown_accomplishment"`

	FundBreakdownStatus breakdownmodel.BreakdownStatus `json:"fund_breakdown_status"`

	FundBreakdownDateStarted    *time.Time `json:"fund_breakdown_date_started,omitempty"`
	FundBreakdownTargetDate     *time.Time `json:"fund_breakdown_target_date,omitempty"`
	FundBreakdownCompletionDate *time.Time `json:"fund_breakdown_completion_date,omitempty"`
	FundBreakdownReportDate     *time.Time `json:"fund_breakdown_report_date,omitempty"`

	FundBreakdownBatchID *uuid.UUID `json:"fund_breakdown_batch_id,omitempty"`
	FundBreakdownRemarks *string    `json:"fund_breakdown_remarks,omitempty"`

	FundBreakdownIsDeleted      bool       `json:"fund_breakdown_is_deleted"`
	FundBreakdownDeletedAt      *time.Time `json:"fund_breakdown_deleted_at,omitempty"`
	FundBreakdownDeletionReason *string    `json:"fund_breakdown_deletion_reason,omitempty"`

	FundBreakdownCreatedAt time.Time `json:"fund_breakdown_created_at"`
	FundBreakdownUpdatedAt time.Time `json:"fund_breakdown_updated_at"`
}

// AvailabilityResponse bundles the capacity verdict with a violation
// preview so the client can render the confirmation surface pre-submit.
type AvailabilityResponse struct {
	Availability service.Availability    `json:"availability"`
	Violations   service.ViolationReport `json:"violations"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToBreakdownResponse(m breakdownmodel.BreakdownCore) BreakdownResponse {
	return BreakdownResponse{
		FundBreakdownID:     m.FundBreakdownID,
		FundBreakdownFundID: m.FundBreakdownFundID,

		FundBreakdownOfficeCode: m.FundBreakdownOfficeCode,
		FundBreakdownParticular: m.FundBreakdownParticular,

		FundBreakdownAllocated:       m.FundBreakdownAllocated,
		FundBreakdownObligated:       m.FundBreakdownObligated,
		FundBreakdownUtilized:        m.FundBreakdownUtilized,
		FundBreakdownBalance:         m.FundBreakdownBalance,
		FundBreakdownUtilizationRate: m.FundBreakdownUtilizationRate,

		FundBreakdownAccomplishment: m.FundBreakdownAccomplishment,
		FundBreakdownStatus:         m.FundBreakdownStatus,

		FundBreakdownDateStarted:    m.FundBreakdownDateStarted,
		FundBreakdownTargetDate:     m.FundBreakdownTargetDate,
		FundBreakdownCompletionDate: m.FundBreakdownCompletionDate,
		FundBreakdownReportDate:     m.FundBreakdownReportDate,

		FundBreakdownBatchID: m.FundBreakdownBatchID,
		FundBreakdownRemarks: m.FundBreakdownRemarks,

		FundBreakdownIsDeleted:      m.IsDeleted(),
		FundBreakdownDeletedAt:      m.FundBreakdownDeletedAt,
		FundBreakdownDeletionReason: m.FundBreakdownDeletionReason,

		FundBreakdownCreatedAt: m.FundBreakdownCreatedAt,
		FundBreakdownUpdatedAt: m.FundBreakdownUpdatedAt,
	}
}

func ToBreakdownResponses(rows []breakdownmodel.BreakdownCore) []BreakdownResponse {
	out := make([]BreakdownResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToBreakdownResponse(r))
	}
	return out
}

func (d BreakdownCreateDTO) ApplyCreate(m *breakdownmodel.BreakdownCore) {
	fundID := d.FundBreakdownFundID
	m.FundBreakdownFundID = &fundID
	m.FundBreakdownOfficeCode = strings.TrimSpace(d.FundBreakdownOfficeCode)
	m.FundBreakdownParticular = trimPtr(d.FundBreakdownParticular)
	m.FundBreakdownAllocated = d.FundBreakdownAllocated
	m.FundBreakdownObligated = d.FundBreakdownObligated
	m.FundBreakdownUtilized = d.FundBreakdownUtilized
	m.FundBreakdownAccomplishment = d.FundBreakdownAccomplishment
	if d.FundBreakdownStatus != nil {
		m.FundBreakdownStatus = *d.FundBreakdownStatus
	} else {
		m.FundBreakdownStatus = breakdownmodel.BreakdownStatusOngoing
	}
	m.FundBreakdownDateStarted = d.FundBreakdownDateStarted
	m.FundBreakdownTargetDate = d.FundBreakdownTargetDate
	m.FundBreakdownCompletionDate = d.FundBreakdownCompletionDate
	m.FundBreakdownReportDate = d.FundBreakdownReportDate
	m.FundBreakdownRemarks = trimPtr(d.FundBreakdownRemarks)
}

func (d BreakdownUpdateDTO) ApplyUpdate(m *breakdownmodel.BreakdownCore) {
	if d.FundBreakdownOfficeCode != nil {
		m.FundBreakdownOfficeCode = strings.TrimSpace(*d.FundBreakdownOfficeCode)
	}
	if d.FundBreakdownParticular != nil {
		m.FundBreakdownParticular = trimPtr(d.FundBreakdownParticular)
	}
	if d.FundBreakdownAllocated != nil {
		m.FundBreakdownAllocated = *d.FundBreakdownAllocated
	}
	if d.FundBreakdownObligated != nil {
		m.FundBreakdownObligated = *d.FundBreakdownObligated
	}
	if d.FundBreakdownUtilized != nil {
		m.FundBreakdownUtilized = *d.FundBreakdownUtilized
	}
	if d.FundBreakdownAccomplishment != nil {
		m.FundBreakdownAccomplishment = *d.FundBreakdownAccomplishment
	}
	if d.FundBreakdownStatus != nil {
		m.FundBreakdownStatus = *d.FundBreakdownStatus
	}
	if d.FundBreakdownDateStarted != nil {
		m.FundBreakdownDateStarted = d.FundBreakdownDateStarted
	}
	if d.FundBreakdownTargetDate != nil {
		m.FundBreakdownTargetDate = d.FundBreakdownTargetDate
	}
	if d.FundBreakdownCompletionDate != nil {
		m.FundBreakdownCompletionDate = d.FundBreakdownCompletionDate
	}
	if d.FundBreakdownReportDate != nil {
		m.FundBreakdownReportDate = d.FundBreakdownReportDate
	}
	if d.FundBreakdownRemarks != nil {
		m.FundBreakdownRemarks = trimPtr(d.FundBreakdownRemarks)
	}
}

func (d BreakdownBulkItemDTO) ToModel(fundID uuid.UUID, batchID uuid.UUID, createdBy uuid.UUID) breakdownmodel.BreakdownCore {
	status := breakdownmodel.BreakdownStatusOngoing
	if d.FundBreakdownStatus != nil {
		status = *d.FundBreakdownStatus
	}
	fid := fundID
	bid := batchID
	by := createdBy
	return breakdownmodel.BreakdownCore{
		FundBreakdownID:     uuid.New(),
		FundBreakdownFundID: &fid,

		FundBreakdownOfficeCode: strings.TrimSpace(d.FundBreakdownOfficeCode),
		FundBreakdownParticular: trimPtr(d.FundBreakdownParticular),

		FundBreakdownAllocated:      d.FundBreakdownAllocated,
		FundBreakdownObligated:      d.FundBreakdownObligated,
		FundBreakdownUtilized:       d.FundBreakdownUtilized,
		FundBreakdownAccomplishment: d.FundBreakdownAccomplishment,

		FundBreakdownStatus: status,

		FundBreakdownDateStarted: d.FundBreakdownDateStarted,
		FundBreakdownTargetDate:  d.FundBreakdownTargetDate,
		FundBreakdownReportDate:  d.FundBreakdownReportDate,

		FundBreakdownBatchID: &bid,
		FundBreakdownRemarks: trimPtr(d.FundBreakdownRemarks),

		FundBreakdownCreatedBy: &by,
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
