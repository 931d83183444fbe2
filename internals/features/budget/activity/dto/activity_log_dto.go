// file: internals/features/budget/activity/dto/activity_log_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"budgetku_backend/internals/features/budget/activity/model"
)

type ActivityLogResponse struct {
	ActivityLogID         uuid.UUID                `json:"activity_log_id"`
	ActivityLogAction     model.ActivityAction     `json:"activity_log_action"`
	ActivityLogEntityKind model.ActivityEntityKind `json:"activity_log_entity_kind"`
	ActivityLogEntityID   *uuid.UUID               `json:"activity_log_entity_id,omitempty"`

	ActivityLogPreviousValues datatypes.JSON `json:"activity_log_previous_values,omitempty"`
	ActivityLogNewValues      datatypes.JSON `json:"activity_log_new_values,omitempty"`
	ActivityLogChangedFields  datatypes.JSON `json:"activity_log_changed_fields,omitempty"`

	ActivityLogPerformedByID         *uuid.UUID `json:"activity_log_performed_by_id,omitempty"`
	ActivityLogPerformedByName       string     `json:"activity_log_performed_by_name"`
	ActivityLogPerformedByEmail      string     `json:"activity_log_performed_by_email"`
	ActivityLogPerformedByRole       string     `json:"activity_log_performed_by_role"`
	ActivityLogPerformedByDepartment string     `json:"activity_log_performed_by_department"`

	ActivityLogReason      *string              `json:"activity_log_reason,omitempty"`
	ActivityLogBatchID     *uuid.UUID           `json:"activity_log_batch_id,omitempty"`
	ActivityLogRecordCount *int                 `json:"activity_log_record_count,omitempty"`
	ActivityLogSource      model.ActivitySource `json:"activity_log_source"`
	ActivityLogCreatedAt   time.Time            `json:"activity_log_created_at"`
}

func ToActivityLogResponse(m model.ActivityLogCore) ActivityLogResponse {
	return ActivityLogResponse{
		ActivityLogID:         m.ActivityLogID,
		ActivityLogAction:     m.ActivityLogAction,
		ActivityLogEntityKind: m.ActivityLogEntityKind,
		ActivityLogEntityID:   m.ActivityLogEntityID,

		ActivityLogPreviousValues: m.ActivityLogPreviousValues,
		ActivityLogNewValues:      m.ActivityLogNewValues,
		ActivityLogChangedFields:  m.ActivityLogChangedFields,

		ActivityLogPerformedByID:         m.ActivityLogPerformedByID,
		ActivityLogPerformedByName:       m.ActivityLogPerformedByName,
		ActivityLogPerformedByEmail:      m.ActivityLogPerformedByEmail,
		ActivityLogPerformedByRole:       m.ActivityLogPerformedByRole,
		ActivityLogPerformedByDepartment: m.ActivityLogPerformedByDepartment,

		ActivityLogReason:      m.ActivityLogReason,
		ActivityLogBatchID:     m.ActivityLogBatchID,
		ActivityLogRecordCount: m.ActivityLogRecordCount,
		ActivityLogSource:      m.ActivityLogSource,
		ActivityLogCreatedAt:   m.ActivityLogCreatedAt,
	}
}

func ToActivityLogResponses(rows []model.ActivityLogCore) []ActivityLogResponse {
	out := make([]ActivityLogResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToActivityLogResponse(r))
	}
	return out
}
