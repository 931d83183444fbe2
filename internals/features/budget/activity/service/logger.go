// file: internals/features/budget/activity/service/logger.go
package service

import (
	"bytes"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"budgetku_backend/internals/features/budget/activity/model"
	helper "budgetku_backend/internals/helpers"
)

// Entry is one audit event. Previous/Next are the full record structs
// (or nil); they are persisted as opaque snapshots regardless of which
// fields changed, so the trail can be replayed without re-deriving state
// from a chain of diffs.
type Entry struct {
	Action     model.ActivityAction
	EntityKind model.ActivityEntityKind
	EntityID   *uuid.UUID

	Previous any
	Next     any

	Actor       helper.Actor
	Reason      *string
	BatchID     *uuid.UUID
	RecordCount *int
	Source      model.ActivitySource
}

// Log writes one append-only entry inside the caller's transaction. The
// write is part of the same transaction as the data change: a logging
// failure fails the whole mutation.
func Log(tx *gorm.DB, logTable string, trackedFields []string, e Entry) (uuid.UUID, error) {
	prevMap, prevJSON, err := snapshot(e.Previous)
	if err != nil {
		return uuid.Nil, err
	}
	nextMap, nextJSON, err := snapshot(e.Next)
	if err != nil {
		return uuid.Nil, err
	}

	var changedJSON datatypes.JSON
	if prevMap != nil && nextMap != nil {
		changed := ChangedFields(trackedFields, prevMap, nextMap)
		raw, err := sonic.Marshal(changed)
		if err != nil {
			return uuid.Nil, err
		}
		changedJSON = datatypes.JSON(raw)
	}

	source := e.Source
	if source == "" {
		source = model.SourceWeb
	}

	actorID := e.Actor.ID
	row := model.ActivityLogCore{
		ActivityLogID:         uuid.New(),
		ActivityLogAction:     e.Action,
		ActivityLogEntityKind: e.EntityKind,
		ActivityLogEntityID:   e.EntityID,

		ActivityLogPreviousValues: prevJSON,
		ActivityLogNewValues:      nextJSON,
		ActivityLogChangedFields:  changedJSON,

		ActivityLogPerformedByID:         &actorID,
		ActivityLogPerformedByName:       e.Actor.Name,
		ActivityLogPerformedByEmail:      e.Actor.Email,
		ActivityLogPerformedByRole:       e.Actor.Role,
		ActivityLogPerformedByDepartment: e.Actor.Department,

		ActivityLogReason:      e.Reason,
		ActivityLogBatchID:     e.BatchID,
		ActivityLogRecordCount: e.RecordCount,
		ActivityLogSource:      source,
		ActivityLogCreatedAt:   time.Now(),
	}

	if err := tx.Table(logTable).Create(&row).Error; err != nil {
		return uuid.Nil, err
	}
	return row.ActivityLogID, nil
}

// ChangedFields returns the tracked keys whose values differ between the
// two snapshots. Comparison is shallow: values are compared by their
// marshalled form, not deep-walked.
func ChangedFields(tracked []string, prev, next map[string]any) []string {
	changed := make([]string, 0, len(tracked))
	for _, key := range tracked {
		pv, pok := prev[key]
		nv, nok := next[key]
		if pok != nok {
			changed = append(changed, key)
			continue
		}
		if !pok {
			continue
		}
		pb, perr := sonic.Marshal(pv)
		nb, nerr := sonic.Marshal(nv)
		if perr != nil || nerr != nil || !bytes.Equal(pb, nb) {
			changed = append(changed, key)
		}
	}
	return changed
}

// snapshot marshals a record into both its opaque JSON form and a
// key→value map for the diff. nil in → nil out.
func snapshot(v any) (map[string]any, datatypes.JSON, error) {
	if v == nil {
		return nil, nil, nil
	}
	raw, err := sonic.Marshal(v)
	if err != nil {
		return nil, nil, err
	}
	var m map[string]any
	if err := sonic.Unmarshal(raw, &m); err != nil {
		return nil, nil, err
	}
	return m, datatypes.JSON(raw), nil
}
