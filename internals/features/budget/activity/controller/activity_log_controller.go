// file: internals/features/budget/activity/controller/activity_log_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"budgetku_backend/internals/features/budget/activity/dto"
	activitymodel "budgetku_backend/internals/features/budget/activity/model"
	"budgetku_backend/internals/features/budget/service"
	helper "budgetku_backend/internals/helpers"
)

// ActivityLogController exposes the audit trail read-only. There is no
// write surface here on purpose: entries are only ever created inside
// the mutation transactions, and never updated or deleted.
type ActivityLogController struct {
	DB *gorm.DB
}

func NewActivityLogController(db *gorm.DB) *ActivityLogController {
	return &ActivityLogController{DB: db}
}

// GET /api/u/budget/:fund_type/activity
//
//	?entity_id=&entity_kind=&action=&batch_id=
func (ctl *ActivityLogController) List(c *fiber.Ctx) error {
	fam, err := service.ResolveFamily(c.Params("fund_type"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Table(fam.ActivityTable)

	if raw := c.Query("entity_id"); raw != "" {
		entityID, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid entity_id")
		}
		q = q.Where("activity_log_entity_id = ?", entityID)
	}
	if raw := c.Query("entity_kind"); raw != "" {
		q = q.Where("activity_log_entity_kind = ?", raw)
	}
	if raw := c.Query("action"); raw != "" {
		q = q.Where("activity_log_action = ?", raw)
	}
	if raw := c.Query("batch_id"); raw != "" {
		batchID, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid batch_id")
		}
		q = q.Where("activity_log_batch_id = ?", batchID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []activitymodel.ActivityLogCore
	if err := q.Order("activity_log_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "OK", fiber.Map{
		"logs":       dto.ToActivityLogResponses(rows),
		"pagination": helper.BuildPagination(paging, total, len(rows)),
	})
}

// GET /api/u/budget/:fund_type/activity/:id
func (ctl *ActivityLogController) GetByID(c *fiber.Ctx) error {
	fam, err := service.ResolveFamily(c.Params("fund_type"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid activity log id")
	}

	var row activitymodel.ActivityLogCore
	if err := ctl.DB.Table(fam.ActivityTable).
		Where("activity_log_id = ?", id).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Activity log entry not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "OK", dto.ToActivityLogResponse(row))
}
