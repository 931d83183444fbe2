// file: internals/features/budget/funds/controller/fund_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	activitymodel "budgetku_backend/internals/features/budget/activity/model"
	activitysvc "budgetku_backend/internals/features/budget/activity/service"
	"budgetku_backend/internals/features/budget/funds/dto"
	fundmodel "budgetku_backend/internals/features/budget/funds/model"
	"budgetku_backend/internals/features/budget/service"
	helper "budgetku_backend/internals/helpers"
)

/* =======================================================
   CONTROLLER
   ======================================================= */

type FundController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewFundController(db *gorm.DB, v *validator.Validate) *FundController {
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}
	return &FundController{DB: db, Validate: v}
}

/* =======================================================
   HELPERS
   ======================================================= */

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

func resolveFamily(c *fiber.Ctx) (service.Family, error) {
	return service.ResolveFamily(c.Params("fund_type"))
}

/* =======================================================
   CREATE
   ======================================================= */

// POST /api/a/budget/:fund_type/funds
func (ctl *FundController) Create(c *fiber.Ctx) error {
	fam, err := resolveFamily(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.FundCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	var fund fundmodel.FundCore
	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		fund = fundmodel.FundCore{FundID: uuid.New(), FundStatus: fundmodel.FundStatusOngoing}
		body.ApplyCreate(&fund)
		actorID := actor.ID
		fund.FundCreatedBy = &actorID

		// families without the capability are always manual entry
		if !fam.HasAutoCalculate {
			fund.FundAutoCalculateUtilized = false
		}

		fund.FundBalance = service.Balance(fund.FundTotalAllocated, fund.FundTotalUtilized)
		fund.FundUtilizationRate = service.UtilizationRate(fund.FundTotalAllocated, fund.FundTotalUtilized)

		if err := fam.CreateFund(tx, &fund); err != nil {
			return err
		}
		// auto mode derives utilized from children (none yet)
		if err := fam.RecalcFund(tx, fund.FundID); err != nil {
			return err
		}
		reloaded, err := fam.GetFund(tx, fund.FundID)
		if err != nil {
			return err
		}
		fund = *reloaded

		_, err = activitysvc.Log(tx, fam.ActivityTable, fam.FundTrackedFields, activitysvc.Entry{
			Action:     activitymodel.ActionCreated,
			EntityKind: activitymodel.EntityKindFund,
			EntityID:   &fund.FundID,
			Next:       fund,
			Actor:      actor,
		})
		return err
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Fund created", dto.ToFundResponse(string(fam.Type), fund))
}

/* =======================================================
   READS
   ======================================================= */

// GET /api/u/budget/:fund_type/funds
func (ctl *FundController) List(c *fiber.Ctx) error {
	fam, err := resolveFamily(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Table(fam.FundTable).Where("fund_deleted_at IS NULL")
	if fy := c.QueryInt("fiscal_year"); fy > 0 {
		q = q.Where("fund_fiscal_year = ?", fy)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []fundmodel.FundCore
	if err := q.Order("fund_is_pinned DESC, fund_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "OK", fiber.Map{
		"funds":      dto.ToFundResponses(string(fam.Type), rows),
		"pagination": helper.BuildPagination(paging, total, len(rows)),
	})
}

// GET /api/u/budget/:fund_type/funds/trash
func (ctl *FundController) ListTrash(c *fiber.Ctx) error {
	fam, err := resolveFamily(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Table(fam.FundTable).Where("fund_deleted_at IS NOT NULL")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []fundmodel.FundCore
	if err := q.Order("fund_deleted_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "OK", fiber.Map{
		"funds":      dto.ToFundResponses(string(fam.Type), rows),
		"pagination": helper.BuildPagination(paging, total, len(rows)),
	})
}

// GET /api/u/budget/:fund_type/funds/:id
func (ctl *FundController) GetByID(c *fiber.Ctx) error {
	fam, err := resolveFamily(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid fund id")
	}

	fund, err := fam.GetFund(ctl.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusNotFound, "Fund not found")
	}
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "OK", dto.ToFundResponse(string(fam.Type), *fund))
}

/* =======================================================
   UPDATE
   ======================================================= */

// PUT /api/a/budget/:fund_type/funds/:id
func (ctl *FundController) Update(c *fiber.Ctx) error {
	fam, err := resolveFamily(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid fund id")
	}

	var body dto.FundUpdateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}
	if body.FundStatus != nil && !body.FundStatus.Valid() {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid fund status")
	}

	var fund fundmodel.FundCore
	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		current, err := fam.GetFund(tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Fund not found")
		}
		if err != nil {
			return err
		}
		prev := *current

		// utilized is not client-editable while auto mode is on
		if fam.HasAutoCalculate && current.FundAutoCalculateUtilized {
			body.FundTotalUtilized = nil
		}

		body.ApplyUpdate(current)
		actorID := actor.ID
		current.FundUpdatedBy = &actorID
		current.FundBalance = service.Balance(current.FundTotalAllocated, current.FundTotalUtilized)
		current.FundUtilizationRate = service.UtilizationRate(current.FundTotalAllocated, current.FundTotalUtilized)

		if err := fam.SaveFund(tx, current); err != nil {
			return err
		}
		if err := fam.RecalcFund(tx, id); err != nil {
			return err
		}
		reloaded, err := fam.GetFund(tx, id)
		if err != nil {
			return err
		}
		fund = *reloaded

		_, err = activitysvc.Log(tx, fam.ActivityTable, fam.FundTrackedFields, activitysvc.Entry{
			Action:     activitymodel.ActionUpdated,
			EntityKind: activitymodel.EntityKindFund,
			EntityID:   &id,
			Previous:   prev,
			Next:       fund,
			Actor:      actor,
		})
		return err
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	return helper.Success(c, "Fund updated", dto.ToFundResponse(string(fam.Type), fund))
}

/* =======================================================
   SOFT-DELETE LIFECYCLE
   ======================================================= */

// POST /api/a/budget/:fund_type/funds/:id/trash
func (ctl *FundController) MoveToTrash(c *fiber.Ctx) error {
	fam, err := resolveFamily(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid fund id")
	}

	var body dto.ReasonDTO
	_ = c.BodyParser(&body) // empty body is fine

	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		current, err := fam.GetFund(tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Fund not found")
		}
		if err != nil {
			return err
		}
		prev := *current

		now := time.Now()
		actorID := actor.ID
		current.FundDeletedAt = &now
		current.FundDeletedBy = &actorID
		current.FundDeletionReason = body.Reason
		if err := fam.SaveFund(tx, current); err != nil {
			return err
		}

		// convention: moving to trash is an update whose diff carries the
		// deletion marker; only the terminal hard delete logs `deleted`
		_, err = activitysvc.Log(tx, fam.ActivityTable, fam.FundTrackedFields, activitysvc.Entry{
			Action:     activitymodel.ActionUpdated,
			EntityKind: activitymodel.EntityKindFund,
			EntityID:   &id,
			Previous:   prev,
			Next:       *current,
			Actor:      actor,
			Reason:     body.Reason,
		})
		return err
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	return helper.Success(c, "Fund moved to trash", fiber.Map{"success": true})
}

// POST /api/a/budget/:fund_type/funds/:id/restore
func (ctl *FundController) RestoreFromTrash(c *fiber.Ctx) error {
	fam, err := resolveFamily(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid fund id")
	}

	restored := false
	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		current, err := fam.GetFundAny(tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Fund not found")
		}
		if err != nil {
			return err
		}
		if !current.IsDeleted() {
			return nil // already active: graceful no-op
		}
		prev := *current

		current.FundDeletedAt = nil
		current.FundDeletedBy = nil
		current.FundDeletionReason = nil
		if err := fam.SaveFund(tx, current); err != nil {
			return err
		}
		if err := fam.RecalcFund(tx, id); err != nil {
			return err
		}
		reloaded, err := fam.GetFund(tx, id)
		if err != nil {
			return err
		}
		restored = true

		_, err = activitysvc.Log(tx, fam.ActivityTable, fam.FundTrackedFields, activitysvc.Entry{
			Action:     activitymodel.ActionRestored,
			EntityKind: activitymodel.EntityKindFund,
			EntityID:   &id,
			Previous:   prev,
			Next:       *reloaded,
			Actor:      actor,
		})
		return err
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	return helper.Success(c, "Fund restored", fiber.Map{"success": true, "restored": restored})
}

// DELETE /api/a/budget/:fund_type/funds/:id
// Hard delete: irreversible, creator or super-admin only. The full
// pre-deletion snapshot in the log is the only remaining trace.
func (ctl *FundController) Remove(c *fiber.Ctx) error {
	fam, err := resolveFamily(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid fund id")
	}

	var body dto.ReasonDTO
	_ = c.BodyParser(&body)

	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		current, err := fam.GetFundAny(tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Fund not found")
		}
		if err != nil {
			return err
		}
		if err := service.AuthorizeHardDelete(actor, current.FundCreatedBy); err != nil {
			return err
		}

		if _, err := activitysvc.Log(tx, fam.ActivityTable, fam.FundTrackedFields, activitysvc.Entry{
			Action:     activitymodel.ActionDeleted,
			EntityKind: activitymodel.EntityKindFund,
			EntityID:   &id,
			Previous:   *current,
			Actor:      actor,
			Reason:     body.Reason,
		}); err != nil {
			return err
		}
		return fam.DeleteFundRow(tx, id)
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	return helper.Success(c, "Fund permanently deleted", fiber.Map{"success": true})
}

/* =======================================================
   TOGGLES
   ======================================================= */

// POST /api/a/budget/:fund_type/funds/:id/toggle-auto-calculate
func (ctl *FundController) ToggleAutoCalculate(c *fiber.Ctx) error {
	fam, err := resolveFamily(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !fam.HasAutoCalculate {
		return helper.Error(c, fiber.StatusBadRequest, "This fund type does not support auto-calculation")
	}
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid fund id")
	}

	var body dto.ReasonDTO
	_ = c.BodyParser(&body)

	var fund fundmodel.FundCore
	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		current, err := fam.GetFund(tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Fund not found")
		}
		if err != nil {
			return err
		}
		prev := *current

		current.FundAutoCalculateUtilized = !current.FundAutoCalculateUtilized
		if err := fam.SaveFund(tx, current); err != nil {
			return err
		}
		// manual → auto must overwrite any stale manual value immediately
		if err := fam.RecalcFund(tx, id); err != nil {
			return err
		}
		reloaded, err := fam.GetFund(tx, id)
		if err != nil {
			return err
		}
		fund = *reloaded

		_, err = activitysvc.Log(tx, fam.ActivityTable, fam.FundTrackedFields, activitysvc.Entry{
			Action:     activitymodel.ActionToggledAutoCalc,
			EntityKind: activitymodel.EntityKindFund,
			EntityID:   &id,
			Previous:   prev,
			Next:       fund,
			Actor:      actor,
			Reason:     body.Reason,
		})
		return err
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	return helper.Success(c, "Auto-calculation toggled", fiber.Map{
		"success": true,
		"fund":    dto.ToFundResponse(string(fam.Type), fund),
	})
}

// POST /api/a/budget/:fund_type/funds/:id/toggle-pin
func (ctl *FundController) TogglePin(c *fiber.Ctx) error {
	fam, err := resolveFamily(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid fund id")
	}

	pinned := false
	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		current, err := fam.GetFund(tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Fund not found")
		}
		if err != nil {
			return err
		}
		current.FundIsPinned = !current.FundIsPinned
		pinned = current.FundIsPinned
		return fam.SaveFund(tx, current)
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	return helper.Success(c, "Fund pin toggled", fiber.Map{"success": true, "pinned": pinned})
}
