// file: internals/features/budget/breakdowns/controller/breakdown_controller.go
package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	activitymodel "budgetku_backend/internals/features/budget/activity/model"
	activitysvc "budgetku_backend/internals/features/budget/activity/service"
	"budgetku_backend/internals/features/budget/breakdowns/dto"
	breakdownmodel "budgetku_backend/internals/features/budget/breakdowns/model"
	"budgetku_backend/internals/features/budget/service"
	officesvc "budgetku_backend/internals/features/offices/service"
	helper "budgetku_backend/internals/helpers"
)

/* =======================================================
   CONTROLLER
   ======================================================= */

type BreakdownController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewBreakdownController(db *gorm.DB, v *validator.Validate) *BreakdownController {
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}
	return &BreakdownController{DB: db, Validate: v}
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

func requireActiveOffice(tx *gorm.DB, code string) error {
	active, err := officesvc.IsActive(tx, code)
	if err != nil {
		return err
	}
	if !active {
		return fiber.NewError(fiber.StatusBadRequest, "Implementing office is unknown or inactive")
	}
	return nil
}

func deriveBreakdown(m *breakdownmodel.BreakdownCore) {
	m.FundBreakdownBalance = service.Balance(m.FundBreakdownAllocated, m.FundBreakdownUtilized)
	m.FundBreakdownUtilizationRate = service.UtilizationRate(m.FundBreakdownAllocated, m.FundBreakdownUtilized)
}

// violationResponse turns the deferred-commit sentinel into the 409
// confirmation surface (per-check label, amount, limit, diff).
func violationResponse(c *fiber.Ctx, err error) (error, bool) {
	var warn *service.ViolationWarning
	if errors.As(err, &warn) {
		return helper.ErrorWithDetails(c, fiber.StatusConflict,
			"Budget violations detected. Resubmit with confirm_violations to proceed",
			warn.Report), true
	}
	return nil, false
}

/* =======================================================
   CREATE
   ======================================================= */

// POST /api/a/budget/:fund_type/breakdowns
func (ctl *BreakdownController) Create(c *fiber.Ctx) error {
	fam, err := resolveFamily(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.BreakdownCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}
	if body.FundBreakdownStatus != nil && !body.FundBreakdownStatus.Valid() {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid breakdown status")
	}

	var row breakdownmodel.BreakdownCore
	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		fund, err := fam.GetFund(tx, body.FundBreakdownFundID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Fund not found")
		}
		if err != nil {
			return err
		}
		if err := requireActiveOffice(tx, body.FundBreakdownOfficeCode); err != nil {
			return err
		}

		siblings, err := fam.ListActiveBreakdowns(tx, fund.FundID)
		if err != nil {
			return err
		}
		avail := service.ComputeAvailability(fund.FundTotalAllocated, siblings, uuid.Nil, body.FundBreakdownAllocated)
		report := service.DetectViolations(avail, service.Candidate{
			Allocated: body.FundBreakdownAllocated,
			Obligated: body.FundBreakdownObligated,
			Utilized:  body.FundBreakdownUtilized,
		})
		if report.HasViolations && !body.ConfirmViolations {
			return &service.ViolationWarning{Report: report}
		}

		row = breakdownmodel.BreakdownCore{FundBreakdownID: uuid.New()}
		body.ApplyCreate(&row)
		actorID := actor.ID
		row.FundBreakdownCreatedBy = &actorID
		deriveBreakdown(&row)

		if err := fam.CreateBreakdown(tx, &row); err != nil {
			return err
		}
		if err := fam.RecalcFund(tx, fund.FundID); err != nil {
			return err
		}

		_, err = activitysvc.Log(tx, fam.ActivityTable, fam.BreakdownTrackedFields, activitysvc.Entry{
			Action:     activitymodel.ActionCreated,
			EntityKind: activitymodel.EntityKindBreakdown,
			EntityID:   &row.FundBreakdownID,
			Next:       row,
			Actor:      actor,
		})
		return err
	})
	if txErr != nil {
		if resp, ok := violationResponse(c, txErr); ok {
			return resp
		}
		return helper.FromFiberError(c, txErr)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Breakdown created", dto.ToBreakdownResponse(row))
}

/* =======================================================
   BULK CREATE (import)
   ======================================================= */

// POST /api/a/budget/:fund_type/breakdowns/bulk
// One shared batch id and a single aggregate log entry per batch, so a
// mass import cannot flood the audit trail.
func (ctl *BreakdownController) BulkCreate(c *fiber.Ctx) error {
	fam, err := resolveFamily(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var body dto.BreakdownBulkCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}
	for _, item := range body.Items {
		if item.FundBreakdownStatus != nil && !item.FundBreakdownStatus.Valid() {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid breakdown status")
		}
	}

	batchID := uuid.New()
	created := make([]breakdownmodel.BreakdownCore, 0, len(body.Items))

	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		fund, err := fam.GetFund(tx, body.FundBreakdownFundID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Fund not found")
		}
		if err != nil {
			return err
		}

		officeErrs := map[string]string{}
		for i, item := range body.Items {
			active, err := officesvc.IsActive(tx, item.FundBreakdownOfficeCode)
			if err != nil {
				return err
			}
			if !active {
				officeErrs[fmt.Sprintf("items[%d]", i)] = "implementing office is unknown or inactive"
			}
		}
		if len(officeErrs) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "One or more implementing offices are unknown or inactive")
		}

		// run the checks item by item against the capacity left as
		// earlier items in the batch are admitted
		already, err := fam.SumActiveAllocated(tx, fund.FundID, uuid.Nil)
		if err != nil {
			return err
		}
		merged := service.ViolationReport{}
		for _, item := range body.Items {
			avail := service.Availability{
				ParentTotal:      fund.FundTotalAllocated,
				AlreadyAllocated: already,
			}
			avail.Available = avail.ParentTotal - avail.AlreadyAllocated
			if avail.Available < 0 {
				avail.Available = 0
			}
			avail.IsExceeded = item.FundBreakdownAllocated > avail.Available
			avail.Difference = item.FundBreakdownAllocated - avail.Available

			report := service.DetectViolations(avail, service.Candidate{
				Allocated: item.FundBreakdownAllocated,
				Obligated: item.FundBreakdownObligated,
				Utilized:  item.FundBreakdownUtilized,
			})
			merged.Violations = append(merged.Violations, report.Violations...)
			already += item.FundBreakdownAllocated
		}
		merged.HasViolations = len(merged.Violations) > 0
		if merged.HasViolations && !body.ConfirmViolations {
			return &service.ViolationWarning{Report: merged}
		}

		for _, item := range body.Items {
			row := item.ToModel(fund.FundID, batchID, actor.ID)
			deriveBreakdown(&row)
			if err := fam.CreateBreakdown(tx, &row); err != nil {
				return err
			}
			created = append(created, row)
		}
		if err := fam.RecalcFund(tx, fund.FundID); err != nil {
			return err
		}

		count := len(created)
		fundID := fund.FundID
		_, err = activitysvc.Log(tx, fam.ActivityTable, fam.BreakdownTrackedFields, activitysvc.Entry{
			Action:      activitymodel.ActionBulkCreated,
			EntityKind:  activitymodel.EntityKindBreakdown,
			EntityID:    &fundID,
			Next:        fiber.Map{"fund_id": fundID, "record_count": count},
			Actor:       actor,
			BatchID:     &batchID,
			RecordCount: &count,
			Source:      activitymodel.SourceBulkImport,
		})
		return err
	})
	if txErr != nil {
		if resp, ok := violationResponse(c, txErr); ok {
			return resp
		}
		return helper.FromFiberError(c, txErr)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Breakdowns imported", fiber.Map{
		"batch_id":   batchID,
		"count":      len(created),
		"breakdowns": dto.ToBreakdownResponses(created),
	})
}

/* =======================================================
   UPDATE
   ======================================================= */

// PUT /api/a/budget/:fund_type/breakdowns/:id
func (ctl *BreakdownController) Update(c *fiber.Ctx) error {
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
		return helper.Error(c, fiber.StatusBadRequest, "Invalid breakdown id")
	}

	var body dto.BreakdownUpdateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}
	if body.FundBreakdownStatus != nil && !body.FundBreakdownStatus.Valid() {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid breakdown status")
	}

	var row breakdownmodel.BreakdownCore
	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		current, err := fam.GetBreakdown(tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Breakdown not found")
		}
		if err != nil {
			return err
		}
		prev := *current

		if body.FundBreakdownOfficeCode != nil {
			if err := requireActiveOffice(tx, *body.FundBreakdownOfficeCode); err != nil {
				return err
			}
		}

		body.ApplyUpdate(current)
		actorID := actor.ID
		current.FundBreakdownUpdatedBy = &actorID
		deriveBreakdown(current)

		// legacy orphan rows have no parent to check against
		if current.FundBreakdownFundID != nil {
			fund, err := fam.GetFund(tx, *current.FundBreakdownFundID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err == nil {
				siblings, err := fam.ListActiveBreakdowns(tx, fund.FundID)
				if err != nil {
					return err
				}
				avail := service.ComputeAvailability(fund.FundTotalAllocated, siblings, id, current.FundBreakdownAllocated)
				report := service.DetectViolations(avail, service.Candidate{
					Allocated: current.FundBreakdownAllocated,
					Obligated: current.FundBreakdownObligated,
					Utilized:  current.FundBreakdownUtilized,
				})
				if report.HasViolations && !body.ConfirmViolations {
					return &service.ViolationWarning{Report: report}
				}
			}
		}

		if err := fam.SaveBreakdown(tx, current); err != nil {
			return err
		}
		if current.FundBreakdownFundID != nil {
			if err := fam.RecalcFund(tx, *current.FundBreakdownFundID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		row = *current

		_, err = activitysvc.Log(tx, fam.ActivityTable, fam.BreakdownTrackedFields, activitysvc.Entry{
			Action:     activitymodel.ActionUpdated,
			EntityKind: activitymodel.EntityKindBreakdown,
			EntityID:   &id,
			Previous:   prev,
			Next:       row,
			Actor:      actor,
		})
		return err
	})
	if txErr != nil {
		if resp, ok := violationResponse(c, txErr); ok {
			return resp
		}
		return helper.FromFiberError(c, txErr)
	}

	return helper.Success(c, "Breakdown updated", dto.ToBreakdownResponse(row))
}

/* =======================================================
   SOFT-DELETE LIFECYCLE
   ======================================================= */

// POST /api/a/budget/:fund_type/breakdowns/:id/trash
func (ctl *BreakdownController) MoveToTrash(c *fiber.Ctx) error {
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
		return helper.Error(c, fiber.StatusBadRequest, "Invalid breakdown id")
	}

	var body dto.ReasonDTO
	_ = c.BodyParser(&body)

	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		current, err := fam.GetBreakdown(tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Breakdown not found")
		}
		if err != nil {
			return err
		}
		prev := *current

		now := time.Now()
		actorID := actor.ID
		current.FundBreakdownDeletedAt = &now
		current.FundBreakdownDeletedBy = &actorID
		current.FundBreakdownDeletionReason = body.Reason
		if err := fam.SaveBreakdown(tx, current); err != nil {
			return err
		}
		// from this point the row is excluded from every aggregation
		if current.FundBreakdownFundID != nil {
			if err := fam.RecalcFund(tx, *current.FundBreakdownFundID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		_, err = activitysvc.Log(tx, fam.ActivityTable, fam.BreakdownTrackedFields, activitysvc.Entry{
			Action:     activitymodel.ActionUpdated,
			EntityKind: activitymodel.EntityKindBreakdown,
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

	return helper.Success(c, "Breakdown moved to trash", fiber.Map{"success": true})
}

// POST /api/a/budget/:fund_type/breakdowns/:id/restore
func (ctl *BreakdownController) RestoreFromTrash(c *fiber.Ctx) error {
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
		return helper.Error(c, fiber.StatusBadRequest, "Invalid breakdown id")
	}

	restored := false
	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		current, err := fam.GetBreakdownAny(tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Breakdown not found")
		}
		if err != nil {
			return err
		}
		if !current.IsDeleted() {
			return nil // already active: graceful no-op
		}
		prev := *current

		current.FundBreakdownDeletedAt = nil
		current.FundBreakdownDeletedBy = nil
		current.FundBreakdownDeletionReason = nil
		if err := fam.SaveBreakdown(tx, current); err != nil {
			return err
		}
		// re-included in aggregation the moment this commits
		if current.FundBreakdownFundID != nil {
			if err := fam.RecalcFund(tx, *current.FundBreakdownFundID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		restored = true

		_, err = activitysvc.Log(tx, fam.ActivityTable, fam.BreakdownTrackedFields, activitysvc.Entry{
			Action:     activitymodel.ActionRestored,
			EntityKind: activitymodel.EntityKindBreakdown,
			EntityID:   &id,
			Previous:   prev,
			Next:       *current,
			Actor:      actor,
		})
		return err
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	return helper.Success(c, "Breakdown restored", fiber.Map{"success": true, "restored": restored})
}

// DELETE /api/a/budget/:fund_type/breakdowns/:id
func (ctl *BreakdownController) Remove(c *fiber.Ctx) error {
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
		return helper.Error(c, fiber.StatusBadRequest, "Invalid breakdown id")
	}

	var body dto.ReasonDTO
	_ = c.BodyParser(&body)

	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		current, err := fam.GetBreakdownAny(tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Breakdown not found")
		}
		if err != nil {
			return err
		}
		if err := service.AuthorizeHardDelete(actor, current.FundBreakdownCreatedBy); err != nil {
			return err
		}

		// the snapshot below becomes the only remaining trace of the row
		if _, err := activitysvc.Log(tx, fam.ActivityTable, fam.BreakdownTrackedFields, activitysvc.Entry{
			Action:     activitymodel.ActionDeleted,
			EntityKind: activitymodel.EntityKindBreakdown,
			EntityID:   &id,
			Previous:   *current,
			Actor:      actor,
			Reason:     body.Reason,
		}); err != nil {
			return err
		}
		if err := fam.DeleteBreakdownRow(tx, id); err != nil {
			return err
		}
		if current.FundBreakdownFundID != nil {
			if err := fam.RecalcFund(tx, *current.FundBreakdownFundID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	return helper.Success(c, "Breakdown permanently deleted", fiber.Map{"success": true})
}

/* =======================================================
   READS
   ======================================================= */

// GET /api/u/budget/:fund_type/funds/:id/breakdowns
func (ctl *BreakdownController) ListByFund(c *fiber.Ctx) error {
	fam, err := resolveFamily(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	fundID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid fund id")
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Table(fam.BreakdownTable).
		Where("fund_breakdown_fund_id = ? AND fund_breakdown_deleted_at IS NULL", fundID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []breakdownmodel.BreakdownCore
	if err := q.Order("fund_breakdown_created_at ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "OK", fiber.Map{
		"breakdowns": dto.ToBreakdownResponses(rows),
		"pagination": helper.BuildPagination(paging, total, len(rows)),
	})
}

// GET /api/u/budget/:fund_type/breakdowns/trash
func (ctl *BreakdownController) ListTrash(c *fiber.Ctx) error {
	fam, err := resolveFamily(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Table(fam.BreakdownTable).
		Where("fund_breakdown_deleted_at IS NOT NULL")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []breakdownmodel.BreakdownCore
	if err := q.Order("fund_breakdown_deleted_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "OK", fiber.Map{
		"breakdowns": dto.ToBreakdownResponses(rows),
		"pagination": helper.BuildPagination(paging, total, len(rows)),
	})
}

// GET /api/u/budget/:fund_type/breakdowns/:id
func (ctl *BreakdownController) GetByID(c *fiber.Ctx) error {
	fam, err := resolveFamily(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid breakdown id")
	}

	row, err := fam.GetBreakdown(ctl.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusNotFound, "Breakdown not found")
	}
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := dto.ToBreakdownResponse(*row)
	if name, err := officesvc.Resolve(ctl.DB, row.FundBreakdownOfficeCode); err == nil {
		resp.FundBreakdownOfficeName = &name
	}

	return helper.Success(c, "OK", resp)
}

/* =======================================================
   AVAILABILITY (pure read)
   ======================================================= */

// GET /api/u/budget/:fund_type/breakdowns/availability
//
//	?fund_id=&exclude_id=&allocated=&obligated=&utilized=
func (ctl *BreakdownController) Availability(c *fiber.Ctx) error {
	fam, err := resolveFamily(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	fundID, err := uuid.Parse(c.Query("fund_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid fund_id")
	}
	excludeID := uuid.Nil
	if raw := c.Query("exclude_id"); raw != "" {
		excludeID, err = uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid exclude_id")
		}
	}

	cand := service.Candidate{
		Allocated: c.QueryFloat("allocated"),
		Obligated: c.QueryFloat("obligated"),
		Utilized:  c.QueryFloat("utilized"),
	}

	fund, err := fam.GetFund(ctl.DB, fundID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusNotFound, "Fund not found")
	}
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	siblings, err := fam.ListActiveBreakdowns(ctl.DB, fundID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	avail := service.ComputeAvailability(fund.FundTotalAllocated, siblings, excludeID, cand.Allocated)
	return helper.Success(c, "OK", dto.AvailabilityResponse{
		Availability: avail,
		Violations:   service.DetectViolations(avail, cand),
	})
}
