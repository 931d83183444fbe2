// file: internals/features/offices/controller/office_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"budgetku_backend/internals/features/offices/dto"
	"budgetku_backend/internals/features/offices/model"
	helper "budgetku_backend/internals/helpers"
)

/* =======================================================
   CONTROLLER
   ======================================================= */

type OfficeController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewOfficeController(db *gorm.DB, v *validator.Validate) *OfficeController {
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}
	return &OfficeController{DB: db, Validate: v}
}

func isUniqueViolation(err error) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "duplicate key value") ||
			strings.Contains(err.Error(), "UNIQUE constraint") ||
			strings.Contains(err.Error(), "unique constraint"))
}

// POST /offices
func (ctl *OfficeController) Create(c *fiber.Ctx) error {
	var body dto.OfficeCreateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	office := body.ToModel()
	if err := ctl.DB.Create(&office).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "Office code already exists")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Office created", dto.ToOfficeResponse(office))
}

// GET /offices
func (ctl *OfficeController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&model.ImplementingOffice{}).
		Where("office_deleted_at IS NULL")
	if active := strings.TrimSpace(c.Query("active")); active == "true" {
		q = q.Where("office_is_active = TRUE")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.ImplementingOffice
	if err := q.Order("office_code ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "OK", fiber.Map{
		"offices":    dto.ToOfficeResponses(rows),
		"pagination": helper.BuildPagination(paging, total, len(rows)),
	})
}

// GET /offices/:code
func (ctl *OfficeController) GetByCode(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))

	var office model.ImplementingOffice
	err := ctl.DB.
		Where("office_code = ? AND office_deleted_at IS NULL", code).
		Take(&office).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusNotFound, "Office not found")
	}
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "OK", dto.ToOfficeResponse(office))
}

// PUT /offices/:code
func (ctl *OfficeController) Update(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))

	var body dto.OfficeUpdateDTO
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	updates := map[string]any{"office_updated_at": time.Now()}
	if body.OfficeName != nil {
		updates["office_name"] = strings.TrimSpace(*body.OfficeName)
	}
	if body.OfficeIsActive != nil {
		updates["office_is_active"] = *body.OfficeIsActive
	}

	res := ctl.DB.Model(&model.ImplementingOffice{}).
		Where("office_code = ? AND office_deleted_at IS NULL", code).
		Updates(updates)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Office not found")
	}

	return helper.Success(c, "Office updated", fiber.Map{"office_code": code})
}

// DELETE /offices/:code (soft)
func (ctl *OfficeController) Delete(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))

	res := ctl.DB.Model(&model.ImplementingOffice{}).
		Where("office_code = ? AND office_deleted_at IS NULL", code).
		Updates(map[string]any{
			"office_deleted_at": time.Now(),
			"office_is_active":  false,
		})
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Office not found")
	}

	return helper.Success(c, "Office deleted", fiber.Map{"office_code": code})
}
