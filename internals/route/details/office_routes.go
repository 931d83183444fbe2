// file: internals/route/details/office_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	officecontroller "budgetku_backend/internals/features/offices/controller"
)

func OfficeUserRoutes(r fiber.Router, db *gorm.DB) {
	offices := officecontroller.NewOfficeController(db, nil)

	grp := r.Group("/offices")
	grp.Get("/", offices.List)
	grp.Get("/:code", offices.GetByCode)
}

func OfficeAdminRoutes(r fiber.Router, db *gorm.DB) {
	offices := officecontroller.NewOfficeController(db, nil)

	grp := r.Group("/offices")
	grp.Post("/", offices.Create)
	grp.Put("/:code", offices.Update)
	grp.Delete("/:code", offices.Delete)
}
