// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"budgetku_backend/internals/constants"
	authMiddleware "budgetku_backend/internals/middlewares/auth"
	routeDetails "budgetku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== HEALTH =====================
	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		dbStatus := "up"
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "down"
		}
		return c.JSON(fiber.Map{
			"status":   "ok",
			"database": dbStatus,
			"uptime":   time.Since(startTime).String(),
		})
	})

	// ===================== GROUPS =====================

	// PRIVATE (USER) → any authenticated role, read-only surface
	log.Println("[INFO] Setting up PRIVATE (user) group...")
	private := app.Group("/api/u", authMiddleware.AuthMiddleware())

	// ADMIN → mutations, admin or super_admin only
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(),
		authMiddleware.RequireRoles(constants.RoleAdmin, constants.RoleSuperAdmin),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Budget routes...")
	routeDetails.BudgetUserRoutes(private, db)
	routeDetails.BudgetAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Office routes...")
	routeDetails.OfficeUserRoutes(private, db)
	routeDetails.OfficeAdminRoutes(admin, db)
}
