// file: internals/route/details/budget_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activitycontroller "budgetku_backend/internals/features/budget/activity/controller"
	breakdowncontroller "budgetku_backend/internals/features/budget/breakdowns/controller"
	fundcontroller "budgetku_backend/internals/features/budget/funds/controller"
	"budgetku_backend/internals/middlewares"
)

// BudgetUserRoutes mounts the read surface. Every route is parameterized
// by :fund_type, resolved against the family registry per request.
func BudgetUserRoutes(r fiber.Router, db *gorm.DB) {
	funds := fundcontroller.NewFundController(db, nil)
	breakdowns := breakdowncontroller.NewBreakdownController(db, nil)
	activity := activitycontroller.NewActivityLogController(db)

	grp := r.Group("/budget/:fund_type")

	grp.Get("/funds", funds.List)
	grp.Get("/funds/trash", funds.ListTrash)
	grp.Get("/funds/:id", funds.GetByID)
	grp.Get("/funds/:id/breakdowns", breakdowns.ListByFund)

	grp.Get("/breakdowns/availability", breakdowns.Availability)
	grp.Get("/breakdowns/trash", breakdowns.ListTrash)
	grp.Get("/breakdowns/:id", breakdowns.GetByID)

	grp.Get("/activity", activity.List)
	grp.Get("/activity/:id", activity.GetByID)
}

// BudgetAdminRoutes mounts every mutation behind the admin role gate.
func BudgetAdminRoutes(r fiber.Router, db *gorm.DB) {
	funds := fundcontroller.NewFundController(db, nil)
	breakdowns := breakdowncontroller.NewBreakdownController(db, nil)

	grp := r.Group("/budget/:fund_type")

	grp.Post("/funds", funds.Create)
	grp.Put("/funds/:id", funds.Update)
	grp.Post("/funds/:id/trash", funds.MoveToTrash)
	grp.Post("/funds/:id/restore", funds.RestoreFromTrash)
	grp.Delete("/funds/:id", funds.Remove)
	grp.Post("/funds/:id/toggle-auto-calculate", funds.ToggleAutoCalculate)
	grp.Post("/funds/:id/toggle-pin", funds.TogglePin)

	grp.Post("/breakdowns", breakdowns.Create)
	grp.Post("/breakdowns/bulk", middlewares.BulkImportRateLimiter(), breakdowns.BulkCreate)
	grp.Put("/breakdowns/:id", breakdowns.Update)
	grp.Post("/breakdowns/:id/trash", breakdowns.MoveToTrash)
	grp.Post("/breakdowns/:id/restore", breakdowns.RestoreFromTrash)
	grp.Delete("/breakdowns/:id", breakdowns.Remove)
}
