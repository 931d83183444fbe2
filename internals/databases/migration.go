package database

import (
	"log"

	"gorm.io/gorm"

	activitymodel "budgetku_backend/internals/features/budget/activity/model"
	breakdownmodel "budgetku_backend/internals/features/budget/breakdowns/model"
	fundmodel "budgetku_backend/internals/features/budget/funds/model"
	officemodel "budgetku_backend/internals/features/offices/model"
)

// Migrate creates/updates every table the engine owns. Production runs
// against Postgres; the same set is reused by the sqlite-backed tests.
func Migrate(db *gorm.DB) error {
	log.Println("[INFO] Running migrations...")
	return db.AutoMigrate(
		&fundmodel.ProjectFund{},
		&fundmodel.TrustFund{},
		&fundmodel.DevelopmentFund{},
		&fundmodel.SpecialEducationFund{},
		&fundmodel.SpecialHealthFund{},

		&breakdownmodel.ProjectFundBreakdown{},
		&breakdownmodel.TrustFundBreakdown{},
		&breakdownmodel.DevelopmentFundBreakdown{},
		&breakdownmodel.SpecialEducationFundBreakdown{},
		&breakdownmodel.SpecialHealthFundBreakdown{},

		&activitymodel.ProjectFundActivityLog{},
		&activitymodel.TrustFundActivityLog{},
		&activitymodel.DevelopmentFundActivityLog{},
		&activitymodel.SpecialEducationFundActivityLog{},
		&activitymodel.SpecialHealthFundActivityLog{},

		&officemodel.ImplementingOffice{},
	)
}
