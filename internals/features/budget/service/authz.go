// file: internals/features/budget/service/authz.go
package service

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"budgetku_backend/internals/constants"
	helper "budgetku_backend/internals/helpers"
)

// AuthorizeHardDelete gates permanent removal: only the record's creator
// or a super-admin may invoke it. There is no override path.
func AuthorizeHardDelete(actor helper.Actor, createdBy *uuid.UUID) error {
	if constants.IsSuperAdmin(actor.Role) {
		return nil
	}
	if createdBy != nil && *createdBy == actor.ID {
		return nil
	}
	return fiber.NewError(fiber.StatusForbidden, "Only the creator or a super administrator may permanently delete this record")
}
