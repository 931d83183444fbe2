package service

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"budgetku_backend/internals/constants"
	helper "budgetku_backend/internals/helpers"
)

func TestAuthorizeHardDelete(t *testing.T) {
	creator := uuid.New()
	other := uuid.New()

	superAdmin := helper.Actor{ID: other, Role: constants.RoleSuperAdmin}
	if err := AuthorizeHardDelete(superAdmin, &creator); err != nil {
		t.Fatalf("super admin: %v", err)
	}

	asCreator := helper.Actor{ID: creator, Role: constants.RoleAdmin}
	if err := AuthorizeHardDelete(asCreator, &creator); err != nil {
		t.Fatalf("creator: %v", err)
	}

	stranger := helper.Actor{ID: other, Role: constants.RoleAdmin}
	err := AuthorizeHardDelete(stranger, &creator)
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusForbidden {
		t.Fatalf("non-creator admin: got %v, want a 403", err)
	}

	// records with no recorded creator fall back to super-admin only
	err = AuthorizeHardDelete(stranger, nil)
	if !errors.As(err, &fe) || fe.Code != fiber.StatusForbidden {
		t.Fatalf("unknown creator: got %v, want a 403", err)
	}
	if err := AuthorizeHardDelete(superAdmin, nil); err != nil {
		t.Fatalf("super admin on unknown creator: %v", err)
	}
}
