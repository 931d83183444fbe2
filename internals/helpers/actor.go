package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Actor is the authenticated identity attached by the auth middleware.
// The engine never authenticates; it only consumes these fields, and the
// activity logger copies them by value into every entry.
type Actor struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
}

// GetActor pulls the actor claims stored in c.Locals by the auth
// middleware. Missing/invalid user_id → 401.
func GetActor(c *fiber.Ctx) (Actor, error) {
	idStr, _ := c.Locals("user_id").(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return Actor{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing user identity")
	}

	str := func(key string) string {
		v, _ := c.Locals(key).(string)
		return v
	}

	return Actor{
		ID:         id,
		Name:       str("user_name"),
		Email:      str("user_email"),
		Role:       str("user_role"),
		Department: str("user_department"),
	}, nil
}
