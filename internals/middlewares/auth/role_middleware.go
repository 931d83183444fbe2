package auth

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRoles gates a route group to the given roles (claims must
// already be in locals, i.e. AuthMiddleware runs first).
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		if _, ok := allowed[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "Forbidden - insufficient role")
		}
		return c.Next()
	}
}
