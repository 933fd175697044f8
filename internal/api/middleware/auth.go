package middleware

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/gofiber/fiber/v2"

	"faturaapi.com/internal/auth"
)

// CasbinMiddleware checks permissions for the request using JWT claims
func CasbinMiddleware(enforcer *casbin.Enforcer, jwtSecret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing Authorization header"})
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)

		claims, err := auth.ParseToken(tokenString, jwtSecret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Policies are defined per role, so the role claim is the Casbin subject
		c.Locals("email", claims.Subject)
		c.Locals("role", claims.Role)

		obj := c.Path()
		act := c.Method()

		permit, err := enforcer.Enforce(claims.Role, obj, act)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Permission check failed"})
		}

		if permit {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":  "Permission denied",
			"detail": fmt.Sprintf("Role %s is not allowed to %s %s", claims.Role, act, obj),
		})
	}
}
