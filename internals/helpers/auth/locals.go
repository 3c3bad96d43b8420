package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

/* ============================================
   Locals keys (auth middleware sets these)
   ============================================ */

const (
	LocUserID    = "user_id"
	LocAcademyID = "academy_id"
	LocRole      = "role"
)

// GetAcademyIDFromToken returns the tenant id hydrated by the JWT
// middleware. All admin queries must be scoped by it.
func GetAcademyIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localUUID(c, LocAcademyID, "academy_id missing from token")
}

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localUUID(c, LocUserID, "user_id missing from token")
}

func GetRoleFromToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRole).(string); ok {
		return v
	}
	return ""
}

func localUUID(c *fiber.Ctx, key, msg string) (uuid.UUID, error) {
	v := c.Locals(key)
	switch t := v.(type) {
	case uuid.UUID:
		return t, nil
	case string:
		id, err := uuid.Parse(strings.TrimSpace(t))
		if err == nil {
			return id, nil
		}
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, msg)
}
