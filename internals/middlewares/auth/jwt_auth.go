package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"akademiku_backend/internals/constants"
	helperAuth "akademiku_backend/internals/helpers/auth"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // use the access_token cookie when no Bearer header
}

// AuthJWT verifies the HS256 access token and hydrates locals with
// user_id, academy_id and role for the helper accessors.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret is required")
	}

	return func(c *fiber.Ctx) error {
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		c.Locals("jwt_claims", claims)

		if v := strClaim(claims, "user_id"); v != "" {
			c.Locals(helperAuth.LocUserID, v)
		} else if v := strClaim(claims, "sub"); v != "" {
			c.Locals(helperAuth.LocUserID, v)
		}
		if v := strClaim(claims, "academy_id"); v != "" {
			c.Locals(helperAuth.LocAcademyID, v)
		}
		if v := strClaim(claims, "role"); v != "" {
			c.Locals(helperAuth.LocRole, v)
		}

		return c.Next()
	}
}

// RequireRoles guards a group so only the listed roles pass.
func RequireRoles(feature string, allowed []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := helperAuth.GetRoleFromToken(c)
		if !constants.RoleAllowed(role, allowed) {
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAdmin(feature))
		}
		return c.Next()
	}
}

func strClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
