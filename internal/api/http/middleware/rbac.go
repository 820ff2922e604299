package middleware

import (
	"github.com/gofiber/fiber/v3"

	"github.com/MarciaOrozco/nutrito-backend/pkg/authorize"
	"github.com/MarciaOrozco/nutrito-backend/pkg/token"
)

// RequirePermission checks the authenticated user's role against the
// seeded RBAC policies. The role rides in the token, so enforcement
// needs no per-request DB access.
func RequirePermission(auth authorize.IAuthorization, resource authorize.Resource, action authorize.Action) fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, ok := token.ClaimsFromFiber(c)
		if !ok {
			return fiber.ErrUnauthorized
		}

		role, ok := authorize.UserRoleToRBACRole[claims.Role]
		if !ok {
			return fiber.ErrForbidden
		}

		subject := authorize.GroupSubject(role)
		err := auth.MustEnforce(c.Context(), subject, authorize.DomainApp, resource, action)
		if err != nil {
			if err == authorize.ErrForbidden {
				return fiber.ErrForbidden
			}
			return err
		}

		return c.Next()
	}
}
