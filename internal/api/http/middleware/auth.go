package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/MarciaOrozco/nutrito-backend/internal/model"
	"github.com/MarciaOrozco/nutrito-backend/pkg/authorize"
	"github.com/MarciaOrozco/nutrito-backend/pkg/reqctx"
	"github.com/MarciaOrozco/nutrito-backend/pkg/token"
)

// Locals keys for the caller's own profile ids, resolved from the
// authenticated user. Handlers use them to scope record access.
const (
	LocalPacienteID      = "auth.paciente_id"
	LocalNutricionistaID = "auth.nutricionista_id"
)

// AuthRequired validates a Bearer JWT access token and checks the
// session in Redis, so logout invalidates outstanding tokens. On
// success the claims land both in Fiber locals and in the request
// context for the service layer, along with the caller's own profile
// id so handlers can reject access to other people's records.
func AuthRequired(mgr *token.Manager, rdb *redis.Client, db *gorm.DB) fiber.Handler {
	return func(c fiber.Ctx) error {
		h := c.Get("Authorization")
		if h == "" {
			return fiber.ErrUnauthorized
		}

		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.ErrUnauthorized
		}

		claims, err := mgr.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			return fiber.ErrUnauthorized
		}

		// Only access tokens are accepted on protected routes
		if claims.Type != token.TokenTypeAccess {
			return fiber.ErrUnauthorized
		}

		// The session must still exist in Redis
		key := "session:" + claims.SessionID.String()
		if err := rdb.Get(c.Context(), key).Err(); err != nil {
			return fiber.ErrUnauthorized
		}

		if err := resolveProfile(c, db, claims); err != nil {
			return err
		}

		c.Locals(token.CtxKeyClaims, claims)
		c.SetContext(reqctx.WithClaims(c.Context(), claims))
		return c.Next()
	}
}

// resolveProfile loads the caller's paciente or nutricionista profile
// id into locals. Admins carry no profile and get no locals.
func resolveProfile(c fiber.Ctx, db *gorm.DB, claims *token.Claims) error {
	switch claims.Role {
	case authorize.UserRolePaciente:
		var p model.PacienteProfile
		err := db.WithContext(c.Context()).
			Select("id").First(&p, "user_id = ?", claims.UserID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.ErrUnauthorized
			}
			return err
		}
		c.Locals(LocalPacienteID, p.ID)

	case authorize.UserRoleNutricionista:
		var n model.NutricionistaProfile
		err := db.WithContext(c.Context()).
			Select("id").First(&n, "user_id = ?", claims.UserID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.ErrUnauthorized
			}
			return err
		}
		c.Locals(LocalNutricionistaID, n.ID)
	}

	return nil
}
