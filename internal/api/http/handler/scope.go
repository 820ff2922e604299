package handler

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/MarciaOrozco/nutrito-backend/internal/api/http/middleware"
	"github.com/MarciaOrozco/nutrito-backend/pkg/authorize"
	"github.com/MarciaOrozco/nutrito-backend/pkg/token"
)

// The RBAC middleware answers "may this role touch this resource"; the
// helpers here answer "may this caller touch this record". The auth
// middleware resolves the caller's own profile id into locals, so the
// check is a plain id comparison.

func callerPacienteID(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(middleware.LocalPacienteID).(uuid.UUID)
	return id, ok
}

func callerNutricionistaID(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(middleware.LocalNutricionistaID).(uuid.UUID)
	return id, ok
}

func isAdmin(c fiber.Ctx) bool {
	claims, ok := token.ClaimsFromFiber(c)
	return ok && claims.Role == authorize.UserRoleAdmin
}

// canAccessRecord reports whether the caller is a party to the record
// identified by its paciente and nutricionista profile ids. Admins
// always pass.
func canAccessRecord(c fiber.Ctx, pacienteID, nutricionistaID uuid.UUID) bool {
	if isAdmin(c) {
		return true
	}
	if id, ok := callerPacienteID(c); ok {
		return id == pacienteID
	}
	if id, ok := callerNutricionistaID(c); ok {
		return id == nutricionistaID
	}
	return false
}

// requireOwnNutricionista checks that the :id path param is the
// caller's own nutricionista profile.
func requireOwnNutricionista(c fiber.Ctx, id uuid.UUID) bool {
	if isAdmin(c) {
		return true
	}
	caller, ok := callerNutricionistaID(c)
	return ok && caller == id
}
