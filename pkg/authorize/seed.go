package authorize

import (
	"context"
	"log/slog"
)

// SeedDefaultPolicies sets up the baseline RBAC policies for the system.
// Policies are role-scoped: the request subject is the role carried in a
// verified access token.
func SeedDefaultPolicies(ctx context.Context, auth IAuthorization) error {
	logger := slog.Default()

	// System-level policies (domain: sys)
	sysPolicies := []PermissionPolicy{
		// Platform admin: god mode
		{RolePlatformAdmin, DomainSys, WildcardResource, WildcardAction, EffectAllow},
	}

	// Application policies (domain: app)
	pacientePolicies := []PermissionPolicy{
		{RolePaciente, DomainApp, ResourceNutricionista, ActionRead, EffectAllow},
		{RolePaciente, DomainApp, ResourceNutricionista, ActionList, EffectAllow},
		{RolePaciente, DomainApp, ResourceDisponibilidad, ActionRead, EffectAllow},
		{RolePaciente, DomainApp, ResourceTurno, ActionCreate, EffectAllow},
		{RolePaciente, DomainApp, ResourceTurno, ActionRead, EffectAllow},
		{RolePaciente, DomainApp, ResourceTurno, ActionUpdate, EffectAllow},
		{RolePaciente, DomainApp, ResourceTurno, ActionDelete, EffectAllow},
		{RolePaciente, DomainApp, ResourcePaciente, ActionRead, EffectAllow},
		{RolePaciente, DomainApp, ResourcePaciente, ActionUpdate, EffectAllow},
		{RolePaciente, DomainApp, ResourceVinculacion, ActionCreate, EffectAllow},
		{RolePaciente, DomainApp, ResourceEvolucion, ActionRead, EffectAllow},
		{RolePaciente, DomainApp, ResourcePlan, ActionRead, EffectAllow},
		{RolePaciente, DomainApp, ResourceConsulta, ActionRead, EffectAllow},
		{RolePaciente, DomainApp, ResourceConsultaDocumento, ActionRead, EffectAllow},
		{RolePaciente, DomainApp, ResourceNotificacion, ActionRead, EffectAllow},
		{RolePaciente, DomainApp, ResourceNotificacion, ActionUpdate, EffectAllow},
	}

	nutricionistaPolicies := []PermissionPolicy{
		{RoleNutricionista, DomainApp, ResourceNutricionista, ActionRead, EffectAllow},
		{RoleNutricionista, DomainApp, ResourceNutricionista, ActionList, EffectAllow},
		{RoleNutricionista, DomainApp, ResourceNutricionista, ActionUpdate, EffectAllow},
		{RoleNutricionista, DomainApp, ResourceDisponibilidad, ActionManage, EffectAllow},
		{RoleNutricionista, DomainApp, ResourceTurno, ActionManage, EffectAllow},
		{RoleNutricionista, DomainApp, ResourcePaciente, ActionManage, EffectAllow},
		{RoleNutricionista, DomainApp, ResourceVinculacion, ActionManage, EffectAllow},
		{RoleNutricionista, DomainApp, ResourceEvolucion, ActionRead, EffectAllow},
		{RoleNutricionista, DomainApp, ResourcePlan, ActionManage, EffectAllow},
		{RoleNutricionista, DomainApp, ResourcePlan, ActionValidate, EffectAllow},
		{RoleNutricionista, DomainApp, ResourcePlan, ActionExport, EffectAllow},
		{RoleNutricionista, DomainApp, ResourceConsulta, ActionManage, EffectAllow},
		{RoleNutricionista, DomainApp, ResourceConsulta, ActionExport, EffectAllow},
		{RoleNutricionista, DomainApp, ResourceConsultaDocumento, ActionManage, EffectAllow},
		{RoleNutricionista, DomainApp, ResourceNotificacion, ActionRead, EffectAllow},
		{RoleNutricionista, DomainApp, ResourceNotificacion, ActionUpdate, EffectAllow},
	}

	allPolicies := append(append(sysPolicies, pacientePolicies...), nutricionistaPolicies...)

	for _, p := range allPolicies {
		added, err := auth.AddPermission(ctx, p.Subject, p.Domain, p.Object, p.Action, p.Effect)
		if err != nil {
			logger.Error("failed to add policy", "policy", p, "error", err)
			return err
		}
		if added {
			logger.Debug("added policy", "role", p.Subject, "domain", p.Domain, "resource", p.Object, "action", p.Action)
		}
	}

	logger.Info("seeded default RBAC policies", "count", len(allPolicies))
	return nil
}
