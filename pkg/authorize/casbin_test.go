package authorize

import (
	"context"
	"testing"
)

func newTestAuthorization(t *testing.T) IAuthorization {
	t.Helper()

	e, err := NewEnforcer()
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}

	auth, err := NewAuthorization(e)
	if err != nil {
		t.Fatalf("NewAuthorization() error = %v", err)
	}
	return auth
}

func TestNewAuthorization(t *testing.T) {
	t.Run("returns error for nil enforcer", func(t *testing.T) {
		_, err := NewAuthorization(nil)
		if err == nil {
			t.Error("Expected error for nil enforcer")
		}
	})

	t.Run("succeeds with valid enforcer", func(t *testing.T) {
		auth := newTestAuthorization(t)
		if auth == nil {
			t.Error("Expected non-nil authorization")
		}
	})
}

func TestEnforceWithRoleSubject(t *testing.T) {
	auth := newTestAuthorization(t)
	ctx := context.Background()

	if err := SeedDefaultPolicies(ctx, auth); err != nil {
		t.Fatalf("SeedDefaultPolicies() error = %v", err)
	}

	tests := []struct {
		name     string
		subject  GroupSubject
		domain   Domain
		resource Resource
		action   Action
		want     bool
		wantErr  bool
	}{
		{
			name:     "paciente can book a turno",
			subject:  GroupSubject(RolePaciente),
			domain:   DomainApp,
			resource: ResourceTurno,
			action:   ActionCreate,
			want:     true,
		},
		{
			name:     "paciente cannot manage disponibilidad",
			subject:  GroupSubject(RolePaciente),
			domain:   DomainApp,
			resource: ResourceDisponibilidad,
			action:   ActionUpdate,
			want:     false,
		},
		{
			name:     "nutricionista can replace disponibilidad",
			subject:  GroupSubject(RoleNutricionista),
			domain:   DomainApp,
			resource: ResourceDisponibilidad,
			action:   ActionUpdate,
			want:     true,
		},
		{
			name:     "nutricionista can validate a plan",
			subject:  GroupSubject(RoleNutricionista),
			domain:   DomainApp,
			resource: ResourcePlan,
			action:   ActionValidate,
			want:     true,
		},
		{
			name:     "paciente cannot validate a plan",
			subject:  GroupSubject(RolePaciente),
			domain:   DomainApp,
			resource: ResourcePlan,
			action:   ActionValidate,
			want:     false,
		},
		{
			name:     "error for empty subject",
			subject:  "",
			domain:   DomainApp,
			resource: ResourceTurno,
			action:   ActionRead,
			wantErr:  true,
		},
		{
			name:     "error for invalid domain",
			subject:  GroupSubject(RolePaciente),
			domain:   Domain("invalid"),
			resource: ResourceTurno,
			action:   ActionRead,
			wantErr:  true,
		},
		{
			name:     "error for unknown resource",
			subject:  GroupSubject(RolePaciente),
			domain:   DomainApp,
			resource: Resource("unknown"),
			action:   ActionRead,
			wantErr:  true,
		},
		{
			name:     "error for unknown action",
			subject:  GroupSubject(RolePaciente),
			domain:   DomainApp,
			resource: ResourceTurno,
			action:   Action("unknown"),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.Enforce(ctx, tt.subject, tt.domain, tt.resource, tt.action)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Enforce() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestManageCoversCRUD(t *testing.T) {
	auth := newTestAuthorization(t)
	ctx := context.Background()

	if err := SeedDefaultPolicies(ctx, auth); err != nil {
		t.Fatalf("SeedDefaultPolicies() error = %v", err)
	}

	// nutricionista has manage on turno, which expands to CRUD + list
	for _, act := range []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionList} {
		allowed, err := auth.Enforce(ctx, GroupSubject(RoleNutricionista), DomainApp, ResourceTurno, act)
		if err != nil {
			t.Fatalf("Enforce(%s) error = %v", act, err)
		}
		if !allowed {
			t.Errorf("Expected nutricionista %s on turno to be allowed", act)
		}
	}
}

func TestSeededSubjectsCarriedByTokens(t *testing.T) {
	auth := newTestAuthorization(t)
	ctx := context.Background()

	if err := SeedDefaultPolicies(ctx, auth); err != nil {
		t.Fatalf("SeedDefaultPolicies() error = %v", err)
	}

	// Every seeded policy subject must be reachable from a users.rol
	// value; anything else could never match a request.
	reachable := make(map[string]bool, len(UserRoleToRBACRole))
	for _, role := range UserRoleToRBACRole {
		reachable[string(role)] = true
	}

	for _, p := range auth.Raw().GetPolicy() {
		if !reachable[p[0]] {
			t.Errorf("seeded policy for unreachable subject %q: %v", p[0], p)
		}
	}
}

func TestMustEnforce(t *testing.T) {
	auth := newTestAuthorization(t)
	ctx := context.Background()

	if err := SeedDefaultPolicies(ctx, auth); err != nil {
		t.Fatalf("SeedDefaultPolicies() error = %v", err)
	}

	t.Run("returns nil when allowed", func(t *testing.T) {
		err := auth.MustEnforce(ctx, GroupSubject(RolePaciente), DomainApp, ResourceTurno, ActionCreate)
		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
	})

	t.Run("returns ErrForbidden when denied", func(t *testing.T) {
		err := auth.MustEnforce(ctx, GroupSubject(RolePaciente), DomainApp, ResourceAudit, ActionDelete)
		if err != ErrForbidden {
			t.Errorf("Expected ErrForbidden, got %v", err)
		}
	})
}

func TestPlatformAdminBypass(t *testing.T) {
	auth := newTestAuthorization(t)
	ctx := context.Background()

	adminID := "550e8400-e29b-41d4-a716-446655440000"

	if _, err := auth.AddRoleForUserInDomain(ctx, GroupSubject(adminID), RolePlatformAdmin, DomainSys); err != nil {
		t.Fatalf("Failed to add admin role: %v", err)
	}

	allowed, err := auth.Enforce(ctx, GroupSubject(adminID), DomainSys, ResourceUser, ActionDelete)
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if !allowed {
		t.Error("Expected platform admin to be allowed")
	}
}

func TestRoleManagement(t *testing.T) {
	auth := newTestAuthorization(t)
	ctx := context.Background()

	userID := "660e8400-e29b-41d4-a716-446655440000"

	t.Run("add and get roles", func(t *testing.T) {
		added, err := auth.AddRoleForUserInDomain(ctx, GroupSubject(userID), RolePaciente, DomainApp)
		if err != nil {
			t.Errorf("Failed to add role: %v", err)
		}
		if !added {
			t.Error("Expected role to be added")
		}

		roles, err := auth.GetRolesForUserInDomain(ctx, GroupSubject(userID), DomainApp)
		if err != nil {
			t.Errorf("Failed to get roles: %v", err)
		}
		if len(roles) != 1 {
			t.Errorf("Expected 1 role, got %d", len(roles))
		}
		if roles[0] != RolePaciente {
			t.Errorf("Expected role %q, got %q", RolePaciente, roles[0])
		}
	})

	t.Run("remove role", func(t *testing.T) {
		removed, err := auth.RemoveRoleForUserInDomain(ctx, GroupSubject(userID), RolePaciente, DomainApp)
		if err != nil {
			t.Errorf("Failed to remove role: %v", err)
		}
		if !removed {
			t.Error("Expected role to be removed")
		}

		roles, _ := auth.GetRolesForUserInDomain(ctx, GroupSubject(userID), DomainApp)
		if len(roles) != 0 {
			t.Errorf("Expected 0 roles after removal, got %d", len(roles))
		}
	})

	t.Run("error for invalid role", func(t *testing.T) {
		_, err := auth.AddRoleForUserInDomain(ctx, GroupSubject(userID), Role("invalid-role"), DomainApp)
		if err == nil {
			t.Error("Expected error for invalid role")
		}
	})
}

func TestPermissionManagement(t *testing.T) {
	auth := newTestAuthorization(t)
	ctx := context.Background()

	t.Run("add and remove permission", func(t *testing.T) {
		added, err := auth.AddPermission(ctx, RolePaciente, DomainApp, ResourcePlan, ActionRead, EffectAllow)
		if err != nil {
			t.Errorf("Failed to add permission: %v", err)
		}
		if !added {
			t.Error("Expected permission to be added")
		}

		removed, err := auth.RemovePermission(ctx, RolePaciente, DomainApp, ResourcePlan, ActionRead, EffectAllow)
		if err != nil {
			t.Errorf("Failed to remove permission: %v", err)
		}
		if !removed {
			t.Error("Expected permission to be removed")
		}
	})

	t.Run("error for invalid effect", func(t *testing.T) {
		_, err := auth.AddPermission(ctx, RolePaciente, DomainApp, ResourceUser, ActionRead, PolicyEffect("invalid"))
		if err == nil {
			t.Error("Expected error for invalid effect")
		}
	})
}
