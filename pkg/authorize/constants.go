package authorize

type Action string
type Resource string
type Role string
type Domain string

// ----------------------------
// Actions
// ----------------------------

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"

	// Power actions
	ActionManage  Action = "manage"  // CRUD + list
	ActionExecute Action = "execute" // run, trigger, start, stop, etc.

	// Lifecycle actions
	ActionValidate Action = "validate" // plan estado transitions
	ActionExport   Action = "export"   // plan / consulta document export

	// RBAC-specific actions
	ActionGrant  Action = "grant"
	ActionRevoke Action = "revoke"
)

const (
	WildcardAction Action = "*"
)

var KnownActions = map[Action]struct{}{
	ActionCreate: {}, ActionRead: {}, ActionUpdate: {}, ActionDelete: {}, ActionList: {},
	ActionManage: {}, ActionExecute: {},
	ActionValidate: {}, ActionExport: {},
	ActionGrant: {}, ActionRevoke: {},
}

// ----------------------------
// Resources
// ----------------------------

const (
	WildcardResource Resource = "*"

	// Identity / auth
	ResourceUser Resource = "user"

	// Directory and scheduling
	ResourceNutricionista  Resource = "nutricionista"
	ResourceDisponibilidad Resource = "disponibilidad"
	ResourceTurno          Resource = "turno"

	// Clinical records
	ResourcePaciente          Resource = "paciente"
	ResourceVinculacion       Resource = "vinculacion"
	ResourceEvolucion         Resource = "evolucion"
	ResourcePlan              Resource = "plan"
	ResourceConsulta          Resource = "consulta"
	ResourceConsultaDocumento Resource = "consulta_documento"

	// Communication
	ResourceNotificacion Resource = "notificacion"

	// System / platform admin
	ResourceSystem Resource = "system"
	ResourceAudit  Resource = "audit"
	ResourceRBAC   Resource = "rbac"
)

var KnownResources = map[Resource]struct{}{
	ResourceUser:          {},
	ResourceNutricionista: {}, ResourceDisponibilidad: {}, ResourceTurno: {},
	ResourcePaciente: {}, ResourceVinculacion: {}, ResourceEvolucion: {},
	ResourcePlan: {}, ResourceConsulta: {}, ResourceConsultaDocumento: {},
	ResourceNotificacion: {},
	ResourceSystem:       {}, ResourceAudit: {}, ResourceRBAC: {},
}

// ----------------------------
// Roles
// ----------------------------
//
// These are the "policy subjects" we assign to users via grouping policies.
// Access tokens carry the role claim, so enforcement can use the role
// directly as the request subject.

const (
	WildcardRole Role = "*"

	// Platform role (domain = sys)
	RolePlatformAdmin Role = "role:platform:admin"

	// Application roles (domain = app)
	RolePaciente      Role = "role:paciente"
	RoleNutricionista Role = "role:nutricionista"
)

var KnownRoles = map[Role]struct{}{
	RolePlatformAdmin: {},
	RolePaciente:      {},
	RoleNutricionista: {},
}

// User role strings (stored in DB users.rol column and the rol token claim)
const (
	UserRolePaciente      = "paciente"
	UserRoleNutricionista = "nutricionista"
	UserRoleAdmin         = "admin"
)

// UserRoleToRBACRole maps DB role values to Casbin roles
var UserRoleToRBACRole = map[string]Role{
	UserRolePaciente:      RolePaciente,
	UserRoleNutricionista: RoleNutricionista,
	UserRoleAdmin:         RolePlatformAdmin,
}

// ----------------------------
// Domains
// ----------------------------

const (
	DomainSys Domain = "sys"
	DomainApp Domain = "app"
)

const (
	WildcardDomain Domain = "*"
)

// IsValidDomain checks whether d is a recognised domain string.
func IsValidDomain(d Domain) bool {
	return d == DomainSys || d == DomainApp || d == WildcardDomain
}

// ----------------------------
// Casbin tuple helpers
// ----------------------------

type PolicyEffect string

const (
	EffectAllow PolicyEffect = "allow"
	EffectDeny  PolicyEffect = "deny"
)

// PolicySubject is the p.sub in Casbin: either a role (preferred) or a user/service id.
type PolicySubject string

// GroupSubject is the g.sub in Casbin: a concrete principal id (user_id) or a role
// carried in a verified token.
type GroupSubject string

// Grouping rows: g, user_id, role, domain
type GroupingPolicy struct {
	Subject GroupSubject
	Role    Role
	Domain  Domain
}

// Permission rows: p, role, domain, resource, action, eft
type PermissionPolicy struct {
	Subject Role
	Domain  Domain
	Object  Resource
	Action  Action
	Effect  PolicyEffect
}
