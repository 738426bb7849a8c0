package domain

// GuardStage selects which authorization stage protects an operation.
type GuardStage int

const (
	// GuardOpen operations run without authentication.
	GuardOpen GuardStage = iota
	// GuardAuthenticated operations only require a resolved, active identity.
	GuardAuthenticated
	// GuardRole operations require the identity's role to be in Roles.
	GuardRole
	// GuardRoleOrOwner operations admit a role in Roles or the owner of the target resource.
	GuardRoleOrOwner
)

func (s GuardStage) String() string {
	switch s {
	case GuardOpen:
		return "open"
	case GuardAuthenticated:
		return "authenticated"
	case GuardRole:
		return "role"
	case GuardRoleOrOwner:
		return "role_or_owner"
	default:
		return "unknown"
	}
}

// AccessPolicy is the access metadata declared for a single operation.
type AccessPolicy struct {
	Stage GuardStage
	Roles []Role
}

func Open() AccessPolicy          { return AccessPolicy{Stage: GuardOpen} }
func Authenticated() AccessPolicy { return AccessPolicy{Stage: GuardAuthenticated} }

// RequireRole admits identities holding one of roles.
func RequireRole(roles ...Role) AccessPolicy {
	return AccessPolicy{Stage: GuardRole, Roles: roles}
}

// RequireRoleOrOwner admits identities holding one of roles, or acting on their own id.
func RequireRoleOrOwner(roles ...Role) AccessPolicy {
	return AccessPolicy{Stage: GuardRoleOrOwner, Roles: roles}
}

// Allows reports whether role is in the policy's required set.
func (p AccessPolicy) Allows(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
