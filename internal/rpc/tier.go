package rpc

import (
	"strings"

	"github.com/smartclin/clinic-api/internal/rbac"
)

// Tier is the minimum-privilege requirement attached to a procedure. Each
// tier's allowed-role set is a superset of the next stricter tier's.
type Tier string

const (
	// TierPublic requires no user
	TierPublic Tier = "public"
	// TierProtected requires any authenticated user
	TierProtected Tier = "protected"
	// TierMember is equivalent to protected; used for procedures scoped to
	// "any known actor"
	TierMember Tier = "member"
	// TierStaff requires admin, doctor or nurse
	TierStaff Tier = "staff"
	// TierDoctor requires admin or doctor
	TierDoctor Tier = "doctor"
	// TierAdmin requires admin
	TierAdmin Tier = "admin"
)

var tierRoles = map[Tier][]rbac.Role{
	TierProtected: {rbac.RoleAdmin, rbac.RoleDoctor, rbac.RoleNurse, rbac.RoleMember},
	TierMember:    {rbac.RoleAdmin, rbac.RoleDoctor, rbac.RoleNurse, rbac.RoleMember},
	TierStaff:     {rbac.RoleAdmin, rbac.RoleDoctor, rbac.RoleNurse},
	TierDoctor:    {rbac.RoleAdmin, rbac.RoleDoctor},
	TierAdmin:     {rbac.RoleAdmin},
}

// Allows reports whether a role satisfies the tier. TierPublic allows
// everything, including no role at all; other tiers consult the fixed set.
func (t Tier) Allows(role rbac.Role) bool {
	if t == TierPublic {
		return true
	}
	for _, r := range tierRoles[t] {
		if r == role {
			return true
		}
	}
	return false
}

// RequiredRoles returns the allowed-role set for error messages
func (t Tier) RequiredRoles() []rbac.Role {
	return tierRoles[t]
}

func (t Tier) describeRoles() string {
	roles := t.RequiredRoles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
