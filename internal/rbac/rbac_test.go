package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminPermitsEverything(t *testing.T) {
	for _, resource := range Resources {
		for _, action := range []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete} {
			assert.True(t, Permits(RoleAdmin, resource, action),
				"admin should be permitted %s on %s", action, resource)
		}
	}
}

func TestGrantsTable(t *testing.T) {
	tests := []struct {
		role     Role
		resource Resource
		action   Action
		want     bool
	}{
		{RoleDoctor, ResourcePatients, ActionRead, true},
		{RoleDoctor, ResourcePatients, ActionUpdate, true},
		{RoleDoctor, ResourcePatients, ActionCreate, false},
		{RoleDoctor, ResourcePatients, ActionDelete, false},
		{RoleDoctor, ResourceRecords, ActionCreate, true},
		{RoleDoctor, ResourceRecords, ActionUpdate, true},
		{RoleDoctor, ResourceRecords, ActionDelete, false},
		{RoleDoctor, ResourcePrescriptions, ActionCreate, true},
		{RoleDoctor, ResourceStaff, ActionRead, true},
		{RoleDoctor, ResourceStaff, ActionUpdate, false},
		{RoleDoctor, ResourcePayments, ActionRead, true},
		{RoleDoctor, ResourcePayments, ActionCreate, false},
		{RoleDoctor, ResourceTask, ActionRead, false},

		{RoleNurse, ResourcePatients, ActionCreate, true},
		{RoleNurse, ResourcePatients, ActionDelete, false},
		{RoleNurse, ResourceAppointments, ActionCreate, true},
		{RoleNurse, ResourceRecords, ActionRead, true},
		{RoleNurse, ResourceRecords, ActionCreate, false},
		{RoleNurse, ResourcePrescriptions, ActionRead, true},
		{RoleNurse, ResourcePrescriptions, ActionUpdate, false},
		{RoleNurse, ResourcePayments, ActionCreate, true},
		{RoleNurse, ResourceTask, ActionRead, false},

		{RoleMember, ResourcePatients, ActionRead, true},
		{RoleMember, ResourcePatients, ActionUpdate, true},
		{RoleMember, ResourcePatients, ActionCreate, false},
		{RoleMember, ResourceAppointments, ActionCreate, true},
		{RoleMember, ResourceAppointments, ActionDelete, false},
		{RoleMember, ResourceRecords, ActionRead, true},
		{RoleMember, ResourceStaff, ActionRead, false},
		{RoleMember, ResourcePayments, ActionCreate, true},
		{RoleMember, ResourceTask, ActionRead, false},
	}

	for _, tt := range tests {
		got := Permits(tt.role, tt.resource, tt.action)
		assert.Equal(t, tt.want, got, "%s %s %s", tt.role, tt.action, tt.resource)
	}
}

func TestPermitsUnknownRoleOrResource(t *testing.T) {
	assert.False(t, Permits(Role("superuser"), ResourcePatients, ActionRead))
	assert.False(t, Permits(RoleAdmin, Resource("invoices"), ActionRead))
	assert.False(t, Permits(Role(""), ResourcePatients, ActionRead))
}

func TestPermissionsOrder(t *testing.T) {
	assert.Equal(t,
		[]Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		Permissions(RoleAdmin, ResourcePatients))
	assert.Equal(t,
		[]Action{ActionRead, ActionUpdate},
		Permissions(RoleDoctor, ResourcePatients))
	assert.Empty(t, Permissions(RoleMember, ResourceTask))
}

func TestRoleValid(t *testing.T) {
	for _, role := range Roles {
		assert.True(t, role.Valid())
	}
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}
