package rbac

// Role is a user's role in the clinic
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDoctor Role = "doctor"
	RoleNurse  Role = "nurse"
	RoleMember Role = "member"
)

// Roles lists every known role
var Roles = []Role{RoleAdmin, RoleDoctor, RoleNurse, RoleMember}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleNurse, RoleMember:
		return true
	}
	return false
}

// Action is a permitted operation on a resource
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource is a named resource class grants are expressed over
type Resource string

const (
	ResourcePatients      Resource = "patients"
	ResourceAppointments  Resource = "appointments"
	ResourceRecords       Resource = "records"
	ResourcePrescriptions Resource = "prescriptions"
	ResourceStaff         Resource = "staff"
	ResourcePayments      Resource = "payments"
	ResourceTask          Resource = "task"
)

// Resources lists every known resource
var Resources = []Resource{
	ResourcePatients,
	ResourceAppointments,
	ResourceRecords,
	ResourcePrescriptions,
	ResourceStaff,
	ResourcePayments,
	ResourceTask,
}

type actionSet map[Action]bool

func actions(as ...Action) actionSet {
	set := make(actionSet, len(as))
	for _, a := range as {
		set[a] = true
	}
	return set
}

var allActions = actions(ActionCreate, ActionRead, ActionUpdate, ActionDelete)

// grants is the fixed role → resource → actions table. It is built once at
// process start and never mutated; role administration happens outside this
// service. A role/resource pair absent from the table permits nothing.
var grants = map[Role]map[Resource]actionSet{
	RoleAdmin: {
		ResourcePatients:      allActions,
		ResourceAppointments:  allActions,
		ResourceRecords:       allActions,
		ResourcePrescriptions: allActions,
		ResourceStaff:         allActions,
		ResourcePayments:      allActions,
		ResourceTask:          allActions,
	},
	RoleDoctor: {
		ResourcePatients:      actions(ActionRead, ActionUpdate),
		ResourceAppointments:  actions(ActionRead, ActionUpdate),
		ResourceRecords:       actions(ActionCreate, ActionRead, ActionUpdate),
		ResourcePrescriptions: actions(ActionCreate, ActionRead, ActionUpdate),
		ResourceStaff:         actions(ActionRead),
		ResourcePayments:      actions(ActionRead),
	},
	RoleNurse: {
		ResourcePatients:      actions(ActionCreate, ActionRead, ActionUpdate),
		ResourceAppointments:  actions(ActionCreate, ActionRead, ActionUpdate),
		ResourceRecords:       actions(ActionRead),
		ResourcePrescriptions: actions(ActionRead),
		ResourceStaff:         actions(ActionRead),
		ResourcePayments:      actions(ActionCreate, ActionRead),
	},
	RoleMember: {
		ResourcePatients:      actions(ActionRead, ActionUpdate),
		ResourceAppointments:  actions(ActionCreate, ActionRead, ActionUpdate),
		ResourceRecords:       actions(ActionRead),
		ResourcePrescriptions: actions(ActionRead),
		ResourcePayments:      actions(ActionCreate, ActionRead),
	},
}

// Permits reports whether role may perform action on resource
func Permits(role Role, resource Resource, action Action) bool {
	byResource, ok := grants[role]
	if !ok {
		return false
	}
	set, ok := byResource[resource]
	if !ok {
		return false
	}
	return set[action]
}

// Permissions returns the permitted actions for a role/resource pair, in a
// fixed create/read/update/delete order. The result is a copy.
func Permissions(role Role, resource Resource) []Action {
	var out []Action
	for _, a := range []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete} {
		if Permits(role, resource, a) {
			out = append(out, a)
		}
	}
	return out
}
