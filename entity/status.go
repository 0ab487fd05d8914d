package entity

// Status is the lifecycle state shared by every record.
type Status string

const (
	StatusPending     Status = "PENDING"
	StatusCompleted   Status = "COMPLETED"
	StatusSent        Status = "SENT"
	StatusPaid        Status = "PAID"
	StatusActive      Status = "ACTIVE"
	StatusSuspended   Status = "SUSPENDED"
	StatusDeactivated Status = "DEACTIVATED"
	StatusApproved    Status = "APPROVED"
)

var validStatuses = map[Status]struct{}{
	StatusPending:     {},
	StatusCompleted:   {},
	StatusSent:        {},
	StatusPaid:        {},
	StatusActive:      {},
	StatusSuspended:   {},
	StatusDeactivated: {},
	StatusApproved:    {},
}

func (s Status) Valid() bool {
	_, ok := validStatuses[s]
	return ok
}

// Role is an authorization scope carried in JWT claims and cooperative memberships.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleCoopMember Role = "COOP_MEMBER"
	RoleCoopAdmin  Role = "COOP_ADMIN"
	RoleUser       Role = "USER"
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleSystem     Role = "SYSTEM"
)

var validRoles = map[Role]struct{}{
	RoleAdmin:      {},
	RoleCoopMember: {},
	RoleCoopAdmin:  {},
	RoleUser:       {},
	RoleSuperAdmin: {},
	RoleSystem:     {},
}

func (r Role) Valid() bool {
	_, ok := validRoles[r]
	return ok
}
