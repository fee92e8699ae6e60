package domain

import "github.com/google/uuid"

// Role is a collaborator's permission level on a single trip.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleViewer, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

// Collaborator grants a non-owner user access to a trip.
type Collaborator struct {
	UserID uuid.UUID
	Role   Role
}

// Caller identifies who is making a request. Admin is a global flag and is
// unrelated to the per-trip RoleAdmin.
type Caller struct {
	UserID uuid.UUID
	Admin  bool
}

// Capability is an action class checked against a trip.
type Capability int

const (
	// CapView allows reading the trip, its activities and budget.
	CapView Capability = iota
	// CapEditActivities allows creating, editing, moving and deleting activities.
	CapEditActivities
	// CapManage allows changing destinations, budget and trip fields.
	CapManage
)

// Can reports whether c holds capability on t.
func (t Trip) Can(c Caller, capability Capability) bool {
	if c.Admin || (c.UserID != uuid.Nil && c.UserID == t.OwnerID) {
		return true
	}
	role, ok := t.roleOf(c.UserID)
	if !ok {
		return false
	}
	switch capability {
	case CapView:
		return true
	case CapEditActivities:
		return role == RoleEditor || role == RoleAdmin
	}
	return false
}

func (t Trip) roleOf(userID uuid.UUID) (Role, bool) {
	for _, col := range t.Collaborators {
		if col.UserID == userID {
			return col.Role, true
		}
	}
	return "", false
}
