// Package access decides whether a user's project membership satisfies a
// required role. It is the single authorization gate consulted by every
// project-scoped endpoint.
package access

// Role is a project membership role. Roles form a strict hierarchy:
// admin > member > viewer.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

// rank maps roles onto the hierarchy. Unknown roles rank below viewer so a
// corrupt membership row denies instead of granting anything.
func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleMember:
		return 2
	case RoleViewer:
		return 1
	default:
		return 0
	}
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r.rank() > 0
}

// Membership is the join record granting a user a role within a project.
type Membership struct {
	ProjectID uint
	UserID    uint
	Role      Role
}

// Decision is the gate's verdict. Reason is for logging, not for clients.
type Decision struct {
	Allowed bool
	Reason  string
}

// Check decides whether the membership satisfies the required role. A nil
// membership always denies. An empty required role allows on mere
// membership, which is what read-only endpoints need.
func Check(m *Membership, required Role) Decision {
	if m == nil {
		return Decision{Allowed: false, Reason: "not a project member"}
	}

	if required == "" {
		return Decision{Allowed: true}
	}

	if m.Role.rank() >= required.rank() && required.rank() > 0 {
		return Decision{Allowed: true}
	}

	return Decision{Allowed: false, Reason: "insufficient role"}
}
