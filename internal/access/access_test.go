package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func membership(role Role) *Membership {
	return &Membership{ProjectID: 1, UserID: 2, Role: role}
}

func TestCheckDeniesNonMembers(t *testing.T) {
	d := Check(nil, "")
	assert.False(t, d.Allowed)
	assert.Equal(t, "not a project member", d.Reason)

	d = Check(nil, RoleViewer)
	assert.False(t, d.Allowed)
}

func TestCheckMembershipSuffices(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleMember, RoleViewer} {
		assert.True(t, Check(membership(role), "").Allowed, "role %s", role)
	}
}

func TestCheckRoleHierarchy(t *testing.T) {
	cases := []struct {
		role     Role
		required Role
		allowed  bool
	}{
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleMember, true},
		{RoleAdmin, RoleViewer, true},
		{RoleMember, RoleAdmin, false},
		{RoleMember, RoleMember, true},
		{RoleMember, RoleViewer, true},
		{RoleViewer, RoleAdmin, false},
		{RoleViewer, RoleMember, false},
		{RoleViewer, RoleViewer, true},
	}

	for _, tc := range cases {
		d := Check(membership(tc.role), tc.required)
		assert.Equal(t, tc.allowed, d.Allowed, "%s vs required %s", tc.role, tc.required)
	}
}

// Any membership that can pass a stricter check must also pass weaker ones.
func TestCheckRoleMonotonicity(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleMember, RoleViewer, Role("owner")} {
		m := membership(role)

		if Check(m, RoleAdmin).Allowed {
			assert.True(t, Check(m, RoleMember).Allowed)
		}
		if Check(m, RoleMember).Allowed {
			assert.True(t, Check(m, RoleViewer).Allowed)
		}
	}
}

func TestCheckUnknownRolesFailClosed(t *testing.T) {
	assert.False(t, Check(membership("superuser"), RoleViewer).Allowed)
	assert.False(t, Check(membership(""), RoleViewer).Allowed)

	// Mere membership still counts, even with a junk role.
	assert.True(t, Check(membership("superuser"), "").Allowed)

	// An unrecognized required role can never be satisfied.
	assert.False(t, Check(membership(RoleAdmin), Role("owner")).Allowed)
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleMember.Valid())
	assert.True(t, RoleViewer.Valid())
	assert.False(t, Role("owner").Valid())
	assert.False(t, Role("").Valid())
}
