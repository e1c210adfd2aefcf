package entity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	tests := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleAdmin, PermUsersManage, true},
		{RoleAdmin, PermScoreOverride, true},
		{RoleManager, PermUsersManage, false},
		{RoleManager, PermScoreOverride, true},
		{RoleManager, PermLeadsDelete, true},
		{RoleSalesRep, PermLeadsWrite, true},
		{RoleSalesRep, PermLeadsDelete, false},
		{RoleSalesRep, PermScoreOverride, false},
		{RoleSalesRep, PermDashboardView, true},
		{Role("GUEST"), PermLeadsRead, false},
		{Role(""), PermLeadsRead, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Can(tt.role, tt.perm), "%s %s", tt.role, tt.perm)
	}
}

func TestEveryRoleCanReadLeads(t *testing.T) {
	for _, r := range Roles {
		assert.True(t, Can(r, PermLeadsRead), string(r))
	}
}

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFrom(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), Identity{UserID: "u-1", Role: RoleManager})
	id, ok := IdentityFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u-1", id.UserID)
	assert.True(t, id.Can(PermScoreOverride))
}
