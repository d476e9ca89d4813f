package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Allowed(t *testing.T) {
	tests := []struct {
		role   Role
		action Action
		want   bool
	}{
		{RoleSuperadmin, ActionUsersView, true},
		{RoleSuperadmin, ActionUsersManage, true},
		{RoleSuperadmin, ActionSchoolManage, true},

		{RoleAdmin, ActionUsersView, true},
		{RoleAdmin, ActionUsersManage, false},
		{RoleAdmin, ActionSchoolManage, true},

		{RoleProfesor, ActionUsersView, false},
		{RoleProfesor, ActionUsersManage, false},
		{RoleProfesor, ActionSchoolManage, true},

		{RoleAsistente, ActionUsersView, false},
		{RoleAsistente, ActionUsersManage, false},
		{RoleAsistente, ActionSchoolManage, true},

		// unknown roles and actions are denied
		{Role("root"), ActionUsersManage, false},
		{Role(""), ActionSchoolManage, false},
		{RoleSuperadmin, Action("users.destroy"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.role, tt.action))
		})
	}
}
