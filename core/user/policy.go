package user

// Action is a permission-checked operation group.
type Action string

const (
	// ActionUsersView covers listing and viewing staff accounts.
	ActionUsersView Action = "users.view"
	// ActionUsersManage covers creating, updating and deleting staff accounts.
	ActionUsersManage Action = "users.manage"
	// ActionSchoolManage covers all domain CRUD: students, courses, classes,
	// enrollments, payments, attendance, grades, dashboards and reports.
	ActionSchoolManage Action = "school.manage"
)

// Allowed is the access control policy: a total, side-effect-free mapping of
// (role, action) to allow/deny. Unknown roles and actions are denied.
// Self-deletion is not expressible here; it is blocked by ID comparison in
// the user service regardless of role.
func Allowed(role Role, action Action) bool {
	switch role {
	case RoleSuperadmin:
		switch action {
		case ActionUsersView, ActionUsersManage, ActionSchoolManage:
			return true
		}
	case RoleAdmin:
		switch action {
		case ActionUsersView, ActionSchoolManage:
			return true
		}
	case RoleProfesor, RoleAsistente:
		return action == ActionSchoolManage
	}
	return false
}
