package user

type Permission string

const (
	// Attendance Management
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceApprove Permission = "attendance.approve"
	PermissionAttendanceEdit    Permission = "attendance.edit"
	PermissionLocationManage    Permission = "location.manage"

	// Leave Management
	PermissionLeaveViewOwn        Permission = "leave.view_own"
	PermissionLeaveCreate         Permission = "leave.create"
	PermissionLeaveViewAll        Permission = "leave.view_all"
	PermissionLeaveApprove        Permission = "leave.approve"
	PermissionLeaveManagePolicies Permission = "leave.manage_policies"

	// Salary
	PermissionSalaryViewOwn Permission = "salary.view_own"
	PermissionSalaryViewAll Permission = "salary.view_all"
	PermissionSalaryManage  Permission = "salary.manage"
)

var employeePermissions = []Permission{
	PermissionAttendanceViewOwn,
	PermissionAttendanceCreate,
	PermissionLeaveViewOwn,
	PermissionLeaveCreate,
	PermissionSalaryViewOwn,
}

var privilegedPermissions = append([]Permission{
	PermissionAttendanceViewAll,
	PermissionAttendanceApprove,
	PermissionAttendanceEdit,
	PermissionLocationManage,
	PermissionLeaveViewAll,
	PermissionLeaveApprove,
	PermissionLeaveManagePolicies,
	PermissionSalaryViewAll,
	PermissionSalaryManage,
}, employeePermissions...)

// RolePermissions maps roles to their permissions. Roles that are not listed
// (other employee designations) fall back to the employee set.
var RolePermissions = map[Role][]Permission{
	RoleAdmin:    privilegedPermissions,
	RoleHR:       privilegedPermissions,
	RoleEngineer: employeePermissions,
	RoleUser:     employeePermissions,
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		if role == "" {
			return false
		}
		permissions = employeePermissions
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
