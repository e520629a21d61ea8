package user

type Role string

const (
	RoleAdmin    Role = "ADMIN"    // System administrator - full access
	RoleHR       Role = "HR"       // HR staff - manages locations, policies, approvals, salaries
	RoleEngineer Role = "ENGINEER" // Regular employee role
	RoleUser     Role = "USER"     // Authenticated identity, not necessarily an employee
)

// IsPrivileged reports whether the role may run HR/admin operations.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleHR
}
