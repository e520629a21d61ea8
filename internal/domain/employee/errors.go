package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrNotAnEmployee      = errors.New("only employees can perform this action")
	ErrCompanyNotResolved = errors.New("company not found for current user")
	ErrEmployeeExists     = errors.New("employee record already exists for this user")
)
