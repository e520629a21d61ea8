package user

import "errors"

var (
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrRoleRequired            = errors.New("you do not have permission to perform this action")
)
